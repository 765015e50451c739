package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, type, date, amount_cents, name, category_id, notes, payment_method,
	subscription_id, occurrence_date, created_at, updated_at`

// Create inserts a new transaction. A duplicate (subscription_id,
// occurrence_date) pair fails with domain.ErrOccurrenceAlreadyPaid: the
// unique index is the last line of defense for the at-most-once
// materialization invariant.
func (r *TransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (id, type, date, amount_cents, name, category_id, notes, payment_method,
			subscription_id, occurrence_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+transactionColumns,
		tx.ID, string(tx.Type), toPgDate(tx.Date), tx.AmountCents, tx.Name, tx.CategoryID,
		toPgText(tx.Notes), toPgText(tx.PaymentMethod), tx.SubscriptionID, toPgDatePtr(tx.OccurrenceDate),
	)

	created, err := scanTransaction(row)
	if err != nil {
		if isUniqueViolation(err, "transactions_subscription_occurrence_key") {
			return nil, domain.ErrOccurrenceAlreadyPaid
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(id uuid.UUID) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	tx, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// GetByMonth retrieves the month's transactions ordered by date.
func (r *TransactionRepository) GetByMonth(month domain.MonthKey) ([]*domain.Transaction, error) {
	start, end := month.DateRange()
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date, created_at`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// GetByOccurrence finds the transaction materializing a subscription
// occurrence, or domain.ErrTransactionNotFound.
func (r *TransactionRepository) GetByOccurrence(subscriptionID uuid.UUID, date time.Time) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE subscription_id = $1 AND occurrence_date = $2`,
		subscriptionID, toPgDate(date))

	tx, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// Update rewrites a transaction's mutable fields.
func (r *TransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE transactions
		SET type = $2, date = $3, amount_cents = $4, name = $5, category_id = $6,
			notes = $7, payment_method = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+transactionColumns,
		tx.ID, string(tx.Type), toPgDate(tx.Date), tx.AmountCents, tx.Name, tx.CategoryID,
		toPgText(tx.Notes), toPgText(tx.PaymentMethod),
	)

	updated, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx             domain.Transaction
		txType         string
		date           pgtype.Date
		occurrenceDate pgtype.Date
		notes          pgtype.Text
		paymentMethod  pgtype.Text
	)
	err := row.Scan(&tx.ID, &txType, &date, &tx.AmountCents, &tx.Name, &tx.CategoryID,
		&notes, &paymentMethod, &tx.SubscriptionID, &occurrenceDate, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tx.Type = domain.TransactionType(txType)
	tx.Date = fromPgDate(date)
	tx.OccurrenceDate = fromPgDatePtr(occurrenceDate)
	tx.Notes = fromPgText(notes)
	tx.PaymentMethod = fromPgText(paymentMethod)
	return &tx, nil
}
