package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// SubscriptionRepository implements domain.SubscriptionRepository using PostgreSQL
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

const subscriptionColumns = `id, name, amount_cents, category_id, cadence, next_billing_date,
	end_date, active, autopay, custom_days, created_at, updated_at`

// Create inserts a new subscription
func (r *SubscriptionRepository) Create(sub *domain.Subscription) (*domain.Subscription, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO subscriptions (id, name, amount_cents, category_id, cadence, next_billing_date,
			end_date, active, autopay, custom_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+subscriptionColumns,
		sub.ID, sub.Name, sub.AmountCents, sub.CategoryID, string(sub.Cadence),
		toPgDate(sub.NextBillingDate), toPgDatePtr(sub.EndDate), sub.Active, sub.Autopay, sub.CustomDays,
	)
	return scanSubscription(row)
}

// GetByID retrieves a subscription by ID
func (r *SubscriptionRepository) GetByID(id uuid.UUID) (*domain.Subscription, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id)

	sub, err := scanSubscription(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// GetAll retrieves subscriptions, optionally only active ones, in creation order.
func (r *SubscriptionRepository) GetAll(activeOnly bool) ([]*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at`

	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*domain.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Update rewrites a subscription's definition.
func (r *SubscriptionRepository) Update(sub *domain.Subscription) (*domain.Subscription, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE subscriptions
		SET name = $2, amount_cents = $3, category_id = $4, cadence = $5, next_billing_date = $6,
			end_date = $7, active = $8, autopay = $9, custom_days = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+subscriptionColumns,
		sub.ID, sub.Name, sub.AmountCents, sub.CategoryID, string(sub.Cadence),
		toPgDate(sub.NextBillingDate), toPgDatePtr(sub.EndDate), sub.Active, sub.Autopay, sub.CustomDays,
	)

	updated, err := scanSubscription(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a subscription. Transactions that materialized its
// occurrences keep their subscription reference.
func (r *SubscriptionRepository) Delete(id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var (
		sub             domain.Subscription
		cadence         string
		nextBillingDate pgtype.Date
		endDate         pgtype.Date
	)
	err := row.Scan(&sub.ID, &sub.Name, &sub.AmountCents, &sub.CategoryID, &cadence,
		&nextBillingDate, &endDate, &sub.Active, &sub.Autopay, &sub.CustomDays,
		&sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sub.Cadence = domain.Cadence(cadence)
	sub.NextBillingDate = fromPgDate(nextBillingDate)
	sub.EndDate = fromPgDatePtr(endDate)
	return &sub, nil
}
