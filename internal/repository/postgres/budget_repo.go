package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL. The
// per-category amounts are stored as a jsonb object keyed by category ID,
// one row per month key.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// GetByMonth retrieves the month's budget, or domain.ErrBudgetNotFound.
func (r *BudgetRepository) GetByMonth(month domain.MonthKey) (*domain.MonthBudget, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT month_key, category_budgets, created_at, updated_at
		FROM month_budgets WHERE month_key = $1`, string(month))

	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Upsert creates the month's budget or merges the given category amounts
// into the existing jsonb object. The month_key primary key keeps the
// one-row-per-month invariant.
func (r *BudgetRepository) Upsert(month domain.MonthKey, categoryBudgets map[uuid.UUID]int64) (*domain.MonthBudget, error) {
	payload, err := json.Marshal(categoryBudgets)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO month_budgets (month_key, category_budgets)
		VALUES ($1, $2)
		ON CONFLICT (month_key) DO UPDATE
		SET category_budgets = month_budgets.category_budgets || EXCLUDED.category_budgets,
			updated_at = now()
		RETURNING month_key, category_budgets, created_at, updated_at`,
		string(month), payload,
	)
	return scanBudget(row)
}

// GetAll retrieves every month budget ordered by month key.
func (r *BudgetRepository) GetAll() ([]*domain.MonthBudget, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT month_key, category_budgets, created_at, updated_at
		FROM month_budgets ORDER BY month_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.MonthBudget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func scanBudget(row pgx.Row) (*domain.MonthBudget, error) {
	var (
		budget  domain.MonthBudget
		key     string
		payload []byte
	)
	if err := row.Scan(&key, &payload, &budget.CreatedAt, &budget.UpdatedAt); err != nil {
		return nil, err
	}
	budget.MonthKey = domain.MonthKey(key)
	if err := json.Unmarshal(payload, &budget.CategoryBudgets); err != nil {
		return nil, err
	}
	return &budget, nil
}
