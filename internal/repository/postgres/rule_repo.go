package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// RuleRepository implements domain.RuleRepository using PostgreSQL. Rules
// carry a position sequence so match order stays insertion order.
type RuleRepository struct {
	pool *pgxpool.Pool
}

// NewRuleRepository creates a new RuleRepository
func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

// Create inserts a new rule at the end of the match order.
func (r *RuleRepository) Create(rule *domain.Rule) (*domain.Rule, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO rules (id, match_text, category_id, applies_to)
		VALUES ($1, $2, $3, $4)
		RETURNING id, match_text, category_id, applies_to, created_at`,
		rule.ID, rule.MatchText, rule.CategoryID, string(rule.AppliesTo),
	)
	return scanRule(row)
}

// GetByID retrieves a rule by ID
func (r *RuleRepository) GetByID(id uuid.UUID) (*domain.Rule, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, match_text, category_id, applies_to, created_at
		FROM rules WHERE id = $1`, id)

	rule, err := scanRule(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

// GetAll retrieves all rules in insertion order.
func (r *RuleRepository) GetAll() ([]*domain.Rule, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, match_text, category_id, applies_to, created_at
		FROM rules ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*domain.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Update rewrites a rule, keeping its position in the match order.
func (r *RuleRepository) Update(rule *domain.Rule) (*domain.Rule, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE rules SET match_text = $2, category_id = $3, applies_to = $4
		WHERE id = $1
		RETURNING id, match_text, category_id, applies_to, created_at`,
		rule.ID, rule.MatchText, rule.CategoryID, string(rule.AppliesTo),
	)

	updated, err := scanRule(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a rule
func (r *RuleRepository) Delete(id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func scanRule(row pgx.Row) (*domain.Rule, error) {
	var (
		rule      domain.Rule
		appliesTo string
	)
	if err := row.Scan(&rule.ID, &rule.MatchText, &rule.CategoryID, &appliesTo, &rule.CreatedAt); err != nil {
		return nil, err
	}
	rule.AppliesTo = domain.RuleScope(appliesTo)
	return &rule, nil
}
