package domain

import (
	"time"

	"github.com/google/uuid"
)

// MonthBudget holds the per-category budget amounts for one calendar month.
// At most one record exists per MonthKey; writes use upsert semantics that
// merge CategoryBudgets into any existing record.
type MonthBudget struct {
	MonthKey        MonthKey            `json:"monthKey"`
	CategoryBudgets map[uuid.UUID]int64 `json:"categoryBudgets"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// TotalCents returns the budget total across all categories.
func (b *MonthBudget) TotalCents() int64 {
	var total int64
	for _, cents := range b.CategoryBudgets {
		total += cents
	}
	return total
}

type BudgetRepository interface {
	// GetByMonth returns ErrBudgetNotFound when no budget exists for the month.
	GetByMonth(month MonthKey) (*MonthBudget, error)
	// Upsert creates the month's budget or merges categoryBudgets into it.
	Upsert(month MonthKey, categoryBudgets map[uuid.UUID]int64) (*MonthBudget, error)
	GetAll() ([]*MonthBudget, error)
}
