package service

import (
	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// BudgetService handles month budget business logic
type BudgetService struct {
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// GetBudget retrieves the month's budget, or ErrBudgetNotFound.
func (s *BudgetService) GetBudget(month domain.MonthKey) (*domain.MonthBudget, error) {
	return s.budgetRepo.GetByMonth(month)
}

// UpsertBudget creates the month's budget or merges the given category
// amounts into the existing one. Amounts must be non-negative and reference
// existing categories.
func (s *BudgetService) UpsertBudget(month domain.MonthKey, categoryBudgets map[uuid.UUID]int64) (*domain.MonthBudget, error) {
	for catID, cents := range categoryBudgets {
		if cents < 0 {
			return nil, domain.ErrInvalidAmount
		}
		if _, err := s.categoryRepo.GetByID(catID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
	}
	return s.budgetRepo.Upsert(month, categoryBudgets)
}

// CopyPreviousBudget copies last month's category budgets into the given
// month. Returns ErrBudgetNotFound when last month has no budget.
func (s *BudgetService) CopyPreviousBudget(month domain.MonthKey) (*domain.MonthBudget, error) {
	previous, err := s.budgetRepo.GetByMonth(month.Previous())
	if err != nil {
		return nil, err
	}
	return s.budgetRepo.Upsert(month, previous.CategoryBudgets)
}
