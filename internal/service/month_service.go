package service

import (
	"fmt"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// MonthService assembles everything the UI needs for one month: the month's
// transactions, all subscriptions, the category set, the month's budget and
// the derived summary.
type MonthService struct {
	transactionRepo  domain.TransactionRepository
	subscriptionRepo domain.SubscriptionRepository
	budgetRepo       domain.BudgetRepository
	categoryRepo     domain.CategoryRepository
}

// NewMonthService creates a new MonthService
func NewMonthService(
	transactionRepo domain.TransactionRepository,
	subscriptionRepo domain.SubscriptionRepository,
	budgetRepo domain.BudgetRepository,
	categoryRepo domain.CategoryRepository,
) *MonthService {
	return &MonthService{
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		budgetRepo:       budgetRepo,
		categoryRepo:     categoryRepo,
	}
}

// LoadMonth loads the month's entities and computes its summary in one call.
// Any failed read propagates; the result never contains a partially loaded
// or zeroed summary.
func (s *MonthService) LoadMonth(month domain.MonthKey) (*domain.MonthData, error) {
	transactions, err := s.transactionRepo.GetByMonth(month)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	subscriptions, err := s.subscriptionRepo.GetAll(false)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	budget, err := s.budgetRepo.GetByMonth(month)
	if err != nil && err != domain.ErrBudgetNotFound {
		return nil, fmt.Errorf("load budget: %w", err)
	}

	return &domain.MonthData{
		MonthKey:      month,
		Transactions:  transactions,
		Subscriptions: subscriptions,
		Categories:    categories,
		Budget:        budget,
		Summary:       CalculateMonthSummary(transactions, subscriptions, budget, categories, month),
	}, nil
}
