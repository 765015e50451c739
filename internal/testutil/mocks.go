package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	CreateErr    error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
	}
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(tx *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	if tx.SubscriptionID != nil && tx.OccurrenceDate != nil {
		for _, existing := range m.Transactions {
			if existing.Materializes(*tx.SubscriptionID, *tx.OccurrenceDate) {
				return nil, domain.ErrOccurrenceAlreadyPaid
			}
		}
	}
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id uuid.UUID) (*domain.Transaction, error) {
	if tx, ok := m.Transactions[id]; ok {
		return tx, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// GetByMonth retrieves the month's transactions ordered by date
func (m *MockTransactionRepository) GetByMonth(month domain.MonthKey) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, tx := range m.Transactions {
		if month.Contains(tx.Date) {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// GetByOccurrence retrieves the transaction that paid the given occurrence
func (m *MockTransactionRepository) GetByOccurrence(subscriptionID uuid.UUID, date time.Time) (*domain.Transaction, error) {
	for _, tx := range m.Transactions {
		if tx.Materializes(subscriptionID, date) {
			return tx, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

// Update updates an existing transaction
func (m *MockTransactionRepository) Update(tx *domain.Transaction) (*domain.Transaction, error) {
	if _, ok := m.Transactions[tx.ID]; !ok {
		return nil, domain.ErrTransactionNotFound
	}
	tx.UpdatedAt = time.Now().UTC()
	m.Transactions[tx.ID] = tx
	return tx, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// MockSubscriptionRepository is a mock implementation of domain.SubscriptionRepository
type MockSubscriptionRepository struct {
	Subscriptions map[uuid.UUID]*domain.Subscription
}

// NewMockSubscriptionRepository creates a new MockSubscriptionRepository
func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		Subscriptions: make(map[uuid.UUID]*domain.Subscription),
	}
}

// Create stores a new subscription
func (m *MockSubscriptionRepository) Create(sub *domain.Subscription) (*domain.Subscription, error) {
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	m.Subscriptions[sub.ID] = sub
	return sub, nil
}

// GetByID retrieves a subscription by ID
func (m *MockSubscriptionRepository) GetByID(id uuid.UUID) (*domain.Subscription, error) {
	if sub, ok := m.Subscriptions[id]; ok {
		return sub, nil
	}
	return nil, domain.ErrSubscriptionNotFound
}

// GetAll retrieves all subscriptions, optionally only active ones
func (m *MockSubscriptionRepository) GetAll(activeOnly bool) ([]*domain.Subscription, error) {
	var result []*domain.Subscription
	for _, sub := range m.Subscriptions {
		if activeOnly && !sub.Active {
			continue
		}
		result = append(result, sub)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// Update updates an existing subscription
func (m *MockSubscriptionRepository) Update(sub *domain.Subscription) (*domain.Subscription, error) {
	if _, ok := m.Subscriptions[sub.ID]; !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	sub.UpdatedAt = time.Now().UTC()
	m.Subscriptions[sub.ID] = sub
	return sub, nil
}

// Delete removes a subscription
func (m *MockSubscriptionRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Subscriptions[id]; !ok {
		return domain.ErrSubscriptionNotFound
	}
	delete(m.Subscriptions, id)
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// NewMockCategoryRepositoryWithDefaults creates a MockCategoryRepository
// pre-seeded with the default category set.
func NewMockCategoryRepositoryWithDefaults() *MockCategoryRepository {
	m := NewMockCategoryRepository()
	for i := range domain.DefaultCategories {
		cat := domain.DefaultCategories[i]
		m.Categories[cat.ID] = &cat
	}
	return m
}

// Create stores a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	if cat, ok := m.Categories[id]; ok {
		return cat, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories ordered by name
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	result := make([]*domain.Category, 0, len(m.Categories))
	for _, cat := range m.Categories {
		result = append(result, cat)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update updates an existing category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[category.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[domain.MonthKey]*domain.MonthBudget
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[domain.MonthKey]*domain.MonthBudget),
	}
}

// GetByMonth retrieves the month's budget
func (m *MockBudgetRepository) GetByMonth(month domain.MonthKey) (*domain.MonthBudget, error) {
	if budget, ok := m.Budgets[month]; ok {
		return budget, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// Upsert creates the month's budget or merges categoryBudgets into it
func (m *MockBudgetRepository) Upsert(month domain.MonthKey, categoryBudgets map[uuid.UUID]int64) (*domain.MonthBudget, error) {
	now := time.Now().UTC()
	budget, ok := m.Budgets[month]
	if !ok {
		budget = &domain.MonthBudget{
			MonthKey:        month,
			CategoryBudgets: make(map[uuid.UUID]int64),
			CreatedAt:       now,
		}
		m.Budgets[month] = budget
	}
	for catID, cents := range categoryBudgets {
		budget.CategoryBudgets[catID] = cents
	}
	budget.UpdatedAt = now
	return budget, nil
}

// GetAll retrieves all month budgets
func (m *MockBudgetRepository) GetAll() ([]*domain.MonthBudget, error) {
	result := make([]*domain.MonthBudget, 0, len(m.Budgets))
	for _, budget := range m.Budgets {
		result = append(result, budget)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MonthKey < result[j].MonthKey })
	return result, nil
}

// MockRuleRepository is a mock implementation of domain.RuleRepository.
// Rules keep their insertion order, matching the match-order contract.
type MockRuleRepository struct {
	Rules []*domain.Rule
}

// NewMockRuleRepository creates a new MockRuleRepository
func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{}
}

// Create appends a new rule
func (m *MockRuleRepository) Create(rule *domain.Rule) (*domain.Rule, error) {
	m.Rules = append(m.Rules, rule)
	return rule, nil
}

// GetByID retrieves a rule by ID
func (m *MockRuleRepository) GetByID(id uuid.UUID) (*domain.Rule, error) {
	for _, rule := range m.Rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return nil, domain.ErrRuleNotFound
}

// GetAll retrieves all rules in insertion order
func (m *MockRuleRepository) GetAll() ([]*domain.Rule, error) {
	return m.Rules, nil
}

// Update updates an existing rule in place
func (m *MockRuleRepository) Update(rule *domain.Rule) (*domain.Rule, error) {
	for i, existing := range m.Rules {
		if existing.ID == rule.ID {
			m.Rules[i] = rule
			return rule, nil
		}
	}
	return nil, domain.ErrRuleNotFound
}

// Delete removes a rule
func (m *MockRuleRepository) Delete(id uuid.UUID) error {
	for i, rule := range m.Rules {
		if rule.ID == id {
			m.Rules = append(m.Rules[:i], m.Rules[i+1:]...)
			return nil
		}
	}
	return domain.ErrRuleNotFound
}
