package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// TransactionService handles transaction business logic: validation, rule
// driven auto-categorization, and the at-most-once materialization invariant
// for subscription occurrences.
type TransactionService struct {
	transactionRepo  domain.TransactionRepository
	subscriptionRepo domain.SubscriptionRepository
	categoryRepo     domain.CategoryRepository
	ruleRepo         domain.RuleRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo domain.TransactionRepository,
	subscriptionRepo domain.SubscriptionRepository,
	categoryRepo domain.CategoryRepository,
	ruleRepo domain.RuleRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		categoryRepo:     categoryRepo,
		ruleRepo:         ruleRepo,
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Type           domain.TransactionType
	Date           time.Time
	AmountCents    int64
	Name           string
	CategoryID     *uuid.UUID
	Notes          *string
	PaymentMethod  *string
	SubscriptionID *uuid.UUID
	OccurrenceDate *time.Time
}

// CreateTransaction validates and persists a new transaction. When no
// category is supplied the first matching auto-categorization rule assigns
// one. All validation happens before any write.
func (s *TransactionService) CreateTransaction(input CreateTransactionInput) (*domain.Transaction, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.AmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if input.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	var notes *string
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		if trimmed != "" {
			if len(trimmed) > domain.MaxNotesLength {
				return nil, domain.ErrNotesTooLong
			}
			notes = &trimmed
		}
	}

	// subscriptionId and occurrenceDate travel together or not at all.
	if (input.SubscriptionID == nil) != (input.OccurrenceDate == nil) {
		return nil, domain.ErrIncompleteOccurrence
	}
	if input.SubscriptionID != nil {
		if _, err := s.subscriptionRepo.GetByID(*input.SubscriptionID); err != nil {
			return nil, err
		}
		existing, err := s.transactionRepo.GetByOccurrence(*input.SubscriptionID, *input.OccurrenceDate)
		if err != nil && err != domain.ErrTransactionNotFound {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrOccurrenceAlreadyPaid
		}
	}

	categoryID := input.CategoryID
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(*categoryID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
	} else {
		rules, err := s.ruleRepo.GetAll()
		if err != nil {
			return nil, err
		}
		categoryID = domain.MatchCategory(rules, name, input.Type)
	}

	tx := &domain.Transaction{
		ID:             uuid.New(),
		Type:           input.Type,
		Date:           dateOnly(input.Date),
		AmountCents:    input.AmountCents,
		Name:           name,
		CategoryID:     categoryID,
		Notes:          notes,
		PaymentMethod:  input.PaymentMethod,
		SubscriptionID: input.SubscriptionID,
	}
	if input.OccurrenceDate != nil {
		occ := dateOnly(*input.OccurrenceDate)
		tx.OccurrenceDate = &occ
	}

	return s.transactionRepo.Create(tx)
}

// UpdateTransaction applies a partial update to an existing transaction.
func (s *TransactionService) UpdateTransaction(id uuid.UUID, patch domain.TransactionPatch) (*domain.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		existing.Name = name
	}
	if patch.AmountCents != nil {
		if *patch.AmountCents <= 0 {
			return nil, domain.ErrInvalidAmount
		}
		existing.AmountCents = *patch.AmountCents
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, domain.ErrInvalidTransactionType
		}
		existing.Type = *patch.Type
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, domain.ErrInvalidDate
		}
		existing.Date = dateOnly(*patch.Date)
	}
	switch {
	case patch.ClearCategory:
		existing.CategoryID = nil
	case patch.CategoryID != nil:
		if _, err := s.categoryRepo.GetByID(*patch.CategoryID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
		existing.CategoryID = patch.CategoryID
	}
	if patch.Notes != nil {
		trimmed := strings.TrimSpace(*patch.Notes)
		if len(trimmed) > domain.MaxNotesLength {
			return nil, domain.ErrNotesTooLong
		}
		if trimmed == "" {
			existing.Notes = nil
		} else {
			existing.Notes = &trimmed
		}
	}
	if patch.PaymentMethod != nil {
		existing.PaymentMethod = patch.PaymentMethod
	}

	return s.transactionRepo.Update(existing)
}

// DeleteTransaction removes a transaction. Deleting a materializing
// transaction reopens the subscription occurrence it paid.
func (s *TransactionService) DeleteTransaction(id uuid.UUID) error {
	if _, err := s.transactionRepo.GetByID(id); err != nil {
		return err
	}
	return s.transactionRepo.Delete(id)
}

// GetByMonth lists the month's transactions.
func (s *TransactionService) GetByMonth(month domain.MonthKey) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByMonth(month)
}

// PayOccurrence materializes one billing occurrence of a subscription as a
// transaction carrying the subscription's name, amount and category. The
// (subscription, date) pair can be paid at most once; a second attempt fails
// with ErrOccurrenceAlreadyPaid.
func (s *TransactionService) PayOccurrence(subscriptionID uuid.UUID, date time.Time, paymentMethod *string) (*domain.Transaction, error) {
	sub, err := s.subscriptionRepo.GetByID(subscriptionID)
	if err != nil {
		return nil, err
	}

	occDate := dateOnly(date)
	return s.CreateTransaction(CreateTransactionInput{
		Type:           domain.TransactionTypeExpense,
		Date:           occDate,
		AmountCents:    sub.AmountCents,
		Name:           sub.Name,
		CategoryID:     sub.CategoryID,
		PaymentMethod:  paymentMethod,
		SubscriptionID: &sub.ID,
		OccurrenceDate: &occDate,
	})
}

// dateOnly strips any time-of-day component, keeping calendar-date semantics.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
