package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// SubscriptionService handles subscription business logic
type SubscriptionService struct {
	subscriptionRepo domain.SubscriptionRepository
	categoryRepo     domain.CategoryRepository
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(subscriptionRepo domain.SubscriptionRepository, categoryRepo domain.CategoryRepository) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		categoryRepo:     categoryRepo,
	}
}

// CreateSubscriptionInput holds the input for creating a subscription
type CreateSubscriptionInput struct {
	Name            string
	AmountCents     int64
	CategoryID      *uuid.UUID
	Cadence         domain.Cadence
	NextBillingDate time.Time
	EndDate         *time.Time
	Autopay         bool
	CustomDays      *int
}

// CreateSubscription validates and persists a new subscription. New
// subscriptions start active.
func (s *SubscriptionService) CreateSubscription(input CreateSubscriptionInput) (*domain.Subscription, error) {
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
	if !input.Cadence.Valid() {
		return nil, domain.ErrInvalidCadence
	}
	if input.Cadence == domain.CadenceCustom && (input.CustomDays == nil || *input.CustomDays < 1) {
		return nil, domain.ErrInvalidCustomDays
	}
	if input.NextBillingDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
	}

	customDays := input.CustomDays
	if input.Cadence != domain.CadenceCustom {
		// customDays only has meaning for a custom cadence.
		customDays = nil
	}

	sub := &domain.Subscription{
		ID:              uuid.New(),
		Name:            name,
		AmountCents:     input.AmountCents,
		CategoryID:      input.CategoryID,
		Cadence:         input.Cadence,
		NextBillingDate: dateOnly(input.NextBillingDate),
		Active:          true,
		Autopay:         input.Autopay,
		CustomDays:      customDays,
	}
	if input.EndDate != nil {
		end := dateOnly(*input.EndDate)
		sub.EndDate = &end
	}

	return s.subscriptionRepo.Create(sub)
}

// UpdateSubscriptionInput holds the input for updating a subscription
type UpdateSubscriptionInput struct {
	Name            string
	AmountCents     int64
	CategoryID      *uuid.UUID
	Cadence         domain.Cadence
	NextBillingDate time.Time
	EndDate         *time.Time
	Active          bool
	Autopay         bool
	CustomDays      *int
}

// UpdateSubscription replaces a subscription's definition.
func (s *SubscriptionService) UpdateSubscription(id uuid.UUID, input UpdateSubscriptionInput) (*domain.Subscription, error) {
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
	if !input.Cadence.Valid() {
		return nil, domain.ErrInvalidCadence
	}
	if input.Cadence == domain.CadenceCustom && (input.CustomDays == nil || *input.CustomDays < 1) {
		return nil, domain.ErrInvalidCustomDays
	}
	if input.NextBillingDate.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
	}

	existing, err := s.subscriptionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.AmountCents = input.AmountCents
	existing.CategoryID = input.CategoryID
	existing.Cadence = input.Cadence
	existing.NextBillingDate = dateOnly(input.NextBillingDate)
	existing.Active = input.Active
	existing.Autopay = input.Autopay
	if input.Cadence == domain.CadenceCustom {
		existing.CustomDays = input.CustomDays
	} else {
		existing.CustomDays = nil
	}
	if input.EndDate != nil {
		end := dateOnly(*input.EndDate)
		existing.EndDate = &end
	} else {
		existing.EndDate = nil
	}

	return s.subscriptionRepo.Update(existing)
}

// ListSubscriptions retrieves subscriptions, optionally only active ones.
func (s *SubscriptionService) ListSubscriptions(activeOnly bool) ([]*domain.Subscription, error) {
	return s.subscriptionRepo.GetAll(activeOnly)
}

// GetSubscriptionByID retrieves a subscription by ID.
func (s *SubscriptionService) GetSubscriptionByID(id uuid.UUID) (*domain.Subscription, error) {
	return s.subscriptionRepo.GetByID(id)
}

// DeleteSubscription removes a subscription. Transactions that materialized
// its past occurrences are kept.
func (s *SubscriptionService) DeleteSubscription(id uuid.UUID) error {
	if _, err := s.subscriptionRepo.GetByID(id); err != nil {
		return err
	}
	return s.subscriptionRepo.Delete(id)
}

// GetOccurrences computes the subscription's billing occurrences inside the
// given month.
func (s *SubscriptionService) GetOccurrences(id uuid.UUID, month domain.MonthKey) ([]domain.Occurrence, error) {
	sub, err := s.subscriptionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return sub.OccurrencesIn(month), nil
}
