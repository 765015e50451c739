package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/testutil"
)

func newSubscriptionService() (*SubscriptionService, *testutil.MockSubscriptionRepository) {
	subscriptionRepo := testutil.NewMockSubscriptionRepository()
	categoryRepo := testutil.NewMockCategoryRepositoryWithDefaults()
	return NewSubscriptionService(subscriptionRepo, categoryRepo), subscriptionRepo
}

func validSubscriptionInput() CreateSubscriptionInput {
	return CreateSubscriptionInput{
		Name:            "Netflix",
		AmountCents:     1599,
		Cadence:         domain.CadenceMonthly,
		NextBillingDate: day(2025, time.March, 15),
	}
}

func TestCreateSubscription_StartsActive(t *testing.T) {
	svc, _ := newSubscriptionService()

	sub, err := svc.CreateSubscription(validSubscriptionInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !sub.Active {
		t.Error("Expected new subscription to start active")
	}
}

func TestCreateSubscription_Validation(t *testing.T) {
	svc, _ := newSubscriptionService()

	tests := []struct {
		name    string
		mutate  func(*CreateSubscriptionInput)
		wantErr error
	}{
		{"empty name", func(in *CreateSubscriptionInput) { in.Name = " " }, domain.ErrNameRequired},
		{"zero amount", func(in *CreateSubscriptionInput) { in.AmountCents = 0 }, domain.ErrInvalidAmount},
		{"bad cadence", func(in *CreateSubscriptionInput) { in.Cadence = "daily" }, domain.ErrInvalidCadence},
		{"custom without days", func(in *CreateSubscriptionInput) { in.Cadence = domain.CadenceCustom }, domain.ErrInvalidCustomDays},
		{"zero date", func(in *CreateSubscriptionInput) { in.NextBillingDate = time.Time{} }, domain.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSubscriptionInput()
			tt.mutate(&input)
			if _, err := svc.CreateSubscription(input); err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	zero := 0
	input := validSubscriptionInput()
	input.Cadence = domain.CadenceCustom
	input.CustomDays = &zero
	if _, err := svc.CreateSubscription(input); err != domain.ErrInvalidCustomDays {
		t.Errorf("Expected ErrInvalidCustomDays for zero customDays, got %v", err)
	}
}

func TestCreateSubscription_CustomDaysDroppedForFixedCadence(t *testing.T) {
	svc, _ := newSubscriptionService()

	days := 14
	input := validSubscriptionInput()
	input.CustomDays = &days

	sub, err := svc.CreateSubscription(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sub.CustomDays != nil {
		t.Error("Expected customDays cleared for a monthly cadence")
	}
}

func TestCreateSubscription_UnknownCategory(t *testing.T) {
	svc, _ := newSubscriptionService()

	bogus := uuid.New()
	input := validSubscriptionInput()
	input.CategoryID = &bogus
	if _, err := svc.CreateSubscription(input); err != domain.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestListSubscriptions_ActiveOnly(t *testing.T) {
	svc, subscriptionRepo := newSubscriptionService()

	active, err := svc.CreateSubscription(validSubscriptionInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	inactive, err := svc.CreateSubscription(CreateSubscriptionInput{
		Name:            "Old gym",
		AmountCents:     3000,
		Cadence:         domain.CadenceMonthly,
		NextBillingDate: day(2025, time.January, 1),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	inactive.Active = false
	subscriptionRepo.Update(inactive)

	all, err := svc.ListSubscriptions(false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 subscriptions, got %d", len(all))
	}

	filtered, err := svc.ListSubscriptions(true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != active.ID {
		t.Errorf("Expected only the active subscription, got %d", len(filtered))
	}
}

func TestUpdateSubscription_Deactivate(t *testing.T) {
	svc, _ := newSubscriptionService()

	sub, err := svc.CreateSubscription(validSubscriptionInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.UpdateSubscription(sub.ID, UpdateSubscriptionInput{
		Name:            sub.Name,
		AmountCents:     sub.AmountCents,
		Cadence:         sub.Cadence,
		NextBillingDate: sub.NextBillingDate,
		Active:          false,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Active {
		t.Error("Expected subscription deactivated")
	}

	if occs, _ := svc.GetOccurrences(sub.ID, "2025-03"); len(occs) != 0 {
		t.Errorf("Expected no occurrences for inactive subscription, got %d", len(occs))
	}
}

func TestGetOccurrences(t *testing.T) {
	svc, _ := newSubscriptionService()

	sub, err := svc.CreateSubscription(validSubscriptionInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	occs, err := svc.GetOccurrences(sub.ID, "2025-05")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(occs) != 1 {
		t.Fatalf("Expected 1 occurrence, got %d", len(occs))
	}
	if !occs[0].Date.Equal(day(2025, time.May, 15)) {
		t.Errorf("Expected 2025-05-15, got %s", occs[0].Date.Format("2006-01-02"))
	}

	if _, err := svc.GetOccurrences(uuid.New(), "2025-05"); err != domain.ErrSubscriptionNotFound {
		t.Errorf("Expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestDeleteSubscription(t *testing.T) {
	svc, _ := newSubscriptionService()

	sub, err := svc.CreateSubscription(validSubscriptionInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.DeleteSubscription(sub.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.DeleteSubscription(sub.ID); err != domain.ErrSubscriptionNotFound {
		t.Errorf("Expected ErrSubscriptionNotFound, got %v", err)
	}
}
