package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/testutil"
)

func newTransactionService() (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockSubscriptionRepository, *testutil.MockCategoryRepository, *testutil.MockRuleRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	subscriptionRepo := testutil.NewMockSubscriptionRepository()
	categoryRepo := testutil.NewMockCategoryRepositoryWithDefaults()
	ruleRepo := testutil.NewMockRuleRepository()
	svc := NewTransactionService(transactionRepo, subscriptionRepo, categoryRepo, ruleRepo)
	return svc, transactionRepo, subscriptionRepo, categoryRepo, ruleRepo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateTransaction_Valid(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	tx, err := svc.CreateTransaction(CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 1599,
		Name:        "  Groceries  ",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tx.Name != "Groceries" {
		t.Errorf("Expected trimmed name, got %q", tx.Name)
	}
	if tx.AmountCents != 1599 {
		t.Errorf("Expected 1599 cents, got %d", tx.AmountCents)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	valid := CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 100,
		Name:        "Coffee",
	}

	tests := []struct {
		name    string
		mutate  func(*CreateTransactionInput)
		wantErr error
	}{
		{"empty name", func(in *CreateTransactionInput) { in.Name = "   " }, domain.ErrNameRequired},
		{"long name", func(in *CreateTransactionInput) { in.Name = strings.Repeat("x", 256) }, domain.ErrNameTooLong},
		{"zero amount", func(in *CreateTransactionInput) { in.AmountCents = 0 }, domain.ErrInvalidAmount},
		{"negative amount", func(in *CreateTransactionInput) { in.AmountCents = -5 }, domain.ErrInvalidAmount},
		{"bad type", func(in *CreateTransactionInput) { in.Type = "transfer" }, domain.ErrInvalidTransactionType},
		{"zero date", func(in *CreateTransactionInput) { in.Date = time.Time{} }, domain.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			if _, err := svc.CreateTransaction(input); err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateTransaction_LongNotesRejected(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	notes := strings.Repeat("n", 1001)
	_, err := svc.CreateTransaction(CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 100,
		Name:        "Coffee",
		Notes:       &notes,
	})
	if err != domain.ErrNotesTooLong {
		t.Errorf("Expected ErrNotesTooLong, got %v", err)
	}
}

func TestCreateTransaction_UnknownCategoryRejected(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	bogus := uuid.New()
	_, err := svc.CreateTransaction(CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 100,
		Name:        "Coffee",
		CategoryID:  &bogus,
	})
	if err != domain.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateTransaction_RuleAutoCategorizes(t *testing.T) {
	svc, _, _, _, ruleRepo := newTransactionService()

	music := domain.DefaultCategories[4].ID
	ruleRepo.Create(&domain.Rule{
		ID:         uuid.New(),
		MatchText:  "spotify",
		CategoryID: music,
		AppliesTo:  domain.RuleScopeExpense,
	})

	tx, err := svc.CreateTransaction(CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 1099,
		Name:        "Spotify Premium",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tx.CategoryID == nil || *tx.CategoryID != music {
		t.Error("Expected rule to assign the music category")
	}
}

func TestCreateTransaction_ExplicitCategoryBeatsRules(t *testing.T) {
	svc, _, _, _, ruleRepo := newTransactionService()

	ruleCat := domain.DefaultCategories[0].ID
	chosen := domain.DefaultCategories[1].ID
	ruleRepo.Create(&domain.Rule{
		ID:         uuid.New(),
		MatchText:  "uber",
		CategoryID: ruleCat,
		AppliesTo:  domain.RuleScopeExpense,
	})

	tx, err := svc.CreateTransaction(CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 2300,
		Name:        "Uber ride",
		CategoryID:  &chosen,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tx.CategoryID == nil || *tx.CategoryID != chosen {
		t.Error("Expected explicit category to win over rules")
	}
}

func TestCreateTransaction_IncompleteOccurrence(t *testing.T) {
	svc, _, subscriptionRepo, _, _ := newTransactionService()

	sub := &domain.Subscription{
		ID:              uuid.New(),
		Name:            "Netflix",
		AmountCents:     1599,
		Cadence:         domain.CadenceMonthly,
		NextBillingDate: day(2025, time.March, 15),
		Active:          true,
	}
	subscriptionRepo.Create(sub)

	occ := day(2025, time.March, 15)
	base := CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        occ,
		AmountCents: 1599,
		Name:        "Netflix",
	}

	withSub := base
	withSub.SubscriptionID = &sub.ID
	if _, err := svc.CreateTransaction(withSub); err != domain.ErrIncompleteOccurrence {
		t.Errorf("Expected ErrIncompleteOccurrence with only subscriptionId, got %v", err)
	}

	withDate := base
	withDate.OccurrenceDate = &occ
	if _, err := svc.CreateTransaction(withDate); err != domain.ErrIncompleteOccurrence {
		t.Errorf("Expected ErrIncompleteOccurrence with only occurrenceDate, got %v", err)
	}
}

func TestPayOccurrence_AtMostOnce(t *testing.T) {
	svc, _, subscriptionRepo, _, _ := newTransactionService()

	sub := &domain.Subscription{
		ID:              uuid.New(),
		Name:            "Netflix",
		AmountCents:     1599,
		Cadence:         domain.CadenceMonthly,
		NextBillingDate: day(2025, time.March, 15),
		Active:          true,
	}
	subscriptionRepo.Create(sub)

	occ := day(2025, time.March, 15)
	tx, err := svc.PayOccurrence(sub.ID, occ, nil)
	if err != nil {
		t.Fatalf("First payment failed: %v", err)
	}
	if tx.Type != domain.TransactionTypeExpense {
		t.Errorf("Expected expense, got %s", tx.Type)
	}
	if tx.AmountCents != sub.AmountCents {
		t.Errorf("Expected subscription amount %d, got %d", sub.AmountCents, tx.AmountCents)
	}
	if tx.SubscriptionID == nil || *tx.SubscriptionID != sub.ID {
		t.Error("Expected transaction linked to subscription")
	}

	if _, err := svc.PayOccurrence(sub.ID, occ, nil); err != domain.ErrOccurrenceAlreadyPaid {
		t.Errorf("Expected ErrOccurrenceAlreadyPaid on second payment, got %v", err)
	}

	// A different occurrence date is still payable.
	if _, err := svc.PayOccurrence(sub.ID, day(2025, time.April, 15), nil); err != nil {
		t.Errorf("Expected next occurrence to be payable, got %v", err)
	}
}

func TestPayOccurrence_UnknownSubscription(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	if _, err := svc.PayOccurrence(uuid.New(), day(2025, time.March, 15), nil); err != domain.ErrSubscriptionNotFound {
		t.Errorf("Expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestUpdateTransaction_PartialPatch(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	tx, err := svc.CreateTransaction(CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 1000,
		Name:        "Lunch",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newAmount := int64(1250)
	updated, err := svc.UpdateTransaction(tx.ID, domain.TransactionPatch{AmountCents: &newAmount})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.AmountCents != 1250 {
		t.Errorf("Expected 1250, got %d", updated.AmountCents)
	}
	if updated.Name != "Lunch" {
		t.Errorf("Expected untouched name, got %q", updated.Name)
	}
}

func TestUpdateTransaction_ClearCategory(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	cat := domain.DefaultCategories[0].ID
	tx, err := svc.CreateTransaction(CreateTransactionInput{
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 10),
		AmountCents: 1000,
		Name:        "Lunch",
		CategoryID:  &cat,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.UpdateTransaction(tx.ID, domain.TransactionPatch{ClearCategory: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CategoryID != nil {
		t.Error("Expected category cleared")
	}
}

func TestDeleteTransaction_ReopensOccurrence(t *testing.T) {
	svc, _, subscriptionRepo, _, _ := newTransactionService()

	sub := &domain.Subscription{
		ID:              uuid.New(),
		Name:            "Netflix",
		AmountCents:     1599,
		Cadence:         domain.CadenceMonthly,
		NextBillingDate: day(2025, time.March, 15),
		Active:          true,
	}
	subscriptionRepo.Create(sub)

	occ := day(2025, time.March, 15)
	tx, err := svc.PayOccurrence(sub.ID, occ, nil)
	if err != nil {
		t.Fatalf("Payment failed: %v", err)
	}

	if err := svc.DeleteTransaction(tx.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := svc.PayOccurrence(sub.ID, occ, nil); err != nil {
		t.Errorf("Expected occurrence payable again after delete, got %v", err)
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc, _, _, _, _ := newTransactionService()

	if err := svc.DeleteTransaction(uuid.New()); err != domain.ErrTransactionNotFound {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}
