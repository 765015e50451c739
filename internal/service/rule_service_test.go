package service

import (
	"testing"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/testutil"
)

func newRuleService() (*RuleService, *testutil.MockRuleRepository) {
	ruleRepo := testutil.NewMockRuleRepository()
	categoryRepo := testutil.NewMockCategoryRepositoryWithDefaults()
	return NewRuleService(ruleRepo, categoryRepo), ruleRepo
}

func TestCreateRule(t *testing.T) {
	svc, _ := newRuleService()

	cat := domain.DefaultCategories[0].ID
	rule, err := svc.CreateRule("  spotify  ", cat, domain.RuleScopeExpense)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rule.MatchText != "spotify" {
		t.Errorf("Expected trimmed match text, got %q", rule.MatchText)
	}

	if _, err := svc.CreateRule("  ", cat, domain.RuleScopeExpense); err != domain.ErrNameRequired {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.CreateRule("uber", cat, "sometimes"); err != domain.ErrInvalidAppliesTo {
		t.Errorf("Expected ErrInvalidAppliesTo, got %v", err)
	}
	if _, err := svc.CreateRule("uber", uuid.New(), domain.RuleScopeExpense); err != domain.ErrCategoryNotFound {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestListRules_PreservesOrder(t *testing.T) {
	svc, _ := newRuleService()

	cat := domain.DefaultCategories[0].ID
	first, _ := svc.CreateRule("spotify", cat, domain.RuleScopeExpense)
	second, _ := svc.CreateRule("spo", cat, domain.RuleScopeExpense)

	rules, err := svc.ListRules()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rules))
	}
	if rules[0].ID != first.ID || rules[1].ID != second.ID {
		t.Error("Expected insertion order preserved")
	}
}

func TestSuggestCategory(t *testing.T) {
	svc, _ := newRuleService()

	music := domain.DefaultCategories[4].ID
	if _, err := svc.CreateRule("spotify", music, domain.RuleScopeExpense); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svc.SuggestCategory("Spotify Premium", domain.TransactionTypeExpense)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil || *got != music {
		t.Error("Expected the music category suggested")
	}

	got, err = svc.SuggestCategory("Rent", domain.TransactionTypeExpense)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no suggestion, got %s", *got)
	}
}

func TestDeleteRule(t *testing.T) {
	svc, _ := newRuleService()

	cat := domain.DefaultCategories[0].ID
	rule, _ := svc.CreateRule("uber", cat, domain.RuleScopeExpense)

	if err := svc.DeleteRule(rule.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.DeleteRule(rule.ID); err != domain.ErrRuleNotFound {
		t.Errorf("Expected ErrRuleNotFound, got %v", err)
	}
}
