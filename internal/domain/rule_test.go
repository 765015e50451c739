package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestRuleMatches_CaseInsensitiveContains(t *testing.T) {
	rule := &Rule{MatchText: "spotify", CategoryID: uuid.New(), AppliesTo: RuleScopeExpense}

	if !rule.Matches("Spotify Premium", TransactionTypeExpense) {
		t.Error("Expected case-insensitive match")
	}
	if !rule.Matches("SPOTIFY", TransactionTypeExpense) {
		t.Error("Expected upper-case match")
	}
	if rule.Matches("Apple Music", TransactionTypeExpense) {
		t.Error("Expected no match for unrelated name")
	}
}

func TestRuleMatches_ScopeGating(t *testing.T) {
	expense := &Rule{MatchText: "refund", AppliesTo: RuleScopeExpense}
	income := &Rule{MatchText: "refund", AppliesTo: RuleScopeIncome}
	both := &Rule{MatchText: "refund", AppliesTo: RuleScopeBoth}

	if expense.Matches("Store refund", TransactionTypeIncome) {
		t.Error("Expense-scoped rule must not match income")
	}
	if income.Matches("Store refund", TransactionTypeExpense) {
		t.Error("Income-scoped rule must not match expense")
	}
	if !both.Matches("Store refund", TransactionTypeIncome) || !both.Matches("Store refund", TransactionTypeExpense) {
		t.Error("Both-scoped rule must match either type")
	}
}

func TestMatchCategory_FirstMatchWins(t *testing.T) {
	music := uuid.New()
	general := uuid.New()
	rules := []*Rule{
		{MatchText: "spotify", CategoryID: music, AppliesTo: RuleScopeExpense},
		{MatchText: "spo", CategoryID: general, AppliesTo: RuleScopeExpense},
	}

	got := MatchCategory(rules, "Spotify Family", TransactionTypeExpense)
	if got == nil {
		t.Fatal("Expected a match")
	}
	if *got != music {
		t.Errorf("Expected first rule's category %s, got %s", music, *got)
	}

	// Only the broader rule matches this one.
	got = MatchCategory(rules, "Sponsored gym", TransactionTypeExpense)
	if got == nil {
		t.Fatal("Expected a match")
	}
	if *got != general {
		t.Errorf("Expected second rule's category %s, got %s", general, *got)
	}
}

func TestMatchCategory_NoMatch(t *testing.T) {
	rules := []*Rule{
		{MatchText: "uber", CategoryID: uuid.New(), AppliesTo: RuleScopeExpense},
	}
	if got := MatchCategory(rules, "Groceries", TransactionTypeExpense); got != nil {
		t.Errorf("Expected nil, got %s", *got)
	}
	if got := MatchCategory(nil, "Groceries", TransactionTypeExpense); got != nil {
		t.Errorf("Expected nil for empty rule set, got %s", *got)
	}
}
