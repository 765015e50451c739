package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type RuleScope string

const (
	RuleScopeExpense RuleScope = "expense"
	RuleScopeIncome  RuleScope = "income"
	RuleScopeBoth    RuleScope = "both"
)

// Valid reports whether s is a known rule scope.
func (s RuleScope) Valid() bool {
	return s == RuleScopeExpense || s == RuleScopeIncome || s == RuleScopeBoth
}

// Rule is an auto-categorization directive: transactions whose name contains
// MatchText (case-insensitively) are assigned CategoryID when created without
// an explicit category.
type Rule struct {
	ID         uuid.UUID `json:"id"`
	MatchText  string    `json:"matchText"`
	CategoryID uuid.UUID `json:"categoryId"`
	AppliesTo  RuleScope `json:"appliesTo"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Matches reports whether the rule applies to a transaction with the given
// name and type.
func (r *Rule) Matches(name string, txType TransactionType) bool {
	if r.AppliesTo != RuleScopeBoth && string(r.AppliesTo) != string(txType) {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(r.MatchText))
}

// MatchCategory returns the category of the first matching rule in storage
// order, or nil when no rule matches. Match order is insertion order, not
// specificity.
func MatchCategory(rules []*Rule, name string, txType TransactionType) *uuid.UUID {
	for _, rule := range rules {
		if rule.Matches(name, txType) {
			id := rule.CategoryID
			return &id
		}
	}
	return nil
}

type RuleRepository interface {
	Create(rule *Rule) (*Rule, error)
	GetByID(id uuid.UUID) (*Rule, error)
	// GetAll returns rules in insertion order.
	GetAll() ([]*Rule, error)
	Update(rule *Rule) (*Rule, error)
	Delete(id uuid.UUID) error
}
