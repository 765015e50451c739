package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// RuleService handles auto-categorization rule business logic
type RuleService struct {
	ruleRepo     domain.RuleRepository
	categoryRepo domain.CategoryRepository
}

// NewRuleService creates a new RuleService
func NewRuleService(ruleRepo domain.RuleRepository, categoryRepo domain.CategoryRepository) *RuleService {
	return &RuleService{
		ruleRepo:     ruleRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateRule creates a new auto-categorization rule.
func (s *RuleService) CreateRule(matchText string, categoryID uuid.UUID, appliesTo domain.RuleScope) (*domain.Rule, error) {
	matchText = strings.TrimSpace(matchText)
	if matchText == "" {
		return nil, domain.ErrNameRequired
	}
	if !appliesTo.Valid() {
		return nil, domain.ErrInvalidAppliesTo
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	return s.ruleRepo.Create(&domain.Rule{
		ID:         uuid.New(),
		MatchText:  matchText,
		CategoryID: categoryID,
		AppliesTo:  appliesTo,
	})
}

// ListRules returns all rules in match order.
func (s *RuleService) ListRules() ([]*domain.Rule, error) {
	return s.ruleRepo.GetAll()
}

// UpdateRule replaces a rule's definition.
func (s *RuleService) UpdateRule(id uuid.UUID, matchText string, categoryID uuid.UUID, appliesTo domain.RuleScope) (*domain.Rule, error) {
	existing, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	matchText = strings.TrimSpace(matchText)
	if matchText == "" {
		return nil, domain.ErrNameRequired
	}
	if !appliesTo.Valid() {
		return nil, domain.ErrInvalidAppliesTo
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	existing.MatchText = matchText
	existing.CategoryID = categoryID
	existing.AppliesTo = appliesTo
	return s.ruleRepo.Update(existing)
}

// DeleteRule removes a rule.
func (s *RuleService) DeleteRule(id uuid.UUID) error {
	if _, err := s.ruleRepo.GetByID(id); err != nil {
		return err
	}
	return s.ruleRepo.Delete(id)
}

// SuggestCategory applies the rule set to a prospective transaction and
// returns the matched category, or nil. The caller persists the result.
func (s *RuleService) SuggestCategory(name string, txType domain.TransactionType) (*uuid.UUID, error) {
	rules, err := s.ruleRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return domain.MatchCategory(rules, name, txType), nil
}
