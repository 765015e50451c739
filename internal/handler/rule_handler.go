package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/service"
	"github.com/davembu/centavo/centavo-backend/internal/websocket"
)

// RuleHandler handles auto-categorization rule HTTP requests
type RuleHandler struct {
	ruleService *service.RuleService
	publisher   websocket.EventPublisher
}

// NewRuleHandler creates a new RuleHandler
func NewRuleHandler(ruleService *service.RuleService, publisher websocket.EventPublisher) *RuleHandler {
	return &RuleHandler{ruleService: ruleService, publisher: publisher}
}

// RuleRequest represents the create/update rule request body
type RuleRequest struct {
	MatchText  string `json:"matchText"`
	CategoryID string `json:"categoryId"`
	AppliesTo  string `json:"appliesTo"`
}

// RuleResponse represents a rule in API responses
type RuleResponse struct {
	ID         string `json:"id"`
	MatchText  string `json:"matchText"`
	CategoryID string `json:"categoryId"`
	AppliesTo  string `json:"appliesTo"`
}

func toRuleResponse(rule *domain.Rule) RuleResponse {
	return RuleResponse{
		ID:         rule.ID.String(),
		MatchText:  rule.MatchText,
		CategoryID: rule.CategoryID.String(),
		AppliesTo:  string(rule.AppliesTo),
	}
}

// GetRules handles GET /api/v1/rules. Rules are returned in match order:
// the first listed rule wins when several match.
func (h *RuleHandler) GetRules(c echo.Context) error {
	rules, err := h.ruleService.ListRules()
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		resp = append(resp, toRuleResponse(rule))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateRule handles POST /api/v1/rules
func (h *RuleHandler) CreateRule(c echo.Context) error {
	var req RuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return NewValidationError(c, "Invalid categoryId", nil)
	}

	rule, err := h.ruleService.CreateRule(req.MatchText, categoryID, domain.RuleScope(req.AppliesTo))
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toRuleResponse(rule)
	h.publisher.Publish(websocket.RuleCreated(resp))
	return c.JSON(http.StatusCreated, resp)
}

// UpdateRule handles PUT /api/v1/rules/:id
func (h *RuleHandler) UpdateRule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	var req RuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return NewValidationError(c, "Invalid categoryId", nil)
	}

	rule, err := h.ruleService.UpdateRule(id, req.MatchText, categoryID, domain.RuleScope(req.AppliesTo))
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toRuleResponse(rule)
	h.publisher.Publish(websocket.RuleUpdated(resp))
	return c.JSON(http.StatusOK, resp)
}

// DeleteRule handles DELETE /api/v1/rules/:id
func (h *RuleHandler) DeleteRule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	if err := h.ruleService.DeleteRule(id); err != nil {
		return handleDomainError(c, err)
	}

	h.publisher.Publish(websocket.RuleDeleted(map[string]string{"id": id.String()}))
	return c.NoContent(http.StatusNoContent)
}

// SuggestCategory handles GET /api/v1/rules/suggest?name=...&type=expense.
// Returns the category a transaction with this name would be filed under,
// or null when no rule matches.
func (h *RuleHandler) SuggestCategory(c echo.Context) error {
	name := c.QueryParam("name")
	txType := domain.TransactionType(c.QueryParam("type"))
	if txType == "" {
		txType = domain.TransactionTypeExpense
	}
	if !txType.Valid() {
		return NewValidationError(c, "Invalid transaction type", []ValidationError{{Field: "type", Message: "must be income or expense"}})
	}

	categoryID, err := h.ruleService.SuggestCategory(name, txType)
	if err != nil {
		return handleDomainError(c, err)
	}

	var resp struct {
		CategoryID *string `json:"categoryId"`
	}
	if categoryID != nil {
		id := categoryID.String()
		resp.CategoryID = &id
	}
	return c.JSON(http.StatusOK, resp)
}
