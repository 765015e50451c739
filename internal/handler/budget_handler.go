package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/service"
	"github.com/davembu/centavo/centavo-backend/internal/websocket"
)

// BudgetHandler handles month budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
	publisher     websocket.EventPublisher
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, publisher websocket.EventPublisher) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, publisher: publisher}
}

// BudgetRequest represents the upsert-budget request body. Amounts are
// decimal strings keyed by category ID.
type BudgetRequest struct {
	CategoryBudgets map[string]string `json:"categoryBudgets"`
}

// BudgetResponse represents a month budget in API responses
type BudgetResponse struct {
	MonthKey        string           `json:"monthKey"`
	CategoryBudgets map[string]int64 `json:"categoryBudgets"`
	TotalCents      int64            `json:"totalCents"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}

func toBudgetResponse(budget *domain.MonthBudget) BudgetResponse {
	budgets := make(map[string]int64, len(budget.CategoryBudgets))
	for catID, cents := range budget.CategoryBudgets {
		budgets[catID.String()] = cents
	}
	return BudgetResponse{
		MonthKey:        string(budget.MonthKey),
		CategoryBudgets: budgets,
		TotalCents:      budget.TotalCents(),
		CreatedAt:       budget.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       budget.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// GetBudget handles GET /api/v1/budgets/:monthKey
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	budget, err := h.budgetService.GetBudget(month)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// UpsertBudget handles PUT /api/v1/budgets/:monthKey. Existing category
// amounts not present in the request are kept.
func (h *BudgetHandler) UpsertBudget(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	budgets := make(map[uuid.UUID]int64, len(req.CategoryBudgets))
	for rawID, rawAmount := range req.CategoryBudgets {
		catID, err := uuid.Parse(rawID)
		if err != nil {
			return NewValidationError(c, "Invalid category ID in budgets", nil)
		}
		cents, err := domain.ParseAmountCents(rawAmount)
		if err != nil {
			return NewValidationError(c, "Invalid budget amount", []ValidationError{{Field: rawID, Message: "must be a non-negative decimal"}})
		}
		budgets[catID] = cents
	}

	budget, err := h.budgetService.UpsertBudget(month, budgets)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toBudgetResponse(budget)
	h.publisher.Publish(websocket.BudgetUpdated(resp))
	return c.JSON(http.StatusOK, resp)
}

// CopyPreviousBudget handles POST /api/v1/budgets/:monthKey/copy-previous
func (h *BudgetHandler) CopyPreviousBudget(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	budget, err := h.budgetService.CopyPreviousBudget(month)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := toBudgetResponse(budget)
	h.publisher.Publish(websocket.BudgetUpdated(resp))
	return c.JSON(http.StatusOK, resp)
}
