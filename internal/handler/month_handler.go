package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/service"
)

// MonthHandler serves the derived month views: the full month snapshot, its
// summary, the end-of-month forecast, spending alerts and insights.
type MonthHandler struct {
	monthService   *service.MonthService
	summaryService *service.SummaryService
}

// NewMonthHandler creates a new MonthHandler
func NewMonthHandler(monthService *service.MonthService, summaryService *service.SummaryService) *MonthHandler {
	return &MonthHandler{monthService: monthService, summaryService: summaryService}
}

// CategorySpendingResponse represents one category row in a month summary
type CategorySpendingResponse struct {
	CategoryID     string  `json:"categoryId"`
	CategoryName   string  `json:"categoryName"`
	BudgetCents    int64   `json:"budgetCents"`
	SpentCents     int64   `json:"spentCents"`
	RemainingCents int64   `json:"remainingCents"`
	PercentageUsed float64 `json:"percentageUsed"`
	OverBudget     bool    `json:"overBudget"`
	OverspentCents int64   `json:"overspentCents"`
}

// SummaryResponse represents a month summary in API responses
type SummaryResponse struct {
	MonthKey         string                     `json:"monthKey"`
	IncomeCents      int64                      `json:"incomeCents"`
	ExpensesCents    int64                      `json:"expensesCents"`
	NetCents         int64                      `json:"netCents"`
	SafeToSpendCents int64                      `json:"safeToSpendCents"`
	CategorySpending []CategorySpendingResponse `json:"categorySpending"`
}

func toSummaryResponse(month domain.MonthKey, summary *domain.MonthSummary) SummaryResponse {
	spending := make([]CategorySpendingResponse, 0, len(summary.CategorySpending))
	for _, row := range summary.CategorySpending {
		spending = append(spending, CategorySpendingResponse{
			CategoryID:     row.CategoryID.String(),
			CategoryName:   row.CategoryName,
			BudgetCents:    row.BudgetCents,
			SpentCents:     row.SpentCents,
			RemainingCents: row.RemainingCents,
			PercentageUsed: row.PercentageUsed,
			OverBudget:     row.OverBudget,
			OverspentCents: row.OverspentCents,
		})
	}
	return SummaryResponse{
		MonthKey:         string(month),
		IncomeCents:      summary.IncomeCents,
		ExpensesCents:    summary.ExpensesCents,
		NetCents:         summary.NetCents,
		SafeToSpendCents: summary.SafeToSpendCents,
		CategorySpending: spending,
	}
}

// MonthResponse is the full per-month snapshot: entities plus the derived
// summary, in one payload.
type MonthResponse struct {
	MonthKey      string                 `json:"monthKey"`
	Label         string                 `json:"label"`
	Transactions  []TransactionResponse  `json:"transactions"`
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
	Categories    []CategoryResponse     `json:"categories"`
	Budget        *BudgetResponse        `json:"budget"`
	Summary       SummaryResponse        `json:"summary"`
}

// GetMonth handles GET /api/v1/months/:monthKey
func (h *MonthHandler) GetMonth(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	data, err := h.monthService.LoadMonth(month)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := MonthResponse{
		MonthKey:      string(month),
		Label:         month.Label(),
		Transactions:  make([]TransactionResponse, 0, len(data.Transactions)),
		Subscriptions: make([]SubscriptionResponse, 0, len(data.Subscriptions)),
		Categories:    make([]CategoryResponse, 0, len(data.Categories)),
		Summary:       toSummaryResponse(month, data.Summary),
	}
	for _, tx := range data.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}
	for _, sub := range data.Subscriptions {
		resp.Subscriptions = append(resp.Subscriptions, toSubscriptionResponse(sub))
	}
	for _, cat := range data.Categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(cat))
	}
	if data.Budget != nil {
		budget := toBudgetResponse(data.Budget)
		resp.Budget = &budget
	}
	return c.JSON(http.StatusOK, resp)
}

// GetSummary handles GET /api/v1/months/:monthKey/summary
func (h *MonthHandler) GetSummary(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	summary, err := h.summaryService.Summarize(month)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(http.StatusOK, toSummaryResponse(month, summary))
}

// ForecastResponse represents an end-of-month projection
type ForecastResponse struct {
	MonthKey               string `json:"monthKey"`
	DaysElapsed            int    `json:"daysElapsed"`
	DaysRemaining          int    `json:"daysRemaining"`
	ProjectedIncomeCents   int64  `json:"projectedIncomeCents"`
	ProjectedExpensesCents int64  `json:"projectedExpensesCents"`
	ProjectedNetCents      int64  `json:"projectedNetCents"`
	ProjectedSafeCents     int64  `json:"projectedSafeCents"`
	UpcomingSubsCents      int64  `json:"upcomingSubsCents"`
}

// GetForecast handles GET /api/v1/months/:monthKey/forecast?date=YYYY-MM-DD.
// The date parameter pins the reference day; it defaults to today.
func (h *MonthHandler) GetForecast(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	now := time.Now().UTC()
	if raw := c.QueryParam("date"); raw != "" {
		now, err = time.Parse(dateLayout, raw)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{{Field: "date", Message: "must be YYYY-MM-DD"}})
		}
	}

	forecast, err := h.summaryService.Forecast(month, now)
	if err != nil {
		return handleDomainError(c, err)
	}

	return c.JSON(http.StatusOK, ForecastResponse{
		MonthKey:               string(month),
		DaysElapsed:            forecast.DaysElapsed,
		DaysRemaining:          forecast.DaysRemaining,
		ProjectedIncomeCents:   forecast.ProjectedIncomeCents,
		ProjectedExpensesCents: forecast.ProjectedExpensesCents,
		ProjectedNetCents:      forecast.ProjectedNetCents,
		ProjectedSafeCents:     forecast.ProjectedSafeCents,
		UpcomingSubsCents:      forecast.UpcomingSubsCents,
	})
}

// AlertResponse represents one over-threshold category
type AlertResponse struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Percentage   float64 `json:"percentage"`
	Severity     string  `json:"severity"`
}

// GetAlerts handles GET /api/v1/months/:monthKey/alerts?threshold=80
func (h *MonthHandler) GetAlerts(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	threshold := domain.DefaultAlertThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil || threshold <= 0 {
			return NewValidationError(c, "Invalid threshold", []ValidationError{{Field: "threshold", Message: "must be a positive number"}})
		}
	}

	summary, err := h.summaryService.Summarize(month)
	if err != nil {
		return handleDomainError(c, err)
	}

	alerts := service.Alerts(summary, threshold)
	resp := make([]AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		resp = append(resp, AlertResponse{
			CategoryID:   alert.CategoryID.String(),
			CategoryName: alert.CategoryName,
			Percentage:   alert.Percentage,
			Severity:     string(alert.Severity),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// InsightsResponse highlights where the month's money went
type InsightsResponse struct {
	MonthKey            string                     `json:"monthKey"`
	TopCategories       []CategorySpendingResponse `json:"topCategories"`
	LargestTransactions []TransactionResponse      `json:"largestTransactions"`
}

// GetInsights handles GET /api/v1/months/:monthKey/insights
func (h *MonthHandler) GetInsights(c echo.Context) error {
	month, err := domain.ParseMonthKey(c.Param("monthKey"))
	if err != nil {
		return NewValidationError(c, "Invalid month key", []ValidationError{{Field: "monthKey", Message: "must be YYYY-MM"}})
	}

	insights, err := h.summaryService.Insights(month)
	if err != nil {
		return handleDomainError(c, err)
	}

	resp := InsightsResponse{
		MonthKey:            string(month),
		TopCategories:       make([]CategorySpendingResponse, 0, len(insights.TopCategories)),
		LargestTransactions: make([]TransactionResponse, 0, len(insights.LargestTransactions)),
	}
	for _, row := range insights.TopCategories {
		resp.TopCategories = append(resp.TopCategories, CategorySpendingResponse{
			CategoryID:     row.CategoryID.String(),
			CategoryName:   row.CategoryName,
			BudgetCents:    row.BudgetCents,
			SpentCents:     row.SpentCents,
			RemainingCents: row.RemainingCents,
			PercentageUsed: row.PercentageUsed,
			OverBudget:     row.OverBudget,
			OverspentCents: row.OverspentCents,
		})
	}
	for _, tx := range insights.LargestTransactions {
		resp.LargestTransactions = append(resp.LargestTransactions, toTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, resp)
}
