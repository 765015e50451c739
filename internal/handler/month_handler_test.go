package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
	"github.com/davembu/centavo/centavo-backend/internal/service"
	"github.com/davembu/centavo/centavo-backend/internal/testutil"
)

func newMonthHandler() (*MonthHandler, *testutil.MockTransactionRepository, *testutil.MockBudgetRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	subscriptionRepo := testutil.NewMockSubscriptionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepositoryWithDefaults()
	monthService := service.NewMonthService(transactionRepo, subscriptionRepo, budgetRepo, categoryRepo)
	summaryService := service.NewSummaryService(transactionRepo, subscriptionRepo, budgetRepo, categoryRepo)
	return NewMonthHandler(monthService, summaryService), transactionRepo, budgetRepo
}

func TestGetSummary(t *testing.T) {
	e := echo.New()
	handler, transactionRepo, budgetRepo := newMonthHandler()

	food := domain.DefaultCategories[0].ID
	budgetRepo.Upsert("2025-03", map[uuid.UUID]int64{food: 10000})
	transactionRepo.Create(&domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 5),
		AmountCents: 3000,
		Name:        "Groceries",
		CategoryID:  &food,
	})

	c, rec := doJSON(e, http.MethodGet, "/api/v1/months/2025-03/summary", "")
	c.SetParamNames("monthKey")
	c.SetParamValues("2025-03")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.ExpensesCents != 3000 {
		t.Errorf("Expected expenses 3000, got %d", response.ExpensesCents)
	}
	if response.SafeToSpendCents != 7000 {
		t.Errorf("Expected safe-to-spend 7000, got %d", response.SafeToSpendCents)
	}
	if len(response.CategorySpending) != 1 {
		t.Fatalf("Expected 1 spending row, got %d", len(response.CategorySpending))
	}
	if response.CategorySpending[0].PercentageUsed != 30.0 {
		t.Errorf("Expected 30%% used, got %v", response.CategorySpending[0].PercentageUsed)
	}
}

func TestGetSummary_InvalidMonthKey(t *testing.T) {
	e := echo.New()
	handler, _, _ := newMonthHandler()

	c, rec := doJSON(e, http.MethodGet, "/api/v1/months/march/summary", "")
	c.SetParamNames("monthKey")
	c.SetParamValues("march")

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetForecast_PinnedDate(t *testing.T) {
	e := echo.New()
	handler, transactionRepo, _ := newMonthHandler()

	transactionRepo.Create(&domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeExpense,
		Date:        day(2025, time.March, 5),
		AmountCents: 30000,
		Name:        "Groceries",
	})

	c, rec := doJSON(e, http.MethodGet, "/api/v1/months/2025-03/forecast?date=2025-03-10", "")
	c.SetParamNames("monthKey")
	c.SetParamValues("2025-03")

	if err := handler.GetForecast(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ForecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.DaysElapsed != 10 || response.DaysRemaining != 21 {
		t.Errorf("Expected 10/21 days, got %d/%d", response.DaysElapsed, response.DaysRemaining)
	}
	want := int64(30000 + 30000*21/10)
	if response.ProjectedExpensesCents != want {
		t.Errorf("Expected projected expenses %d, got %d", want, response.ProjectedExpensesCents)
	}
}

func TestGetMonth_IncludesEverything(t *testing.T) {
	e := echo.New()
	handler, transactionRepo, budgetRepo := newMonthHandler()

	food := domain.DefaultCategories[0].ID
	budgetRepo.Upsert("2025-03", map[uuid.UUID]int64{food: 10000})
	transactionRepo.Create(&domain.Transaction{
		ID:          uuid.New(),
		Type:        domain.TransactionTypeIncome,
		Date:        day(2025, time.March, 1),
		AmountCents: 400000,
		Name:        "Salary",
	})

	c, rec := doJSON(e, http.MethodGet, "/api/v1/months/2025-03", "")
	c.SetParamNames("monthKey")
	c.SetParamValues("2025-03")

	if err := handler.GetMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response MonthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Label != "March 2025" {
		t.Errorf("Expected label 'March 2025', got %q", response.Label)
	}
	if len(response.Transactions) != 1 {
		t.Errorf("Expected 1 transaction, got %d", len(response.Transactions))
	}
	if len(response.Categories) != 8 {
		t.Errorf("Expected 8 default categories, got %d", len(response.Categories))
	}
	if response.Budget == nil {
		t.Fatal("Expected a budget in the month payload")
	}
	if response.Summary.IncomeCents != 400000 {
		t.Errorf("Expected income 400000, got %d", response.Summary.IncomeCents)
	}
}
