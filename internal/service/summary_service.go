package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// SummaryService derives month summaries, forecasts, insights and spending
// alerts from the month's entities. All derivation is recomputed from scratch
// on every call; nothing is carried between invocations.
type SummaryService struct {
	transactionRepo  domain.TransactionRepository
	subscriptionRepo domain.SubscriptionRepository
	budgetRepo       domain.BudgetRepository
	categoryRepo     domain.CategoryRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(
	transactionRepo domain.TransactionRepository,
	subscriptionRepo domain.SubscriptionRepository,
	budgetRepo domain.BudgetRepository,
	categoryRepo domain.CategoryRepository,
) *SummaryService {
	return &SummaryService{
		transactionRepo:  transactionRepo,
		subscriptionRepo: subscriptionRepo,
		budgetRepo:       budgetRepo,
		categoryRepo:     categoryRepo,
	}
}

// Summarize loads the month's entities and computes its summary. A failed
// read propagates as an error; it never degrades to a zeroed summary.
func (s *SummaryService) Summarize(month domain.MonthKey) (*domain.MonthSummary, error) {
	transactions, subscriptions, budget, categories, err := s.loadMonth(month)
	if err != nil {
		return nil, err
	}
	return CalculateMonthSummary(transactions, subscriptions, budget, categories, month), nil
}

func (s *SummaryService) loadMonth(month domain.MonthKey) ([]*domain.Transaction, []*domain.Subscription, *domain.MonthBudget, []*domain.Category, error) {
	transactions, err := s.transactionRepo.GetByMonth(month)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load transactions: %w", err)
	}
	subscriptions, err := s.subscriptionRepo.GetAll(false)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load subscriptions: %w", err)
	}
	budget, err := s.budgetRepo.GetByMonth(month)
	if err != nil && err != domain.ErrBudgetNotFound {
		return nil, nil, nil, nil, fmt.Errorf("load budget: %w", err)
	}
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load categories: %w", err)
	}
	return transactions, subscriptions, budget, categories, nil
}

// CalculateMonthSummary computes a month's financial summary from its
// transactions, all subscriptions, the month's budget (may be nil) and the
// category set. Pure function; repeated calls with the same inputs yield the
// same result.
//
// Un-materialized subscription occurrences count as expenses before any
// transaction records payment. The materialization check is per occurrence,
// both for the expense total and for category spend, so a month with several
// occurrences of one subscription where only some are paid is counted
// exactly once per occurrence.
func CalculateMonthSummary(
	transactions []*domain.Transaction,
	subscriptions []*domain.Subscription,
	budget *domain.MonthBudget,
	categories []*domain.Category,
	month domain.MonthKey,
) *domain.MonthSummary {
	var incomeCents, expensesCents int64
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			incomeCents += tx.AmountCents
		case domain.TransactionTypeExpense:
			expensesCents += tx.AmountCents
		}
	}

	type catTotals struct {
		spent  int64
		budget int64
	}
	totals := make(map[uuid.UUID]*catTotals)
	if budget != nil {
		for catID, budgetCents := range budget.CategoryBudgets {
			totals[catID] = &catTotals{budget: budgetCents}
		}
	}

	for _, tx := range transactions {
		if tx.Type != domain.TransactionTypeExpense || tx.CategoryID == nil {
			continue
		}
		entry, ok := totals[*tx.CategoryID]
		if !ok {
			entry = &catTotals{}
			totals[*tx.CategoryID] = entry
		}
		entry.spent += tx.AmountCents
	}

	for _, sub := range subscriptions {
		for _, occ := range sub.OccurrencesIn(month) {
			if occurrenceMaterialized(transactions, sub.ID, occ.Date) {
				continue
			}
			expensesCents += occ.AmountCents
			if sub.CategoryID == nil {
				continue
			}
			entry, ok := totals[*sub.CategoryID]
			if !ok {
				entry = &catTotals{}
				totals[*sub.CategoryID] = entry
			}
			entry.spent += occ.AmountCents
		}
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	spending := make([]domain.CategorySpending, 0, len(totals))
	var totalBudgetCents, totalSpentCents int64
	for catID, entry := range totals {
		name, ok := names[catID]
		if !ok {
			name = "Uncategorized"
		}
		raw := domain.UsagePercent(entry.spent, entry.budget)
		row := domain.CategorySpending{
			CategoryID:     catID,
			CategoryName:   name,
			BudgetCents:    entry.budget,
			SpentCents:     entry.spent,
			RemainingCents: entry.budget - entry.spent,
			PercentageUsed: domain.ClampPercent(raw),
		}
		if entry.budget > 0 && entry.spent > entry.budget {
			row.OverBudget = true
			row.OverspentCents = entry.spent - entry.budget
		}
		spending = append(spending, row)
		totalBudgetCents += entry.budget
		totalSpentCents += entry.spent
	}
	sort.Slice(spending, func(i, j int) bool {
		if spending[i].CategoryName != spending[j].CategoryName {
			return spending[i].CategoryName < spending[j].CategoryName
		}
		return spending[i].CategoryID.String() < spending[j].CategoryID.String()
	})

	safeToSpendCents := totalBudgetCents - totalSpentCents
	if safeToSpendCents < 0 {
		safeToSpendCents = 0
	}

	return &domain.MonthSummary{
		IncomeCents:      incomeCents,
		ExpensesCents:    expensesCents,
		NetCents:         incomeCents - expensesCents,
		SafeToSpendCents: safeToSpendCents,
		CategorySpending: spending,
	}
}

func occurrenceMaterialized(transactions []*domain.Transaction, subscriptionID uuid.UUID, date time.Time) bool {
	for _, tx := range transactions {
		if tx.Materializes(subscriptionID, date) {
			return true
		}
	}
	return false
}

// Forecast loads the month and projects its end-of-month totals. The
// reference time is explicit so the projection stays reproducible.
func (s *SummaryService) Forecast(month domain.MonthKey, now time.Time) (*domain.Forecast, error) {
	transactions, subscriptions, budget, categories, err := s.loadMonth(month)
	if err != nil {
		return nil, err
	}
	summary := CalculateMonthSummary(transactions, subscriptions, budget, categories, month)
	return CalculateForecast(summary, transactions, subscriptions, month, now), nil
}

// CalculateForecast extrapolates the month's income and expenses to the end
// of the month from the daily average so far, then adds un-materialized
// subscription occurrences that are still in the future.
func CalculateForecast(
	summary *domain.MonthSummary,
	transactions []*domain.Transaction,
	subscriptions []*domain.Subscription,
	month domain.MonthKey,
	now time.Time,
) *domain.Forecast {
	daysInMonth := month.Days()
	today := now.UTC()

	daysElapsed := 0
	switch {
	case today.Before(month.Start()):
		daysElapsed = 0
	case today.After(month.End()):
		daysElapsed = daysInMonth
	default:
		daysElapsed = today.Day()
	}
	daysRemaining := daysInMonth - daysElapsed

	var projectedExpensesRemaining, projectedIncomeRemaining int64
	if daysElapsed > 0 {
		projectedExpensesRemaining = summary.ExpensesCents * int64(daysRemaining) / int64(daysElapsed)
		if summary.IncomeCents > 0 {
			projectedIncomeRemaining = summary.IncomeCents * int64(daysRemaining) / int64(daysElapsed)
		}
	}

	var upcomingCents int64
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, sub := range subscriptions {
		for _, occ := range sub.OccurrencesIn(month) {
			if occ.Date.Before(todayDate) {
				continue
			}
			if !occurrenceMaterialized(transactions, sub.ID, occ.Date) {
				upcomingCents += occ.AmountCents
			}
		}
	}

	projectedExpenses := summary.ExpensesCents + projectedExpensesRemaining + upcomingCents
	projectedIncome := summary.IncomeCents + projectedIncomeRemaining

	var totalBudgetCents int64
	for _, row := range summary.CategorySpending {
		totalBudgetCents += row.BudgetCents
	}

	return &domain.Forecast{
		DaysElapsed:            daysElapsed,
		DaysRemaining:          daysRemaining,
		ProjectedIncomeCents:   projectedIncome,
		ProjectedExpensesCents: projectedExpenses,
		ProjectedNetCents:      projectedIncome - projectedExpenses,
		ProjectedSafeCents:     totalBudgetCents - projectedExpenses,
		UpcomingSubsCents:      upcomingCents,
	}
}

// Alerts returns the categories at or above the threshold percentage of
// their budget, worst first. Severity is critical at or past 100%. The
// percentage compared is the raw ratio, not the display-clamped one.
func Alerts(summary *domain.MonthSummary, thresholdPercent float64) []domain.SpendingAlert {
	if thresholdPercent <= 0 {
		thresholdPercent = domain.DefaultAlertThreshold
	}

	var alerts []domain.SpendingAlert
	for _, row := range summary.CategorySpending {
		if row.BudgetCents <= 0 {
			continue
		}
		raw := domain.UsagePercent(row.SpentCents, row.BudgetCents)
		if raw < thresholdPercent {
			continue
		}
		severity := domain.AlertSeverityWarning
		if raw >= 100 {
			severity = domain.AlertSeverityCritical
		}
		alerts = append(alerts, domain.SpendingAlert{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Percentage:   raw,
			Severity:     severity,
		})
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Percentage > alerts[j].Percentage })
	return alerts
}

// Insights loads the month and highlights its top spending categories and
// largest transactions.
func (s *SummaryService) Insights(month domain.MonthKey) (*domain.Insights, error) {
	transactions, subscriptions, budget, categories, err := s.loadMonth(month)
	if err != nil {
		return nil, err
	}
	summary := CalculateMonthSummary(transactions, subscriptions, budget, categories, month)
	return CalculateInsights(summary, transactions), nil
}

// CalculateInsights picks the top 3 categories by spend and the 5 largest
// expense transactions of the month.
func CalculateInsights(summary *domain.MonthSummary, transactions []*domain.Transaction) *domain.Insights {
	top := make([]domain.CategorySpending, 0, len(summary.CategorySpending))
	for _, row := range summary.CategorySpending {
		if row.SpentCents > 0 {
			top = append(top, row)
		}
	}
	sort.Slice(top, func(i, j int) bool { return top[i].SpentCents > top[j].SpentCents })
	if len(top) > 3 {
		top = top[:3]
	}

	largest := make([]*domain.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Type == domain.TransactionTypeExpense {
			largest = append(largest, tx)
		}
	}
	sort.Slice(largest, func(i, j int) bool { return largest[i].AmountCents > largest[j].AmountCents })
	if len(largest) > 5 {
		largest = largest[:5]
	}

	return &domain.Insights{TopCategories: top, LargestTransactions: largest}
}
