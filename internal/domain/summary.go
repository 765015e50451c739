package domain

import "github.com/google/uuid"

// CategorySpending is one row of the spend-vs-budget breakdown.
// PercentageUsed is clamped to [0,100] for display; the over-budget
// condition is carried separately so "amount over" remains recoverable after
// the clamp.
type CategorySpending struct {
	CategoryID     uuid.UUID `json:"categoryId"`
	CategoryName   string    `json:"categoryName"`
	BudgetCents    int64     `json:"budgetCents"`
	SpentCents     int64     `json:"spentCents"`
	RemainingCents int64     `json:"remainingCents"`
	PercentageUsed float64   `json:"percentageUsed"`
	OverBudget     bool      `json:"overBudget"`
	OverspentCents int64     `json:"overspentCents,omitempty"`
}

// MonthSummary is the derived financial summary for one month. It is computed
// on demand and never persisted.
type MonthSummary struct {
	IncomeCents      int64              `json:"incomeCents"`
	ExpensesCents    int64              `json:"expensesCents"`
	NetCents         int64              `json:"netCents"`
	SafeToSpendCents int64              `json:"safeToSpendCents"`
	CategorySpending []CategorySpending `json:"categorySpending"`
}

// Forecast extrapolates the month's totals to its end from the daily average
// so far, plus un-materialized subscription occurrences still to come.
type Forecast struct {
	DaysElapsed            int   `json:"daysElapsed"`
	DaysRemaining          int   `json:"daysRemaining"`
	ProjectedIncomeCents   int64 `json:"projectedIncomeCents"`
	ProjectedExpensesCents int64 `json:"projectedExpensesCents"`
	ProjectedNetCents      int64 `json:"projectedNetCents"`
	ProjectedSafeCents     int64 `json:"projectedSafeToSpendCents"`
	UpcomingSubsCents      int64 `json:"upcomingSubscriptionsCents"`
}

type AlertSeverity string

const (
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

// SpendingAlert flags a category approaching or exceeding its budget. The
// percentage here is the raw, unclamped usage ratio.
type SpendingAlert struct {
	CategoryID   uuid.UUID     `json:"categoryId"`
	CategoryName string        `json:"categoryName"`
	Percentage   float64       `json:"percentage"`
	Severity     AlertSeverity `json:"severity"`
}

// DefaultAlertThreshold is the usage percentage above which a warning alert
// is raised.
const DefaultAlertThreshold = 80.0

// Insights highlights where the month's money went.
type Insights struct {
	TopCategories       []CategorySpending `json:"topCategories"`
	LargestTransactions []*Transaction     `json:"largestTransactions"`
}

// MonthData bundles everything the UI needs to render one month.
type MonthData struct {
	MonthKey      MonthKey        `json:"monthKey"`
	Transactions  []*Transaction  `json:"transactions"`
	Subscriptions []*Subscription `json:"subscriptions"`
	Categories    []*Category     `json:"categories"`
	Budget        *MonthBudget    `json:"budget"`
	Summary       *MonthSummary   `json:"summary"`
}
