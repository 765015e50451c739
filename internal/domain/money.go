package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var centsPerUnit = decimal.NewFromInt(100)

// ParseAmountCents converts a user-typed decimal amount ("12.34") into
// integer cents, rounding half-up on sub-cent input. A malformed or negative
// amount fails with ErrInvalidAmount rather than silently becoming zero.
func ParseAmountCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}
	return d.Mul(centsPerUnit).Round(0).IntPart(), nil
}

// FormatCents renders integer cents as a plain decimal string ("12.34").
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsPerUnit).StringFixed(2)
}

// UsagePercent returns spent/budget as a percentage. Zero budget yields zero
// so empty categories never divide by zero.
func UsagePercent(spentCents, budgetCents int64) float64 {
	if budgetCents <= 0 {
		return 0
	}
	pct, _ := decimal.NewFromInt(spentCents).
		Div(decimal.NewFromInt(budgetCents)).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return pct
}

// ClampPercent bounds a percentage to [0,100] for display.
func ClampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func (s *MonthSummary) String() string {
	return fmt.Sprintf("income=%s expenses=%s net=%s safe=%s",
		FormatCents(s.IncomeCents), FormatCents(s.ExpensesCents),
		FormatCents(s.NetCents), FormatCents(s.SafeToSpendCents))
}
