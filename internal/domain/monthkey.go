package domain

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month in YYYY-MM form. It is the grouping
// unit for budgets and summaries.
type MonthKey string

// ParseMonthKey validates and returns a MonthKey from its string form.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", ErrInvalidMonthKey
	}
	return MonthKey(t.Format("2006-01")), nil
}

// MonthKeyFor returns the MonthKey containing the given time.
func MonthKeyFor(t time.Time) MonthKey {
	return MonthKey(t.UTC().Format("2006-01"))
}

// CurrentMonthKey returns the MonthKey for the current month.
func CurrentMonthKey() MonthKey {
	return MonthKeyFor(time.Now())
}

// Start returns the first day of the month at midnight UTC.
func (k MonthKey) Start() time.Time {
	t, _ := time.Parse("2006-01", string(k))
	return t
}

// End returns the last day of the month at midnight UTC.
func (k MonthKey) End() time.Time {
	return k.Start().AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (k MonthKey) Days() int {
	return k.End().Day()
}

// Previous returns the MonthKey for the preceding month, rolling over year
// boundaries (2025-01 -> 2024-12).
func (k MonthKey) Previous() MonthKey {
	return MonthKeyFor(k.Start().AddDate(0, -1, 0))
}

// Next returns the MonthKey for the following month.
func (k MonthKey) Next() MonthKey {
	return MonthKeyFor(k.Start().AddDate(0, 1, 0))
}

// Label returns a human-readable form such as "March 2025".
func (k MonthKey) Label() string {
	return k.Start().Format("January 2006")
}

// Contains reports whether the given date falls inside the month.
func (k MonthKey) Contains(t time.Time) bool {
	return MonthKeyFor(t) == k
}

func (k MonthKey) String() string {
	return string(k)
}

// DateRange returns the inclusive ISO date bounds of the month, used for
// range lookups against the transactions table.
func (k MonthKey) DateRange() (string, string) {
	return fmt.Sprintf("%s-01", k), k.End().Format("2006-01-02")
}
