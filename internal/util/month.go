package util

import "time"

// AddMonthsClamped moves t by n calendar months, clamping the day to the last
// day of the target month (Jan 31 + 1 month = Feb 28/29). time.AddDate alone
// would normalize Jan 31 + 1 month into March.
func AddMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())

	// Last day of the target month: day 0 of the month after it.
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// AddYearsClamped moves t by n years, clamping Feb 29 to Feb 28 on
// non-leap years.
func AddYearsClamped(t time.Time, n int) time.Time {
	return AddMonthsClamped(t, 12*n)
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
