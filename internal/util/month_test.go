package util

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain forward", day(2025, time.January, 15), 1, day(2025, time.February, 15)},
		{"clamp to february", day(2025, time.January, 31), 1, day(2025, time.February, 28)},
		{"clamp to leap february", day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{"clamp sticks after clamping", day(2025, time.February, 28), 1, day(2025, time.March, 28)},
		{"backward", day(2025, time.March, 15), -1, day(2025, time.February, 15)},
		{"backward clamp", day(2025, time.March, 31), -1, day(2025, time.February, 28)},
		{"year rollover", day(2024, time.December, 10), 1, day(2025, time.January, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonthsClamped(tt.in, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonthsClamped(%s, %d) = %s, want %s",
					tt.in.Format("2006-01-02"), tt.n, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestAddYearsClamped(t *testing.T) {
	got := AddYearsClamped(day(2024, time.February, 29), 1)
	if !got.Equal(day(2025, time.February, 28)) {
		t.Errorf("Expected 2025-02-28, got %s", got.Format("2006-01-02"))
	}

	got = AddYearsClamped(day(2023, time.June, 15), 2)
	if !got.Equal(day(2025, time.June, 15)) {
		t.Errorf("Expected 2025-06-15, got %s", got.Format("2006-01-02"))
	}
}

func TestLastDayOfMonth(t *testing.T) {
	if got := LastDayOfMonth(2025, time.February); got != 28 {
		t.Errorf("Expected 28, got %d", got)
	}
	if got := LastDayOfMonth(2024, time.February); got != 29 {
		t.Errorf("Expected 29, got %d", got)
	}
	if got := LastDayOfMonth(2025, time.April); got != 30 {
		t.Errorf("Expected 30, got %d", got)
	}
}
