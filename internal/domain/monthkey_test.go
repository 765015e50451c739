package domain

import (
	"testing"
	"time"
)

func TestParseMonthKey(t *testing.T) {
	key, err := ParseMonthKey("2025-03")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if key != "2025-03" {
		t.Errorf("Expected 2025-03, got %s", key)
	}

	for _, bad := range []string{"", "2025", "2025-13", "2025-3", "March 2025", "2025-03-01"} {
		if _, err := ParseMonthKey(bad); err != ErrInvalidMonthKey {
			t.Errorf("Expected ErrInvalidMonthKey for %q, got %v", bad, err)
		}
	}
}

func TestMonthKeyBounds(t *testing.T) {
	key := MonthKey("2025-02")
	if !key.Start().Equal(date(2025, time.February, 1)) {
		t.Errorf("Expected start 2025-02-01, got %s", key.Start())
	}
	if !key.End().Equal(date(2025, time.February, 28)) {
		t.Errorf("Expected end 2025-02-28, got %s", key.End())
	}
	if key.Days() != 28 {
		t.Errorf("Expected 28 days, got %d", key.Days())
	}

	leap := MonthKey("2024-02")
	if leap.Days() != 29 {
		t.Errorf("Expected 29 days in 2024-02, got %d", leap.Days())
	}
}

func TestMonthKeyPreviousNextRollOver(t *testing.T) {
	if prev := MonthKey("2025-01").Previous(); prev != "2024-12" {
		t.Errorf("Expected 2024-12, got %s", prev)
	}
	if next := MonthKey("2024-12").Next(); next != "2025-01" {
		t.Errorf("Expected 2025-01, got %s", next)
	}
}

func TestMonthKeyLabel(t *testing.T) {
	if label := MonthKey("2025-03").Label(); label != "March 2025" {
		t.Errorf("Expected 'March 2025', got %q", label)
	}
}

func TestMonthKeyContains(t *testing.T) {
	key := MonthKey("2025-03")
	if !key.Contains(date(2025, time.March, 1)) {
		t.Error("Expected month start to be contained")
	}
	if !key.Contains(date(2025, time.March, 31)) {
		t.Error("Expected month end to be contained")
	}
	if key.Contains(date(2025, time.April, 1)) {
		t.Error("Expected next month start to be outside")
	}
	if key.Contains(date(2025, time.February, 28)) {
		t.Error("Expected previous month end to be outside")
	}
}

func TestMonthKeyDateRange(t *testing.T) {
	start, end := MonthKey("2025-04").DateRange()
	if start != "2025-04-01" {
		t.Errorf("Expected start 2025-04-01, got %s", start)
	}
	if end != "2025-04-30" {
		t.Errorf("Expected end 2025-04-30, got %s", end)
	}
}

func TestMonthKeyFor(t *testing.T) {
	if key := MonthKeyFor(date(2025, time.July, 31)); key != "2025-07" {
		t.Errorf("Expected 2025-07, got %s", key)
	}
}
