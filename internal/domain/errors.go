package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrRuleNotFound         = errors.New("rule not found")

	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrNotesTooLong           = errors.New("notes exceed maximum length")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidMonthKey        = errors.New("invalid month key")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCadence         = errors.New("invalid cadence")
	ErrInvalidCustomDays      = errors.New("custom cadence requires customDays >= 1")
	ErrInvalidAppliesTo       = errors.New("invalid appliesTo value")
	ErrIncompleteOccurrence   = errors.New("subscriptionId and occurrenceDate must be set together")

	// ErrOccurrenceAlreadyPaid is returned when a transaction would materialize a
	// subscription occurrence that already has a transaction recorded for it.
	ErrOccurrenceAlreadyPaid = errors.New("subscription occurrence already paid")
)

// Validation constants
const (
	MaxNameLength  = 255
	MaxNotesLength = 1000
)
