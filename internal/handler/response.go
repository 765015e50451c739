package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/davembu/centavo/centavo-backend/internal/domain"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation = "https://centavo.app/errors/validation"
	ErrorTypeNotFound   = "https://centavo.app/errors/not-found"
	ErrorTypeConflict   = "https://centavo.app/errors/conflict"
	ErrorTypeInternal   = "https://centavo.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// validationErrors maps domain validation failures to a 400.
var validationErrors = []error{
	domain.ErrNameRequired,
	domain.ErrNameTooLong,
	domain.ErrNotesTooLong,
	domain.ErrInvalidAmount,
	domain.ErrInvalidDate,
	domain.ErrInvalidMonthKey,
	domain.ErrInvalidTransactionType,
	domain.ErrInvalidCadence,
	domain.ErrInvalidCustomDays,
	domain.ErrInvalidAppliesTo,
	domain.ErrIncompleteOccurrence,
}

// notFoundErrors maps domain lookup failures to a 404.
var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrSubscriptionNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrBudgetNotFound,
	domain.ErrRuleNotFound,
}

// handleDomainError translates a service error into the matching problem
// response. Unknown errors are logged and reported as internal; their detail
// is never echoed back.
func handleDomainError(c echo.Context, err error) error {
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			return NewValidationError(c, verr.Error(), nil)
		}
	}
	for _, nferr := range notFoundErrors {
		if errors.Is(err, nferr) {
			return NewNotFoundError(c, nferr.Error())
		}
	}
	if errors.Is(err, domain.ErrOccurrenceAlreadyPaid) {
		return NewConflictError(c, domain.ErrOccurrenceAlreadyPaid.Error())
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled service error")
	return NewInternalError(c, "Internal server error")
}
