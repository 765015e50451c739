package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/davembu/centavo/centavo-backend/internal/util"
)

type Cadence string

const (
	CadenceMonthly Cadence = "monthly"
	CadenceWeekly  Cadence = "weekly"
	CadenceYearly  Cadence = "yearly"
	CadenceCustom  Cadence = "custom"
)

// Valid reports whether c is a known cadence.
func (c Cadence) Valid() bool {
	switch c {
	case CadenceMonthly, CadenceWeekly, CadenceYearly, CadenceCustom:
		return true
	}
	return false
}

// Subscription is a recurring obligation definition, not an occurrence.
// Occurrences are derived on demand; only a Transaction records that an
// occurrence was paid.
type Subscription struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	AmountCents     int64      `json:"amountCents"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty"`
	Cadence         Cadence    `json:"cadence"`
	NextBillingDate time.Time  `json:"nextBillingDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Active          bool       `json:"active"`
	Autopay         bool       `json:"autopay"`
	CustomDays      *int       `json:"customDays,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Occurrence is one projected billing event of a subscription on a specific
// date. Dates carry calendar-date semantics, no time of day.
type Occurrence struct {
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amountCents"`
}

// maxOccurrenceIterations caps the forward walk so a misconfigured cadence
// cannot loop unbounded.
const maxOccurrenceIterations = 100

// OccurrencesIn computes every billing occurrence of the subscription that
// falls inside the given month, ordered by ascending date.
//
// Starting from NextBillingDate, the anchor is stepped backward one cadence
// period at a time until it lands on or before the first day of the month,
// then stepped forward, emitting each date within the month. Generation stops
// past the month end, past EndDate, or at the iteration cap. An inactive
// subscription, or one whose EndDate precedes the month, yields nothing.
//
// The result is a pure function of (subscription, month): no current-date
// logic is involved.
func (s *Subscription) OccurrencesIn(month MonthKey) []Occurrence {
	if !s.Active {
		return nil
	}

	monthStart := month.Start()
	monthEnd := month.End()

	if s.EndDate != nil && s.EndDate.Before(monthStart) {
		return nil
	}

	step := s.stepFunc()
	if step == nil {
		// Custom cadence without customDays: the step size is unknown, so the
		// anchor itself is the only candidate.
		var occs []Occurrence
		if !s.NextBillingDate.Before(monthStart) && !s.NextBillingDate.After(monthEnd) {
			occs = append(occs, Occurrence{Date: s.NextBillingDate, AmountCents: s.AmountCents})
		}
		return occs
	}

	// Walk the anchor back to the first candidate on or before the month start.
	current := s.NextBillingDate
	for current.After(monthStart) {
		current = step(current, -1)
	}

	var occs []Occurrence
	for i := 0; !current.After(monthEnd) && i < maxOccurrenceIterations; i++ {
		if s.EndDate != nil && current.After(*s.EndDate) {
			break
		}
		if !current.Before(monthStart) {
			occs = append(occs, Occurrence{Date: current, AmountCents: s.AmountCents})
		}
		current = step(current, 1)
	}
	return occs
}

// stepFunc returns the cadence step, moving a date by n periods. Monthly and
// yearly steps clamp to the last day of shorter months (Jan 31 -> Feb 28).
// Returns nil for a custom cadence with no usable customDays.
func (s *Subscription) stepFunc() func(time.Time, int) time.Time {
	switch s.Cadence {
	case CadenceMonthly:
		return util.AddMonthsClamped
	case CadenceWeekly:
		return func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) }
	case CadenceYearly:
		return util.AddYearsClamped
	case CadenceCustom:
		if s.CustomDays == nil || *s.CustomDays < 1 {
			return nil
		}
		days := *s.CustomDays
		return func(t time.Time, n int) time.Time { return t.AddDate(0, 0, days*n) }
	}
	return nil
}

type SubscriptionRepository interface {
	Create(sub *Subscription) (*Subscription, error)
	GetByID(id uuid.UUID) (*Subscription, error)
	GetAll(activeOnly bool) ([]*Subscription, error)
	Update(sub *Subscription) (*Subscription, error)
	Delete(id uuid.UUID) error
}
