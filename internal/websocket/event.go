package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypePaid    EventType = "paid"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTransaction  EntityType = "transaction"
	EntityTypeSubscription EntityType = "subscription"
	EntityTypeBudget       EntityType = "budget"
	EntityTypeRule         EntityType = "rule"
	EntityTypeCategory     EntityType = "category"
)

// Event is the message pushed to connected clients whenever an entity
// changes, so the UI can reload and recompute the month it is showing.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // Combined type e.g. "transaction.created"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionCreated creates a transaction.created event
func TransactionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTransaction, payload)
}

// TransactionUpdated creates a transaction.updated event
func TransactionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeTransaction, payload)
}

// TransactionDeleted creates a transaction.deleted event
func TransactionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeTransaction, payload)
}

// SubscriptionPaid creates a subscription.paid event when an occurrence is
// materialized.
func SubscriptionPaid(payload interface{}) Event {
	return NewEvent(EventTypePaid, EntityTypeSubscription, payload)
}

// SubscriptionCreated creates a subscription.created event
func SubscriptionCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeSubscription, payload)
}

// SubscriptionUpdated creates a subscription.updated event
func SubscriptionUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSubscription, payload)
}

// SubscriptionDeleted creates a subscription.deleted event
func SubscriptionDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeSubscription, payload)
}

// BudgetUpdated creates a budget.updated event
func BudgetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeBudget, payload)
}

// RuleCreated creates a rule.created event
func RuleCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeRule, payload)
}

// RuleUpdated creates a rule.updated event
func RuleUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeRule, payload)
}

// RuleDeleted creates a rule.deleted event
func RuleDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeRule, payload)
}

// CategoryCreated creates a category.created event
func CategoryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCategory, payload)
}

// CategoryUpdated creates a category.updated event
func CategoryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCategory, payload)
}
