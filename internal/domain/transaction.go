package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single dated cash movement. Amounts are stored as integer
// cents. If SubscriptionID is set the transaction materializes one billing
// occurrence of that subscription, identified by OccurrenceDate; the pair is
// unique across all transactions.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	Type           TransactionType `json:"type"`
	Date           time.Time       `json:"date"`
	AmountCents    int64           `json:"amountCents"`
	Name           string          `json:"name"`
	CategoryID     *uuid.UUID      `json:"categoryId,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	PaymentMethod  *string         `json:"paymentMethod,omitempty"`
	SubscriptionID *uuid.UUID      `json:"subscriptionId,omitempty"`
	OccurrenceDate *time.Time      `json:"subscriptionOccurrenceDate,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Materializes reports whether the transaction records payment of the given
// subscription occurrence.
func (t *Transaction) Materializes(subscriptionID uuid.UUID, date time.Time) bool {
	return t.SubscriptionID != nil && *t.SubscriptionID == subscriptionID &&
		t.OccurrenceDate != nil && t.OccurrenceDate.Equal(date)
}

// TransactionPatch holds optional field updates for a transaction. Nil fields
// are left unchanged.
type TransactionPatch struct {
	Type          *TransactionType
	Date          *time.Time
	AmountCents   *int64
	Name          *string
	CategoryID    *uuid.UUID
	ClearCategory bool
	Notes         *string
	PaymentMethod *string
}

type TransactionRepository interface {
	Create(tx *Transaction) (*Transaction, error)
	GetByID(id uuid.UUID) (*Transaction, error)
	GetByMonth(month MonthKey) ([]*Transaction, error)
	GetByOccurrence(subscriptionID uuid.UUID, date time.Time) (*Transaction, error)
	Update(tx *Transaction) (*Transaction, error)
	Delete(id uuid.UUID) error
}
