package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one ledger row. Amount is always positive; the direction of
// its balance effect is derived from Type and the account types involved.
// SourceAmount and DestinationAmount hold the unsigned amount posted to each
// leg in that account's currency, recorded when the effect is applied.
type Transaction struct {
	ID                    int64
	Reference             string
	OwnerID               int64
	CategoryID            *int64
	Type                  string
	Amount                decimal.Decimal
	Currency              string
	ExchangeRate          decimal.NullDecimal
	Date                  time.Time
	SourceAccountID       *int64
	DestinationAccountID  *int64
	SourceAmount          decimal.NullDecimal
	DestinationAmount     decimal.NullDecimal
	Description           string
	Installments          int
	RemainingInstallments int
	MonthlyAmount         decimal.NullDecimal
	IsSubscription        bool
	SubscriptionPeriod    string
	NextPaymentDate       *time.Time
	ParentTransactionID   *int64
	Status                string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

// Snapshot captures the fields that determine the balance effect of t.
func (t *Transaction) Snapshot() TransactionSnapshot {
	return TransactionSnapshot{
		ID:                   t.ID,
		Type:                 t.Type,
		SourceAccountID:      copyID(t.SourceAccountID),
		DestinationAccountID: copyID(t.DestinationAccountID),
		Amount:               t.Amount,
		Currency:             t.Currency,
		ExchangeRate:         t.ExchangeRate,
		SourceAmount:         t.SourceAmount,
		DestinationAmount:    t.DestinationAmount,
		Date:                 t.Date,
		IsSubscription:       t.IsSubscription,
	}
}

// Clone returns a deep copy of t.
func (t *Transaction) Clone() *Transaction {
	c := *t
	c.CategoryID = copyID(t.CategoryID)
	c.SourceAccountID = copyID(t.SourceAccountID)
	c.DestinationAccountID = copyID(t.DestinationAccountID)
	c.ParentTransactionID = copyID(t.ParentTransactionID)
	if t.NextPaymentDate != nil {
		d := *t.NextPaymentDate
		c.NextPaymentDate = &d
	}
	if t.DeletedAt != nil {
		d := *t.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

// TransactionSnapshot is an immutable copy of a transaction's balance-relevant
// fields, taken before an update or delete mutates the row.
type TransactionSnapshot struct {
	ID                   int64
	Type                 string
	SourceAccountID      *int64
	DestinationAccountID *int64
	Amount               decimal.Decimal
	Currency             string
	ExchangeRate         decimal.NullDecimal
	SourceAmount         decimal.NullDecimal
	DestinationAmount    decimal.NullDecimal
	Date                 time.Time
	IsSubscription       bool
}

// TransactionRequest is the validated input for creating or editing a
// transaction. Fields not used by Type are ignored.
type TransactionRequest struct {
	Reference            string              `validate:"omitempty,max=64"`
	OwnerID              int64               `validate:"gte=0"`
	CategoryID           *int64              `validate:"omitempty,gt=0"`
	Type                 string              `validate:"required"`
	Amount               decimal.Decimal     `validate:"gt=0"`
	Currency             string              `validate:"required,len=3,uppercase"`
	ExchangeRate         decimal.NullDecimal `validate:"-"`
	Date                 time.Time
	SourceAccountID      *int64 `validate:"omitempty,gt=0"`
	DestinationAccountID *int64 `validate:"omitempty,gt=0"`
	Description          string `validate:"max=500"`
	Installments         int    `validate:"gte=0,lte=360"`
	SubscriptionPeriod   string `validate:"omitempty,max=20"`
	Status               string `validate:"omitempty,oneof=pending completed"`
}

// TransactionFilter narrows a transaction listing. Zero values match everything.
type TransactionFilter struct {
	AccountID int64
	Type      string
	Limit     int
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
