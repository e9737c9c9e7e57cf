package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/constants"
)

// Account is a funds or debt account. For credit cards Balance is the
// outstanding debt; for every other type it is the available funds.
type Account struct {
	ID          int64
	OwnerID     int64
	Name        string
	Type        string
	Currency    string
	Balance     decimal.Decimal
	CreditLimit decimal.NullDecimal
	Status      string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func (a *Account) IsCreditCard() bool {
	return a.Type == constants.AccountCreditCard
}

func (a *Account) IsActive() bool {
	return a.Status == constants.AccountStatusActive && a.DeletedAt == nil
}

// AccountRequest carries the fields needed to open an account.
type AccountRequest struct {
	OwnerID     int64               `validate:"gte=0"`
	Name        string              `validate:"required,max=100"`
	Type        string              `validate:"required,oneof=bank_account credit_card crypto_wallet virtual_pos cash debt"`
	Currency    string              `validate:"required,len=3,uppercase"`
	CreditLimit decimal.NullDecimal `validate:"-"`
}

// CurrencyOf returns the currency of the first of ids found in accounts.
func CurrencyOf(accounts []*Account, ids ...*int64) string {
	for _, id := range ids {
		if id == nil {
			continue
		}
		for _, acc := range accounts {
			if acc.ID == *id {
				return acc.Currency
			}
		}
	}
	return ""
}
