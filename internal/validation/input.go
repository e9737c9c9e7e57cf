package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// AccountLookup is the slice of the store the prompt validators need
type AccountLookup interface {
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
}

// AccountValidator handles account validation logic for interactive prompts
type AccountValidator struct {
	store AccountLookup
}

func NewAccountValidator(store AccountLookup) *AccountValidator {
	return &AccountValidator{store: store}
}

// ValidateAccountName validates a basic account name (without checking existence)
func ValidateAccountName(val string) error {
	name := strings.TrimSpace(val)

	if name == "" {
		return fmt.Errorf("account name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("account name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateNewAccountName checks the name format and that no live account uses it
func (v *AccountValidator) ValidateNewAccountName(val string) error {
	if err := ValidateAccountName(val); err != nil {
		return err
	}

	_, err := v.store.GetAccountByName(context.Background(), strings.TrimSpace(val))
	switch {
	case err == nil:
		return fmt.Errorf("account '%s' already exists", strings.TrimSpace(val))
	case errors.Is(err, store.ErrRecordNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check account: %w", err)
	}
}

// ValidateCurrency validates a currency code format. Empty means "use the default".
func ValidateCurrency(val string) error {
	currency := strings.TrimSpace(strings.ToUpper(val))

	if currency == "" {
		return nil
	}
	if len(currency) != 3 {
		return fmt.Errorf("currency code must be 3 characters (e.g. USD)")
	}
	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must contain only letters")
		}
	}
	return nil
}

// ValidateAmount accepts a strictly positive decimal with at most two places
func ValidateAmount(val string) error {
	input := strings.TrimSpace(val)
	if input == "" {
		return fmt.Errorf("amount can't be empty")
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return fmt.Errorf("invalid number format")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	if amount.Exponent() < -constants.MoneyScale && !amount.Equal(amount.Round(constants.MoneyScale)) {
		return fmt.Errorf("amount can have at most %d decimal places", constants.MoneyScale)
	}
	return nil
}

// ValidateOptionalAmount is ValidateAmount for fields that may be left blank or zero
func ValidateOptionalAmount(val string) error {
	input := strings.TrimSpace(val)
	if input == "" || input == "0" {
		return nil
	}
	return ValidateAmount(input)
}

func ValidateDate(val string) error {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(val)); err != nil {
		return fmt.Errorf("date must look like %s", constants.DateFormat)
	}
	return nil
}

func ValidateAccountType(val string) error {
	if !constants.IsAccountType(val) {
		return fmt.Errorf("account type must be one of: %s", strings.Join(constants.AccountTypes, ", "))
	}
	return nil
}
