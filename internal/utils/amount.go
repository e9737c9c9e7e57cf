package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/constants"
)

// FormatAmount renders a money value with two decimals and its currency code.
func FormatAmount(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(constants.MoneyScale)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// ParseAmount accepts "150", "150.5", "1,250.50" and returns the value.
// More than two decimals is an error, not a silent truncation.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(amountStr), ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", amountStr)
	}
	if d.Exponent() < -constants.MoneyScale && !d.Equal(d.Round(constants.MoneyScale)) {
		return decimal.Zero, fmt.Errorf("amount %s has more than %d decimal places", amountStr, constants.MoneyScale)
	}
	return d.Round(constants.MoneyScale), nil
}

// ParseOptionalAmount is ParseAmount that maps an empty string to an
// invalid NullDecimal.
func ParseOptionalAmount(amountStr string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
