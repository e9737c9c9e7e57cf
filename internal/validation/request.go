package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateRequest checks the field-level rules of a transaction request and
// returns the first failure. Rules that depend on the transaction type are
// enforced by the type's creator.
func ValidateRequest(req model.TransactionRequest) error {
	if err := check(req); err != nil {
		return err
	}
	if !req.Amount.Equal(req.Amount.Round(constants.MoneyScale)) {
		return apperrors.Validation("amount", fmt.Sprintf("must have at most %d decimal places", constants.MoneyScale))
	}
	if req.ExchangeRate.Valid && !req.ExchangeRate.Decimal.IsPositive() {
		return apperrors.Validation("exchange_rate", "must be greater than 0")
	}
	return nil
}

func ValidateAccountRequest(req model.AccountRequest) error {
	if err := check(req); err != nil {
		return err
	}
	if req.CreditLimit.Valid && req.CreditLimit.Decimal.IsNegative() {
		return apperrors.Validation("credit_limit", "must not be negative")
	}
	return nil
}

func check(obj any) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Validation("request", err.Error())
	}
	fe := fieldErrs[0]
	return apperrors.Validation(snakeCase(fe.Field()), getErrorMsg(fe))
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "len":
		return "must be exactly " + err.Param() + " characters"
	case "uppercase":
		return "must be upper case"
	case "max":
		return "is too long"
	case "oneof":
		return "must be one of: " + err.Param()
	case "gt":
		return "must be greater than " + err.Param()
	case "gte":
		return "must be greater than or equal to " + err.Param()
	case "lte":
		return "must be at most " + err.Param()
	default:
		return "is invalid"
	}
}

// snakeCase turns a Go field name such as SourceAccountID into source_account_id.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
