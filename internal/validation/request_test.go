package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/model"
)

func validRequest() model.TransactionRequest {
	src := int64(1)
	return model.TransactionRequest{
		Type:            "expense",
		Amount:          decimal.RequireFromString("300.00"),
		Currency:        "USD",
		Date:            time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		SourceAccountID: &src,
	}
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(validRequest()))

	tests := []struct {
		name   string
		mutate func(*model.TransactionRequest)
		field  string
	}{
		{"missing type", func(r *model.TransactionRequest) { r.Type = "" }, "type"},
		{"zero amount", func(r *model.TransactionRequest) { r.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(r *model.TransactionRequest) { r.Amount = decimal.NewFromInt(-5) }, "amount"},
		{"short currency", func(r *model.TransactionRequest) { r.Currency = "US" }, "currency"},
		{"lower-case currency", func(r *model.TransactionRequest) { r.Currency = "usd" }, "currency"},
		{"bad source id", func(r *model.TransactionRequest) { id := int64(0); r.SourceAccountID = &id }, "source_account_id"},
		{"too many installments", func(r *model.TransactionRequest) { r.Installments = 400 }, "installments"},
		{"unknown status", func(r *model.TransactionRequest) { r.Status = "void" }, "status"},
		{"sub-cent amount", func(r *model.TransactionRequest) { r.Amount = decimal.RequireFromString("0.004") }, "amount"},
		{"three decimals", func(r *model.TransactionRequest) { r.Amount = decimal.RequireFromString("12.345") }, "amount"},
		{"zero exchange rate", func(r *model.TransactionRequest) { r.ExchangeRate = decimal.NewNullDecimal(decimal.Zero) }, "exchange_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := ValidateRequest(req)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateRequestAcceptsTrailingZeros(t *testing.T) {
	req := validRequest()
	req.Amount = decimal.RequireFromString("12.3000")
	assert.NoError(t, ValidateRequest(req))

	req.ExchangeRate = decimal.NewNullDecimal(decimal.RequireFromString("32.1275"))
	assert.NoError(t, ValidateRequest(req))
}

func TestValidateRequestLeavesUnknownTypesToDispatch(t *testing.T) {
	req := validRequest()
	req.Type = "debt_payment"
	assert.NoError(t, ValidateRequest(req))
}

func TestValidateAccountRequest(t *testing.T) {
	req := model.AccountRequest{Name: "Visa", Type: "credit_card", Currency: "USD"}
	require.NoError(t, ValidateAccountRequest(req))

	req.Type = "savings"
	assert.ErrorIs(t, ValidateAccountRequest(req), apperrors.ErrValidation)

	req.Type = "credit_card"
	req.CreditLimit = decimal.NewNullDecimal(decimal.NewFromInt(-1))
	err := ValidateAccountRequest(req)
	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "credit_limit", ve.Field)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "source_account_id", snakeCase("SourceAccountID"))
	assert.Equal(t, "amount", snakeCase("Amount"))
	assert.Equal(t, "owner_id", snakeCase("OwnerID"))
}
