package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
)

func TestOpenAccountWithBalance(t *testing.T) {
	h := newHarness(t)

	acc := h.open(t, "Wallet", constants.AccountCash, "", "42.50")
	assert.Equal(t, "USD", acc.Currency)
	assert.Equal(t, "42.50", acc.Balance.StringFixed(2))

	txs, err := h.svc.Transaction.List(h.ctx, model.TransactionFilter{AccountID: acc.ID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, constants.TypeIncome, txs[0].Type)
	assert.Equal(t, "Opening balance", txs[0].Description)
}

func TestCreateAccountValidation(t *testing.T) {
	h := newHarness(t)
	h.open(t, "Checking", constants.AccountBankAccount, "USD", "0")

	tests := []struct {
		name  string
		req   model.AccountRequest
		field string
	}{
		{"duplicate name", model.AccountRequest{Name: "Checking", Type: constants.AccountBankAccount}, "name"},
		{"unknown type", model.AccountRequest{Name: "Odd", Type: "piggy_bank"}, "type"},
		{"bad currency", model.AccountRequest{Name: "Odd", Type: constants.AccountCash, Currency: "DOLLARS"}, "currency"},
		{"limit on non-card", model.AccountRequest{
			Name: "Odd", Type: constants.AccountBankAccount,
			CreditLimit: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		}, "credit_limit"},
		{"negative limit", model.AccountRequest{
			Name: "Odd", Type: constants.AccountCreditCard,
			CreditLimit: decimal.NewNullDecimal(decimal.NewFromInt(-1)),
		}, "credit_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Account.CreateAccount(h.ctx, tt.req)
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestDeleteAccountGuard(t *testing.T) {
	h := newHarness(t)
	used := h.open(t, "Used", constants.AccountBankAccount, "USD", "10")
	idle := h.open(t, "Idle", constants.AccountCash, "USD", "0")

	err := h.svc.Account.DeleteAccount(h.ctx, used.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	_, err = h.svc.Account.GetAccount(h.ctx, used.ID)
	assert.NoError(t, err)

	require.NoError(t, h.svc.Account.DeleteAccount(h.ctx, idle.ID))
	_, err = h.svc.Account.GetAccount(h.ctx, idle.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = h.svc.Account.DeleteAccount(h.ctx, idle.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeactivateAccount(t *testing.T) {
	h := newHarness(t)
	acc := h.open(t, "Old", constants.AccountBankAccount, "USD", "5")

	require.NoError(t, h.svc.Account.DeactivateAccount(h.ctx, acc.ID))

	active, err := h.svc.Account.ListAccounts(h.ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := h.svc.Account.ListAccounts(h.ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, constants.AccountStatusInactive, all[0].Status)

	assert.ErrorIs(t, h.svc.Account.DeactivateAccount(h.ctx, 999), apperrors.ErrNotFound)
}

func TestGetAvailableBalance(t *testing.T) {
	h := newHarness(t)
	acc := h.open(t, "Dollars", constants.AccountBankAccount, "USD", "10.00")

	bal, err := h.svc.Account.GetAvailableBalance(h.ctx, acc.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "10.00", bal.StringFixed(2))

	bal, err = h.svc.Account.GetAvailableBalance(h.ctx, acc.ID, "try")
	require.NoError(t, err)
	assert.Equal(t, "320.00", bal.StringFixed(2))

	_, err = h.svc.Account.GetAvailableBalance(h.ctx, acc.ID, "EUR")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetAccountByName(t *testing.T) {
	h := newHarness(t)
	acc := h.open(t, "Savings", constants.AccountBankAccount, "USD", "0")

	got, err := h.svc.Account.GetAccountByName(h.ctx, "Savings")
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = h.svc.Account.GetAccountByName(h.ctx, "Nope")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
