package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/currency"
	"github.com/hance08/tally/internal/logger"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
	"github.com/hance08/tally/migrations"
)

// newRatedHarness prices conversions from the exchange_rates table, so a rate
// set later for an earlier date changes what a fresh conversion returns.
func newRatedHarness(t *testing.T) *harness {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "tally.db"), migrations.FS, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	rates := currency.NewRateTable(currency.NewStoreSource(s), "TRY")
	h := &harness{
		ctx:   context.Background(),
		store: s,
		svc:   NewService(s, rates, nil, config.NewDefault(), logger.Nop()),
	}
	h.setRate(t, "32", day(2025, time.October, 1))
	return h
}

func (h *harness) setRate(t *testing.T, rate string, asOf time.Time) {
	t.Helper()
	_, err := h.svc.Rate.SetRate(h.ctx, "USD", "TRY", amount(rate), asOf)
	require.NoError(t, err)
}

func transferRequest(from, to *model.Account, amt string) model.TransactionRequest {
	return model.TransactionRequest{
		Type:                 constants.TypeTransfer,
		Amount:               amount(amt),
		Currency:             "USD",
		Date:                 day(2025, time.October, 19),
		SourceAccountID:      ptr(from.ID),
		DestinationAccountID: ptr(to.ID),
	}
}

func TestPostedAmountsAreRecorded(t *testing.T) {
	h := newRatedHarness(t)
	a := h.open(t, "A", constants.AccountBankAccount, "USD", "500.00")
	c := h.open(t, "C", constants.AccountBankAccount, "TRY", "200.00")

	tx := h.create(t, transferRequest(a, c, "100.00"))

	require.True(t, tx.SourceAmount.Valid)
	require.True(t, tx.DestinationAmount.Valid)
	assert.Equal(t, "100.00", tx.SourceAmount.Decimal.StringFixed(2))
	assert.Equal(t, "3200.00", tx.DestinationAmount.Decimal.StringFixed(2))
	assert.Equal(t, "3400.00", h.balance(t, c.ID))
}

func TestDeleteAfterRateChangeRestoresBalances(t *testing.T) {
	h := newRatedHarness(t)
	a := h.open(t, "A", constants.AccountBankAccount, "USD", "500.00")
	c := h.open(t, "C", constants.AccountBankAccount, "TRY", "200.00")

	tx := h.create(t, transferRequest(a, c, "100.00"))
	require.Equal(t, "3400.00", h.balance(t, c.ID))

	// a rate between the old one and the transaction date now wins the lookup
	h.setRate(t, "35", day(2025, time.October, 15))

	require.NoError(t, h.svc.Transaction.Delete(h.ctx, tx))
	assert.Equal(t, "500.00", h.balance(t, a.ID))
	assert.Equal(t, "200.00", h.balance(t, c.ID))
}

func TestUpdateAfterRateChangeRevertsPostedAmount(t *testing.T) {
	h := newRatedHarness(t)
	a := h.open(t, "A", constants.AccountBankAccount, "USD", "500.00")
	c := h.open(t, "C", constants.AccountBankAccount, "TRY", "200.00")

	tx := h.create(t, transferRequest(a, c, "100.00"))
	h.setRate(t, "35", day(2025, time.October, 15))

	req := RequestFrom(tx)
	req.Amount = amount("50.00")
	updated, err := h.svc.Transaction.Update(h.ctx, tx, req)
	require.NoError(t, err)

	// the old 3200.00 comes off, the new amount goes on at today's rate for the date
	assert.Equal(t, "450.00", h.balance(t, a.ID))
	assert.Equal(t, "1950.00", h.balance(t, c.ID))
	assert.Equal(t, "1750.00", updated.DestinationAmount.Decimal.StringFixed(2))

	h.setRate(t, "40", day(2025, time.October, 18))
	require.NoError(t, h.svc.Transaction.Delete(h.ctx, updated))
	assert.Equal(t, "500.00", h.balance(t, a.ID))
	assert.Equal(t, "200.00", h.balance(t, c.ID))
}

func TestFixedExchangeRateOverridesTable(t *testing.T) {
	h := newRatedHarness(t)
	a := h.open(t, "A", constants.AccountBankAccount, "USD", "500.00")
	c := h.open(t, "C", constants.AccountBankAccount, "TRY", "200.00")

	req := transferRequest(a, c, "100.00")
	req.ExchangeRate = decimal.NewNullDecimal(amount("30.125"))
	tx := h.create(t, req)

	assert.Equal(t, "400.00", h.balance(t, a.ID))
	assert.Equal(t, "3212.50", h.balance(t, c.ID))

	h.setRate(t, "35", day(2025, time.October, 15))
	require.NoError(t, h.svc.Transaction.Delete(h.ctx, tx))
	assert.Equal(t, "500.00", h.balance(t, a.ID))
	assert.Equal(t, "200.00", h.balance(t, c.ID))
}
