package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/currency"
	"github.com/hance08/tally/internal/logger"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
	"github.com/hance08/tally/migrations"
)

// fakeConverter prices pairs from a fixed table, ignoring the date.
type fakeConverter struct {
	rates     map[string]decimal.Decimal
	reference string
}

func (f *fakeConverter) Convert(_ context.Context, amount decimal.Decimal, from, to string, _ time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if r, ok := f.rates[from+to]; ok {
		return amount.Mul(r), nil
	}
	if r, ok := f.rates[to+from]; ok {
		return amount.Div(r), nil
	}
	return decimal.Zero, fmt.Errorf("%s/%s: %w", from, to, currency.ErrRateNotFound)
}

func (f *fakeConverter) ConvertToReference(ctx context.Context, amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return f.Convert(ctx, amount, from, f.reference, time.Now())
}

type harness struct {
	ctx   context.Context
	store *store.Store
	svc   *Service
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "tally.db"), migrations.FS, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	conv := &fakeConverter{
		rates:     map[string]decimal.Decimal{"USDTRY": decimal.RequireFromString("32.0")},
		reference: "TRY",
	}
	return &harness{
		ctx:   context.Background(),
		store: s,
		svc:   NewService(s, conv, nil, config.NewDefault(), logger.Nop()),
	}
}

func (h *harness) open(t *testing.T, name, accType, cur, opening string) *model.Account {
	t.Helper()
	acc, err := h.svc.Account.OpenAccountWithBalance(h.ctx, model.AccountRequest{
		Name:     name,
		Type:     accType,
		Currency: cur,
	}, decimal.RequireFromString(opening))
	require.NoError(t, err)
	return acc
}

func (h *harness) openCard(t *testing.T, name, limit string) *model.Account {
	t.Helper()
	acc, err := h.svc.Account.CreateAccount(h.ctx, model.AccountRequest{
		Name:        name,
		Type:        constants.AccountCreditCard,
		Currency:    "USD",
		CreditLimit: decimal.NewNullDecimal(decimal.RequireFromString(limit)),
	})
	require.NoError(t, err)
	return acc
}

func (h *harness) balance(t *testing.T, id int64) string {
	t.Helper()
	acc, err := h.store.GetAccountByID(h.ctx, id)
	require.NoError(t, err)
	return acc.Balance.StringFixed(2)
}

func (h *harness) create(t *testing.T, req model.TransactionRequest) *model.Transaction {
	t.Helper()
	tx, err := h.svc.Transaction.Create(h.ctx, req)
	require.NoError(t, err)
	return tx
}

func ptr(id int64) *int64 { return &id }

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
