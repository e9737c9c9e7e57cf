package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/migrations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "tally.db"), migrations.FS, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createAccount(t *testing.T, s *Store, name, accType, currency string) int64 {
	t.Helper()
	id, err := s.CreateAccount(context.Background(), &model.Account{
		Name:     name,
		Type:     accType,
		Currency: currency,
	})
	require.NoError(t, err)
	return id
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateAndGetAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateAccount(ctx, &model.Account{
		OwnerID:     1,
		Name:        "Visa",
		Type:        constants.AccountCreditCard,
		Currency:    "USD",
		CreditLimit: decimal.NewNullDecimal(decimal.RequireFromString("5000")),
	})
	require.NoError(t, err)

	acc, err := s.GetAccountByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Visa", acc.Name)
	assert.True(t, acc.Balance.IsZero())
	assert.True(t, acc.CreditLimit.Valid)
	assert.Equal(t, "5000", acc.CreditLimit.Decimal.String())
	assert.Equal(t, constants.AccountStatusActive, acc.Status)
	assert.Equal(t, int64(0), acc.Version)

	byName, err := s.GetAccountByName(ctx, "Visa")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
}

func TestCreateAccountDuplicateName(t *testing.T) {
	s := newTestStore(t)
	createAccount(t, s, "Cash", constants.AccountCash, "USD")

	_, err := s.CreateAccount(context.Background(), &model.Account{Name: "Cash", Type: constants.AccountCash, Currency: "USD"})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestGetAccountNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAccountByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateAccountBalanceVersioning(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := createAccount(t, s, "Bank", constants.AccountBankAccount, "USD")

	require.NoError(t, s.UpdateAccountBalance(ctx, id, decimal.RequireFromString("10.456"), 0))

	acc, err := s.GetAccountByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "10.46", acc.Balance.StringFixed(2))
	assert.Equal(t, int64(1), acc.Version)

	err = s.UpdateAccountBalance(ctx, id, decimal.RequireFromString("1"), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.True(t, IsRetryable(err))
}

func TestGetAccountForUpdateRequiresTx(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := createAccount(t, s, "Bank", constants.AccountBankAccount, "USD")

	_, err := s.GetAccountForUpdate(ctx, id)
	assert.Error(t, err)

	err = s.ExecTx(ctx, func(r Repository) error {
		acc, err := r.GetAccountForUpdate(ctx, id)
		if err != nil {
			return err
		}
		return r.UpdateAccountBalance(ctx, id, acc.Balance.Add(decimal.NewFromInt(5)), acc.Version)
	})
	require.NoError(t, err)

	acc, err := s.GetAccountByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "5.00", acc.Balance.StringFixed(2))
}

func TestExecTxRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := createAccount(t, s, "Bank", constants.AccountBankAccount, "USD")
	boom := errors.New("boom")

	err := s.ExecTx(ctx, func(r Repository) error {
		acc, err := r.GetAccountForUpdate(ctx, id)
		require.NoError(t, err)
		require.NoError(t, r.UpdateAccountBalance(ctx, id, decimal.NewFromInt(99), acc.Version))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acc, err := s.GetAccountByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())
	assert.Equal(t, int64(0), acc.Version)
}

func TestExecTxRejectsNesting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.ExecTx(ctx, func(r Repository) error {
		return r.ExecTx(ctx, func(Repository) error { return nil })
	})
	assert.ErrorIs(t, err, ErrNestedTx)
}

func TestAccountStatusAndSoftDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := createAccount(t, s, "Wallet", constants.AccountCryptoWallet, "BTC")
	createAccount(t, s, "Bank", constants.AccountBankAccount, "USD")

	require.NoError(t, s.UpdateAccountStatus(ctx, id, constants.AccountStatusInactive))

	active, err := s.ListAccounts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := s.ListAccounts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.SoftDeleteAccount(ctx, id))
	_, err = s.GetAccountByID(ctx, id)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, s.SoftDeleteAccount(ctx, id), ErrRecordNotFound)

	// the name is free again once the account is gone
	createAccount(t, s, "Wallet", constants.AccountCryptoWallet, "BTC")
}

func TestTransactionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	src := createAccount(t, s, "Bank", constants.AccountBankAccount, "USD")
	dst := createAccount(t, s, "Cash", constants.AccountCash, "USD")

	tx := &model.Transaction{
		Reference:            "ref-1",
		Type:                 constants.TypeTransfer,
		Amount:               decimal.RequireFromString("125.50"),
		Currency:             "USD",
		Date:                 date(2025, time.March, 4),
		SourceAccountID:      &src,
		DestinationAccountID: &dst,
		SourceAmount:         decimal.NewNullDecimal(decimal.RequireFromString("125.50")),
		DestinationAmount:    decimal.NewNullDecimal(decimal.RequireFromString("125.50")),
		Description:          "atm",
	}
	id, err := s.CreateTransaction(ctx, tx)
	require.NoError(t, err)

	got, err := s.GetTransactionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got.Reference)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("125.5")))
	assert.True(t, got.Date.Equal(date(2025, time.March, 4)))
	require.NotNil(t, got.SourceAccountID)
	assert.Equal(t, src, *got.SourceAccountID)
	assert.Equal(t, constants.StatusCompleted, got.Status)
	assert.Nil(t, got.NextPaymentDate)
	assert.Zero(t, got.Installments)
	require.True(t, got.SourceAmount.Valid)
	assert.Equal(t, "125.50", got.SourceAmount.Decimal.StringFixed(2))

	count, err := s.CountAccountReferences(ctx, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got.Amount = decimal.RequireFromString("80")
	got.DestinationAccountID = nil
	got.DestinationAmount = decimal.NullDecimal{}
	got.Type = constants.TypeExpense
	require.NoError(t, s.UpdateTransaction(ctx, got))

	updated, err := s.GetTransactionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, constants.TypeExpense, updated.Type)
	assert.Nil(t, updated.DestinationAccountID)
	assert.False(t, updated.DestinationAmount.Valid)

	list, err := s.ListTransactions(ctx, model.TransactionFilter{AccountID: src})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.SoftDeleteTransaction(ctx, id))
	_, err = s.GetTransactionByID(ctx, id)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	count, err = s.CountAccountReferences(ctx, src)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateTransactionDuplicateReference(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	src := createAccount(t, s, "Bank", constants.AccountBankAccount, "USD")

	tx := &model.Transaction{
		Reference:       "dup",
		Type:            constants.TypeExpense,
		Amount:          decimal.NewFromInt(1),
		Currency:        "USD",
		Date:            date(2025, time.January, 1),
		SourceAccountID: &src,
	}
	_, err := s.CreateTransaction(ctx, tx)
	require.NoError(t, err)

	_, err = s.CreateTransaction(ctx, tx)
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

func TestGetDueSubscriptions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	src := createAccount(t, s, "Bank", constants.AccountBankAccount, "USD")

	for i, next := range []time.Time{date(2025, time.May, 1), date(2025, time.June, 1)} {
		next := next
		_, err := s.CreateTransaction(ctx, &model.Transaction{
			Reference:          "sub-" + string(rune('a'+i)),
			Type:               constants.TypeSubscription,
			Amount:             decimal.NewFromInt(10),
			Currency:           "USD",
			Date:               date(2025, time.April, 1),
			SourceAccountID:    &src,
			IsSubscription:     true,
			SubscriptionPeriod: constants.PeriodMonthly,
			NextPaymentDate:    &next,
		})
		require.NoError(t, err)
	}

	due, err := s.GetDueSubscriptions(ctx, date(2025, time.May, 1))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "sub-a", due[0].Reference)
	assert.True(t, due[0].IsSubscription)
	assert.Equal(t, constants.PeriodMonthly, due[0].SubscriptionPeriod)

	due, err = s.GetDueSubscriptions(ctx, date(2025, time.June, 30))
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestFindRateUsesLatestEffectiveRate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertRate(ctx, &model.ExchangeRate{Base: "USD", Quote: "TRY", Rate: decimal.RequireFromString("30"), AsOf: date(2025, time.January, 1)}))
	require.NoError(t, s.UpsertRate(ctx, &model.ExchangeRate{Base: "USD", Quote: "TRY", Rate: decimal.RequireFromString("32"), AsOf: date(2025, time.February, 1)}))
	require.NoError(t, s.UpsertRate(ctx, &model.ExchangeRate{Base: "USD", Quote: "TRY", Rate: decimal.RequireFromString("32.5"), AsOf: date(2025, time.February, 1)}))

	rate, err := s.FindRate(ctx, "USD", "TRY", date(2025, time.January, 20))
	require.NoError(t, err)
	assert.Equal(t, "30", rate.Rate.String())

	rate, err = s.FindRate(ctx, "USD", "TRY", date(2025, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, "32.5", rate.Rate.String())

	_, err = s.FindRate(ctx, "USD", "TRY", date(2024, time.December, 31))
	assert.ErrorIs(t, err, ErrRecordNotFound)

	rates, err := s.ListRates(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}
