package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/model"
)

type Repository interface {
	AccountRepository
	TransactionRepository
	RateRepository

	// ExecTx runs fn inside one atomic unit. fn receives a repository bound
	// to that unit; returning an error rolls everything back.
	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, acc *model.Account) (int64, error)
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
	// GetAccountForUpdate reads an account inside an atomic unit, before
	// its balance is rewritten.
	GetAccountForUpdate(ctx context.Context, id int64) (*model.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]*model.Account, error)
	UpdateAccountBalance(ctx context.Context, id int64, balance decimal.Decimal, expectedVersion int64) error
	UpdateAccountStatus(ctx context.Context, id int64, status string) error
	SoftDeleteAccount(ctx context.Context, id int64) error
	CountAccountReferences(ctx context.Context, id int64) (int64, error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *model.Transaction) (int64, error)
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter model.TransactionFilter) ([]*model.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *model.Transaction) error
	SoftDeleteTransaction(ctx context.Context, id int64) error
	GetDueSubscriptions(ctx context.Context, asOf time.Time) ([]*model.Transaction, error)
}

type RateRepository interface {
	UpsertRate(ctx context.Context, rate *model.ExchangeRate) error
	// FindRate returns the latest rate for base/quote effective on or before asOf.
	FindRate(ctx context.Context, base, quote string, asOf time.Time) (*model.ExchangeRate, error)
	ListRates(ctx context.Context, limit int) ([]*model.ExchangeRate, error)
}
