package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
	"github.com/hance08/tally/internal/validation"
)

type AccountService struct {
	repo    store.Repository
	balance *AccountBalanceService
	income  Creator
	units   unitRunner
	config  *config.Config
	log     zerolog.Logger
	now     func() time.Time
}

func NewAccountService(repo store.Repository, balance *AccountBalanceService, cfg *config.Config, log zerolog.Logger) *AccountService {
	return &AccountService{
		repo:    repo,
		balance: balance,
		income:  NewIncomeCreator(balance),
		units:   unitRunner{repo: repo, maxRetries: cfg.Ledger.MaxRetries, log: log},
		config:  cfg,
		log:     log,
		now:     time.Now,
	}
}

// CreateAccount opens an empty account.
func (as *AccountService) CreateAccount(ctx context.Context, req model.AccountRequest) (*model.Account, error) {
	return as.OpenAccountWithBalance(ctx, req, decimal.Zero)
}

// OpenAccountWithBalance opens an account and, in the same unit, records the
// opening balance as an income transaction into it.
func (as *AccountService) OpenAccountWithBalance(ctx context.Context, req model.AccountRequest, opening decimal.Decimal) (*model.Account, error) {
	acc, err := as.prepareAccount(req)
	if err != nil {
		return nil, err
	}
	if opening.IsNegative() {
		return nil, apperrors.Validation("opening_balance", "must not be negative")
	}

	var id int64
	err = as.units.run(ctx, "create account", func(repo store.Repository) error {
		newID, err := repo.CreateAccount(ctx, acc)
		if err != nil {
			return err
		}
		id = newID
		if opening.IsZero() {
			return nil
		}

		return as.income.Create(ctx, repo, &model.Transaction{
			Reference:            uuid.NewString(),
			OwnerID:              acc.OwnerID,
			Type:                 constants.TypeIncome,
			Amount:               opening,
			Currency:             acc.Currency,
			Date:                 dateOnly(as.now()),
			DestinationAccountID: &newID,
			Description:          "Opening balance",
			Status:               constants.StatusCompleted,
		})
	})
	if err != nil {
		return nil, err
	}

	as.log.Info().Int64("account_id", id).Str("type", acc.Type).Str("currency", acc.Currency).Msg("account created")
	return as.GetAccount(ctx, id)
}

func (as *AccountService) prepareAccount(req model.AccountRequest) (*model.Account, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = as.config.Defaults.Currency
	}
	if err := validation.ValidateAccountRequest(req); err != nil {
		return nil, err
	}
	if req.CreditLimit.Valid && req.Type != constants.AccountCreditCard {
		return nil, apperrors.Validation("credit_limit", "only credit_card accounts have a credit limit")
	}

	return &model.Account{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Type:        req.Type,
		Currency:    req.Currency,
		Balance:     decimal.Zero,
		CreditLimit: req.CreditLimit,
		Status:      constants.AccountStatusActive,
	}, nil
}

func (as *AccountService) GetAccount(ctx context.Context, id int64) (*model.Account, error) {
	acc, err := as.repo.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, apperrors.NotFound("account", id)
		}
		return nil, classify("get account", err)
	}
	return acc, nil
}

func (as *AccountService) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	acc, err := as.repo.GetAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, apperrors.Validation("account", fmt.Sprintf("no account named '%s'", name))
		}
		return nil, classify("get account", err)
	}
	return acc, nil
}

func (as *AccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]*model.Account, error) {
	accounts, err := as.repo.ListAccounts(ctx, includeInactive)
	if err != nil {
		return nil, classify("list accounts", err)
	}
	return accounts, nil
}

// DeactivateAccount keeps the account and its history but refuses new
// transactions against it.
func (as *AccountService) DeactivateAccount(ctx context.Context, id int64) error {
	err := as.repo.UpdateAccountStatus(ctx, id, constants.AccountStatusInactive)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return apperrors.NotFound("account", id)
		}
		return classify("deactivate account", err)
	}
	as.log.Info().Int64("account_id", id).Msg("account deactivated")
	return nil
}

// DeleteAccount soft-deletes an account that no live transaction references.
func (as *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	err := as.units.run(ctx, "delete account", func(repo store.Repository) error {
		refs, err := repo.CountAccountReferences(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &apperrors.ConflictError{
				Resource: "account",
				ID:       id,
				Reason:   fmt.Sprintf("still referenced by %d transaction(s)", refs),
			}
		}
		if err := repo.SoftDeleteAccount(ctx, id); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return apperrors.NotFound("account", id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	as.log.Info().Int64("account_id", id).Msg("account deleted")
	return nil
}

// GetAvailableBalance returns the balance of account id in cur.
func (as *AccountService) GetAvailableBalance(ctx context.Context, id int64, cur string) (decimal.Decimal, error) {
	acc, err := as.GetAccount(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if cur == "" {
		cur = acc.Currency
	}
	return as.balance.GetAvailableBalance(ctx, acc, strings.ToUpper(cur))
}

// DefaultCurrency is the currency new accounts get when none is given.
func (as *AccountService) DefaultCurrency() string {
	return as.config.Defaults.Currency
}

// Lookup exposes name lookups for interactive validators.
func (as *AccountService) Lookup() validation.AccountLookup {
	return as.repo
}
