package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
	"github.com/hance08/tally/internal/validation"
)

// TransactionService routes transactions to their creator and runs edits and
// deletes as revert-then-reapply units.
type TransactionService struct {
	repo          store.Repository
	balance       *AccountBalanceService
	creators      map[string]Creator
	subscriptions *SubscriptionCreator
	units         unitRunner
	log           zerolog.Logger
	now           func() time.Time
}

func NewTransactionService(repo store.Repository, balance *AccountBalanceService, cfg *config.Config, log zerolog.Logger) *TransactionService {
	expense := NewExpenseCreator(balance)
	subscriptions := NewSubscriptionCreator(balance, expense)

	ts := &TransactionService{
		repo:          repo,
		balance:       balance,
		creators:      make(map[string]Creator),
		subscriptions: subscriptions,
		units:         unitRunner{repo: repo, maxRetries: cfg.Ledger.MaxRetries, log: log},
		log:           log,
		now:           time.Now,
	}
	for _, c := range []Creator{
		NewIncomeCreator(balance),
		expense,
		NewLoanPaymentCreator(balance),
		NewTransferCreator(balance),
		NewInstallmentCreator(balance),
		subscriptions,
	} {
		ts.creators[c.Type()] = c
	}
	return ts
}

func (ts *TransactionService) creatorFor(txType string) (Creator, error) {
	c, ok := ts.creators[txType]
	if !ok {
		return nil, apperrors.UnknownTransactionType(txType)
	}
	return c, nil
}

// Create records a new transaction together with its balance effect.
func (ts *TransactionService) Create(ctx context.Context, req model.TransactionRequest) (*model.Transaction, error) {
	creator, err := ts.creatorFor(req.Type)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateRequest(req); err != nil {
		return nil, err
	}

	var created *model.Transaction
	err = ts.units.run(ctx, "create transaction", func(repo store.Repository) error {
		tx := ts.newTransaction(req)
		if err := creator.Create(ctx, repo, tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	ts.log.Info().
		Int64("transaction_id", created.ID).
		Str("type", created.Type).
		Str("amount", created.Amount.String()).
		Str("currency", created.Currency).
		Msg("transaction created")
	return ts.Get(ctx, created.ID)
}

// Update replaces the data of tx with req. tx only identifies the row: the
// effect that gets reverted is the one recorded in storage, captured before
// any field changes.
func (ts *TransactionService) Update(ctx context.Context, tx *model.Transaction, req model.TransactionRequest) (*model.Transaction, error) {
	if tx == nil {
		return nil, apperrors.Validation("transaction", "is required")
	}
	creator, err := ts.creatorFor(req.Type)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateRequest(req); err != nil {
		return nil, err
	}

	err = ts.units.run(ctx, "update transaction", func(repo store.Repository) error {
		current, err := loadTransaction(ctx, repo, tx.ID)
		if err != nil {
			return err
		}
		snapshot := current.Snapshot()
		prior := current.Clone()

		if err := ts.balance.RevertTransaction(ctx, repo, snapshot); err != nil {
			return err
		}

		ts.applyRequest(current, req)
		creator.Prepare(current, prior)
		if err := creator.Validate(ctx, repo, current); err != nil {
			return err
		}
		if err := ts.balance.Apply(ctx, repo, current); err != nil {
			return err
		}
		return repo.UpdateTransaction(ctx, current)
	})
	if err != nil {
		return nil, err
	}

	ts.log.Info().Int64("transaction_id", tx.ID).Str("type", req.Type).Msg("transaction updated")
	return ts.Get(ctx, tx.ID)
}

// Delete reverts the effect of tx and soft-deletes it.
func (ts *TransactionService) Delete(ctx context.Context, tx *model.Transaction) error {
	if tx == nil {
		return apperrors.Validation("transaction", "is required")
	}

	err := ts.units.run(ctx, "delete transaction", func(repo store.Repository) error {
		current, err := loadTransaction(ctx, repo, tx.ID)
		if err != nil {
			return err
		}
		if err := ts.balance.RevertTransaction(ctx, repo, current.Snapshot()); err != nil {
			return err
		}
		return repo.SoftDeleteTransaction(ctx, current.ID)
	})
	if err != nil {
		return err
	}

	ts.log.Info().Int64("transaction_id", tx.ID).Msg("transaction deleted")
	return nil
}

func (ts *TransactionService) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	tx, err := loadTransaction(ctx, ts.repo, id)
	if err != nil {
		return nil, classify("get transaction", err)
	}
	return tx, nil
}

func (ts *TransactionService) List(ctx context.Context, filter model.TransactionFilter) ([]*model.Transaction, error) {
	txs, err := ts.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, classify("list transactions", err)
	}
	return txs, nil
}

// RunDueSubscriptions charges every subscription due on or before asOf, each
// in its own unit. Failures are collected; the remaining subscriptions still run.
func (ts *TransactionService) RunDueSubscriptions(ctx context.Context, asOf time.Time) ([]*model.Transaction, error) {
	day := dateOnly(asOf)
	due, err := ts.repo.GetDueSubscriptions(ctx, day)
	if err != nil {
		return nil, classify("list due subscriptions", err)
	}

	var spawned []*model.Transaction
	var errs []error
	for _, sub := range due {
		var charge *model.Transaction
		err := ts.units.run(ctx, "run subscription", func(repo store.Repository) error {
			charge = nil
			current, err := loadTransaction(ctx, repo, sub.ID)
			if err != nil {
				return err
			}
			if current.NextPaymentDate == nil || current.NextPaymentDate.After(day) {
				return nil
			}
			charge, err = ts.subscriptions.CreateFromSubscription(ctx, repo, current, day)
			return err
		})
		if err != nil {
			ts.log.Error().Err(err).Int64("subscription_id", sub.ID).Msg("subscription charge failed")
			errs = append(errs, fmt.Errorf("subscription %d: %w", sub.ID, err))
			continue
		}
		if charge != nil {
			ts.log.Info().
				Int64("subscription_id", sub.ID).
				Int64("transaction_id", charge.ID).
				Msg("subscription charged")
			spawned = append(spawned, charge)
		}
	}
	return spawned, errors.Join(errs...)
}

// ProcessInstallmentPayment marks one installment of transaction id as paid.
func (ts *TransactionService) ProcessInstallmentPayment(ctx context.Context, id int64) (*model.Transaction, error) {
	err := ts.units.run(ctx, "process installment", func(repo store.Repository) error {
		current, err := loadTransaction(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := processInstallmentPayment(current); err != nil {
			return err
		}
		return repo.UpdateTransaction(ctx, current)
	})
	if err != nil {
		return nil, err
	}
	return ts.Get(ctx, id)
}

func (ts *TransactionService) newTransaction(req model.TransactionRequest) *model.Transaction {
	tx := &model.Transaction{
		Reference: req.Reference,
		Status:    constants.StatusCompleted,
		Date:      dateOnly(ts.now()),
	}
	if tx.Reference == "" {
		tx.Reference = uuid.NewString()
	}
	ts.applyRequest(tx, req)
	return tx
}

// applyRequest copies the caller-controlled fields of req onto tx. Derived
// fields are left for the creator's Prepare.
func (ts *TransactionService) applyRequest(tx *model.Transaction, req model.TransactionRequest) {
	tx.OwnerID = req.OwnerID
	tx.CategoryID = req.CategoryID
	tx.Type = req.Type
	tx.Amount = req.Amount
	tx.Currency = strings.ToUpper(req.Currency)
	tx.ExchangeRate = req.ExchangeRate
	if !req.Date.IsZero() {
		tx.Date = dateOnly(req.Date)
	}
	tx.SourceAccountID = req.SourceAccountID
	tx.DestinationAccountID = req.DestinationAccountID
	tx.Description = strings.TrimSpace(req.Description)
	tx.Installments = req.Installments
	tx.SubscriptionPeriod = req.SubscriptionPeriod
	if req.Status != "" {
		tx.Status = req.Status
	}
}

// RequestFrom rebuilds the request that would recreate tx, for edits that
// change only a few fields.
func RequestFrom(tx *model.Transaction) model.TransactionRequest {
	c := tx.Clone()
	return model.TransactionRequest{
		Reference:            c.Reference,
		OwnerID:              c.OwnerID,
		CategoryID:           c.CategoryID,
		Type:                 c.Type,
		Amount:               c.Amount,
		Currency:             c.Currency,
		ExchangeRate:         c.ExchangeRate,
		Date:                 c.Date,
		SourceAccountID:      c.SourceAccountID,
		DestinationAccountID: c.DestinationAccountID,
		Description:          c.Description,
		Installments:         c.Installments,
		SubscriptionPeriod:   c.SubscriptionPeriod,
		Status:               c.Status,
	}
}

func loadTransaction(ctx context.Context, repo store.TransactionRepository, id int64) (*model.Transaction, error) {
	tx, err := repo.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, apperrors.NotFound("transaction", id)
		}
		return nil, err
	}
	return tx, nil
}
