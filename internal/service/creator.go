package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// Creator owns the rules of one transaction type. All methods run inside the
// caller's atomic unit.
type Creator interface {
	Type() string
	// Prepare fills the fields the type derives from its input. prior is the
	// row as it stood before an edit, or nil on create.
	Prepare(tx *model.Transaction, prior *model.Transaction)
	Validate(ctx context.Context, repo store.Repository, tx *model.Transaction) error
	// Create prepares and validates tx, applies its balance effect and writes it.
	Create(ctx context.Context, repo store.Repository, tx *model.Transaction) error
}

type baseCreator struct {
	balance *AccountBalanceService
}

func (b baseCreator) record(ctx context.Context, repo store.Repository, c Creator, tx *model.Transaction) error {
	c.Prepare(tx, nil)
	if err := c.Validate(ctx, repo, tx); err != nil {
		return err
	}

	// The row is written after Apply so it carries the posted leg amounts.
	if err := b.balance.Apply(ctx, repo, tx); err != nil {
		return err
	}

	id, err := repo.CreateTransaction(ctx, tx)
	if err != nil {
		return err
	}
	tx.ID = id
	return nil
}

// activeAccount loads the account referenced by id and rejects missing or
// inactive ones.
func (b baseCreator) activeAccount(ctx context.Context, repo store.AccountRepository, id *int64, field string) (*model.Account, error) {
	if id == nil {
		return nil, apperrors.Validation(field, "is required")
	}
	acc, err := repo.GetAccountByID(ctx, *id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, apperrors.NotFound("account", *id)
		}
		return nil, err
	}
	if !acc.IsActive() {
		return nil, apperrors.Validation(field, fmt.Sprintf("account %d is inactive", acc.ID))
	}
	return acc, nil
}

// clearSchedule drops the installment and subscription fields from a type
// that does not use them.
func clearSchedule(tx *model.Transaction) {
	tx.Installments = 0
	tx.RemainingInstallments = 0
	tx.MonthlyAmount = decimal.NullDecimal{}
	tx.IsSubscription = false
	tx.SubscriptionPeriod = ""
	tx.NextPaymentDate = nil
}
