package service

import (
	"context"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

type TransferCreator struct {
	baseCreator
}

func NewTransferCreator(balance *AccountBalanceService) *TransferCreator {
	return &TransferCreator{baseCreator{balance: balance}}
}

func (c *TransferCreator) Type() string { return constants.TypeTransfer }

func (c *TransferCreator) Prepare(tx *model.Transaction, _ *model.Transaction) {
	clearSchedule(tx)
}

// Validate requires two distinct active accounts and a source that can cover
// the amount.
func (c *TransferCreator) Validate(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	if tx.SourceAccountID == nil {
		return apperrors.Validation(LegSource.field(), "is required for transfers")
	}
	if tx.DestinationAccountID == nil {
		return apperrors.Validation(LegDestination.field(), "is required for transfers")
	}
	if *tx.SourceAccountID == *tx.DestinationAccountID {
		return apperrors.Validation(LegDestination.field(), "must differ from the source account")
	}

	source, err := c.activeAccount(ctx, repo, tx.SourceAccountID, LegSource.field())
	if err != nil {
		return err
	}
	if _, err := c.activeAccount(ctx, repo, tx.DestinationAccountID, LegDestination.field()); err != nil {
		return err
	}

	ok, err := c.balance.HasEnoughBalance(ctx, source, tx.Amount, tx.Currency)
	if err != nil {
		return err
	}
	if !ok {
		available, err := c.balance.GetAvailableBalance(ctx, source, tx.Currency)
		if err != nil {
			available = source.Balance
		}
		return &apperrors.InsufficientBalanceError{
			AccountID: source.ID,
			Requested: tx.Amount,
			Available: available,
			Currency:  tx.Currency,
		}
	}
	return nil
}

func (c *TransferCreator) Create(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	return c.record(ctx, repo, c, tx)
}
