package service

import (
	"context"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

type IncomeCreator struct {
	baseCreator
}

func NewIncomeCreator(balance *AccountBalanceService) *IncomeCreator {
	return &IncomeCreator{baseCreator{balance: balance}}
}

func (c *IncomeCreator) Type() string { return constants.TypeIncome }

func (c *IncomeCreator) Prepare(tx *model.Transaction, _ *model.Transaction) {
	tx.SourceAccountID = nil
	clearSchedule(tx)
}

func (c *IncomeCreator) Validate(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	_, err := c.activeAccount(ctx, repo, tx.DestinationAccountID, LegDestination.field())
	return err
}

func (c *IncomeCreator) Create(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	return c.record(ctx, repo, c, tx)
}
