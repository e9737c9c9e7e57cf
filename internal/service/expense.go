package service

import (
	"context"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// ExpenseCreator handles the single-account outflows: expense and
// loan_payment. Both grow a credit card's debt and shrink any other balance.
type ExpenseCreator struct {
	baseCreator
	kind string
}

func NewExpenseCreator(balance *AccountBalanceService) *ExpenseCreator {
	return &ExpenseCreator{baseCreator: baseCreator{balance: balance}, kind: constants.TypeExpense}
}

func NewLoanPaymentCreator(balance *AccountBalanceService) *ExpenseCreator {
	return &ExpenseCreator{baseCreator: baseCreator{balance: balance}, kind: constants.TypeLoanPayment}
}

func (c *ExpenseCreator) Type() string { return c.kind }

func (c *ExpenseCreator) Prepare(tx *model.Transaction, _ *model.Transaction) {
	tx.DestinationAccountID = nil
	clearSchedule(tx)
}

func (c *ExpenseCreator) Validate(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	_, err := c.activeAccount(ctx, repo, tx.SourceAccountID, LegSource.field())
	return err
}

func (c *ExpenseCreator) Create(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	return c.record(ctx, repo, c, tx)
}
