package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// InstallmentCreator records a credit-card purchase paid back in monthly
// installments.
type InstallmentCreator struct {
	baseCreator
}

func NewInstallmentCreator(balance *AccountBalanceService) *InstallmentCreator {
	return &InstallmentCreator{baseCreator{balance: balance}}
}

func (c *InstallmentCreator) Type() string { return constants.TypeInstallment }

// Prepare derives the monthly amount. The installment schedule restarts only
// when the row is new, was not an installment before, or its count or
// purchase date changed.
func (c *InstallmentCreator) Prepare(tx *model.Transaction, prior *model.Transaction) {
	tx.DestinationAccountID = nil
	tx.IsSubscription = false
	tx.SubscriptionPeriod = ""

	if tx.Installments <= 0 {
		return
	}
	tx.MonthlyAmount = decimal.NewNullDecimal(
		tx.Amount.DivRound(decimal.NewFromInt(int64(tx.Installments)), constants.MoneyScale))

	if prior == nil || prior.Type != constants.TypeInstallment ||
		prior.Installments != tx.Installments || !prior.Date.Equal(tx.Date) {
		tx.RemainingInstallments = tx.Installments
		next := tx.Date.AddDate(0, 1, 0)
		tx.NextPaymentDate = &next
	}
}

func (c *InstallmentCreator) Validate(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	source, err := c.activeAccount(ctx, repo, tx.SourceAccountID, LegSource.field())
	if err != nil {
		return err
	}
	if !source.IsCreditCard() {
		return apperrors.Validation(LegSource.field(), "installments require a credit_card account")
	}
	if tx.Installments < 1 {
		return apperrors.Validation("installments", "must be at least 1")
	}

	if !source.CreditLimit.Valid {
		return nil
	}
	amount, err := c.balance.convert(ctx, tx.Amount, tx.Currency, source.Currency, tx.Date, tx.ExchangeRate)
	if err != nil {
		return err
	}
	limit := source.CreditLimit.Decimal
	if source.Balance.Add(amount).GreaterThan(limit) {
		return &apperrors.InsufficientBalanceError{
			AccountID: source.ID,
			Requested: amount,
			Available: limit.Sub(source.Balance),
			Currency:  source.Currency,
			Reason:    fmt.Sprintf("credit limit of %s exceeded", limit.StringFixed(constants.MoneyScale)),
		}
	}
	return nil
}

func (c *InstallmentCreator) Create(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	return c.record(ctx, repo, c, tx)
}
