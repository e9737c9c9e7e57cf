package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// SubscriptionCreator records recurring-charge templates. A template never
// moves a balance; each charge it spawns is an ordinary expense.
type SubscriptionCreator struct {
	baseCreator
	charge *ExpenseCreator
}

func NewSubscriptionCreator(balance *AccountBalanceService, charge *ExpenseCreator) *SubscriptionCreator {
	return &SubscriptionCreator{baseCreator: baseCreator{balance: balance}, charge: charge}
}

func (c *SubscriptionCreator) Type() string { return constants.TypeSubscription }

// Prepare stamps the first payment date. An edit that keeps the period and
// start date keeps the current schedule.
func (c *SubscriptionCreator) Prepare(tx *model.Transaction, prior *model.Transaction) {
	tx.DestinationAccountID = nil
	tx.Installments = 0
	tx.RemainingInstallments = 0
	tx.MonthlyAmount.Valid = false
	tx.IsSubscription = true
	tx.SubscriptionPeriod = NormalizePeriod(tx.SubscriptionPeriod)

	keep := prior != nil &&
		prior.IsSubscription &&
		prior.SubscriptionPeriod == tx.SubscriptionPeriod &&
		prior.Date.Equal(tx.Date) &&
		prior.NextPaymentDate != nil
	if keep {
		next := *prior.NextPaymentDate
		tx.NextPaymentDate = &next
		return
	}
	next := AdvancePeriod(nil, tx.Date, tx.SubscriptionPeriod)
	tx.NextPaymentDate = &next
}

func (c *SubscriptionCreator) Validate(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	_, err := c.activeAccount(ctx, repo, tx.SourceAccountID, LegSource.field())
	return err
}

func (c *SubscriptionCreator) Create(ctx context.Context, repo store.Repository, tx *model.Transaction) error {
	return c.record(ctx, repo, c, tx)
}

// CreateFromSubscription charges sub once: it records an expense dated on,
// linked to sub, and moves sub's next payment one period forward.
func (c *SubscriptionCreator) CreateFromSubscription(ctx context.Context, repo store.Repository, sub *model.Transaction, on time.Time) (*model.Transaction, error) {
	if !sub.IsSubscription {
		return nil, apperrors.Validation("type", "transaction is not a subscription")
	}

	parentID := sub.ID
	template := sub.Clone()
	charge := &model.Transaction{
		Reference:           uuid.NewString(),
		OwnerID:             sub.OwnerID,
		CategoryID:          template.CategoryID,
		Type:                constants.TypeExpense,
		Amount:              sub.Amount,
		Currency:            sub.Currency,
		ExchangeRate:        sub.ExchangeRate,
		Date:                dateOnly(on),
		SourceAccountID:     template.SourceAccountID,
		Description:         sub.Description,
		ParentTransactionID: &parentID,
		Status:              constants.StatusCompleted,
	}
	if err := c.charge.Create(ctx, repo, charge); err != nil {
		return nil, err
	}

	next := AdvancePeriod(sub.NextPaymentDate, sub.Date, sub.SubscriptionPeriod)
	sub.NextPaymentDate = &next
	if err := repo.UpdateTransaction(ctx, sub); err != nil {
		return nil, err
	}
	return charge, nil
}
