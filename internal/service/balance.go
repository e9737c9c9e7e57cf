package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/currency"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
)

// AccountBalanceService is the only code that writes Account.Balance. Every
// method that mutates takes the repository of the caller's atomic unit.
type AccountBalanceService struct {
	converter currency.Converter
	log       zerolog.Logger
	now       func() time.Time
}

func NewAccountBalanceService(converter currency.Converter, log zerolog.Logger) *AccountBalanceService {
	return &AccountBalanceService{converter: converter, log: log, now: time.Now}
}

// Apply adds the signed effect of tx to every account it references and
// records on tx the amount posted to each leg.
func (bs *AccountBalanceService) Apply(ctx context.Context, repo store.AccountRepository, tx *model.Transaction) error {
	posted, err := bs.applySnapshot(ctx, repo, tx.Snapshot(), false)
	if err != nil {
		return err
	}
	tx.SourceAmount = posted[LegSource]
	tx.DestinationAmount = posted[LegDestination]
	return nil
}

// RevertTransaction removes the effect recorded in snap, the state of the
// transaction before the current edit began. Accounts that no longer exist
// are skipped.
func (bs *AccountBalanceService) RevertTransaction(ctx context.Context, repo store.AccountRepository, snap model.TransactionSnapshot) error {
	_, err := bs.applySnapshot(ctx, repo, snap, true)
	return err
}

func (bs *AccountBalanceService) applySnapshot(ctx context.Context, repo store.AccountRepository, snap model.TransactionSnapshot, revert bool) (map[Leg]decimal.NullDecimal, error) {
	legs, err := legsFor(snap.Type)
	if err != nil {
		return nil, err
	}
	posted := make(map[Leg]decimal.NullDecimal, len(legs))
	if snap.IsSubscription {
		return posted, nil
	}

	for _, leg := range legs {
		accountID := snap.SourceAccountID
		if leg == LegDestination {
			accountID = snap.DestinationAccountID
		}
		if accountID == nil {
			if revert {
				continue
			}
			return nil, apperrors.Validation(leg.field(), "is required for "+snap.Type+" transactions")
		}
		amount, err := bs.mutate(ctx, repo, *accountID, snap, leg, revert)
		if err != nil {
			return nil, err
		}
		posted[leg] = amount
	}
	return posted, nil
}

// mutate moves one account's balance and returns the unsigned amount posted,
// in the account's currency. A revert takes the amount recorded when the
// effect was applied; rows without one are priced again.
func (bs *AccountBalanceService) mutate(ctx context.Context, repo store.AccountRepository, accountID int64, snap model.TransactionSnapshot, leg Leg, revert bool) (decimal.NullDecimal, error) {
	acc, err := repo.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			if revert {
				bs.log.Warn().
					Int64("account_id", accountID).
					Int64("transaction_id", snap.ID).
					Str("leg", leg.String()).
					Msg("account no longer exists, skipping reversal")
				return decimal.NullDecimal{}, nil
			}
			return decimal.NullDecimal{}, apperrors.NotFound("account", accountID)
		}
		return decimal.NullDecimal{}, err
	}

	amount, err := bs.postedAmount(ctx, acc, snap, leg, revert)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	delta, err := signedEffect(snap.Type, leg, acc.Type, amount)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if revert {
		delta = delta.Neg()
	}

	balance := acc.Balance.Add(delta).Round(constants.MoneyScale)
	if err := repo.UpdateAccountBalance(ctx, acc.ID, balance, acc.Version); err != nil {
		return decimal.NullDecimal{}, err
	}

	bs.log.Debug().
		Int64("account_id", acc.ID).
		Int64("transaction_id", snap.ID).
		Str("delta", delta.StringFixed(constants.MoneyScale)).
		Str("balance", balance.StringFixed(constants.MoneyScale)).
		Bool("revert", revert).
		Msg("balance updated")
	return decimal.NewNullDecimal(amount), nil
}

func (bs *AccountBalanceService) postedAmount(ctx context.Context, acc *model.Account, snap model.TransactionSnapshot, leg Leg, revert bool) (decimal.Decimal, error) {
	if revert {
		recorded := snap.SourceAmount
		if leg == LegDestination {
			recorded = snap.DestinationAmount
		}
		if recorded.Valid {
			return recorded.Decimal, nil
		}
	}
	return bs.convert(ctx, snap.Amount, snap.Currency, acc.Currency, snap.Date, snap.ExchangeRate)
}

// convert prices amount in the target currency. A fixed rate, when given,
// replaces the converter for any pair of different currencies.
func (bs *AccountBalanceService) convert(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time, fixed decimal.NullDecimal) (decimal.Decimal, error) {
	if from != to && fixed.Valid {
		return amount.Mul(fixed.Decimal).Round(constants.MoneyScale), nil
	}
	return bs.toAccountCurrency(ctx, amount, from, to, date)
}

// toAccountCurrency prices amount in the account's currency at the rate of
// date, rounded to the money scale.
func (bs *AccountBalanceService) toAccountCurrency(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount.Round(constants.MoneyScale), nil
	}
	converted, err := bs.converter.Convert(ctx, amount, from, to, date)
	if err != nil {
		return decimal.Zero, rateError(err, from, to)
	}
	return converted.Round(constants.MoneyScale), nil
}

// HasEnoughBalance reports whether acc can cover amount. Different
// currencies are compared in the reference currency.
func (bs *AccountBalanceService) HasEnoughBalance(ctx context.Context, acc *model.Account, amount decimal.Decimal, cur string) (bool, error) {
	if acc.Currency == cur {
		return acc.Balance.GreaterThanOrEqual(amount), nil
	}

	available, err := bs.converter.ConvertToReference(ctx, acc.Balance, acc.Currency)
	if err != nil {
		return false, rateError(err, acc.Currency, "reference")
	}
	requested, err := bs.converter.ConvertToReference(ctx, amount, cur)
	if err != nil {
		return false, rateError(err, cur, "reference")
	}
	return available.GreaterThanOrEqual(requested), nil
}

// GetAvailableBalance returns acc's balance in cur at today's rate.
func (bs *AccountBalanceService) GetAvailableBalance(ctx context.Context, acc *model.Account, cur string) (decimal.Decimal, error) {
	if acc.Currency == cur {
		return acc.Balance, nil
	}
	converted, err := bs.converter.Convert(ctx, acc.Balance, acc.Currency, cur, bs.now())
	if err != nil {
		return decimal.Zero, rateError(err, acc.Currency, cur)
	}
	return converted.Round(constants.MoneyScale), nil
}

func rateError(err error, from, to string) error {
	if errors.Is(err, currency.ErrRateNotFound) {
		return apperrors.Validation("currency", fmt.Sprintf("no exchange rate from %s to %s", from, to))
	}
	return err
}
