// Package currency prices amounts in other currencies from the ledger's rate table.
package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/store"
)

var ErrRateNotFound = errors.New("exchange rate not found")

// Converter turns an amount in one currency into another, using the rate
// effective on asOf.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error)
	// ConvertToReference normalizes amount into the reference currency at
	// today's rate, for comparisons.
	ConvertToReference(ctx context.Context, amount decimal.Decimal, from string) (decimal.Decimal, error)
}

// RateSource looks up the price of one unit of base in quote.
type RateSource interface {
	Rate(ctx context.Context, base, quote string, asOf time.Time) (decimal.Decimal, error)
}

// StoreSource reads rates from the exchange_rates table, falling back to the
// inverse of the opposite pair.
type StoreSource struct {
	repo store.RateRepository
}

func NewStoreSource(repo store.RateRepository) *StoreSource {
	return &StoreSource{repo: repo}
}

func (s *StoreSource) Rate(ctx context.Context, base, quote string, asOf time.Time) (decimal.Decimal, error) {
	direct, err := s.repo.FindRate(ctx, base, quote, asOf)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	inverse, err := s.repo.FindRate(ctx, quote, base, asOf)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%s/%s: %w", base, quote, ErrRateNotFound)
		}
		return decimal.Zero, err
	}
	if inverse.Rate.IsZero() {
		return decimal.Zero, fmt.Errorf("%s/%s has a zero rate: %w", quote, base, ErrRateNotFound)
	}
	return decimal.NewFromInt(1).Div(inverse.Rate), nil
}
