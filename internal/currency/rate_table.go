package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is the bundled Converter. Pairs without a direct or inverse rate
// are priced through the reference currency.
type RateTable struct {
	source    RateSource
	reference string
	now       func() time.Time
}

var _ Converter = (*RateTable)(nil)

func NewRateTable(source RateSource, reference string) *RateTable {
	return &RateTable{
		source:    source,
		reference: reference,
		now:       time.Now,
	}
}

func (t *RateTable) Reference() string {
	return t.reference
}

func (t *RateTable) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := t.rate(ctx, from, to, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert %s to %s: %w", from, to, err)
	}
	return amount.Mul(rate), nil
}

func (t *RateTable) ConvertToReference(ctx context.Context, amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return t.Convert(ctx, amount, from, t.reference, t.now())
}

func (t *RateTable) rate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, error) {
	rate, err := t.source.Rate(ctx, from, to, asOf)
	if err == nil || !errors.Is(err, ErrRateNotFound) {
		return rate, err
	}
	if from == t.reference || to == t.reference {
		return decimal.Zero, err
	}

	toRef, err := t.source.Rate(ctx, from, t.reference, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	fromRef, err := t.source.Rate(ctx, t.reference, to, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return toRef.Mul(fromRef), nil
}
