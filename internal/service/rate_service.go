package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/store"
	"github.com/hance08/tally/internal/validation"
)

// RateInvalidator drops cached rates for a pair after it changes.
type RateInvalidator interface {
	Invalidate(ctx context.Context, base, quote string)
}

type RateService struct {
	repo  store.RateRepository
	cache RateInvalidator
	log   zerolog.Logger
}

func NewRateService(repo store.RateRepository, cache RateInvalidator, log zerolog.Logger) *RateService {
	return &RateService{repo: repo, cache: cache, log: log}
}

// SetRate records that one base unit costs rate quote units from asOf on.
func (rs *RateService) SetRate(ctx context.Context, base, quote string, rate decimal.Decimal, asOf time.Time) (*model.ExchangeRate, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))

	if base == "" || validation.ValidateCurrency(base) != nil {
		return nil, apperrors.Validation("base", "must be a 3-letter currency code")
	}
	if quote == "" || validation.ValidateCurrency(quote) != nil {
		return nil, apperrors.Validation("quote", "must be a 3-letter currency code")
	}
	if base == quote {
		return nil, apperrors.Validation("quote", "must differ from base")
	}
	if !rate.IsPositive() {
		return nil, apperrors.Validation("rate", "must be greater than zero")
	}

	r := &model.ExchangeRate{Base: base, Quote: quote, Rate: rate, AsOf: dateOnly(asOf)}
	if err := rs.repo.UpsertRate(ctx, r); err != nil {
		return nil, classify("set rate", err)
	}
	if rs.cache != nil {
		rs.cache.Invalidate(ctx, base, quote)
	}

	rs.log.Info().Str("base", base).Str("quote", quote).Str("rate", rate.String()).Time("as_of", r.AsOf).Msg("rate saved")
	return r, nil
}

func (rs *RateService) ListRates(ctx context.Context, limit int) ([]*model.ExchangeRate, error) {
	rates, err := rs.repo.ListRates(ctx, limit)
	if err != nil {
		return nil, classify("list rates", err)
	}
	return rates, nil
}
