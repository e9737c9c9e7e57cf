package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
)

func (s *Store) UpsertRate(ctx context.Context, rate *model.ExchangeRate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exchange_rates (base, quote, rate, as_of)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (base, quote, as_of) DO UPDATE SET rate = excluded.rate
	`, rate.Base, rate.Quote, rate.Rate, dateOnly(rate.AsOf))
	if err != nil {
		return fmt.Errorf("failed to save rate %s/%s: %w", rate.Base, rate.Quote, err)
	}
	return nil
}

func (s *Store) FindRate(ctx context.Context, base, quote string, asOf time.Time) (*model.ExchangeRate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, base, quote, rate, as_of
		FROM exchange_rates
		WHERE base = ? AND quote = ? AND as_of <= ?
		ORDER BY as_of DESC
		LIMIT 1
	`, base, quote, dateOnly(asOf))

	rate := &model.ExchangeRate{}
	err := row.Scan(&rate.ID, &rate.Base, &rate.Quote, &rate.Rate, &rate.AsOf)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rate %s/%s on %s: %w", base, quote, asOf.Format(constants.DateFormat), ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query rate %s/%s: %w", base, quote, err)
	}
	return rate, nil
}

func (s *Store) ListRates(ctx context.Context, limit int) ([]*model.ExchangeRate, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, base, quote, rate, as_of
		FROM exchange_rates
		ORDER BY as_of DESC, base, quote
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var rates []*model.ExchangeRate
	for rows.Next() {
		rate := &model.ExchangeRate{}
		if err := rows.Scan(&rate.ID, &rate.Base, &rate.Quote, &rate.Rate, &rate.AsOf); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}
