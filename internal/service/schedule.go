package service

import (
	"strings"
	"time"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
)

// NormalizePeriod maps unknown or empty periods to monthly.
func NormalizePeriod(period string) string {
	p := strings.ToLower(strings.TrimSpace(period))
	for _, known := range constants.Periods {
		if p == known {
			return p
		}
	}
	return constants.PeriodMonthly
}

// AdvancePeriod returns the payment date one period after current, or after
// start when no payment date has been set yet.
func AdvancePeriod(current *time.Time, start time.Time, period string) time.Time {
	from := start
	if current != nil {
		from = *current
	}

	switch NormalizePeriod(period) {
	case constants.PeriodDaily:
		return from.AddDate(0, 0, 1)
	case constants.PeriodWeekly:
		return from.AddDate(0, 0, 7)
	case constants.PeriodQuarterly:
		return from.AddDate(0, 3, 0)
	case constants.PeriodBiannually:
		return from.AddDate(0, 6, 0)
	case constants.PeriodAnnually:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// processInstallmentPayment marks one installment of tx as paid. It has no
// balance effect: the full amount was applied when the purchase was recorded.
func processInstallmentPayment(tx *model.Transaction) error {
	if tx.Type != constants.TypeInstallment {
		return apperrors.Validation("type", "transaction is not an installment")
	}
	if tx.RemainingInstallments <= 0 {
		return apperrors.Validation("remaining_installments", "no installments left to pay")
	}

	tx.RemainingInstallments--
	if tx.RemainingInstallments > 0 {
		from := tx.Date
		if tx.NextPaymentDate != nil {
			from = *tx.NextPaymentDate
		}
		next := from.AddDate(0, 1, 0)
		tx.NextPaymentDate = &next
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
