package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hance08/tally/internal/constants"
)

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, constants.PeriodWeekly, NormalizePeriod(" Weekly "))
	assert.Equal(t, constants.PeriodAnnually, NormalizePeriod("annually"))
	assert.Equal(t, constants.PeriodMonthly, NormalizePeriod(""))
	assert.Equal(t, constants.PeriodMonthly, NormalizePeriod("every other tuesday"))
}

func TestAdvancePeriod(t *testing.T) {
	start := day(2025, time.January, 31)

	tests := []struct {
		period string
		want   time.Time
	}{
		{constants.PeriodDaily, day(2025, time.February, 1)},
		{constants.PeriodWeekly, day(2025, time.February, 7)},
		// month-end dates roll over the way time.AddDate does
		{constants.PeriodMonthly, day(2025, time.March, 3)},
		{constants.PeriodQuarterly, day(2025, time.May, 1)},
		{constants.PeriodBiannually, day(2025, time.July, 31)},
		{constants.PeriodAnnually, day(2026, time.January, 31)},
		{"unknown", day(2025, time.March, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			assert.Equal(t, tt.want, AdvancePeriod(nil, start, tt.period))
		})
	}

	current := day(2025, time.June, 10)
	assert.Equal(t, day(2025, time.July, 10), AdvancePeriod(&current, start, constants.PeriodMonthly))
}
