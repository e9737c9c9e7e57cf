package errhandler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hance08/tally/internal/apperrors"
)

func TestHandleErrorExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"interrupt", fmt.Errorf("prompt: %w", terminal.InterruptErr), ExitOK},
		{"validation", apperrors.Validation("amount", "must be positive"), ExitUsage},
		{"unknown type", apperrors.UnknownTransactionType("debt_payment"), ExitUsage},
		{"insufficient", &apperrors.InsufficientBalanceError{
			AccountID: 1, Requested: decimal.NewFromInt(10), Available: decimal.NewFromInt(5), Currency: "USD",
		}, ExitFailure},
		{"not found", apperrors.NotFound("account", 9), ExitFailure},
		{"conflict", &apperrors.ConflictError{Resource: "account", Reason: "busy"}, ExitConflict},
		{"persistence", &apperrors.PersistenceError{Op: "create", Err: errors.New("disk")}, ExitFailure},
		{"plain", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandleError(tt.err))
		})
	}
}
