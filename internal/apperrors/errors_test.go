package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", Validation("amount", "must be positive"), ErrValidation},
		{"insufficient", &InsufficientBalanceError{AccountID: 1}, ErrInsufficientBalance},
		{"unknown type", UnknownTransactionType("debt_payment"), ErrUnknownType},
		{"persistence", &PersistenceError{Op: "create", Err: errors.New("disk full")}, ErrPersistence},
		{"conflict", &ConflictError{Resource: "account", ID: 3, Reason: "in use"}, ErrConflict},
		{"not found", NotFound("transaction", 9), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.True(t, IsTyped(wrapped))
		})
	}
}

func TestIsTypedRejectsPlainErrors(t *testing.T) {
	assert.False(t, IsTyped(errors.New("boom")))
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := errors.New("database is locked")
	err := error(&PersistenceError{Op: "update transaction", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "update transaction: database is locked", err.Error())
}

func TestInsufficientBalanceErrorAs(t *testing.T) {
	err := fmt.Errorf("transfer: %w", &InsufficientBalanceError{
		AccountID: 7,
		Requested: decimal.RequireFromString("1000"),
		Available: decimal.RequireFromString("500"),
		Currency:  "USD",
	})

	var ib *InsufficientBalanceError
	require.ErrorAs(t, err, &ib)
	assert.Equal(t, int64(7), ib.AccountID)
	assert.Contains(t, err.Error(), "requested 1000.00 USD, available 500.00 USD")
}

func TestUnknownTypeErrorMessage(t *testing.T) {
	assert.Equal(t, `unknown account type "savings"`, UnknownAccountType("savings").Error())
}
