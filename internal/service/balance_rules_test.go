package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
)

func expectedSign(txType string, leg Leg, accType string) (int, bool) {
	card := accType == constants.AccountCreditCard
	switch {
	case txType == constants.TypeIncome && leg == LegDestination:
		return 1, true
	case (txType == constants.TypeExpense || txType == constants.TypeLoanPayment) && leg == LegSource:
		if card {
			return 1, true
		}
		return -1, true
	case txType == constants.TypeTransfer && leg == LegSource:
		return -1, true
	case txType == constants.TypeTransfer && leg == LegDestination:
		return 1, true
	case txType == constants.TypeInstallment && leg == LegSource:
		return -1, true
	}
	return 0, false
}

func TestSignMatrixIsExhaustive(t *testing.T) {
	one := decimal.NewFromInt(1)

	for _, txType := range constants.TransactionTypes {
		for _, leg := range []Leg{LegSource, LegDestination} {
			for _, accType := range constants.AccountTypes {
				name := txType + "/" + leg.String() + "/" + accType
				t.Run(name, func(t *testing.T) {
					got, err := signedEffect(txType, leg, accType, one)

					if txType == constants.TypeDebtPayment {
						assert.ErrorIs(t, err, apperrors.ErrUnknownType)
						return
					}
					sign, ok := expectedSign(txType, leg, accType)
					if !ok {
						assert.ErrorIs(t, err, apperrors.ErrValidation)
						return
					}
					require.NoError(t, err)
					assert.Equal(t, int64(sign), got.IntPart())
				})
			}
		}
	}
}

func TestSignedEffectUnknownAccountType(t *testing.T) {
	_, err := signedEffect(constants.TypeExpense, LegSource, "savings", decimal.NewFromInt(1))

	var ut *apperrors.UnknownTypeError
	require.ErrorAs(t, err, &ut)
	assert.Equal(t, "account", ut.Kind)
}

func TestSubscriptionTemplatesHaveNoLegs(t *testing.T) {
	legs, err := legsFor(constants.TypeSubscription)
	require.NoError(t, err)
	assert.Empty(t, legs)
}
