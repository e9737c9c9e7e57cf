package service

import (
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/constants"
)

// Leg is the side of a transaction an account sits on.
type Leg int

const (
	LegSource Leg = iota
	LegDestination
)

func (l Leg) String() string {
	if l == LegDestination {
		return "destination"
	}
	return "source"
}

func (l Leg) field() string {
	return l.String() + "_account_id"
}

type signFunc func(decimal.Decimal) decimal.Decimal

func credit(amount decimal.Decimal) decimal.Decimal { return amount }
func debit(amount decimal.Decimal) decimal.Decimal  { return amount.Neg() }

type ruleKey struct {
	TxType      string
	Leg         Leg
	AccountType string
}

// transactionLegs lists, per transaction type, the legs whose balance moves.
// Subscription templates move nothing; only the expenses they spawn do.
var transactionLegs = map[string][]Leg{
	constants.TypeIncome:       {LegDestination},
	constants.TypeExpense:      {LegSource},
	constants.TypeTransfer:     {LegSource, LegDestination},
	constants.TypeInstallment:  {LegSource},
	constants.TypeLoanPayment:  {LegSource},
	constants.TypeSubscription: {},
}

var signMatrix = buildSignMatrix()

func buildSignMatrix() map[ruleKey]signFunc {
	m := make(map[ruleKey]signFunc)
	for _, accType := range constants.AccountTypes {
		spend := debit
		if accType == constants.AccountCreditCard {
			// card balances are debt: spending grows them
			spend = credit
		}

		m[ruleKey{constants.TypeIncome, LegDestination, accType}] = credit
		m[ruleKey{constants.TypeExpense, LegSource, accType}] = spend
		m[ruleKey{constants.TypeLoanPayment, LegSource, accType}] = spend
		m[ruleKey{constants.TypeTransfer, LegSource, accType}] = debit
		m[ruleKey{constants.TypeTransfer, LegDestination, accType}] = credit

		// NOTE: installments debit the source even on credit cards, unlike
		// expense and loan_payment. Kept as found; see DESIGN.md before
		// unifying.
		m[ruleKey{constants.TypeInstallment, LegSource, accType}] = debit
	}
	return m
}

func legsFor(txType string) ([]Leg, error) {
	legs, ok := transactionLegs[txType]
	if !ok {
		return nil, apperrors.UnknownTransactionType(txType)
	}
	return legs, nil
}

// signedEffect is the change amount makes to an account of accountType on
// leg of a txType transaction.
func signedEffect(txType string, leg Leg, accountType string, amount decimal.Decimal) (decimal.Decimal, error) {
	if _, err := legsFor(txType); err != nil {
		return decimal.Zero, err
	}
	sign, ok := signMatrix[ruleKey{txType, leg, accountType}]
	if !ok {
		if !constants.IsAccountType(accountType) {
			return decimal.Zero, apperrors.UnknownAccountType(accountType)
		}
		return decimal.Zero, apperrors.Validation(leg.field(), "is not used by "+txType+" transactions")
	}
	return sign(amount), nil
}
