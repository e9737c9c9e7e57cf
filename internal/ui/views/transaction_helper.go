package views

import (
	"fmt"

	"github.com/hance08/tally/internal/constants"
)

// LegLabels names the source and destination side of a transaction type the
// way a user thinks about it.
func LegLabels(txType string) (source, destination string) {
	switch txType {
	case constants.TypeIncome:
		return "", "receiving account"
	case constants.TypeExpense, constants.TypeLoanPayment:
		return "payment account", ""
	case constants.TypeInstallment:
		return "credit card", ""
	case constants.TypeSubscription:
		return "charged account", ""
	case constants.TypeTransfer:
		return "source account", "receiving account"
	default:
		return "account", "account"
	}
}

// AccountLabel resolves an account reference to its name, falling back to
// the bare ID for accounts that are gone.
func AccountLabel(names map[int64]string, id *int64) string {
	if id == nil {
		return "-"
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return fmt.Sprintf("[ID: %d]", *id)
}

// Flow renders the accounts a transaction moves money between.
func Flow(names map[int64]string, src, dest *int64) string {
	switch {
	case src != nil && dest != nil:
		return AccountLabel(names, src) + " -> " + AccountLabel(names, dest)
	case dest != nil:
		return "-> " + AccountLabel(names, dest)
	default:
		return AccountLabel(names, src)
	}
}
