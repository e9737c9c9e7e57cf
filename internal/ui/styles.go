package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

func Separator() {
	pterm.Println(pterm.Gray("---------------------------------------------------------"))
}

// ColorByAccountType paints s green for asset accounts, red for debt and
// blue for the rest.
func ColorByAccountType(accountType, s string) string {
	switch accountType {
	case constants.AccountBankAccount, constants.AccountCash:
		return pterm.Green(s)
	case constants.AccountCreditCard, constants.AccountDebt:
		return pterm.Red(s)
	case constants.AccountCryptoWallet, constants.AccountVirtualPOS:
		return pterm.Blue(s)
	default:
		return s
	}
}

// ColorByTransactionType paints s by the direction money moves.
func ColorByTransactionType(txType, s string) string {
	switch txType {
	case constants.TypeIncome:
		return pterm.Green(s)
	case constants.TypeExpense, constants.TypeInstallment, constants.TypeLoanPayment:
		return pterm.Red(s)
	case constants.TypeTransfer:
		return pterm.Blue(s)
	case constants.TypeSubscription:
		return pterm.Magenta(s)
	default:
		return s
	}
}
