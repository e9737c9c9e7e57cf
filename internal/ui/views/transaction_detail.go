package views

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

func RenderTransactionDetail(tx *model.Transaction, names map[int64]string) error {
	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", fmt.Sprintf("%d", tx.ID)},
		{"Reference", tx.Reference},
		{"Type", ui.ColorByTransactionType(tx.Type, tx.Type)},
		{"Date", tx.Date.Format(constants.DateFormat)},
		{"Amount", utils.FormatAmount(tx.Amount, tx.Currency)},
		{"Description", orDash(tx.Description)},
		{"Status", tx.Status},
	}
	if tx.ParentTransactionID != nil {
		infoData = append(infoData, []string{"Subscription", fmt.Sprintf("#%d", *tx.ParentTransactionID)})
	}
	if err := renderFieldTable(infoData); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Accounts")
	srcLabel, destLabel := LegLabels(tx.Type)
	accountData := pterm.TableData{{"Role", "Account", "Posted"}}
	if srcLabel != "" {
		accountData = append(accountData, []string{srcLabel, AccountLabel(names, tx.SourceAccountID), posted(tx.SourceAmount)})
	}
	if destLabel != "" {
		accountData = append(accountData, []string{destLabel, AccountLabel(names, tx.DestinationAccountID), posted(tx.DestinationAmount)})
	}
	if tx.ExchangeRate.Valid {
		accountData = append(accountData, []string{"Rate", "fixed " + tx.ExchangeRate.Decimal.String(), ""})
	}
	if err := renderFieldTable(accountData); err != nil {
		return err
	}

	schedule := scheduleRows(tx)
	if len(schedule) == 1 {
		return nil
	}
	pterm.Println()
	ui.PrintL2Title("Schedule")
	return renderFieldTable(schedule)
}

func scheduleRows(tx *model.Transaction) pterm.TableData {
	rows := pterm.TableData{{"Field", "Value"}}

	switch {
	case tx.Type == constants.TypeInstallment:
		monthly := "-"
		if tx.MonthlyAmount.Valid {
			monthly = utils.FormatAmount(tx.MonthlyAmount.Decimal, tx.Currency)
		}
		rows = append(rows,
			[]string{"Installments", fmt.Sprintf("%d", tx.Installments)},
			[]string{"Remaining", fmt.Sprintf("%d", tx.RemainingInstallments)},
			[]string{"Monthly", monthly},
		)
	case tx.IsSubscription:
		rows = append(rows, []string{"Period", tx.SubscriptionPeriod})
	default:
		return rows
	}

	if tx.NextPaymentDate != nil {
		rows = append(rows, []string{"Next Payment", tx.NextPaymentDate.Format(constants.DateFormat)})
	}
	return rows
}

func renderFieldTable(data pterm.TableData) error {
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(data).
		Render()
}

// posted renders a leg amount in the account's own currency.
func posted(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return "-"
	}
	return amount.Decimal.StringFixed(constants.MoneyScale)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
