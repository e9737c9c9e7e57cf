package views

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

type AccountSummaryItem struct {
	Name           string
	Type           string
	Currency       string
	OpeningBalance decimal.Decimal
	CreditLimit    decimal.NullDecimal
}

func RenderAccountSummary(data AccountSummaryItem) error {
	ui.Separator()

	limitStr := "None"
	if data.CreditLimit.Valid {
		limitStr = utils.FormatAmount(data.CreditLimit.Decimal, data.Currency)
	}

	tableData := pterm.TableData{
		{pterm.Blue("Name"), data.Name},
		{pterm.Blue("Type"), data.Type},
		{pterm.Blue("Currency"), data.Currency},
		{pterm.Blue("Opening Balance"), utils.FormatAmount(data.OpeningBalance, data.Currency)},
		{pterm.Blue("Credit Limit"), limitStr},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderAccountSuccess(acc *model.Account) error {
	ui.Separator()

	tableData := pterm.TableData{
		{pterm.Blue("Account ID"), fmt.Sprintf("%d", acc.ID)},
		{pterm.Blue("Name"), acc.Name},
		{pterm.Blue("Balance"), utils.FormatAmount(acc.Balance, acc.Currency)},
	}

	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Success.Print("Account created successfully!\n")

	return nil
}
