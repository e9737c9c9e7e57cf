package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/utils"
)

// RenderTransactionSummary shows a request before it is saved.
func RenderTransactionSummary(req model.TransactionRequest, names map[int64]string) error {
	pterm.DefaultSection.Println("Transaction Summary")

	tableData := pterm.TableData{
		{"Field", "Value"},
		{"Type", req.Type},
		{"Date", req.Date.Format(constants.DateFormat)},
		{"Amount", utils.FormatAmount(req.Amount, req.Currency)},
		{"Accounts", Flow(names, req.SourceAccountID, req.DestinationAccountID)},
		{"Description", orDash(req.Description)},
	}
	switch req.Type {
	case constants.TypeInstallment:
		tableData = append(tableData, []string{"Installments", fmt.Sprintf("%d", req.Installments)})
	case constants.TypeSubscription:
		tableData = append(tableData, []string{"Period", req.SubscriptionPeriod})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
