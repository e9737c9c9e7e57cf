package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

func RenderTransactionDeletePreview(tx *model.Transaction, names map[int64]string) error {
	pterm.Warning.Printf("About to delete transaction #%d:\n", tx.ID)

	deletionInfo := pterm.TableData{
		{"Date", tx.Date.Format(constants.DateFormat)},
		{"Type", tx.Type},
		{"Amount", utils.FormatAmount(tx.Amount, tx.Currency)},
		{"Accounts", Flow(names, tx.SourceAccountID, tx.DestinationAccountID)},
		{"Description", orDash(tx.Description)},
	}

	if err := pterm.DefaultTable.WithData(deletionInfo).Render(); err != nil {
		return err
	}
	if tx.IsSubscription {
		pterm.Info.Println("Charges already made by this subscription are kept.")
	} else {
		pterm.Info.Println("Account balances will be restored.")
	}
	pterm.Warning.Println("This action cannot be undone!")
	return nil
}

func RenderTransactionDeleteSuccess(id int64) {
	pterm.Success.Printf("Transaction #%d deleted successfully\n", id)
	ui.Separator()
}
