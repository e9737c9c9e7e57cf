package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

type TransactionListItem struct {
	ID          int64
	Date        string
	Type        string
	Accounts    string
	Description string
	Amount      string
	Status      string
}

// NewTransactionListItems flattens txs for display. names maps account IDs
// to account names.
func NewTransactionListItems(txs []*model.Transaction, names map[int64]string) []TransactionListItem {
	items := make([]TransactionListItem, 0, len(txs))
	for _, tx := range txs {
		items = append(items, TransactionListItem{
			ID:          tx.ID,
			Date:        tx.Date.Format(constants.DateFormat),
			Type:        tx.Type,
			Accounts:    Flow(names, tx.SourceAccountID, tx.DestinationAccountID),
			Description: tx.Description,
			Amount:      utils.FormatAmount(tx.Amount, tx.Currency),
			Status:      tx.Status,
		})
	}
	return items
}

type TransactionListView struct{}

func NewTransactionListView() *TransactionListView {
	return &TransactionListView{}
}

func (v *TransactionListView) Render(items []TransactionListItem, limit int) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Showing recent transactions (limit: %d)", limit)

	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Accounts", "Description", "Amount", "Status"},
	}

	for _, item := range items {
		tableData = append(tableData, []string{
			fmt.Sprintf("%d", item.ID),
			item.Date,
			ui.ColorByTransactionType(item.Type, item.Type),
			ui.ColorByTransactionType(item.Type, item.Accounts),
			item.Description,
			ui.ColorByTransactionType(item.Type, item.Amount),
			item.Status,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}
