package views

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/utils"
)

type AccountListView struct{}

func NewAccountListView() *AccountListView {
	return &AccountListView{}
}

func (v *AccountListView) Render(accounts []*model.Account) error {
	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	tableData := pterm.TableData{{"ID", "Name", "Type", "Balance", "Credit Limit", "Status"}}

	for _, acc := range accounts {
		limit := "-"
		if acc.CreditLimit.Valid {
			limit = utils.FormatAmount(acc.CreditLimit.Decimal, acc.Currency)
		}

		name := ui.ColorByAccountType(acc.Type, acc.Name)
		accType := ui.ColorByAccountType(acc.Type, acc.Type)
		balance := ui.ColorByAccountType(acc.Type, utils.FormatAmount(acc.Balance, acc.Currency))
		status := acc.Status
		if !acc.IsActive() {
			name, accType, balance = pterm.Gray(acc.Name), pterm.Gray(acc.Type), pterm.Gray(utils.FormatAmount(acc.Balance, acc.Currency))
			status = pterm.Gray(constants.AccountStatusInactive)
		}

		tableData = append(tableData, []string{fmt.Sprintf("%d", acc.ID), name, accType, balance, limit, status})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))

	return nil
}
