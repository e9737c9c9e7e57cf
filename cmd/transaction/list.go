package transaction

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
)

type listFlags struct {
	Account string
	Type    string
	Limit   int
}

type listRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List recent transactions",
		Long: `List recent transactions, newest first.

This command displays a table of transactions with their date, type,
accounts, description, amount, and status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Filter transactions by account name or ID")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Filter transactions by type")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", constants.DefaultListLimit, "Maximum number of transactions to display")

	return cmd
}

func (r *listRunner) Run(ctx context.Context) error {
	filter := model.TransactionFilter{Type: r.flags.Type, Limit: r.flags.Limit}

	if r.flags.Account != "" {
		id, err := resolveAccountID(ctx, r.svc, r.flags.Account)
		if err != nil {
			return err
		}
		filter.AccountID = *id
		pterm.Info.Printf("Showing transactions for account: %s\n\n", r.flags.Account)
	}

	transactions, err := r.svc.Transaction.List(ctx, filter)
	if err != nil {
		return err
	}
	names, _, err := accountNames(ctx, r.svc)
	if err != nil {
		return err
	}

	return views.NewTransactionListView().Render(views.NewTransactionListItems(transactions, names), r.flags.Limit)
}
