package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
)

type listFlags struct {
	Type string
	All  bool
}

type ListCommandRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts with their balances",
		Long: `List all accounts with their current balances.
You can filter by account type or include inactive accounts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Filter accounts by type ("+strings.Join(constants.AccountTypes, ", ")+")")
	cmd.Flags().BoolVarP(&flags.All, "all", "a", false, "Include inactive accounts")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	if r.flags.Type != "" && !constants.IsAccountType(r.flags.Type) {
		return fmt.Errorf("unknown account type %q", r.flags.Type)
	}

	accounts, err := r.svc.Account.ListAccounts(ctx, r.flags.All)
	if err != nil {
		return err
	}

	return views.NewAccountListView().Render(filterByType(accounts, r.flags.Type))
}

func filterByType(accounts []*model.Account, accType string) []*model.Account {
	if accType == "" {
		return accounts
	}
	var filtered []*model.Account
	for _, acc := range accounts {
		if acc.Type == accType {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}
