package transaction

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
)

func NewTransactionCmd(svc *service.Service) *cobra.Command {
	txCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
		Long:    "Record, view, edit and delete transactions, and run scheduled payments.",
	}

	txCmd.AddCommand(NewAddCmd(svc))
	txCmd.AddCommand(NewEditCmd(svc))
	txCmd.AddCommand(NewDeleteCmd(svc))
	txCmd.AddCommand(NewShowCmd(svc))
	txCmd.AddCommand(NewListCmd(svc))
	txCmd.AddCommand(NewSubscriptionsCmd(svc))
	txCmd.AddCommand(NewInstallmentCmd(svc))

	return txCmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid transaction ID: %s", arg)
	}
	return id, nil
}

// accountNames maps every account, active or not, to its name.
func accountNames(ctx context.Context, svc *service.Service) (map[int64]string, []*model.Account, error) {
	accounts, err := svc.Account.ListAccounts(ctx, true)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[int64]string, len(accounts))
	for _, acc := range accounts {
		names[acc.ID] = acc.Name
	}
	return names, accounts, nil
}

// resolveAccountID turns a name or numeric ID flag into an account ID.
func resolveAccountID(ctx context.Context, svc *service.Service, arg string) (*int64, error) {
	if arg == "" {
		return nil, nil
	}
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return &id, nil
	}
	acc, err := svc.Account.GetAccountByName(ctx, arg)
	if err != nil {
		return nil, err
	}
	return &acc.ID, nil
}
