package account

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
)

func NewAccountCmd(svc *service.Service) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"acc"},
		Short:   "Create, list, deactivate and delete accounts.",
		Long:    `Create, list, deactivate and delete accounts.`,
	}

	accountCmd.AddCommand(NewCreateCmd(svc))
	accountCmd.AddCommand(NewListCmd(svc))
	accountCmd.AddCommand(NewDeactivateCmd(svc))
	accountCmd.AddCommand(NewDeleteCmd(svc))

	return accountCmd
}

// resolveAccount accepts either a numeric ID or an account name.
func resolveAccount(ctx context.Context, svc *service.Service, arg string) (*model.Account, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return svc.Account.GetAccount(ctx, id)
	}
	return svc.Account.GetAccountByName(ctx, arg)
}
