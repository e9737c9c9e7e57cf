package account

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
)

type DeleteCommandRunner struct {
	svc *service.Service
	yes bool
}

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	runner := &DeleteCommandRunner{svc: svc}

	cmd := &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete an account that no transaction uses",
		Long: `Delete an account by name or ID. Accounts that still have transactions
can only be deactivated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

func (r *DeleteCommandRunner) Run(ctx context.Context, arg string) error {
	acc, err := resolveAccount(ctx, r.svc, arg)
	if err != nil {
		return err
	}

	if !r.yes {
		confirmation := false
		prompt := &survey.Confirm{
			Message: "Delete account '" + acc.Name + "'?",
			Default: false,
		}
		if err := survey.AskOne(prompt, &confirmation, ui.IconOption()); err != nil {
			return err
		}
		if !confirmation {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := r.svc.Account.DeleteAccount(ctx, acc.ID); err != nil {
		return err
	}
	pterm.Success.Printf("Account '%s' deleted\n", acc.Name)
	return nil
}

type DeactivateCommandRunner struct {
	svc *service.Service
}

func NewDeactivateCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <account>",
		Short: "Stop an account from taking new transactions",
		Long:  `Deactivate an account by name or ID. Its history and balance are kept.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &DeactivateCommandRunner{svc: svc}
			return runner.Run(cmd.Context(), args[0])
		},
	}
}

func (r *DeactivateCommandRunner) Run(ctx context.Context, arg string) error {
	acc, err := resolveAccount(ctx, r.svc, arg)
	if err != nil {
		return err
	}
	if err := r.svc.Account.DeactivateAccount(ctx, acc.ID); err != nil {
		return err
	}
	pterm.Success.Printf("Account '%s' deactivated\n", acc.Name)
	return nil
}
