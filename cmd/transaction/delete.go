package transaction

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/ui/views"
)

type DeleteCommandRunner struct {
	svc *service.Service
	yes bool
}

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	runner := &DeleteCommandRunner{svc: svc}

	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long:  `Delete a transaction and restore the balances it changed. This action cannot be undone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args)
		},
	}
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

func (r *DeleteCommandRunner) Run(ctx context.Context, args []string) error {
	txID, err := parseID(args[0])
	if err != nil {
		return err
	}

	tx, err := r.svc.Transaction.Get(ctx, txID)
	if err != nil {
		return err
	}
	names, _, err := accountNames(ctx, r.svc)
	if err != nil {
		return err
	}

	if !r.yes {
		if err := views.RenderTransactionDeletePreview(tx, names); err != nil {
			return err
		}

		var confirmation bool
		confirmPrompt := &survey.Confirm{
			Message: "Do you want to delete this transaction?",
			Default: false,
		}
		if err := survey.AskOne(confirmPrompt, &confirmation, ui.IconOption()); err != nil {
			return err
		}
		if !confirmation {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := r.svc.Transaction.Delete(ctx, tx); err != nil {
		return err
	}

	views.RenderTransactionDeleteSuccess(txID)
	return nil
}
