package transaction

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
)

type ShowCommandRunner struct {
	svc *service.Service
}

func NewShowCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ShowCommandRunner{
				svc: svc,
			}
			return runner.Run(cmd.Context(), args)
		},
	}
}

func (r *ShowCommandRunner) Run(ctx context.Context, args []string) error {
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

	return views.RenderTransactionDetail(tx, names)
}
