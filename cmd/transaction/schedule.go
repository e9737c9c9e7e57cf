package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
)

type subscriptionsRunner struct {
	svc  *service.Service
	date string
}

func NewSubscriptionsCmd(svc *service.Service) *cobra.Command {
	subsCmd := &cobra.Command{
		Use:     "subscriptions",
		Aliases: []string{"subs"},
		Short:   "Work with recurring subscriptions",
	}

	runner := &subscriptionsRunner{svc: svc}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Charge every subscription that is due",
		Long: `Record one expense for every subscription whose next payment date is on or
before the given date, and move each subscription's next payment forward.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context())
		},
	}
	runCmd.Flags().StringVar(&runner.date, "date", "", "Charge what is due up to this date (YYYY-MM-DD), defaults to today")

	subsCmd.AddCommand(runCmd)
	return subsCmd
}

func (r *subscriptionsRunner) Run(ctx context.Context) error {
	asOf := time.Now()
	if r.date != "" {
		var err error
		if asOf, err = time.Parse(constants.DateFormat, r.date); err != nil {
			return err
		}
	}

	spawned, runErr := r.svc.Transaction.RunDueSubscriptions(ctx, asOf)

	if len(spawned) == 0 && runErr == nil {
		pterm.Info.Println("No subscriptions due")
		return nil
	}
	if len(spawned) > 0 {
		names, _, err := accountNames(ctx, r.svc)
		if err != nil {
			return err
		}
		if err := views.NewTransactionListView().Render(views.NewTransactionListItems(spawned, names), len(spawned)); err != nil {
			return err
		}
	}
	if runErr != nil {
		failures := []error{runErr}
		if joined, ok := runErr.(interface{ Unwrap() []error }); ok {
			failures = joined.Unwrap()
		}
		pterm.Warning.Println("Some subscriptions could not be charged:")
		for _, f := range failures {
			pterm.Error.Println(f.Error())
		}
		return fmt.Errorf("%d subscription charge(s) failed", len(failures))
	}
	return nil
}

type installmentRunner struct {
	svc *service.Service
}

func NewInstallmentCmd(svc *service.Service) *cobra.Command {
	instCmd := &cobra.Command{
		Use:   "installment",
		Short: "Work with installment purchases",
	}

	runner := &installmentRunner{svc: svc}
	instCmd.AddCommand(&cobra.Command{
		Use:   "pay <transaction-id>",
		Short: "Mark the next installment as paid",
		Long: `Mark the next installment of a purchase as paid. Balances do not change:
the full purchase was charged to the card when it was recorded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args)
		},
	})
	return instCmd
}

func (r *installmentRunner) Run(ctx context.Context, args []string) error {
	txID, err := parseID(args[0])
	if err != nil {
		return err
	}

	tx, err := r.svc.Transaction.ProcessInstallmentPayment(ctx, txID)
	if err != nil {
		return err
	}

	if tx.RemainingInstallments == 0 {
		pterm.Success.Printf("Transaction #%d is fully paid\n", tx.ID)
		return nil
	}
	pterm.Success.Printf("Installment paid, %d remaining, next due %s\n",
		tx.RemainingInstallments, tx.NextPaymentDate.Format(constants.DateFormat))
	return nil
}
