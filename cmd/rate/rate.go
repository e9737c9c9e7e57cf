package rate

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui/views"
)

func NewRateCmd(svc *service.Service) *cobra.Command {
	rateCmd := &cobra.Command{
		Use:   "rate",
		Short: "Record and list exchange rates",
		Long: `Exchange rates convert transaction amounts into account currencies.
A rate applies from its date until a newer one is recorded for the pair.`,
	}

	rateCmd.AddCommand(NewSetCmd(svc))
	rateCmd.AddCommand(NewListCmd(svc))

	return rateCmd
}

type SetCommandRunner struct {
	svc  *service.Service
	date string
}

func NewSetCmd(svc *service.Service) *cobra.Command {
	runner := &SetCommandRunner{svc: svc}

	cmd := &cobra.Command{
		Use:   "set <BASE> <QUOTE> <RATE>",
		Short: "Record how many QUOTE units one BASE unit buys",
		Long: `Record how many QUOTE units one BASE unit buys.

Example: tally rate set USD TRY 32.15 --date 2025-01-01`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVar(&runner.date, "date", "", "First day the rate applies (YYYY-MM-DD), defaults to today")

	return cmd
}

func (r *SetCommandRunner) Run(ctx context.Context, args []string) error {
	value, err := decimal.NewFromString(args[2])
	if err != nil {
		return err
	}

	asOf := time.Now()
	if r.date != "" {
		if asOf, err = time.Parse(constants.DateFormat, r.date); err != nil {
			return err
		}
	}

	saved, err := r.svc.Rate.SetRate(ctx, args[0], args[1], value, asOf)
	if err != nil {
		return err
	}
	pterm.Success.Printf("1 %s = %s %s from %s\n", saved.Base, saved.Rate.String(), saved.Quote, saved.AsOf.Format(constants.DateFormat))
	return nil
}

type ListCommandRunner struct {
	svc   *service.Service
	limit int
}

func NewListCmd(svc *service.Service) *cobra.Command {
	runner := &ListCommandRunner{svc: svc}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded exchange rates, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&runner.limit, "limit", "l", constants.DefaultListLimit, "Maximum number of rates to display")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	rates, err := r.svc.Rate.ListRates(ctx, r.limit)
	if err != nil {
		return err
	}
	return views.RenderRateList(rates)
}
