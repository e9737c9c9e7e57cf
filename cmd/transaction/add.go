package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/hance08/tally/internal/utils"
)

type addFlags struct {
	Type         string
	Amount       string
	Currency     string
	From         string
	To           string
	Date         string
	Description  string
	Installments int
	Period       string
	Status       string
	Yes          bool
}

type AddCommandRunner struct {
	svc   *service.Service
	flags *addFlags
}

func NewAddCmd(svc *service.Service) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"a"},
		Short:   "Record a new transaction",
		Long: `Record a new transaction. Without --type the command walks you through it.

Types: income (--to), expense (--from), transfer (--from, --to),
installment (--from a credit card, --installments), subscription (--from, --period),
loan_payment (--from).

Example: tally tx add -t expense -a 12.50 --from Visa -d "Lunch"
         tally tx add -t transfer -a 100 --from Checking --to Savings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &AddCommandRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Transaction type")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "Amount (positive)")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Currency of the amount (defaults to the account's)")
	cmd.Flags().StringVar(&flags.From, "from", "", "Source account name or ID")
	cmd.Flags().StringVar(&flags.To, "to", "", "Destination account name or ID")
	cmd.Flags().StringVar(&flags.Date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVarP(&flags.Description, "description", "d", "", "Description")
	cmd.Flags().IntVar(&flags.Installments, "installments", 0, "Number of monthly installments")
	cmd.Flags().StringVar(&flags.Period, "period", "", "Subscription period ("+strings.Join(constants.Periods, ", ")+")")
	cmd.Flags().StringVar(&flags.Status, "status", "", "pending or completed")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

func (r *AddCommandRunner) Run(ctx context.Context) error {
	names, accounts, err := accountNames(ctx, r.svc)
	if err != nil {
		return err
	}

	var req model.TransactionRequest
	if r.flags.Type != "" {
		req, err = r.fromFlags(ctx, accounts)
	} else {
		ui.PrintL1Title("New Transaction")
		req, err = prompts.PromptTransactionRequest(accounts, model.TransactionRequest{})
	}
	if err != nil {
		return err
	}

	if err := views.RenderTransactionSummary(req, names); err != nil {
		return err
	}
	if !r.flags.Yes {
		ok, err := prompts.PromptConfirm("Save this transaction?", true)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Transaction discarded")
			return nil
		}
	}

	tx, err := r.svc.Transaction.Create(ctx, req)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Transaction #%d recorded\n", tx.ID)
	ui.Separator()
	return nil
}

func (r *AddCommandRunner) fromFlags(ctx context.Context, accounts []*model.Account) (model.TransactionRequest, error) {
	req := model.TransactionRequest{
		Type:               strings.ToLower(r.flags.Type),
		Description:        r.flags.Description,
		Installments:       r.flags.Installments,
		SubscriptionPeriod: r.flags.Period,
		Status:             r.flags.Status,
	}

	amount, err := utils.ParseAmount(r.flags.Amount)
	if err != nil {
		return req, err
	}
	req.Amount = amount

	if req.SourceAccountID, err = resolveAccountID(ctx, r.svc, r.flags.From); err != nil {
		return req, err
	}
	if req.DestinationAccountID, err = resolveAccountID(ctx, r.svc, r.flags.To); err != nil {
		return req, err
	}

	req.Date = time.Now()
	if r.flags.Date != "" {
		if req.Date, err = time.Parse(constants.DateFormat, r.flags.Date); err != nil {
			return req, err
		}
	}

	req.Currency = strings.ToUpper(r.flags.Currency)
	if req.Currency == "" {
		req.Currency = model.CurrencyOf(accounts, req.SourceAccountID, req.DestinationAccountID)
	}
	if req.Currency == "" {
		req.Currency = r.svc.Account.DefaultCurrency()
	}
	return req, nil
}
