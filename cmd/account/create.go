package account

import (
	"context"
	"strings"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/ui"
	"github.com/hance08/tally/internal/ui/prompts"
	"github.com/hance08/tally/internal/ui/views"
	"github.com/hance08/tally/internal/utils"
	"github.com/hance08/tally/internal/validation"
)

type createFlags struct {
	Name     string
	Type     string
	Currency string
	Balance  string
	Limit    string
	Yes      bool
}

type CreateCommandRunner struct {
	svc   *service.Service
	flags *createFlags

	req     model.AccountRequest
	opening decimal.Decimal
}

func NewCreateCmd(svc *service.Service) *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account.",
		Long: `Create a new account. Without --name the command asks for every field.

Account types: bank_account, credit_card, crypto_wallet, virtual_pos, cash, debt.
A credit card balance is what you owe on it; spending on the card grows it.

Example: tally account create -n Checking -t bank_account -b 1500.00
         tally account create -n Visa -t credit_card --limit 5000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &CreateCommandRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&flags.Name, "name", "n", "", "Account name")
	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "Account type")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Currency code (defaults to the configured currency)")
	cmd.Flags().StringVarP(&flags.Balance, "balance", "b", "", "Opening balance, recorded as an income transaction")
	cmd.Flags().StringVar(&flags.Limit, "limit", "", "Credit limit (credit_card only)")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip the confirmation")

	return cmd
}

func (r *CreateCommandRunner) Run(ctx context.Context) error {
	var err error
	if r.flags.Name != "" {
		err = r.fromFlags()
	} else {
		err = r.interactive()
	}
	if err != nil {
		return err
	}

	if err := views.RenderAccountSummary(views.AccountSummaryItem{
		Name:           r.req.Name,
		Type:           r.req.Type,
		Currency:       r.req.Currency,
		OpeningBalance: r.opening,
		CreditLimit:    r.req.CreditLimit,
	}); err != nil {
		return err
	}

	if !r.flags.Yes {
		ok, err := prompts.PromptConfirm("Create this account?", true)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Account creation cancelled")
			return nil
		}
	}

	acc, err := r.svc.Account.OpenAccountWithBalance(ctx, r.req, r.opening)
	if err != nil {
		return err
	}
	return views.RenderAccountSuccess(acc)
}

func (r *CreateCommandRunner) fromFlags() error {
	r.req = model.AccountRequest{
		Name:     r.flags.Name,
		Type:     strings.ToLower(r.flags.Type),
		Currency: strings.ToUpper(r.flags.Currency),
	}
	if r.req.Type == "" {
		r.req.Type = constants.AccountBankAccount
	}

	var err error
	r.opening = decimal.Zero
	if r.flags.Balance != "" {
		if r.opening, err = utils.ParseAmount(r.flags.Balance); err != nil {
			return err
		}
	}
	if r.req.CreditLimit, err = utils.ParseOptionalAmount(r.flags.Limit); err != nil {
		return err
	}
	return nil
}

func (r *CreateCommandRunner) interactive() error {
	ui.PrintL1Title("New Account")

	nameValidator := validation.NewAccountValidator(r.svc.Account.Lookup())
	name, err := prompts.PromptAccountName(nameValidator.ValidateNewAccountName)
	if err != nil {
		return err
	}
	accType, err := prompts.PromptAccountType()
	if err != nil {
		return err
	}
	currency, err := prompts.PromptCurrency(r.defaultCurrency())
	if err != nil {
		return err
	}

	r.req = model.AccountRequest{Name: strings.TrimSpace(name), Type: accType, Currency: currency}

	if accType == constants.AccountCreditCard {
		if r.req.CreditLimit, err = prompts.PromptCreditLimit(); err != nil {
			return err
		}
		r.opening = decimal.Zero
		return nil
	}

	r.opening, err = prompts.PromptInitialBalance()
	return err
}

func (r *CreateCommandRunner) defaultCurrency() string {
	if r.flags.Currency != "" {
		return strings.ToUpper(r.flags.Currency)
	}
	return r.svc.Account.DefaultCurrency()
}
