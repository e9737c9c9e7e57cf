package transaction

import (
	"context"
	"fmt"
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
	"github.com/hance08/tally/internal/validation"
)

const (
	menuBasicInfo = "Basic Info (description, date, status)"
	menuAmount    = "Change Amount"
	menuAccounts  = "Change Accounts"
	menuSchedule  = "Change Schedule"
	menuRetype    = "Change Type (re-enter everything)"
	menuSave      = "Save & Exit"
	menuCancel    = "Cancel (discard changes)"
)

type EditCommandRunner struct {
	svc      *service.Service
	flags    *addFlags
	changed  func(name string) bool
	names    map[int64]string
	accounts []*model.Account
}

func NewEditCmd(svc *service.Service) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction",
		Long: `Edit a transaction. With flags, only the given fields change; without
flags the command opens an interactive editor. Saving reverses the balance
effect of the stored transaction and applies the edited one in a single step.

Example: tally tx edit 42 --amount 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &EditCommandRunner{
				svc:     svc,
				flags:   flags,
				changed: cmd.Flags().Changed,
			}
			return runner.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVarP(&flags.Type, "type", "t", "", "New transaction type")
	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "New amount")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "New currency")
	cmd.Flags().StringVar(&flags.From, "from", "", "New source account name or ID")
	cmd.Flags().StringVar(&flags.To, "to", "", "New destination account name or ID")
	cmd.Flags().StringVar(&flags.Date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&flags.Description, "description", "d", "", "New description")
	cmd.Flags().IntVar(&flags.Installments, "installments", 0, "New number of installments")
	cmd.Flags().StringVar(&flags.Period, "period", "", "New subscription period")
	cmd.Flags().StringVar(&flags.Status, "status", "", "pending or completed")

	return cmd
}

func (r *EditCommandRunner) Run(ctx context.Context, args []string) error {
	txID, err := parseID(args[0])
	if err != nil {
		return err
	}

	tx, err := r.svc.Transaction.Get(ctx, txID)
	if err != nil {
		return err
	}
	if r.names, r.accounts, err = accountNames(ctx, r.svc); err != nil {
		return err
	}

	pterm.DefaultSection.Printf("Editing Transaction #%d", txID)
	if err := views.RenderTransactionDetail(tx, r.names); err != nil {
		return err
	}

	req := service.RequestFrom(tx)
	if r.anyFlag() {
		if err := r.applyFlags(ctx, &req); err != nil {
			return err
		}
		if _, err := r.svc.Transaction.Update(ctx, tx, req); err != nil {
			return err
		}
		pterm.Success.Printf("Transaction #%d updated successfully\n", txID)
		return nil
	}

	for {
		menuOptions := []string{menuBasicInfo, menuAmount, menuAccounts}
		if req.Type == constants.TypeInstallment || req.Type == constants.TypeSubscription {
			menuOptions = append(menuOptions, menuSchedule)
		}
		menuOptions = append(menuOptions, menuRetype, menuSave, menuCancel)

		editChoice, err := prompts.PromptSelect("What would you like to edit?", menuOptions, "")
		if err != nil {
			return err
		}

		switch editChoice {
		case menuBasicInfo:
			err = r.editBasicInfo(&req)
		case menuAmount:
			err = r.editAmount(&req)
		case menuAccounts:
			err = r.editAccounts(&req)
		case menuSchedule:
			err = r.editSchedule(&req)
		case menuRetype:
			req, err = prompts.PromptTransactionRequest(r.accounts, req)
		case menuSave:
			if err := views.RenderTransactionSummary(req, r.names); err != nil {
				return err
			}
			if _, err := r.svc.Transaction.Update(ctx, tx, req); err != nil {
				return err
			}
			pterm.Success.Printf("Transaction #%d updated successfully\n", txID)
			ui.Separator()
			return nil
		case menuCancel:
			pterm.Info.Println("Changes discarded")
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func (r *EditCommandRunner) anyFlag() bool {
	for _, name := range []string{"type", "amount", "currency", "from", "to", "date", "description", "installments", "period", "status"} {
		if r.changed(name) {
			return true
		}
	}
	return false
}

// applyFlags overwrites the fields of req whose flags were given.
func (r *EditCommandRunner) applyFlags(ctx context.Context, req *model.TransactionRequest) error {
	var err error
	if r.changed("type") {
		req.Type = strings.ToLower(r.flags.Type)
	}
	if r.changed("amount") {
		if req.Amount, err = utils.ParseAmount(r.flags.Amount); err != nil {
			return err
		}
	}
	if r.changed("currency") {
		req.Currency = strings.ToUpper(r.flags.Currency)
	}
	if r.changed("from") {
		if req.SourceAccountID, err = resolveAccountID(ctx, r.svc, r.flags.From); err != nil {
			return err
		}
	}
	if r.changed("to") {
		if req.DestinationAccountID, err = resolveAccountID(ctx, r.svc, r.flags.To); err != nil {
			return err
		}
	}
	if r.changed("date") {
		if req.Date, err = time.Parse(constants.DateFormat, r.flags.Date); err != nil {
			return err
		}
	}
	if r.changed("description") {
		req.Description = r.flags.Description
	}
	if r.changed("installments") {
		req.Installments = r.flags.Installments
	}
	if r.changed("period") {
		req.SubscriptionPeriod = r.flags.Period
	}
	if r.changed("status") {
		req.Status = r.flags.Status
	}
	return nil
}

func (r *EditCommandRunner) editBasicInfo(req *model.TransactionRequest) error {
	desc, err := prompts.PromptInput("Description:", req.Description, nil)
	if err != nil {
		return err
	}
	req.Description = desc

	if req.Date, err = prompts.PromptTransactionDate(req.Date); err != nil {
		return err
	}

	if req.Status, err = prompts.PromptTransactionStatus(req.Status); err != nil {
		return err
	}

	pterm.Success.Println("Basic info updated")
	ui.Separator()
	return nil
}

func (r *EditCommandRunner) editAmount(req *model.TransactionRequest) error {
	pterm.DefaultSection.Printf("Current amount: %s", utils.FormatAmount(req.Amount, req.Currency))

	amount, err := prompts.PromptAmount("New amount:", "", req.Amount.StringFixed(constants.MoneyScale), validation.ValidateAmount)
	if err != nil {
		return err
	}
	req.Amount = amount

	currency, err := prompts.PromptInput("Currency:", req.Currency, validation.ValidateCurrency)
	if err != nil {
		return err
	}
	req.Currency = currency

	pterm.Success.Printf("Amount changed to: %s\n", utils.FormatAmount(req.Amount, req.Currency))
	ui.Separator()
	return nil
}

func (r *EditCommandRunner) editAccounts(req *model.TransactionRequest) error {
	srcLabel, destLabel := views.LegLabels(req.Type)

	var allowed []string
	if req.Type == constants.TypeInstallment {
		allowed = []string{constants.AccountCreditCard}
	}

	if srcLabel != "" {
		id, err := prompts.PromptAccountSelection(r.accounts, allowed, fmt.Sprintf("Select %s:", srcLabel), req.SourceAccountID)
		if err != nil {
			return err
		}
		req.SourceAccountID = &id
	}
	if destLabel != "" {
		id, err := prompts.PromptAccountSelection(r.accounts, nil, fmt.Sprintf("Select %s:", destLabel), req.DestinationAccountID)
		if err != nil {
			return err
		}
		req.DestinationAccountID = &id
	}

	pterm.Success.Printf("Accounts: %s\n", views.Flow(r.names, req.SourceAccountID, req.DestinationAccountID))
	ui.Separator()
	return nil
}

func (r *EditCommandRunner) editSchedule(req *model.TransactionRequest) error {
	var err error
	switch req.Type {
	case constants.TypeInstallment:
		pterm.Warning.Println("Changing the count restarts the installment schedule")
		req.Installments, err = prompts.PromptInstallmentCount(req.Installments)
	case constants.TypeSubscription:
		req.SubscriptionPeriod, err = prompts.PromptSubscriptionPeriod(req.SubscriptionPeriod)
	}
	return err
}
