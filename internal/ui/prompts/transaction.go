package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
	"github.com/hance08/tally/internal/utils"
	"github.com/hance08/tally/internal/validation"
)

var transactionTypeLabels = []huh.Option[string]{
	huh.NewOption("Record Expense", constants.TypeExpense),
	huh.NewOption("Record Income", constants.TypeIncome),
	huh.NewOption("Transfer", constants.TypeTransfer),
	huh.NewOption("Installment Purchase (credit card)", constants.TypeInstallment),
	huh.NewOption("Subscription", constants.TypeSubscription),
	huh.NewOption("Loan Payment", constants.TypeLoanPayment),
}

// PromptTransactionType prompts for transaction type selection
func PromptTransactionType(defaultType string) (string, error) {
	selected := defaultType
	if selected == "" {
		selected = constants.TypeExpense
	}

	err := huh.NewSelect[string]().
		Title("Choose the transaction type:").
		Options(transactionTypeLabels...).
		Value(&selected).
		Run()
	return selected, err
}

// PromptTransactionStatus prompts for transaction status
func PromptTransactionStatus(defaultStatus string) (string, error) {
	if defaultStatus == "" {
		defaultStatus = constants.StatusCompleted
	}
	return PromptSelect("Transaction status:", []string{constants.StatusCompleted, constants.StatusPending}, defaultStatus)
}

// PromptTransactionDate prompts for transaction date
func PromptTransactionDate(defaultDate time.Time) (time.Time, error) {
	if defaultDate.IsZero() {
		defaultDate = time.Now()
	}
	date, err := PromptDate(
		"Transaction Date (YYYY-MM-DD):",
		defaultDate.Format(constants.DateFormat),
		"Press Enter to keep the date shown",
	)
	if err != nil {
		return time.Time{}, err
	}

	return time.Parse(constants.DateFormat, date)
}

// PromptAccountSelection prompts for one of the active accounts of
// allowedTypes. An empty allowedTypes accepts every type.
func PromptAccountSelection(accounts []*model.Account, allowedTypes []string, message string, current *int64) (int64, error) {
	typeMap := make(map[string]bool)
	for _, t := range allowedTypes {
		typeMap[t] = true
	}

	var opts []huh.Option[int64]
	for _, acc := range accounts {
		if !acc.IsActive() {
			continue
		}
		if len(typeMap) > 0 && !typeMap[acc.Type] {
			continue
		}
		display := fmt.Sprintf("%s (%s, Balance: %s)", acc.Name, acc.Type, utils.FormatAmount(acc.Balance, acc.Currency))
		opts = append(opts, huh.NewOption(display, acc.ID))
	}

	if len(opts) == 0 {
		if len(allowedTypes) > 0 {
			return 0, fmt.Errorf("no active accounts (type: %s)", strings.Join(allowedTypes, ", "))
		}
		return 0, fmt.Errorf("no active accounts, create one with 'tally account create'")
	}

	var selected int64
	if current != nil {
		selected = *current
	}

	err := huh.NewSelect[int64]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(15).
		Run()
	return selected, err
}

// PromptSubscriptionPeriod prompts for how often a subscription charges
func PromptSubscriptionPeriod(defaultPeriod string) (string, error) {
	if defaultPeriod == "" {
		defaultPeriod = constants.PeriodMonthly
	}
	return PromptSelect("Billing period:", constants.Periods, defaultPeriod)
}

// PromptInstallmentCount prompts for the number of monthly installments
func PromptInstallmentCount(defaultCount int) (int, error) {
	def := ""
	if defaultCount > 0 {
		def = fmt.Sprintf("%d", defaultCount)
	}

	answer, err := PromptInput("Number of installments:", def, func(s string) error {
		if s == "" && def != "" {
			return nil
		}
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 1 || n > 360 {
			return fmt.Errorf("enter a whole number between 1 and 360")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var n int
	_, err = fmt.Sscanf(answer, "%d", &n)
	return n, err
}

// PromptTransactionRequest walks through every field the chosen type needs.
// base carries the defaults shown to the user; pass a zero request for a new
// transaction.
func PromptTransactionRequest(accounts []*model.Account, base model.TransactionRequest) (model.TransactionRequest, error) {
	req := base

	txType, err := PromptTransactionType(base.Type)
	if err != nil {
		return req, err
	}
	req.Type = txType
	req.SourceAccountID, req.DestinationAccountID = nil, nil

	switch txType {
	case constants.TypeIncome:
		id, err := PromptAccountSelection(accounts, nil, "Receiving account:", base.DestinationAccountID)
		if err != nil {
			return req, err
		}
		req.DestinationAccountID = &id
	case constants.TypeTransfer:
		src, err := PromptAccountSelection(accounts, nil, "From account:", base.SourceAccountID)
		if err != nil {
			return req, err
		}
		dest, err := PromptAccountSelection(accounts, nil, "To account:", base.DestinationAccountID)
		if err != nil {
			return req, err
		}
		req.SourceAccountID, req.DestinationAccountID = &src, &dest
	case constants.TypeInstallment:
		id, err := PromptAccountSelection(accounts, []string{constants.AccountCreditCard}, "Credit card:", base.SourceAccountID)
		if err != nil {
			return req, err
		}
		req.SourceAccountID = &id
	default:
		id, err := PromptAccountSelection(accounts, nil, "Payment account:", base.SourceAccountID)
		if err != nil {
			return req, err
		}
		req.SourceAccountID = &id
	}

	defaultAmount := ""
	if !base.Amount.IsZero() {
		defaultAmount = base.Amount.StringFixed(constants.MoneyScale)
	}
	req.Amount, err = PromptAmount("Amount:", "", defaultAmount, validation.ValidateAmount)
	if err != nil {
		return req, err
	}

	currency := base.Currency
	if currency == "" {
		currency = model.CurrencyOf(accounts, req.SourceAccountID, req.DestinationAccountID)
	}
	currency, err = PromptInput("Currency:", currency, validation.ValidateCurrency)
	if err != nil {
		return req, err
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(currency))

	switch txType {
	case constants.TypeInstallment:
		if req.Installments, err = PromptInstallmentCount(base.Installments); err != nil {
			return req, err
		}
	case constants.TypeSubscription:
		if req.SubscriptionPeriod, err = PromptSubscriptionPeriod(base.SubscriptionPeriod); err != nil {
			return req, err
		}
	}

	if req.Date, err = PromptTransactionDate(base.Date); err != nil {
		return req, err
	}

	desc, err := PromptInput("Description (optional):", base.Description, nil)
	if err != nil {
		return req, err
	}
	req.Description = desc

	return req, nil
}
