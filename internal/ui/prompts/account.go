package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/utils"
	"github.com/hance08/tally/internal/validation"
)

var accountTypeLabels = map[string]string{
	constants.AccountBankAccount:  "Bank Account",
	constants.AccountCreditCard:   "Credit Card",
	constants.AccountCryptoWallet: "Crypto Wallet",
	constants.AccountVirtualPOS:   "Virtual POS",
	constants.AccountCash:         "Cash",
	constants.AccountDebt:         "Debt",
}

// PromptAccountType prompts for account type selection
func PromptAccountType() (string, error) {
	selected := constants.AccountBankAccount

	var opts []huh.Option[string]
	for _, t := range constants.AccountTypes {
		opts = append(opts, huh.NewOption(accountTypeLabels[t], t))
	}

	err := huh.NewSelect[string]().
		Title("Account Type:").
		Options(opts...).
		Value(&selected).
		Run()
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return selected, nil
}

// PromptAccountName prompts for account name with validation
func PromptAccountName(validator func(string) error) (string, error) {
	return PromptInput("Account Name:", "", validator)
}

// PromptCurrency prompts for currency selection with common options
func PromptCurrency(defaultCurrency string) (string, error) {
	commonCurrencies := []string{
		"USD - US Dollar",
		"EUR - Euro",
		"TRY - Turkish Lira",
		"GBP - British Pound",
		"JPY - Japanese Yen",
		"Other (Custom)",
	}

	message := fmt.Sprintf("Currency (default: %s):", defaultCurrency)

	selected, err := PromptSelect(message, commonCurrencies, defaultCurrency)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}

	if selected == "Other (Custom)" {
		return promptCurrencyCode()
	}

	return strings.Split(selected, " ")[0], nil
}

func promptCurrencyCode() (string, error) {
	code, err := PromptInput("Enter currency code (ISO 4217):", "", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("currency code is required")
		}
		return validation.ValidateCurrency(s)
	})
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return strings.ToUpper(strings.TrimSpace(code)), nil
}

// PromptInitialBalance prompts for the opening balance
func PromptInitialBalance() (decimal.Decimal, error) {
	return PromptAmount("Initial Balance:", "Press Enter for 0", "0", validation.ValidateOptionalAmount)
}

// PromptCreditLimit asks for a card's limit. Empty means no limit.
func PromptCreditLimit() (decimal.NullDecimal, error) {
	var limit string

	err := huh.NewInput().
		Title("Credit Limit:").
		Description("Leave empty for no limit").
		Value(&limit).
		Validate(validation.ValidateOptionalAmount).
		Run()
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return utils.ParseOptionalAmount(limit)
}
