package prompts

import "github.com/charmbracelet/huh"

func PromptInitCurrency(currDefault string) (string, error) {
	selection := currDefault

	err := huh.NewSelect[string]().
		Title("Welcome to Tally! This is the first run, please set the default currency:").
		Description("New accounts use this currency unless you pick another one.").
		Options(
			huh.NewOption("USD", "USD"),
			huh.NewOption("EUR", "EUR"),
			huh.NewOption("TRY", "TRY"),
			huh.NewOption("GBP", "GBP"),
			huh.NewOption("JPY", "JPY"),
			huh.NewOption("Other", "Other"),
		).
		Value(&selection).
		Run()

	if err != nil {
		return "", err
	}

	if selection != "Other" {
		return selection, nil
	}
	return promptCurrencyCode()
}
