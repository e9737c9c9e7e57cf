package views

import (
	"github.com/pterm/pterm"

	"github.com/hance08/tally/internal/constants"
	"github.com/hance08/tally/internal/model"
)

func RenderRateList(rates []*model.ExchangeRate) error {
	if len(rates) == 0 {
		pterm.Warning.Println("No exchange rates recorded")
		return nil
	}

	tableData := pterm.TableData{{"Pair", "Rate", "As Of"}}
	for _, r := range rates {
		tableData = append(tableData, []string{r.Base + "/" + r.Quote, r.Rate.String(), r.AsOf.Format(constants.DateFormat)})
	}

	pterm.DefaultSection.Printf("Exchange Rates")
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
