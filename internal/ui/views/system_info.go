package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath        string
	DBPath            string
	DBExists          bool // true = Found, false = Not Found
	DefaultCurrency   string
	ReferenceCurrency string
	RateCache         string
	LogLevel          string
	AppDataDir        string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	cache := data.RateCache
	if cache == "" {
		cache = pterm.Gray("disabled")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Default Currency", data.DefaultCurrency},
		{"Reference Currency", data.ReferenceCurrency},
		{"Rate Cache", cache},
		{"Log Level", data.LogLevel},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
