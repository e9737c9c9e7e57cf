package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/ui/views"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.app.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	appDir := getAppDataDirOrUnknown()
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = appDir + string(os.PathSeparator) + "tally.db"
	}

	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	return views.RenderSystemInfo(views.SystemInfoItem{
		ConfigPath:        configPath,
		DBPath:            dbPath,
		DBExists:          dbExists,
		DefaultCurrency:   cfg.Defaults.Currency,
		ReferenceCurrency: cfg.Currency.Reference,
		RateCache:         cfg.Currency.RedisAddr,
		LogLevel:          cfg.Logging.Level,
		AppDataDir:        appDir,
	})
}

func getAppDataDirOrUnknown() string {
	dir, err := getAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
