package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hance08/tally/cmd/account"
	"github.com/hance08/tally/cmd/rate"
	"github.com/hance08/tally/cmd/transaction"
	"github.com/hance08/tally/internal/app"
	"github.com/hance08/tally/internal/apperrors"
	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/errhandler"
	"github.com/hance08/tally/internal/logger"
	"github.com/hance08/tally/internal/ui/prompts"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	os.Exit(run(migrations, os.Args[1:]))
}

func run(migrations fs.FS, args []string) int {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfgFile = configFlag(args)
	if err := initConfig(); err != nil {
		pterm.Error.Println(capitalize(err.Error()))
		return errhandler.ExitFailure
	}

	application, cleanup, err := app.NewApp(ctx, cfg, migrations)
	if err != nil {
		pterm.Error.Println(capitalize(err.Error()))
		return errhandler.ExitFailure
	}
	defer cleanup()
	ctx = logger.WithContext(ctx, application.Log)

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "tally keeps the balances of your accounts in step with every transaction",
		Long: `tally is a personal ledger for bank accounts, credit cards, wallets and debts.
Every income, expense, transfer, installment and subscription moves the
balances of the accounts it touches, and editing or deleting it moves them back.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(account.NewAccountCmd(application.Service))
	rootCmd.AddCommand(transaction.NewTransactionCmd(application.Service))
	rootCmd.AddCommand(rate.NewRateCmd(application.Service))
	rootCmd.AddCommand(NewInfoCmd(application))

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log := logger.FromContext(ctx)
		log.Debug().Err(err).Strs("args", args).Msg("command failed")
		if apperrors.IsTyped(err) || errhandler.IsInterrupt(err) {
			return errhandler.HandleError(err)
		}
		// cobra usage errors and the like
		pterm.Error.Println(capitalize(err.Error()))
		return errhandler.ExitFailure
	}
	return errhandler.ExitOK
}

// configFlag picks --config out of args before the command tree exists, since
// the tree is built from the configured services.
func configFlag(args []string) string {
	flags := pflag.NewFlagSet("tally", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)
	path := flags.StringP("config", "c", "", "")
	_ = flags.Parse(args)
	return *path
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := getAppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	firstRun := false
	if cfgFile == "" {
		created, err := createDefaultConfig()
		if err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
		firstRun = created
	}

	viper.SetEnvPrefix("TALLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	if firstRun && os.Getenv("TALLY_DEFAULTS_CURRENCY") == "" {
		if err := initWizard(); err != nil {
			return err
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode into struct, %v", err)
	}
	if cfg.Database.Path != "" {
		expanded, err := expandPath(cfg.Database.Path)
		if err != nil {
			return err
		}
		cfg.Database.Path = expanded
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent
// from the file.
func setDefaults() {
	d := config.NewDefault()
	viper.SetDefault("database.path", d.Database.Path)
	viper.SetDefault("database.busy_timeout", d.Database.BusyTimeout)
	viper.SetDefault("defaults.currency", d.Defaults.Currency)
	viper.SetDefault("currency.reference", d.Currency.Reference)
	viper.SetDefault("currency.redis_addr", d.Currency.RedisAddr)
	viper.SetDefault("currency.redis_db", d.Currency.RedisDB)
	viper.SetDefault("currency.cache_ttl", d.Currency.CacheTTL)
	viper.SetDefault("ledger.max_retries", d.Ledger.MaxRetries)
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
}

func initWizard() error {
	currentDefault := viper.GetString("defaults.currency")

	currency, err := prompts.PromptInitCurrency(currentDefault)
	if err != nil {
		if errhandler.IsInterrupt(err) {
			return nil
		}
		return err
	}

	viper.Set("defaults.currency", currency)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Printf("Configuration saved. Default currency set to: %s\n", currency)

	return nil
}

func getAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".tally"), nil
	}

	return filepath.Join(configDir, "tally"), nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}

// createDefaultConfig writes config.yaml with the defaults when it is
// missing and reports whether it did.
func createDefaultConfig() (bool, error) {
	appDir, err := getAppDataDir()
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
