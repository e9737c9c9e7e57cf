package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hance08/tally/internal/config"
	"github.com/hance08/tally/internal/currency"
	"github.com/hance08/tally/internal/logger"
	"github.com/hance08/tally/internal/service"
	"github.com/hance08/tally/internal/store"
)

type App struct {
	Service *service.Service
	Store   store.Repository
	Config  *config.Config
	Log     zerolog.Logger
}

// NewApp opens the database, connects the optional rate cache and wires the
// ledger services. The returned cleanup closes everything NewApp opened.
func NewApp(ctx context.Context, cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	log := logger.New(cfg.Logging)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		appDir, err := getAppDataDir()
		if err != nil {
			return nil, nil, err
		}
		dbPath = filepath.Join(appDir, "tally.db")
	}

	dbStore, err := store.NewStore(dbPath, migrationFS, cfg.Database.BusyTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Debug().Str("path", dbPath).Msg("database ready")

	var source currency.RateSource = currency.NewStoreSource(dbStore)
	var cache *currency.Cache
	if addr := cfg.Currency.RedisAddr; addr != "" {
		client, err := currency.NewRedisClient(ctx, addr, cfg.Currency.RedisDB)
		if err != nil {
			log.Warn().Err(err).Str("addr", addr).Msg("rate cache disabled")
		} else {
			cache = currency.NewCache(client, source, cfg.Currency.CacheTTL, log)
			source = cache
		}
	}

	rates := currency.NewRateTable(source, cfg.Currency.Reference)

	var invalidator service.RateInvalidator
	if cache != nil {
		invalidator = cache
	}
	svc := service.NewService(dbStore, rates, invalidator, cfg, log)

	cleanup := func() {
		if cache != nil {
			if err := cache.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close rate cache")
			}
		}
		if err := dbStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing DB: %v\n", err)
		}
	}

	return &App{
		Service: svc,
		Store:   dbStore,
		Config:  cfg,
		Log:     log,
	}, cleanup, nil
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
