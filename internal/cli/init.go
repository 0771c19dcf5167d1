// Package cli provides common CLI initialization utilities: environment
// loading, configuration, logging and opening the ledger.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"coopledger/internal/config"
	"coopledger/internal/export"
	"coopledger/internal/ledger"
	"coopledger/internal/log"
	"coopledger/internal/storage"
)

// App is the set of long-lived objects a command works with. It is opened
// once per invocation and closed before exit.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Store    *storage.SQLiteRepository
	Ledger   *ledger.Service
	Exporter *export.Exporter
}

// LoadEnvFile loads a .env file for local use. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadAndValidateConfig loads configuration from the environment, applies
// any overrides and validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg, writing to w, and
// makes it the process default.
func SetupLogger(cfg *config.Config, w io.Writer) *log.Logger {
	lc := cfg.LoggerConfig()
	lc.Output = w
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// Open wires the store, the ledger and the exporter.
func Open(cfg *config.Config, logger *log.Logger) (*App, error) {
	store, err := storage.NewSQLiteRepository(cfg.DBPath, logger)
	if err != nil {
		logger.Error("Failed to open ledger database",
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeDatabase,
			log.FieldPath, cfg.DBPath)
		return nil, err
	}

	svc := ledger.NewService(store, logger)
	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Ledger:   svc,
		Exporter: export.New(svc, cfg.ExportDir, export.Format(cfg.ExportFormat), logger),
	}, nil
}

func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	if err := a.Store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	a.Logger.Debug("Ledger closed", log.FieldOperation, log.OpShutdown)
	return nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
