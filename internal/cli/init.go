// Package cli provides common CLI initialization utilities shared by the
// binaries under cmd/.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"registro/internal/config"
	"registro/internal/ledger"
	applog "registro/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadConfig loads configuration and validates it.
func LoadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger from cfg and installs it as the
// slog default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	logger := applog.New(cfg.LoggerConfig())
	applog.SetDefault(logger)
	return logger
}

// OpenLedger returns the ledger, seeded from the configured file when
// autoload is enabled.
func OpenLedger(cfg *config.Config, logger *applog.Logger) (*ledger.Store, error) {
	if !cfg.Autoload {
		return ledger.New(logger), nil
	}
	store, err := ledger.NewFromFile(cfg.LedgerFile, logger)
	if err != nil {
		return nil, fmt.Errorf("autoload %s: %w", cfg.LedgerFile, err)
	}
	logger.Info("ledger autoloaded", applog.FieldPath, cfg.LedgerFile, applog.FieldCount, store.Len())
	return store, nil
}

// Fatal prints err to w and exits with status 1.
func Fatal(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	os.Exit(1)
}
