package main

import (
	"os"

	"github.com/fatih/color"

	"registro/internal/cli"
	applog "registro/internal/log"
	"registro/internal/menu"
)

func main() {
	// Load .env file for local development (ignore errors when absent)
	cli.LoadEnvFile()

	cfg, err := cli.LoadConfig()
	if err != nil {
		cli.Fatal(os.Stderr, err)
	}

	logger := cli.SetupLogger(cfg)
	logger.Info("Starting expense ledger", applog.FieldOperation, applog.OpStartup,
		applog.FieldPath, cfg.LedgerFile, "autoload", cfg.Autoload)

	store, err := cli.OpenLedger(cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", applog.FieldError, err)
		cli.Fatal(os.Stderr, err)
	}

	m := menu.New(store, os.Stdin, os.Stdout, menu.Options{
		DefaultPath: cfg.LedgerFile,
		Color:       !color.NoColor,
		Logger:      logger,
	})
	if err := m.Run(); err != nil {
		logger.Error("Menu loop failed", applog.FieldError, err)
		cli.Fatal(os.Stderr, err)
	}

	logger.Info("Expense ledger stopped", applog.FieldOperation, applog.OpShutdown, applog.FieldCount, store.Len())
}
