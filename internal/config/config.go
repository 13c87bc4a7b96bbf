package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	applog "registro/internal/log"
)

type Config struct {
	// Ledger file
	LedgerFile string
	Autoload   bool

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		LedgerFile: getEnv("LEDGER_FILE", "expenses.csv"),
		Autoload:   getEnvBool("LEDGER_AUTOLOAD", false),

		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", applog.FormatText),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.LedgerFile) == "" {
		errors = append(errors, "ledger file path cannot be empty")
	} else if info, err := os.Stat(c.LedgerFile); err == nil && info.IsDir() {
		errors = append(errors, fmt.Sprintf("ledger file '%s' is a directory", c.LedgerFile))
	} else if dir := filepath.Dir(c.LedgerFile); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("ledger file directory '%s' does not exist", dir))
		}
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.LogFormat != applog.FormatText && c.LogFormat != applog.FormatJSON {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// LoggerConfig converts the logging settings; call after Validate.
func (c *Config) LoggerConfig() applog.Config {
	lc := applog.DefaultConfig()
	if lvl, err := applog.ParseLevel(c.LogLevel); err == nil {
		lc.Level = lvl
	}
	lc.Format = c.LogFormat
	return lc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
