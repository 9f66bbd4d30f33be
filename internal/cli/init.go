// Package cli provides the command line surface: process initialization,
// the interactive menu and one-shot subcommands.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"fintrack/internal/backend"
	"fintrack/internal/config"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
)

// LoadEnvFile loads the .env file for local use.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig loads configuration from the environment and validates it.
func LoadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger initializes structured logging on stderr at the configured
// level and sets it as the default logger.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	if lvl, err := applog.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// InitBackend creates the configured transaction store and optional event
// publisher.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*backend.BackendResult, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize %s backend: %w", backendCfg.Type, err)
	}
	return result, nil
}

// SheetsFactory returns a constructor for the Google Sheets exporter, or nil
// when no spreadsheet is configured. The client is only built when a Sheets
// export is requested.
func SheetsFactory(cfg *config.Config, logger *applog.Logger) func(context.Context) (*export.SheetsExporter, error) {
	if !cfg.SheetsEnabled() {
		return nil
	}
	return func(ctx context.Context) (*export.SheetsExporter, error) {
		return export.NewSheetsExporter(ctx, export.SheetsConfig{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleServiceAccountFile,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
		}, logger)
	}
}
