package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cli.LoadEnvFile()

	cfg, err := cli.LoadConfig()
	if err != nil {
		cli.SetupLogger("error").Error("Invalid configuration",
			applog.FieldOperation, applog.OpStartup,
			applog.FieldErrorType, applog.ErrorTypeConfiguration,
			applog.FieldError, err)
		return 1
	}
	logger := cli.SetupLogger(cfg.LogLevel)
	ctx = applog.NewContext(ctx, logger)
	logger.Info("Starting fintrack",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, cfg.DataBackend)

	if err := cfg.EnsureOutputDir(); err != nil {
		logger.Error("Failed to prepare output directory",
			applog.FieldPath, cfg.OutputDir,
			applog.FieldErrorType, applog.ErrorTypeIO,
			applog.FieldError, err)
		return 1
	}

	result, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldBackend, cfg.DataBackend, applog.FieldError, err)
		return 1
	}
	defer func() {
		logger.Info("Shutting down", applog.FieldOperation, applog.OpShutdown)
		if err := result.Close(); err != nil {
			logger.Warn("Backend cleanup failed", applog.FieldOperation, applog.OpShutdown, applog.FieldError, err)
		}
	}()

	opts := []services.Option{services.WithLogger(logger)}
	if result.Publisher != nil {
		opts = append(opts, services.WithPublisher(result.Publisher))
	}
	ledger, err := services.OpenLedger(ctx, result.Store, opts...)
	if err != nil {
		var corrupt *store.DataCorruptionError
		if errors.As(err, &corrupt) {
			fmt.Fprintf(os.Stderr, "Data file %s is corrupted: %v\n", corrupt.Path, corrupt.Err)
		} else {
			fmt.Fprintf(os.Stderr, "Could not load transactions: %v\n", err)
		}
		return 1
	}

	app := &cli.App{
		Ledger:          ledger,
		Exporter:        export.NewExporter(cfg.OutputDir, logger),
		Sheets:          cli.SheetsFactory(cfg, logger),
		In:              os.Stdin,
		Out:             os.Stdout,
		Err:             os.Stderr,
		BenchIterations: cfg.SummaryBenchIterations,
		Logger:          logger,
	}
	if err := app.Run(ctx, args); err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
