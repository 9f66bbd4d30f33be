// Package export renders the transaction sequence into report files. Every
// exporter reads its input and never modifies it.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// Format names an export target
type Format string

const (
	FormatPDF    Format = "pdf"
	FormatCSV    Format = "csv"
	FormatChart  Format = "chart"
	FormatSheets Format = "sheets"
)

// Default file names inside the output directory
const (
	PDFFileName   = "transactions_report.pdf"
	CSVFileName   = "transactions_report.csv"
	ChartFileName = "spending_by_category.png"
)

// Result describes one export. Skipped exports wrote nothing and carry a
// user-facing Reason.
type Result struct {
	Format  Format
	Path    string
	Skipped bool
	Reason  string
}

// Exporter writes reports into a single output directory
type Exporter struct {
	outputDir string
	logger    *applog.Logger
}

func NewExporter(outputDir string, logger *applog.Logger) *Exporter {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Exporter{
		outputDir: outputDir,
		logger:    logger.WithComponent(applog.ComponentExport),
	}
}

// OutputDir returns the directory reports are written to
func (e *Exporter) OutputDir() string {
	return e.outputDir
}

// All renders the PDF, CSV and chart exports concurrently. Results are
// returned in that order; the first error cancels nothing already written
// but is returned.
func (e *Exporter) All(ctx context.Context, transactions []core.Transaction) ([]Result, error) {
	// Each goroutine gets the same read-only snapshot.
	snapshot := slices.Clone(transactions)
	results := make([]Result, 3)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		results[0], err = e.PDF(ctx, snapshot)
		return err
	})
	g.Go(func() (err error) {
		results[1], err = e.CSV(ctx, snapshot)
		return err
	})
	g.Go(func() (err error) {
		results[2], err = e.PieChart(ctx, snapshot)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Exporter) path(name string) string {
	return filepath.Join(e.outputDir, name)
}

// create opens a report file, creating the output directory on first use
func (e *Exporter) create(name string) (*os.File, string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, "", fmt.Errorf("create output directory: %w", err)
	}
	path := e.path(name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("create %s: %w", path, err)
	}
	return f, path, nil
}

func (e *Exporter) logDone(ctx context.Context, format Format, path string, count int) {
	e.logger.InfoContext(ctx, "Report generated",
		applog.FieldOperation, applog.OpExport,
		applog.FieldFormat, string(format),
		applog.FieldPath, path,
		applog.FieldCount, count)
}
