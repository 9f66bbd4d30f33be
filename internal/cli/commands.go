package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"fintrack/internal/core"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
)

// ErrUsage is returned for unknown commands or bad arguments. Usage has
// already been printed when it is returned.
var ErrUsage = errors.New("usage error")

const usageText = `Usage:
  fintrack                         run the interactive menu
  fintrack add -date YYYY-MM-DD -category NAME -amount N [-description TEXT]
  fintrack summary                 print the monthly summary
  fintrack export pdf|csv|chart|sheets|all
`

// App wires the ledger and exporters to the command line
type App struct {
	Ledger          *services.Ledger
	Exporter        *export.Exporter
	Sheets          func(context.Context) (*export.SheetsExporter, error)
	In              io.Reader
	Out             io.Writer
	Err             io.Writer
	BenchIterations int
	Logger          *applog.Logger
}

// Run dispatches args. No arguments starts the interactive menu.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		menu := NewMenu(a.Ledger, a.Exporter, a.In, a.Out, MenuOptions{
			BenchIterations: a.BenchIterations,
			Logger:          a.Logger,
		})
		return menu.Run(ctx)
	}

	switch args[0] {
	case "add":
		return a.add(ctx, args[1:])
	case "summary":
		return a.summary(args[1:])
	case "export":
		return a.export(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.Out, usageText)
		return nil
	default:
		fmt.Fprintf(a.Err, "unknown command %q\n", args[0])
		fmt.Fprint(a.Err, usageText)
		return ErrUsage
	}
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.Err)
	date := fs.String("date", "", "transaction date, YYYY-MM-DD")
	category := fs.String("category", "", "category name")
	amount := fs.String("amount", "", "signed amount, positive for income")
	description := fs.String("description", "", "free text")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if *date == "" || *amount == "" {
		fmt.Fprintln(a.Err, "add requires -date and -amount")
		return ErrUsage
	}

	t, err := a.Ledger.Add(ctx, services.AddTransactionInput{
		Date:        *date,
		Category:    *category,
		Amount:      *amount,
		Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Transaction added: %s\n", export.PDFLine(t))
	return nil
}

func (a *App) summary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(a.Err)
	bench := fs.Int("bench", a.BenchIterations, "recompute the summary N times and print the mean duration")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	var summary core.Summary
	if *bench > 0 {
		s, mean := a.Ledger.MeasureSummary(*bench)
		summary = s
		fmt.Fprintf(a.Out, "Time taken to generate summary: %s (mean of %d runs)\n", mean, *bench)
	} else {
		summary = a.Ledger.Summary()
	}
	RenderSummary(a.Out, summary)
	return nil
}

func (a *App) export(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprint(a.Err, usageText)
		return ErrUsage
	}
	txs := a.Ledger.Transactions()

	switch export.Format(args[0]) {
	case export.FormatPDF:
		return a.printExport(ctx, "PDF report", a.Exporter.PDF, txs)
	case export.FormatCSV:
		return a.printExport(ctx, "CSV report", a.Exporter.CSV, txs)
	case export.FormatChart:
		return a.printExport(ctx, "Pie chart", a.Exporter.PieChart, txs)
	case export.FormatSheets:
		if a.Sheets == nil {
			return errors.New("google sheets export is not configured: set GOOGLE_SPREADSHEET_ID")
		}
		sheets, err := a.Sheets(ctx)
		if err != nil {
			return fmt.Errorf("initialize sheets exporter: %w", err)
		}
		return a.printExport(ctx, "Sheets export", sheets.Export, txs)
	case "all":
		results, err := a.Exporter.All(ctx, txs)
		if err != nil {
			return err
		}
		for _, res := range results {
			printResult(a.Out, resultName(res.Format), res)
		}
		return nil
	default:
		fmt.Fprintf(a.Err, "unknown export format %q\n", args[0])
		fmt.Fprint(a.Err, usageText)
		return ErrUsage
	}
}

func (a *App) printExport(ctx context.Context, name string, fn exportFunc, txs []core.Transaction) error {
	res, err := fn(ctx, txs)
	if err != nil {
		return err
	}
	printResult(a.Out, name, res)
	return nil
}

func resultName(f export.Format) string {
	switch f {
	case export.FormatPDF:
		return "PDF report"
	case export.FormatCSV:
		return "CSV report"
	case export.FormatChart:
		return "Pie chart"
	default:
		return string(f)
	}
}
