package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
)

const menuText = `Welcome to the Finance Tracker!
1. Add Transaction
2. Generate Monthly Summary
3. Generate PDF Report
4. Generate CSV Report
5. Generate Pie Chart
6. Exit
`

// Menu is the interactive loop. It reads choices line by line until the
// user exits or input ends.
type Menu struct {
	ledger          *services.Ledger
	exporter        *export.Exporter
	in              *bufio.Scanner
	out             io.Writer
	benchIterations int
	logger          *applog.Logger
}

// MenuOptions configures a Menu
type MenuOptions struct {
	// BenchIterations is how many times choice 2 recomputes the summary to
	// report its mean cost. Zero turns the timing off.
	BenchIterations int
	Logger          *applog.Logger
}

func NewMenu(ledger *services.Ledger, exporter *export.Exporter, in io.Reader, out io.Writer, opts MenuOptions) *Menu {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	return &Menu{
		ledger:          ledger,
		exporter:        exporter,
		in:              bufio.NewScanner(in),
		out:             out,
		benchIterations: opts.BenchIterations,
		logger:          logger.WithComponent(applog.ComponentCLI),
	}
}

// Run shows the menu until choice 6 or end of input. Failures of a single
// action are reported to the user and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, menuText)
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.addTransaction(ctx)
		case "2":
			m.showSummary()
		case "3":
			m.report(ctx, "PDF report", m.exporter.PDF)
		case "4":
			m.report(ctx, "CSV report", m.exporter.CSV)
		case "5":
			m.report(ctx, "Pie chart", m.exporter.PieChart)
		case "6":
			fmt.Fprintln(m.out, "Exiting the Finance Tracker. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimRight(m.in.Text(), "\r"), true
}

// addTransaction asks for each field in turn. Date and amount are checked
// as soon as they are typed so the user is not asked for more after a
// mistake.
func (m *Menu) addTransaction(ctx context.Context) {
	date, ok := m.prompt("Enter date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	date = strings.TrimSpace(date)
	if _, err := core.ParseDate(date); err != nil {
		fmt.Fprintln(m.out, "Invalid date format. Please use YYYY-MM-DD.")
		return
	}

	category, ok := m.prompt("Enter category (e.g., Food, Rent, Salary): ")
	if !ok {
		return
	}

	amount, ok := m.prompt("Enter amount (positive for income, negative for expense): ")
	if !ok {
		return
	}
	if _, err := core.ParseAmount(amount); err != nil {
		fmt.Fprintln(m.out, "Invalid amount. Only numbers please.")
		return
	}

	description, ok := m.prompt("Enter description: ")
	if !ok {
		return
	}

	_, err := m.ledger.Add(ctx, services.AddTransactionInput{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		var ve *core.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(m.out, "Transaction rejected: %v.\n", ve)
			return
		}
		fmt.Fprintf(m.out, "Could not save transaction: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, "Transaction added successfully!")
}

func (m *Menu) showSummary() {
	var summary core.Summary
	if m.benchIterations > 0 {
		var mean time.Duration
		summary, mean = m.ledger.MeasureSummary(m.benchIterations)
		fmt.Fprintf(m.out, "Time taken to generate summary: %s (mean of %d runs)\n", mean, m.benchIterations)
	} else {
		summary = m.ledger.Summary()
	}
	RenderSummary(m.out, summary)
}

type exportFunc func(context.Context, []core.Transaction) (export.Result, error)

func (m *Menu) report(ctx context.Context, name string, fn exportFunc) {
	res, err := fn(ctx, m.ledger.Transactions())
	if err != nil {
		m.logger.ErrorContext(ctx, "Export failed", applog.FieldFormat, name, applog.FieldError, err)
		fmt.Fprintf(m.out, "Could not generate %s: %v\n", strings.ToLower(name), err)
		return
	}
	printResult(m.out, name, res)
}

func printResult(w io.Writer, name string, res export.Result) {
	if res.Skipped {
		fmt.Fprintln(w, res.Reason)
		return
	}
	fmt.Fprintf(w, "%s generated: %s\n", name, res.Path)
}
