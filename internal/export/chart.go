package export

import (
	"context"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"fintrack/internal/core"
)

// NoExpensesReason is reported when there is nothing to draw
const NoExpensesReason = "No expenses to visualize."

// PieChart renders spending per category as a donut chart in
// spending_by_category.png. With no negative amounts it writes nothing and
// returns a skipped Result.
func (e *Exporter) PieChart(ctx context.Context, transactions []core.Transaction) (Result, error) {
	categories := core.CategoryExpenses(transactions)
	if len(categories) == 0 {
		e.logger.InfoContext(ctx, "Chart skipped, no expenses")
		return Result{Format: FormatChart, Skipped: true, Reason: NoExpensesReason}, nil
	}

	f, path, err := e.create(ChartFileName)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	if err := renderPie(f, categories); err != nil {
		return Result{}, fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close %s: %w", path, err)
	}

	e.logDone(ctx, FormatChart, path, len(categories))
	return Result{Format: FormatChart, Path: path}, nil
}

// PieValues converts category totals into labelled chart slices
func PieValues(categories []core.CategoryAmount) []chart.Value {
	var total float64
	for _, c := range categories {
		total += c.Amount
	}
	values := make([]chart.Value, 0, len(categories))
	for _, c := range categories {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", c.Name, c.Amount/total*100),
			Value: c.Amount,
		})
	}
	return values
}

// renderPie draws a donut; slice labels carry the category and its share
// since go-chart legends only attach to XY charts.
func renderPie(w io.Writer, categories []core.CategoryAmount) error {
	donut := chart.DonutChart{
		Title: "Spending per Category",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  900,
		Height: 700,
		Values: PieValues(categories),
	}
	return donut.Render(chart.PNG, w)
}
