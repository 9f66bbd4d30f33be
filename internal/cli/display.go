package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"fintrack/internal/core"
)

// RenderSummary writes the monthly summary as a table, months in
// first-appearance order.
func RenderSummary(w io.Writer, summary core.Summary) {
	if summary.Len() == 0 {
		fmt.Fprintln(w, "No transactions yet.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Month", "Income", "Expenses", "Balance"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, m := range summary.Months() {
		table.Append([]string{
			m.Month,
			core.FormatAmount(m.Income),
			core.FormatAmount(m.Expenses),
			core.FormatAmount(m.Balance),
		})
	}
	table.Render()
}
