package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fintrack/internal/core"
)

// CSVHeader is the first row of every CSV report
var CSVHeader = []string{"Date", "Category", "Amount", "Description"}

// CSV writes transactions_report.csv into the output directory
func (e *Exporter) CSV(ctx context.Context, transactions []core.Transaction) (Result, error) {
	f, path, err := e.create(CSVFileName)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	if err := WriteCSV(f, transactions); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close %s: %w", path, err)
	}

	e.logDone(ctx, FormatCSV, path, len(transactions))
	return Result{Format: FormatCSV, Path: path}, nil
}

// WriteCSV writes the header and one row per transaction, in order.
// Amounts use the shortest representation that reads back exactly.
func WriteCSV(w io.Writer, transactions []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range transactions {
		row := []string{t.Date, t.Category, strconv.FormatFloat(t.Amount, 'f', -1, 64), t.Description}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
