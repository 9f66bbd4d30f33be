package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{Date: "2024-01-05", Category: "Food", Amount: -50, Description: "lunch, with \"friends\""},
		{Date: "2024-01-10", Category: "Salary", Amount: 2000, Description: "pay"},
		{Date: "2024-02-01", Category: "Rent", Amount: -812.37, Description: "flat"},
		{Date: "2024-02-03", Category: "Food", Amount: -12.5, Description: "café"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"Date", "Category", "Amount", "Description"}, records[0])
	assert.Equal(t, []string{"2024-01-05", "Food", "-50", "lunch, with \"friends\""}, records[1])
	assert.Equal(t, []string{"2024-02-01", "Rent", "-812.37", "flat"}, records[3])
}

func TestCSVExportEmpty(t *testing.T) {
	e := NewExporter(t.TempDir(), nil)
	res, err := e.CSV(context.Background(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Category,Amount,Description\n", string(data))
}

func TestPDFLine(t *testing.T) {
	assert.Equal(t, "2024-01-05 - Food - $-50.00 - lunch",
		PDFLine(core.Transaction{Date: "2024-01-05", Category: "Food", Amount: -50, Description: "lunch"}))
}

func TestPDFExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	e := NewExporter(dir, nil)

	res, err := e.PDF(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, PDFFileName), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "not a PDF document")

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPieChartSkipsWithoutExpenses(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)

	for _, in := range [][]core.Transaction{nil, {{Date: "2024-01-10", Category: "Salary", Amount: 2000}}} {
		res, err := e.PieChart(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, res.Skipped)
		assert.Equal(t, NoExpensesReason, res.Reason)
		assert.Empty(t, res.Path)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a skipped chart must not write files")
}

func TestPieChartRenders(t *testing.T) {
	e := NewExporter(t.TempDir(), nil)
	res, err := e.PieChart(context.Background(), sample())
	require.NoError(t, err)
	assert.False(t, res.Skipped)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "not a PNG image")
}

func TestRenderPieDonutSize(t *testing.T) {
	var buf bytes.Buffer
	err := renderPie(&buf, []core.CategoryAmount{{Name: "Food", Amount: 80}, {Name: "Rent", Amount: 800}})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Width)
	assert.Equal(t, 700, cfg.Height)
}

func TestPieValues(t *testing.T) {
	values := PieValues([]core.CategoryAmount{{Name: "Food", Amount: 25}, {Name: "Rent", Amount: 75}})
	require.Len(t, values, 2)
	assert.Equal(t, "Food (25.0%)", values[0].Label)
	assert.Equal(t, 75.0, values[1].Value)
}

func TestAllDoesNotModifyInput(t *testing.T) {
	dir := t.TempDir()
	in := sample()
	orig := sample()

	results, err := NewExporter(dir, nil).All(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []Format{FormatPDF, FormatCSV, FormatChart},
		[]Format{results[0].Format, results[1].Format, results[2].Format})
	for _, r := range results {
		assert.FileExists(t, r.Path)
	}
	assert.Equal(t, orig, in)
}

func TestAllFailsOnUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewExporter(file, nil).All(context.Background(), sample())
	assert.Error(t, err)
}

func TestSheetRows(t *testing.T) {
	rows := SheetRows(sample()[:1])
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"Date", "Category", "Amount", "Description"}, rows[0])
	assert.Equal(t, []any{"2024-01-05", "Food", -50.0, "lunch, with \"friends\""}, rows[1])
}

func TestNewSheetsExporterConfigErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewSheetsExporter(ctx, SheetsConfig{}, nil)
	require.Error(t, err)
	assert.Equal(t, "missing spreadsheet ID", err.Error())

	_, err = NewSheetsExporter(ctx, SheetsConfig{SpreadsheetID: "id"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing service account credentials")

	_, err = NewSheetsExporter(ctx, SheetsConfig{SpreadsheetID: "id", CredentialsFile: filepath.Join(t.TempDir(), "none.json")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read service account file")
}

func TestSheetsExportWithoutService(t *testing.T) {
	_, err := (&SheetsExporter{spreadsheetID: "id", sheetName: "T"}).Export(context.Background(), sample())
	assert.EqualError(t, err, "sheets service not initialized")
}
