package export

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"fintrack/internal/core"
)

const (
	pdfTitle      = "Finance Tracker Report"
	pdfLineHeight = 10
)

// PDF writes transactions_report.pdf into the output directory: a centered
// title, a "Transactions:" heading and one line per transaction.
func (e *Exporter) PDF(ctx context.Context, transactions []core.Transaction) (Result, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	path := e.path(PDFFileName)

	doc := buildPDF(transactions)
	if err := doc.OutputFileAndClose(path); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}

	e.logDone(ctx, FormatPDF, path, len(transactions))
	return Result{Format: FormatPDF, Path: path}, nil
}

// WritePDF renders the report to w
func WritePDF(w io.Writer, transactions []core.Transaction) error {
	return buildPDF(transactions).Output(w)
}

// PDFLine formats one transaction the way it appears in the report
func PDFLine(t core.Transaction) string {
	return fmt.Sprintf("%s - %s - %s - %s", t.Date, t.Category, core.FormatAmount(t.Amount), t.Description)
}

func buildPDF(transactions []core.Transaction) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(pdfTitle, true)
	doc.AddPage()
	doc.SetFont("Arial", "", 12)

	// Core fonts are cp1252; translate so accented categories survive.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	width, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	lineWidth := width - left - right

	doc.CellFormat(lineWidth, pdfLineHeight, pdfTitle, "", 1, "C", false, 0, "")
	doc.CellFormat(lineWidth, pdfLineHeight, "Transactions:", "", 1, "", false, 0, "")
	for _, t := range transactions {
		doc.CellFormat(lineWidth, pdfLineHeight, tr(PDFLine(t)), "", 1, "", false, 0, "")
	}
	return doc
}
