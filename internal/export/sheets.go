package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// SheetsConfig selects the spreadsheet and service account credentials.
// Either CredentialsFile or CredentialsJSON must be set.
type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// SheetsExporter mirrors the transaction sequence into one sheet of a Google
// spreadsheet. Each export clears the sheet and rewrites every row.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *applog.Logger
}

// NewSheetsExporter creates a Sheets client using service account credentials
func NewSheetsExporter(ctx context.Context, cfg SheetsConfig, logger *applog.Logger) (*SheetsExporter, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Transactions"
	}
	if logger == nil {
		logger = applog.Discard()
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(applog.ComponentSheets),
	}, nil
}

func loadCredentials(cfg SheetsConfig) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// Export clears the sheet and writes the CSV header plus one row per
// transaction
func (s *SheetsExporter) Export(ctx context.Context, transactions []core.Transaction) (Result, error) {
	if s.svc == nil {
		return Result{}, errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:D", s.sheetName)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return Result{}, fmt.Errorf("clear %s: %w", clearRange, err)
	}

	rows := SheetRows(transactions)
	dataRange := fmt.Sprintf("%s!A1:D%d", s.sheetName, len(rows))
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, dataRange, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return Result{}, fmt.Errorf("update %s: %w", dataRange, err)
	}

	s.logger.InfoContext(ctx, "Transactions exported to Google Sheets",
		applog.FieldPath, dataRange,
		applog.FieldCount, len(transactions))
	return Result{Format: FormatSheets, Path: dataRange}, nil
}

// SheetRows builds the value grid: header first, then one row per
// transaction with the amount as a number
func SheetRows(transactions []core.Transaction) [][]any {
	rows := make([][]any, 0, len(transactions)+1)
	header := make([]any, len(CSVHeader))
	for i, h := range CSVHeader {
		header[i] = h
	}
	rows = append(rows, header)
	for _, t := range transactions {
		rows = append(rows, []any{t.Date, t.Category, t.Amount, t.Description})
	}
	return rows
}
