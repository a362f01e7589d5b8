package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"procure/internal/logger"
	"procure/internal/stockreport"
)

// Service pushes stock valuation reports to a Google Sheet
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

// NewService creates a Google Sheets service for the given sheet URL.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS (file path) or
// GOOGLE_CREDENTIALS (inline JSON).
func NewService(ctx context.Context, sheetURL string) (*Service, error) {
	const op = "NewService"

	log := logger.WithComponent("sheets")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to extract spreadsheet ID: %w", op, err)
	}

	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Extracted spreadsheet ID")

	var creds []byte
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
	} else if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		creds = []byte(credsJSON)
	} else {
		return nil, fmt.Errorf("%s: neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set", op)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	client := config.Client(ctx)
	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

// extractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func extractSpreadsheetID(url string) (string, error) {
	re := regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	matches := re.FindStringSubmatch(url)

	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}

	return matches[1], nil
}

// WriteStockReport replaces the worksheet's contents with the report:
// a generated-at line, the 9-column header, and one row per material.
func (s *Service) WriteStockReport(ctx context.Context, report stockreport.Report, sheetName string) error {
	const op = "WriteStockReport"

	s.log.Info().
		Str("sheet", sheetName).
		Int("rows", len(report.Rows)).
		Msg("Writing stock valuation report to Google Sheet")

	if err := s.ensureSheet(ctx, sheetName); err != nil {
		return fmt.Errorf("%s: failed to ensure sheet exists: %w", op, err)
	}

	clearRange := fmt.Sprintf("%s!A:I", sheetName)
	_, err := s.sheetsService.Spreadsheets.Values.Clear(
		s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{},
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to clear sheet range: %w", op, err)
	}

	values := [][]interface{}{
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{"Material Code", "Material Name", "Category", "Current Stock", "Unit", "Reorder Level", "Unit Cost", "Total Value", "Status"},
	}
	for _, row := range report.Rows {
		values = append(values, []interface{}{
			row.MaterialCode,
			row.MaterialName,
			row.Category,
			row.CurrentStock.InexactFloat64(),
			row.Unit,
			row.ReorderLevel.InexactFloat64(),
			row.UnitCost.InexactFloat64(),
			row.TotalValue.InexactFloat64(),
			row.Status,
		})
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err = s.sheetsService.Spreadsheets.Values.Update(
		s.spreadsheetID,
		fmt.Sprintf("%s!A1", sheetName),
		valueRange,
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to write values to sheet: %w", op, err)
	}

	s.log.Info().
		Int("rows_written", len(values)).
		Msg("Successfully wrote stock report to Google Sheet")

	return nil
}

// ensureSheet adds the worksheet when it does not exist yet.
func (s *Service) ensureSheet(ctx context.Context, sheetName string) error {
	spreadsheet, err := s.sheetsService.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to load spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == sheetName {
			return nil
		}
	}

	s.log.Debug().Str("sheet", sheetName).Msg("Worksheet missing, creating it")

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetName},
			},
		}},
	}
	_, err = s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, request).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}
	return nil
}
