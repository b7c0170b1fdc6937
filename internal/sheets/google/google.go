package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"planner/internal/plan"
	ports "planner/internal/sheets"
)

// Client mirrors monthly rollups to a Google spreadsheet. Each year
// gets its own sheet with one row per month, so rewriting a month is a
// plain range update and redeliveries overwrite in place.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
}

var _ ports.RollupWriter = (*Client)(nil)

// New creates a Sheets client using Service Account credentials.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetBase string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetBase) == "" {
		sheetBase = "Plans"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// WriteRollup writes the month's totals into its fixed row on the
// year's sheet, overwriting whatever was there.
func (c *Client) WriteRollup(ctx context.Context, year, month int, r plan.Rollup) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d", month)
	}

	sheet := fmt.Sprintf("%d %s", year, c.sheetBase)
	row, header := rollupRow(month, r)

	// Header on row 1; month m lives on row m+1.
	headerRange := fmt.Sprintf("%s!A1:%s1", sheet, columnName(len(header)))
	hr := &gsheet.ValueRange{Values: [][]any{header}}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, headerRange, hr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update header in sheet %s: %w", sheet, err)
	}

	dataRange := fmt.Sprintf("%s!A%d:%s%d", sheet, month+1, columnName(len(row)), month+1)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, dataRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("update rollup in sheet %s: %w", sheet, err)
	}

	slog.InfoContext(ctx, "Mirrored rollup to spreadsheet",
		"sheet", sheet,
		"year", year,
		"month", month,
		"range", dataRange)

	return nil
}

// rollupRow flattens a rollup into one spreadsheet row plus its header.
func rollupRow(month int, r plan.Rollup) (row []any, header []any) {
	header = []any{
		"Month", "Net income", "Debts", "Savings", "Liquid",
		"Recurring", "Bills", "Predicted", "Remaining",
		"Week 1", "Week 2", "Week 3", "Week 4",
	}
	row = []any{
		month,
		r.NetIncome.StringFixed(2),
		r.DebtTotal.StringFixed(2),
		r.SavingTotal.StringFixed(2),
		r.LiquidTotal.StringFixed(2),
		r.RecurringTotal.StringFixed(2),
		r.BillsTotal.StringFixed(2),
		r.PredictedTotal.StringFixed(2),
		r.Remaining.StringFixed(2),
	}
	for _, w := range r.WeekTotals {
		row = append(row, w.StringFixed(2))
	}
	return row, header
}

// columnName converts a 1-based column index to its A1 letter name.
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
