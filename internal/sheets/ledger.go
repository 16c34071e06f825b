// Package sheets is the remote ledger adapter over the Google Sheets API.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sheetsapi "google.golang.org/api/sheets/v4"

	"gitlab.com/nepalfinance/claims-bot/internal/logger"
	"gitlab.com/nepalfinance/claims-bot/internal/models"
)

// ErrClaimNotFound is returned by LookupStatus when no ledger row
// carries the supplied claim ID.
var ErrClaimNotFound = errors.New("claim not found")

// Header cells naming the columns the lookup needs. The first sheet row
// is the header; all other columns are positional and opaque to us.
const (
	claimIDColumn  = "Claim ID"
	statusColumn   = "Approval Status"
	valueInputRaw  = "RAW"
	insertRowsMode = "INSERT_ROWS"
)

// Ledger appends submissions to, and reads statuses from, one fixed
// spreadsheet range.
type Ledger struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	readRange     string
	timeout       time.Duration
}

// NewLedger creates a Ledger over the given Sheets service.
func NewLedger(svc *sheetsapi.Service, spreadsheetID, readRange string, timeout time.Duration) *Ledger {
	return &Ledger{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		timeout:       timeout,
	}
}

// Append writes the submission as a new ledger row.
func (l *Ledger) Append(ctx context.Context, sub models.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	body := &sheetsapi.ValueRange{Values: [][]any{sub.Row()}}

	resp, err := l.svc.Spreadsheets.Values.
		Append(l.spreadsheetID, l.readRange, body).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRowsMode).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append submission: %w", err)
	}

	logger.Log.Info().
		Str("spreadsheet_id", resp.SpreadsheetId).
		Str("receipt_id", sub.ReceiptID).
		Msg("Submission appended to ledger")

	return nil
}

// LookupStatus fetches the table and returns the approval status of the
// row whose claim ID equals claimID after trimming surrounding
// whitespace. The status cell is returned verbatim; interpreting it is
// the caller's concern.
func (l *Ledger) LookupStatus(ctx context.Context, claimID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	resp, err := l.svc.Spreadsheets.Values.
		Get(l.spreadsheetID, l.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("fetch sheet: %w", err)
	}

	return statusFromRows(resp.Values, claimID)
}

// statusFromRows scans the fetched table for claimID. Matching is exact
// equality after trimming whitespace on both sides; no fuzzy matching.
func statusFromRows(rows [][]any, claimID string) (string, error) {
	claimID = strings.TrimSpace(claimID)
	if len(rows) == 0 {
		return "", ErrClaimNotFound
	}

	idCol, statusCol := -1, -1
	for i, cell := range rows[0] {
		switch cellString(cell) {
		case claimIDColumn:
			idCol = i
		case statusColumn:
			statusCol = i
		}
	}
	if idCol < 0 || statusCol < 0 {
		return "", fmt.Errorf("sheet header is missing the %q or %q column", claimIDColumn, statusColumn)
	}

	for _, row := range rows[1:] {
		if idCol >= len(row) {
			continue
		}
		if strings.TrimSpace(cellString(row[idCol])) != claimID {
			continue
		}
		if statusCol >= len(row) {
			// Row exists but the approver has not filled the cell yet.
			return "", nil
		}
		return cellString(row[statusCol]), nil
	}

	return "", ErrClaimNotFound
}

// cellString converts a sheet cell to its string form. The values API
// returns cells as any; with RAW input they are strings in practice.
func cellString(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}
