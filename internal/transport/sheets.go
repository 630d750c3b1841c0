package transport

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// NewSheetsService builds a Sheets client from an OAuth client-secret file
// and a provisioned token file.
func NewSheetsService(ctx context.Context, credentialsFile, tokenFile string) (*sheets.Service, error) {
	client, err := oauthClient(ctx, credentialsFile, tokenFile, []string{sheets.SpreadsheetsScope})
	if err != nil {
		return nil, fmt.Errorf("sheets auth: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return svc, nil
}

// SheetsSyncer mirrors the contact table to one spreadsheet range by
// clearing it and writing the full table back.
type SheetsSyncer struct {
	svc           *sheets.Service
	spreadsheetID string
	readRange     string
}

// NewSheetsSyncer builds a syncer for the given spreadsheet and range.
func NewSheetsSyncer(svc *sheets.Service, spreadsheetID, readRange string) *SheetsSyncer {
	return &SheetsSyncer{svc: svc, spreadsheetID: spreadsheetID, readRange: readRange}
}

// Sync clears the range and writes rows (header included) in one update.
// Clear-then-update keeps deleted contacts from lingering as stale rows.
func (s *SheetsSyncer) Sync(ctx context.Context, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	return withRetry(ctx, "sheet sync", func() error {
		_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, s.readRange, &sheets.ClearValuesRequest{}).
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("sheet clear: %w", err)
		}

		body := &sheets.ValueRange{Values: values}
		_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, s.readRange, body).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("sheet update: %w", err)
		}
		return nil
	})
}
