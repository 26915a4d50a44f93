package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Repository defines the read operations supported by the Google Sheets adapter.
type Repository interface {
	ID() string
	SheetNames(ctx context.Context) ([]string, error)
	ReadSheet(ctx context.Context, name string) ([][]interface{}, error)
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a read-only Google Sheets backed repository
// instance. extra options are appended to the client options.
func NewGoogleSheetRepository(ctx context.Context, credentialsPath, spreadsheetID string, logger *zap.Logger, extra ...option.ClientOption) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id must not be empty")
	}

	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	opts = append(opts, extra...)

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// ID identifies the spreadsheet for caching.
func (r *GoogleSheetRepository) ID() string {
	return "sheets:" + r.spreadsheetID
}

// SheetNames lists the tab titles in spreadsheet order.
func (r *GoogleSheetRepository) SheetNames(ctx context.Context) ([]string, error) {
	resp, err := r.service.Spreadsheets.Get(r.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list sheets of %s: %w", r.spreadsheetID, err)
	}

	names := make([]string, 0, len(resp.Sheets))
	for _, sheet := range resp.Sheets {
		if sheet.Properties == nil {
			continue
		}
		names = append(names, sheet.Properties.Title)
	}

	r.logger.Debug("sheets listed", zap.Strings("sheets", names))
	return names, nil
}

// ReadSheet fetches every populated cell of a tab as raw values.
func (r *GoogleSheetRepository) ReadSheet(ctx context.Context, name string) ([][]interface{}, error) {
	return r.ReadRange(ctx, QuoteSheetName(name))
}

// ReadRange fetches a rectangular data range from the spreadsheet.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	r.logger.Debug("range read", zap.String("range", sheetRange), zap.Int("rows", len(resp.Values)))
	return resp.Values, nil
}

// QuoteSheetName renders a tab title as an A1 range covering the whole sheet.
func QuoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
