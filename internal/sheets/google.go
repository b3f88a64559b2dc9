package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	valueInputRaw         = "RAW"
	valueRenderUnformated = "UNFORMATTED_VALUE"
	insertDataInsertRows  = "INSERT_ROWS"
	dimensionRows         = "ROWS"
)

// Config holds configuration for the Google Sheets gateway.
type Config struct {
	// CredentialsFile is the path to a service account JSON key.
	// Leave empty to authenticate through the supplied client options.
	CredentialsFile string
	// DocumentID is the spreadsheet identifier taken from its URL.
	DocumentID string
}

// Client implements Gateway for the Google Sheets API.
type Client struct {
	service    *gsheets.Service
	documentID string
}

// NewClient authenticates against the Google Sheets API.
func NewClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	if cfg.DocumentID == "" {
		return nil, fmt.Errorf("failed to create sheets client: document id is required")
	}

	clientOpts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return NewClientWithService(service, cfg.DocumentID), nil
}

// NewClientWithService creates a gateway around a pre-configured service.
func NewClientWithService(service *gsheets.Service, documentID string) *Client {
	return &Client{service: service, documentID: documentID}
}

// OpenDocument fetches the document metadata. This makes an API call every time.
func (c *Client) OpenDocument(ctx context.Context) (*Document, error) {
	spreadsheet, err := c.service.Spreadsheets.Get(c.documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", c.documentID, err)
	}

	doc := &Document{ID: spreadsheet.SpreadsheetId}
	if spreadsheet.Properties != nil {
		doc.Title = spreadsheet.Properties.Title
	}
	for _, s := range spreadsheet.Sheets {
		if s.Properties == nil {
			continue
		}
		doc.Sheets = append(doc.Sheets, &Sheet{
			DocumentID: spreadsheet.SpreadsheetId,
			ID:         s.Properties.SheetId,
			Title:      s.Properties.Title,
		})
	}

	return doc, nil
}

func (c *Client) GetSheet(ctx context.Context, name string) (*Sheet, error) {
	doc, err := c.OpenDocument(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Sheet(name)
}

func (c *Client) ReadAllRows(ctx context.Context, sheet *Sheet) ([]Row, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.documentID, quoteSheetName(sheet.Title)).
		ValueRenderOption(valueRenderUnformated).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", sheet.Title, err)
	}

	return rowsToRecords(resp.Values), nil
}

func (c *Client) AppendRows(ctx context.Context, sheet *Sheet, rows [][]interface{}, atRow int) (*AppendResult, error) {
	if atRow <= 0 {
		resp, err := c.service.Spreadsheets.Values.Append(c.documentID, quoteSheetName(sheet.Title), &gsheets.ValueRange{Values: rows}).
			ValueInputOption(valueInputRaw).
			InsertDataOption(insertDataInsertRows).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to append rows to %s: %w", sheet.Title, err)
		}

		result := &AppendResult{}
		if resp.Updates != nil {
			result.UpdatedRange = resp.Updates.UpdatedRange
			result.UpdatedRows = int(resp.Updates.UpdatedRows)
		}
		return result, nil
	}

	// Make room first so rows below atRow shift down instead of being overwritten.
	insert := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			InsertDimension: &gsheets.InsertDimensionRequest{
				Range:             dimensionRange(sheet.ID, atRow-1, atRow-1+len(rows)),
				InheritFromBefore: atRow > 1,
			},
		}},
	}
	if _, err := c.service.Spreadsheets.BatchUpdate(c.documentID, insert).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to insert rows into %s: %w", sheet.Title, err)
	}

	target := fmt.Sprintf("%s!A%d", quoteSheetName(sheet.Title), atRow)
	resp, err := c.service.Spreadsheets.Values.Update(c.documentID, target, &gsheets.ValueRange{Values: rows}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to write rows to %s: %w", sheet.Title, err)
	}

	return &AppendResult{UpdatedRange: resp.UpdatedRange, UpdatedRows: int(resp.UpdatedRows)}, nil
}

func (c *Client) DeleteRows(ctx context.Context, sheet *Sheet, start, end int) error {
	if err := validateRange(start, end); err != nil {
		return err
	}

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: dimensionRange(sheet.ID, start-1, end),
			},
		}},
	}
	if _, err := c.service.Spreadsheets.BatchUpdate(c.documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete rows %d..%d from %s: %w", start, end, sheet.Title, err)
	}
	return nil
}

// dimensionRange covers the zero-based half-open row interval [start, end).
// Sheet id and start index are zero for the first sheet and top row, so they
// must be sent explicitly.
func dimensionRange(sheetID int64, start, end int) *gsheets.DimensionRange {
	return &gsheets.DimensionRange{
		SheetId:         sheetID,
		Dimension:       dimensionRows,
		StartIndex:      int64(start),
		EndIndex:        int64(end),
		ForceSendFields: []string{"SheetId", "StartIndex"},
	}
}

// quoteSheetName renders a sheet title as an A1 range covering the whole sheet.
func quoteSheetName(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
