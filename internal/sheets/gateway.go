// Package sheets provides access to a remote spreadsheet document used as a
// record store. Implementations include the Google Sheets API and an
// in-memory document for local runs and tests.
package sheets

import (
	"context"
	"errors"
	"fmt"
)

// Common errors for sheet operations.
var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrInvalidRange  = errors.New("invalid row range")
)

// Row is a data row keyed by the sheet's header cells.
type Row map[string]interface{}

// Document is a handle on a remote spreadsheet document.
type Document struct {
	ID     string
	Title  string
	Sheets []*Sheet
}

// Sheet identifies a named table within a document.
type Sheet struct {
	DocumentID string
	ID         int64
	Title      string
}

// AppendResult acknowledges a write.
type AppendResult struct {
	UpdatedRange string
	UpdatedRows  int
}

// Gateway abstracts the whole-sheet operations of the remote tabular store.
// Failures from the store are returned as-is (wrapped); nothing is retried.
type Gateway interface {
	// OpenDocument fetches the configured document. No handle is cached.
	OpenDocument(ctx context.Context) (*Document, error)

	// GetSheet resolves a sheet by name, returning ErrSheetNotFound if absent.
	GetSheet(ctx context.Context, name string) (*Sheet, error)

	// ReadAllRows returns every data row below the header, in sheet order.
	ReadAllRows(ctx context.Context, sheet *Sheet) ([]Row, error)

	// AppendRows writes fixed-order value rows. With atRow <= 0 they follow
	// the existing data; otherwise they are inserted at that 1-based row.
	AppendRows(ctx context.Context, sheet *Sheet, rows [][]interface{}, atRow int) (*AppendResult, error)

	// DeleteRows removes the 1-based inclusive row range [start, end].
	DeleteRows(ctx context.Context, sheet *Sheet, start, end int) error
}

// Sheet looks up a sheet of the document by title.
func (d *Document) Sheet(name string) (*Sheet, error) {
	for _, s := range d.Sheets {
		if s.Title == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

func validateRange(start, end int) error {
	if start < 1 || end < start {
		return fmt.Errorf("%w: %d..%d", ErrInvalidRange, start, end)
	}
	return nil
}

// rowsToRecords maps raw value rows (header first) to header-keyed rows.
// Cells missing from the end of a short row read as "".
func rowsToRecords(values [][]interface{}) []Row {
	if len(values) == 0 {
		return []Row{}
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = fmt.Sprint(cell)
	}

	records := make([]Row, 0, len(values)-1)
	for _, cells := range values[1:] {
		row := make(Row, len(header))
		for i, column := range header {
			if i < len(cells) && cells[i] != nil {
				row[column] = cells[i]
			} else {
				row[column] = ""
			}
		}
		records = append(records, row)
	}
	return records
}
