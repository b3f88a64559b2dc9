package sheets

import (
	"context"
	"fmt"
	"sync"
)

// Memory implements Gateway with an in-process document.
// This is used for local development and testing.
type Memory struct {
	mu         sync.RWMutex
	documentID string
	title      string
	nextID     int64
	order      []string
	sheets     map[string]*memorySheet
}

type memorySheet struct {
	id   int64
	rows [][]interface{} // header first
}

// NewMemory creates an empty in-memory document.
func NewMemory(documentID string) *Memory {
	return &Memory{
		documentID: documentID,
		title:      documentID,
		sheets:     make(map[string]*memorySheet),
	}
}

// AddSheet creates a sheet holding only the given header row.
// An existing sheet of the same name is replaced.
func (m *Memory) AddSheet(name string, header []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}

	if _, exists := m.sheets[name]; !exists {
		m.order = append(m.order, name)
	}
	m.sheets[name] = &memorySheet{id: m.nextID, rows: [][]interface{}{row}}
	m.nextID++
}

// RowCount returns the number of rows in a sheet, header included.
func (m *Memory) RowCount(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sheets[name]
	if !ok {
		return 0
	}
	return len(s.rows)
}

func (m *Memory) OpenDocument(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	doc := &Document{ID: m.documentID, Title: m.title}
	for _, name := range m.order {
		doc.Sheets = append(doc.Sheets, &Sheet{
			DocumentID: m.documentID,
			ID:         m.sheets[name].id,
			Title:      name,
		})
	}
	return doc, nil
}

func (m *Memory) GetSheet(ctx context.Context, name string) (*Sheet, error) {
	doc, err := m.OpenDocument(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Sheet(name)
}

func (m *Memory) ReadAllRows(ctx context.Context, sheet *Sheet) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s, err := m.lookup(sheet)
	if err != nil {
		return nil, err
	}
	return rowsToRecords(s.rows), nil
}

func (m *Memory) AppendRows(ctx context.Context, sheet *Sheet, rows [][]interface{}, atRow int) (*AppendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sheet)
	if err != nil {
		return nil, err
	}

	// rows past the end are filled with empty rows, like a sparse grid
	index := len(s.rows)
	if atRow > 0 {
		index = atRow - 1
		for len(s.rows) < index {
			s.rows = append(s.rows, []interface{}{})
		}
	}

	copied := make([][]interface{}, len(rows))
	for i, r := range rows {
		copied[i] = append([]interface{}(nil), r...)
	}

	updated := make([][]interface{}, 0, len(s.rows)+len(copied))
	updated = append(updated, s.rows[:index]...)
	updated = append(updated, copied...)
	updated = append(updated, s.rows[index:]...)
	s.rows = updated

	return &AppendResult{
		UpdatedRange: fmt.Sprintf("%s!A%d:%d", sheet.Title, index+1, index+len(rows)),
		UpdatedRows:  len(rows),
	}, nil
}

func (m *Memory) DeleteRows(ctx context.Context, sheet *Sheet, start, end int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRange(start, end); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.lookup(sheet)
	if err != nil {
		return err
	}
	if end > len(s.rows) {
		return fmt.Errorf("%w: %d..%d exceeds %d rows", ErrInvalidRange, start, end, len(s.rows))
	}

	s.rows = append(s.rows[:start-1], s.rows[end:]...)
	return nil
}

func (m *Memory) lookup(sheet *Sheet) (*memorySheet, error) {
	s, ok := m.sheets[sheet.Title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet.Title)
	}
	return s, nil
}
