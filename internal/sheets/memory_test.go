package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var testHeader = []string{"id", "name", "price"}

func newTestMemory() *Memory {
	m := NewMemory("doc-1")
	m.AddSheet("products", testHeader)
	m.AddSheet("orders", []string{"id", "user_email"})
	return m
}

func TestMemory_OpenDocument(t *testing.T) {
	m := newTestMemory()

	doc, err := m.OpenDocument(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "doc-1" {
		t.Errorf("expected document id doc-1, got %s", doc.ID)
	}
	if len(doc.Sheets) != 2 || doc.Sheets[0].Title != "products" || doc.Sheets[1].Title != "orders" {
		t.Errorf("unexpected sheets: %+v", doc.Sheets)
	}
}

func TestMemory_GetSheetNotFound(t *testing.T) {
	m := newTestMemory()

	_, err := m.GetSheet(context.Background(), "customers")
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestMemory_ReadEmptySheet(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()

	sheet, _ := m.GetSheet(ctx, "products")
	rows, err := m.ReadAllRows(ctx, sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil rows, got %v", rows)
	}
}

func TestMemory_AppendAndRead(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	sheet, _ := m.GetSheet(ctx, "products")

	res, err := m.AppendRows(ctx, sheet, [][]interface{}{{1, "Strawberries", 4.99}, {2, "Cup of Tea"}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UpdatedRows != 2 {
		t.Errorf("expected 2 updated rows, got %d", res.UpdatedRows)
	}

	rows, err := m.ReadAllRows(ctx, sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["name"] != "Strawberries" || rows[0]["price"] != 4.99 {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	// short rows are padded
	if rows[1]["price"] != "" {
		t.Errorf("expected padded empty price, got %v", rows[1]["price"])
	}
}

func TestMemory_AppendAtRowInserts(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	sheet, _ := m.GetSheet(ctx, "products")

	_, _ = m.AppendRows(ctx, sheet, [][]interface{}{{1, "a", 1.0}, {3, "c", 3.0}}, 0)
	if _, err := m.AppendRows(ctx, sheet, [][]interface{}{{2, "b", 2.0}}, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, _ := m.ReadAllRows(ctx, sheet)
	names := []interface{}{rows[0]["name"], rows[1]["name"], rows[2]["name"]}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("expected a, b, c in order, got %v", names)
	}
}

func TestMemory_AppendPastEndPadsGap(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	sheet, _ := m.GetSheet(ctx, "products")

	if _, err := m.AppendRows(ctx, sheet, [][]interface{}{{5, "e", 5.0}}, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.RowCount("products") != 4 {
		t.Errorf("expected 4 rows including header and gap, got %d", m.RowCount("products"))
	}
}

func TestMemory_DeleteRowsKeepsHeader(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	sheet, _ := m.GetSheet(ctx, "products")

	_, _ = m.AppendRows(ctx, sheet, [][]interface{}{{1, "a", 1.0}, {2, "b", 2.0}, {3, "c", 3.0}}, 0)
	if err := m.DeleteRows(ctx, sheet, 2, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, _ := m.ReadAllRows(ctx, sheet)
	if len(rows) != 0 {
		t.Errorf("expected no data rows, got %d", len(rows))
	}
	if m.RowCount("products") != 1 {
		t.Errorf("expected header row to remain, got %d rows", m.RowCount("products"))
	}
}

func TestMemory_DeleteRowsInvalidRange(t *testing.T) {
	m := newTestMemory()
	ctx := context.Background()
	sheet, _ := m.GetSheet(ctx, "products")

	for _, r := range [][2]int{{0, 1}, {3, 2}, {2, 9}} {
		if err := m.DeleteRows(ctx, sheet, r[0], r[1]); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("range %v: expected ErrInvalidRange, got %v", r, err)
		}
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	m := newTestMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.OpenDocument(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// Property: appended rows are read back in sheet order
func TestProperty_MemoryPreservesSheetOrder(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rows come back in the order they were appended", prop.ForAll(
		func(names []string) bool {
			m := newTestMemory()
			ctx := context.Background()
			sheet, _ := m.GetSheet(ctx, "products")

			for i, name := range names {
				if _, err := m.AppendRows(ctx, sheet, [][]interface{}{{i + 1, name, 1.0}}, 0); err != nil {
					return false
				}
			}

			rows, err := m.ReadAllRows(ctx, sheet)
			if err != nil || len(rows) != len(names) {
				return false
			}
			for i, row := range rows {
				if row["name"] != names[i] || row["id"] != i+1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
