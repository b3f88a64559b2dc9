package domain

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Kind names a record kind and, by the same name, the sheet holding it.
type Kind string

const (
	KindProducts Kind = "products"
	KindOrders   Kind = "orders"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindProducts, KindOrders}

// Record is a typed sheet row: a Product or an Order.
type Record interface {
	Kind() Kind
	RecordID() int
	// Row encodes the record in the fixed column order of its sheet.
	Row() []interface{}
	// Stamp returns a copy carrying the given identity and creation time.
	Stamp(id int, createdAt time.Time) Record
}

type schema struct {
	header []string
	decode func(map[string]interface{}) (Record, error)
}

var schemas = map[Kind]schema{
	KindProducts: {
		header: []string{"id", "name", "description", "price", "url", "created_at"},
		decode: func(row map[string]interface{}) (Record, error) { return DecodeProduct(row) },
	},
	KindOrders: {
		header: []string{"id", "user_email", "product_id", "product_name", "product_price", "created_at"},
		decode: func(row map[string]interface{}) (Record, error) { return DecodeOrder(row) },
	},
}

// SheetName is the name of the sheet storing records of this kind.
func (k Kind) SheetName() string {
	return string(k)
}

// Valid reports whether k is a known record kind.
func (k Kind) Valid() bool {
	_, ok := schemas[k]
	return ok
}

// Header returns the column names of the kind's sheet, in row order.
func (k Kind) Header() []string {
	s, ok := schemas[k]
	if !ok {
		return nil
	}
	header := make([]string, len(s.header))
	copy(header, s.header)
	return header
}

// Decode converts a header-keyed row into a record of this kind.
func (k Kind) Decode(row map[string]interface{}) (Record, error) {
	s, ok := schemas[k]
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q", k)
	}
	return s.decode(row)
}

func blank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func cellInt(row map[string]interface{}, column string) (int, error) {
	v := row[column]
	if blank(v) {
		return 0, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return n, nil
}

func cellFloat(row map[string]interface{}, column string) (float64, error) {
	v := row[column]
	if blank(v) {
		return 0, nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", column, err)
	}
	return f, nil
}

func cellString(row map[string]interface{}, column string) string {
	v := row[column]
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

func cellTime(row map[string]interface{}, column string) (time.Time, error) {
	s := cellString(row, column)
	if s == "" {
		return time.Time{}, nil
	}
	return ParseTimestamp(s)
}
