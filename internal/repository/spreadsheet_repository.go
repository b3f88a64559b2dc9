package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sheet-shop/internal/domain"
	"sheet-shop/internal/sheets"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrKindMismatch    = errors.New("record kind does not match sheet")
)

// firstDataRow is the 1-based row below the header.
const firstDataRow = 2

// SpreadsheetRepository defines record access on top of a spreadsheet.
//
// Every call re-reads the whole sheet. ID assignment reads the current max
// and then appends; two concurrent writers can hand out the same id.
type SpreadsheetRepository interface {
	ListRecords(ctx context.Context, kind domain.Kind) (*sheets.Sheet, []domain.Record, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersForUser(ctx context.Context, email string) ([]domain.Order, error)
	FindProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateRecords(ctx context.Context, kind domain.Kind, records []domain.Record) ([]domain.Record, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	CreateProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error)
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	CreateOrders(ctx context.Context, orders []domain.Order) ([]domain.Order, error)
	SeedDefaultProducts(ctx context.Context) (bool, error)
	ClearAll(ctx context.Context, kind domain.Kind) error
}

type spreadsheetRepository struct {
	gateway sheets.Gateway
	logger  *zap.Logger
	now     func() time.Time
}

// NewSpreadsheetRepository creates a new instance of SpreadsheetRepository
func NewSpreadsheetRepository(gateway sheets.Gateway, logger *zap.Logger) SpreadsheetRepository {
	return &spreadsheetRepository{
		gateway: gateway,
		logger:  logger,
		now:     domain.NowUTC,
	}
}

// ListRecords reads every row of the kind's sheet and decodes it.
func (r *spreadsheetRepository) ListRecords(ctx context.Context, kind domain.Kind) (*sheets.Sheet, []domain.Record, error) {
	if !kind.Valid() {
		return nil, nil, fmt.Errorf("unknown record kind %q", kind)
	}

	r.logger.Debug("Getting records from sheet", zap.String("sheet", kind.SheetName()))

	sheet, err := r.gateway.GetSheet(ctx, kind.SheetName())
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.gateway.ReadAllRows(ctx, sheet)
	if err != nil {
		return nil, nil, err
	}

	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		record, err := kind.Decode(row)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s row %d: %w", kind, i+firstDataRow, err)
		}
		records = append(records, record)
	}

	return sheet, records, nil
}

func (r *spreadsheetRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	_, records, err := r.ListRecords(ctx, domain.KindProducts)
	if err != nil {
		return nil, err
	}
	return asProducts(records), nil
}

func (r *spreadsheetRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	_, records, err := r.ListRecords(ctx, domain.KindOrders)
	if err != nil {
		return nil, err
	}
	return asOrders(records), nil
}

// ListOrdersForUser filters all orders by exact email match, keeping sheet order.
func (r *spreadsheetRepository) ListOrdersForUser(ctx context.Context, email string) ([]domain.Order, error) {
	orders, err := r.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	matching := []domain.Order{}
	for _, o := range orders {
		if o.UserEmail == email {
			matching = append(matching, o)
		}
	}
	return matching, nil
}

// FindProduct scans the products sheet for the given id.
func (r *spreadsheetRepository) FindProduct(ctx context.Context, id int) (*domain.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// CreateRecords assigns ids and creation timestamps and appends all records
// in one call, directly below the existing data.
func (r *spreadsheetRepository) CreateRecords(ctx context.Context, kind domain.Kind, records []domain.Record) ([]domain.Record, error) {
	for _, record := range records {
		if record.Kind() != kind {
			return nil, fmt.Errorf("%w: %s record for %s sheet", ErrKindMismatch, record.Kind(), kind)
		}
	}

	sheet, existing, err := r.ListRecords(ctx, kind)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Detected existing records",
		zap.String("sheet", sheet.Title),
		zap.Int("count", len(existing)),
	)

	if len(records) == 0 {
		return []domain.Record{}, nil
	}

	nextID := nextRecordID(existing)
	created := make([]domain.Record, 0, len(records))
	rows := make([][]interface{}, 0, len(records))
	for _, record := range records {
		stamped := record.Stamp(nextID, r.now())
		nextID++

		created = append(created, stamped)
		rows = append(rows, stamped.Row())
	}

	// header row, then existing records
	nextRow := len(existing) + firstDataRow
	res, err := r.gateway.AppendRows(ctx, sheet, rows, nextRow)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	r.logger.Debug("Inserted records",
		zap.String("sheet", sheet.Title),
		zap.String("range", res.UpdatedRange),
		zap.Int("rows", res.UpdatedRows),
	)

	return created, nil
}

func (r *spreadsheetRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.CreateProducts(ctx, []domain.Product{product})
	if err != nil {
		return domain.Product{}, err
	}
	return created[0], nil
}

func (r *spreadsheetRepository) CreateProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	records := make([]domain.Record, len(products))
	for i, p := range products {
		records[i] = p
	}

	created, err := r.CreateRecords(ctx, domain.KindProducts, records)
	if err != nil {
		return nil, err
	}
	return asProducts(created), nil
}

func (r *spreadsheetRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.CreateOrders(ctx, []domain.Order{order})
	if err != nil {
		return domain.Order{}, err
	}
	return created[0], nil
}

func (r *spreadsheetRepository) CreateOrders(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	records := make([]domain.Record, len(orders))
	for i, o := range orders {
		records[i] = o
	}

	created, err := r.CreateRecords(ctx, domain.KindOrders, records)
	if err != nil {
		return nil, err
	}
	return asOrders(created), nil
}

// SeedDefaultProducts fills an empty products sheet with the demo catalog.
// It reports whether anything was written.
func (r *spreadsheetRepository) SeedDefaultProducts(ctx context.Context) (bool, error) {
	_, products, err := r.ListRecords(ctx, domain.KindProducts)
	if err != nil {
		return false, err
	}
	if len(products) > 0 {
		return false, nil
	}

	r.logger.Info("Seeding default products")

	if _, err := r.CreateProducts(ctx, domain.DefaultProducts()); err != nil {
		return false, fmt.Errorf("failed to seed products: %w", err)
	}
	return true, nil
}

// ClearAll deletes every data row of the kind's sheet, keeping the header.
func (r *spreadsheetRepository) ClearAll(ctx context.Context, kind domain.Kind) error {
	sheet, records, err := r.ListRecords(ctx, kind)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	r.logger.Info("Destroying all records",
		zap.String("sheet", sheet.Title),
		zap.Int("count", len(records)),
	)

	if err := r.gateway.DeleteRows(ctx, sheet, firstDataRow, len(records)+1); err != nil {
		return fmt.Errorf("failed to clear %s: %w", kind, err)
	}
	return nil
}

// nextRecordID is one past the largest existing id, or 1 for an empty sheet.
func nextRecordID(records []domain.Record) int {
	maxID := 0
	for _, record := range records {
		if id := record.RecordID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func asProducts(records []domain.Record) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.(domain.Product))
	}
	return products
}

func asOrders(records []domain.Record) []domain.Order {
	orders := make([]domain.Order, 0, len(records))
	for _, record := range records {
		orders = append(orders, record.(domain.Order))
	}
	return orders
}
