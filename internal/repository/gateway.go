package repository

import (
	"context"
	"fmt"

	"sheet-shop/internal/config"
	"sheet-shop/internal/domain"
	"sheet-shop/internal/sheets"
)

// NewGateway opens the spreadsheet backend selected by the configuration.
// The memory backend starts with one empty sheet per record kind.
func NewGateway(ctx context.Context, cfg config.SheetsConfig) (sheets.Gateway, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		store := sheets.NewMemory("memory")
		for _, kind := range domain.Kinds {
			store.AddSheet(kind.SheetName(), kind.Header())
		}
		return store, nil
	case config.BackendGoogle, "":
		client, err := sheets.NewClient(ctx, sheets.Config{
			CredentialsFile: cfg.CredentialsFile,
			DocumentID:      cfg.DocumentID,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown sheets backend %q", cfg.Backend)
	}
}
