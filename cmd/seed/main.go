package main

import (
	"context"
	"os"
	"time"

	"sheet-shop/internal/config"
	"sheet-shop/internal/domain"
	"sheet-shop/internal/logger"
	"sheet-shop/internal/repository"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	reset := flag.BoolP("reset", "r", false, "delete every product and order row before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Must(cfg.Server.Env)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gateway, err := repository.NewGateway(ctx, cfg.Sheets)
	if err != nil {
		log.Fatal("Failed to open spreadsheet", zap.Error(err))
	}
	repo := repository.NewSpreadsheetRepository(gateway, log)

	if *reset {
		for _, kind := range domain.Kinds {
			if err := repo.ClearAll(ctx, kind); err != nil {
				log.Fatal("Failed to clear sheet", zap.String("sheet", kind.SheetName()), zap.Error(err))
			}
		}
	}

	seeded, err := repo.SeedDefaultProducts(ctx)
	if err != nil {
		log.Fatal("Failed to seed products", zap.Error(err))
	}
	if !seeded {
		log.Info("Products sheet already has data, nothing seeded")
	}

	for _, kind := range domain.Kinds {
		sheet, records, err := repo.ListRecords(ctx, kind)
		if err != nil {
			log.Error("Failed to list records", zap.String("sheet", kind.SheetName()), zap.Error(err))
			os.Exit(1)
		}

		log.Info("Sheet contents", zap.String("sheet", sheet.Title), zap.Int("records", len(records)))
		for _, record := range records {
			log.Info("Record", zap.String("sheet", sheet.Title), zap.Any("record", record))
		}
	}
}
