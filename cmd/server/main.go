package main

import (
	"context"
	"flag"
	"log"

	"github.com/SAP-F-2025/quiz-generation-service/internal/app"
	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on startup even when auto-migrate is off")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *migrateOnly {
		logger := app.NewLogger(cfg)
		db, err := app.OpenDatabase(cfg, true, logger)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		logger.Info("Database migration complete")
		return
	}

	application, err := app.NewApp(context.Background(), cfg, *migrate)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
