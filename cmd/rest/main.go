package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/vinixspb/vnxChooseApple-bot/internal/bootstrap"
	"github.com/vinixspb/vnxChooseApple-bot/internal/config"
	"github.com/vinixspb/vnxChooseApple-bot/internal/server"
	"github.com/vinixspb/vnxChooseApple-bot/internal/tracer"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Sheets.SpreadsheetID == "" || cfg.Sheets.APIKey == "" {
		log.Fatal("SPREADSHEET_ID and SHEETS_API_KEY are required")
	}

	// 2. Initialize Database (optional; leads stay in memory without it)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Lead Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
