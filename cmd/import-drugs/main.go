package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/database"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/services"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/config"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to the registry export JSON file")
	flag.Parse()

	if filePath == "" {
		log.Fatal("Missing required -file flag")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger("import-drugs", os.Getenv("APP_ENV"))

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	drugRepo := database.NewDrugAdapter(pgClient)
	service := services.NewDrugImportService(services.NewDrugUpserter(drugRepo))

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", filePath, err)
	}
	defer file.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := service.ImportFromJSON(ctx, file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import finished: created=%d skipped=%d skipped_rows=%d errors=%d",
		summary.Created, summary.Skipped, summary.SkippedRows, len(summary.Errors))
	if preview := summary.ErrorsPreview(10); len(preview) > 0 {
		log.Printf("First errors:\n%s", strings.Join(preview, "\n"))
	}
}
