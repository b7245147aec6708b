package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/database"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/govpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/enrichment"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/services"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/scaleway"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger("scrape-regulations", os.Getenv("APP_ENV"))

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	regulationRepo := database.NewLegalRegulationAdapter(pgClient)

	var gateway *enrichment.Gateway
	generator, err := scaleway.NewClient(&cfg.Scaleway)
	if err != nil {
		log.Printf("Text generation disabled: %v", err)
		gateway = enrichment.NewGateway(nil)
	} else {
		gateway = enrichment.NewGateway(generator)
	}

	svc := services.NewRegulationIngestionService(
		govpl.NewClient(cfg.Sources.GovPLBaseURL, cfg.Sources.GovPLPageID),
		services.NewRegulationUpserter(regulationRepo),
		gateway,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	summary, err := svc.Run(ctx)
	if err != nil {
		log.Fatalf("Scrape failed: %v", err)
	}

	log.Printf("Scrape complete in %s", time.Since(start))
	log.Printf("Created: %d", summary.Created)
	log.Printf("Skipped duplicates: %d", summary.Skipped)
	log.Printf("Skipped rows: %d", summary.SkippedRows)
	for _, msg := range summary.ErrorsPreview(10) {
		log.Printf("Error: %s", msg)
	}
}
