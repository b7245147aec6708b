package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/database"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/pubmed"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/enrichment"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/services"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/scaleway"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/config"
)

func main() {
	var limit int
	flag.IntVar(&limit, "limit", 0, "Number of articles to fetch (defaults to PUBMED_LIMIT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if limit > 0 {
		cfg.Sources.PubMedLimit = limit
	}

	observability.InitLogger("fetch-news", os.Getenv("APP_ENV"))

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	newsRepo := database.NewMedicalNewsAdapter(pgClient)

	var gateway *enrichment.Gateway
	generator, err := scaleway.NewClient(&cfg.Scaleway)
	if err != nil {
		log.Printf("Translation disabled: %v", err)
		gateway = enrichment.NewGateway(nil)
	} else {
		gateway = enrichment.NewGateway(generator)
	}

	svc := services.NewNewsIngestionService(
		pubmed.NewClient(cfg.Sources.PubMedBaseURL, cfg.Sources.PubMedLimit),
		services.NewNewsUpserter(newsRepo),
		gateway,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	summary, err := svc.Run(ctx)
	if err != nil {
		log.Fatalf("Fetch failed: %v", err)
	}

	log.Printf("Fetch complete in %s", time.Since(start))
	log.Printf("Created: %d", summary.Created)
	log.Printf("Updated: %d", summary.Updated)
	log.Printf("Skipped: %d", summary.Skipped)
	for _, msg := range summary.ErrorsPreview(10) {
		log.Printf("Error: %s", msg)
	}
}
