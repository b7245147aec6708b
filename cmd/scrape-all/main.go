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
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/gif"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/govpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/pubmed"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/urpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/enrichment"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/services"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/scaleway"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/config"
)

func main() {
	var checkToday bool
	flag.BoolVar(&checkToday, "check-today", false, "Skip the run when today's scrape already happened")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger("scrape-all", os.Getenv("APP_ENV"))

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	eventRepo := database.NewDrugEventAdapter(pgClient)
	regulationRepo := database.NewLegalRegulationAdapter(pgClient)
	newsRepo := database.NewMedicalNewsAdapter(pgClient)

	var gateway *enrichment.Gateway
	generator, err := scaleway.NewClient(&cfg.Scaleway)
	if err != nil {
		log.Printf("Text generation disabled: %v", err)
		gateway = enrichment.NewGateway(nil)
	} else {
		gateway = enrichment.NewGateway(generator)
	}

	drugEventService := services.NewDrugEventIngestionService(
		gif.NewClient(cfg.Sources.GIFBaseURL, cfg.Sources.GIFRetentionDays),
		urpl.NewClient(cfg.Sources.URPLBaseURL, cfg.Sources.URPLPageSize),
		services.NewDrugEventUpserter(eventRepo),
		gateway,
	)
	regulationService := services.NewRegulationIngestionService(
		govpl.NewClient(cfg.Sources.GovPLBaseURL, cfg.Sources.GovPLPageID),
		services.NewRegulationUpserter(regulationRepo),
		gateway,
	)
	newsService := services.NewNewsIngestionService(
		pubmed.NewClient(cfg.Sources.PubMedBaseURL, cfg.Sources.PubMedLimit),
		services.NewNewsUpserter(newsRepo),
		gateway,
	)
	runner := services.NewScrapeRunner(drugEventService, regulationService, newsService, eventRepo)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()

	var summaries []*services.IngestionSummary
	if checkToday {
		summaries, err = runner.RunAllIfNeeded(ctx)
		if err != nil {
			log.Fatalf("Run failed: %v", err)
		}
		if summaries == nil {
			log.Println("Scrape already ran today, nothing to do")
			return
		}
	} else {
		summaries = runner.RunAll(ctx)
	}

	log.Printf("All sources finished in %s", time.Since(start))
	for _, summary := range summaries {
		log.Printf("[%s] created=%d updated=%d skipped=%d skipped_rows=%d errors=%d",
			summary.Source, summary.Created, summary.Updated, summary.Skipped,
			summary.SkippedRows, len(summary.Errors))
		for _, msg := range summary.ErrorsPreview(5) {
			log.Printf("[%s] error: %s", summary.Source, msg)
		}
	}
}
