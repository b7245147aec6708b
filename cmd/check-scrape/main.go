package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/database"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/services"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger("check-scrape", os.Getenv("APP_ENV"))

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	eventRepo := database.NewDrugEventAdapter(pgClient)
	runner := services.NewScrapeRunner(nil, nil, nil, eventRepo)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ran, err := runner.RanToday(ctx)
	if err != nil {
		log.Fatalf("Failed to check today's runs: %v", err)
	}

	gifCount, err := eventRepo.CountBySource(ctx, entities.DataSourceGIF)
	if err != nil {
		log.Fatalf("Failed to count inspectorate events: %v", err)
	}
	urplCount, err := eventRepo.CountBySource(ctx, entities.DataSourceURPL)
	if err != nil {
		log.Fatalf("Failed to count registry events: %v", err)
	}

	log.Printf("Ran today: %t", ran)
	log.Printf("GIF events: %d", gifCount)
	log.Printf("URPL events: %d", urplCount)

	if !ran {
		os.Exit(1)
	}
}
