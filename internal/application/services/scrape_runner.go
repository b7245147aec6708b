package services

import (
	"context"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
)

// ScrapeRunner runs every ingestion source in sequence. Sources are
// isolated from each other: a source whose fetch fails contributes an
// error summary and the run moves on.
type ScrapeRunner struct {
	drugEvents  *DrugEventIngestionService
	regulations *RegulationIngestionService
	news        *NewsIngestionService
	eventRepo   repositories.DrugEventRepository
	now         func() time.Time
}

// NewScrapeRunner creates a new scrape runner.
func NewScrapeRunner(
	drugEvents *DrugEventIngestionService,
	regulations *RegulationIngestionService,
	news *NewsIngestionService,
	eventRepo repositories.DrugEventRepository,
) *ScrapeRunner {
	return &ScrapeRunner{
		drugEvents:  drugEvents,
		regulations: regulations,
		news:        news,
		eventRepo:   eventRepo,
		now:         time.Now,
	}
}

// RunAll runs all sources and returns one summary per source.
func (r *ScrapeRunner) RunAll(ctx context.Context) []*IngestionSummary {
	logger := observability.LoggerFromContext(ctx)

	type step struct {
		name string
		run  func(context.Context) (*IngestionSummary, error)
	}

	steps := []step{
		{"GIF", r.drugEvents.RunGIF},
		{"URPL", r.drugEvents.RunURPL},
		{"REGULATIONS", r.regulations.Run},
		{"PUBMED", r.news.Run},
	}

	summaries := make([]*IngestionSummary, 0, len(steps))
	for _, s := range steps {
		summary, err := s.run(ctx)
		if err != nil {
			logger.Error().Err(err).Str("source", s.name).Msg("source run failed")
			summary = &IngestionSummary{Source: s.name, Errors: []string{err.Error()}}
		}
		summaries = append(summaries, summary)
	}

	return summaries
}

// RanToday reports whether any drug events were recorded since local
// midnight, which marks the daily run as done.
func (r *ScrapeRunner) RanToday(ctx context.Context) (bool, error) {
	now := r.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := r.eventRepo.CountCreatedSince(ctx, midnight)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RunAllIfNeeded runs all sources unless today's run already happened.
// The returned summaries are nil when the run was skipped.
func (r *ScrapeRunner) RunAllIfNeeded(ctx context.Context) ([]*IngestionSummary, error) {
	ran, err := r.RanToday(ctx)
	if err != nil {
		return nil, err
	}
	if ran {
		observability.LoggerFromContext(ctx).Info().Msg("scrape already ran today, skipping")
		return nil, nil
	}
	return r.RunAll(ctx), nil
}
