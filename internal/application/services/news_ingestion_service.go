package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/pubmed"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
)

// NewsSource fetches literature articles.
type NewsSource interface {
	Fetch(ctx context.Context) ([]pubmed.Article, []sources.RowIssue, error)
}

// Translator translates text into Polish.
type Translator interface {
	TranslateToPolish(ctx context.Context, text string) (string, bool)
}

// NewsIngestionService stores literature items and backfills Polish
// translations. An item is marked translated only when both the title
// and the description translated successfully, so failed items are
// picked up again on the next run.
type NewsIngestionService struct {
	source     NewsSource
	upserter   *NewsUpserter
	translator Translator
	now        func() time.Time
}

// NewNewsIngestionService creates a new news ingestion service.
func NewNewsIngestionService(source NewsSource, upserter *NewsUpserter, translator Translator) *NewsIngestionService {
	return &NewsIngestionService{
		source:     source,
		upserter:   upserter,
		translator: translator,
		now:        time.Now,
	}
}

// Run ingests recent literature.
func (s *NewsIngestionService) Run(ctx context.Context) (*IngestionSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	summary := &IngestionSummary{Source: "PUBMED"}

	articles, issues, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	summary.SkippedRows = len(issues)
	for _, issue := range issues {
		logger.Warn().Int("row", issue.Index).Str("reason", issue.Reason).Msg("skipped article")
	}

	for _, article := range articles {
		existing, err := s.upserter.Get(ctx, article.URL)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("lookup %s: %v", article.URL, err))
			continue
		}
		if existing != nil && existing.IsTranslated {
			summary.Skipped++
			continue
		}

		titlePL, titleOK := s.translator.TranslateToPolish(ctx, article.Title)
		descriptionPL, descOK := s.translator.TranslateToPolish(ctx, article.Description)
		translated := titleOK && descOK

		now := s.now().UTC()

		var outcome Outcome
		if existing != nil {
			// A backfill that failed again leaves the stored row untouched.
			if !translated {
				summary.Skipped++
				continue
			}
			existing.TitlePL = titlePL
			existing.DescriptionPL = descriptionPL
			existing.IsTranslated = translated
			existing.UpdatedAt = now
			outcome, err = s.upserter.Backfill(ctx, existing)
		} else {
			news := &entities.MedicalNews{
				ID:              uuid.New().String(),
				Title:           article.Title,
				Description:     article.Description,
				TitlePL:         titlePL,
				DescriptionPL:   descriptionPL,
				URL:             article.URL,
				SourceName:      article.SourceName,
				PublicationDate: article.PublicationDate,
				IsTranslated:    translated,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			outcome, err = s.upserter.Insert(ctx, news)
		}
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("store %s: %v", article.URL, err))
			continue
		}
		summary.record(outcome)
	}

	logger.Info().
		Str("source", summary.Source).
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int("errors", len(summary.Errors)).
		Msg("news ingestion finished")

	return summary, nil
}
