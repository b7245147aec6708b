package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/gif"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/urpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/enrichment"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
)

// GIFSource fetches decision table records.
type GIFSource interface {
	Fetch(ctx context.Context) ([]gif.Record, []sources.RowIssue, error)
}

// URPLSource fetches medicinal product registry records.
type URPLSource interface {
	Fetch(ctx context.Context) ([]urpl.Record, []sources.RowIssue, error)
}

// DrugEnricher generates drug event descriptions.
type DrugEnricher interface {
	DrugDescription(ctx context.Context, input enrichment.DrugEventInput) (string, bool)
}

// DrugEventIngestionService turns source records into stored drug
// events. Each record is handled in isolation; one bad record never
// aborts the run.
type DrugEventIngestionService struct {
	gifSource  GIFSource
	urplSource URPLSource
	upserter   *DrugEventUpserter
	enricher   DrugEnricher
	now        func() time.Time
}

// NewDrugEventIngestionService creates a new drug event ingestion service.
func NewDrugEventIngestionService(
	gifSource GIFSource,
	urplSource URPLSource,
	upserter *DrugEventUpserter,
	enricher DrugEnricher,
) *DrugEventIngestionService {
	return &DrugEventIngestionService{
		gifSource:  gifSource,
		urplSource: urplSource,
		upserter:   upserter,
		enricher:   enricher,
		now:        time.Now,
	}
}

// RunGIF ingests the inspectorate decision table. The adapter has
// already dropped decisions past the retention window.
func (s *DrugEventIngestionService) RunGIF(ctx context.Context) (*IngestionSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	summary := &IngestionSummary{Source: string(entities.DataSourceGIF)}

	records, issues, err := s.gifSource.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	summary.SkippedRows = len(issues)
	for _, issue := range issues {
		logger.Warn().Int("row", issue.Index).Str("reason", issue.Reason).Msg("skipped decision row")
	}

	for _, record := range records {
		key := entities.DrugEventKey{
			EventType: record.EventType,
			DrugName:  record.DrugName,
			Source:    entities.DataSourceGIF,
		}

		exists, err := s.upserter.Exists(ctx, key)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("lookup %s: %v", key, err))
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		// Enrichment runs before the insert so no transaction is held
		// open during the API call. A failed generation stores the
		// event without a description.
		publicationDate := record.DecisionDate
		description, _ := s.enricher.DrugDescription(ctx, enrichment.DrugEventInput{
			EventType:       record.EventType,
			DrugName:        record.DrugName,
			Strength:        record.Strength,
			Holder:          record.Holder,
			PublicationDate: &publicationDate,
			DecisionNumber:  record.DecisionNumber,
		})

		now := s.now().UTC()
		event := &entities.DrugEvent{
			ID:              uuid.New().String(),
			EventType:       record.EventType,
			Source:          entities.DataSourceGIF,
			PublicationDate: record.DecisionDate,
			DecisionNumber:  record.DecisionNumber,
			DrugName:        record.DrugName,
			DrugStrength:    record.Strength,
			Holder:          record.Holder,
			Description:     description,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		outcome, err := s.upserter.Insert(ctx, event)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("insert %s: %v", key, err))
			continue
		}
		summary.record(outcome)
	}

	logger.Info().
		Str("source", summary.Source).
		Int("created", summary.Created).
		Int("skipped", summary.Skipped).
		Int("skipped_rows", summary.SkippedRows).
		Int("errors", len(summary.Errors)).
		Msg("drug event ingestion finished")

	return summary, nil
}

// RunURPL ingests the medicinal product registry. Registry entries have
// no decision date, so the run date stands in as the publication date.
func (s *DrugEventIngestionService) RunURPL(ctx context.Context) (*IngestionSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	summary := &IngestionSummary{Source: string(entities.DataSourceURPL)}

	records, issues, err := s.urplSource.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	summary.SkippedRows = len(issues)
	for _, issue := range issues {
		logger.Warn().Int("row", issue.Index).Str("reason", issue.Reason).Msg("skipped registry row")
	}

	publicationDate := s.now().UTC().Truncate(24 * time.Hour)

	for _, record := range records {
		key := entities.DrugEventKey{
			EventType: record.EventType,
			DrugName:  record.DrugName,
			Source:    entities.DataSourceURPL,
		}

		exists, err := s.upserter.Exists(ctx, key)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("lookup %s: %v", key, err))
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		description, _ := s.enricher.DrugDescription(ctx, enrichment.DrugEventInput{
			EventType:       record.EventType,
			DrugName:        record.DrugName,
			Strength:        record.Strength,
			Form:            record.Form,
			Holder:          record.Holder,
			PublicationDate: &publicationDate,
			DecisionNumber:  record.DecisionNumber,
		})

		now := s.now().UTC()
		event := &entities.DrugEvent{
			ID:              uuid.New().String(),
			EventType:       record.EventType,
			Source:          entities.DataSourceURPL,
			PublicationDate: publicationDate,
			DecisionNumber:  record.DecisionNumber,
			DrugName:        record.DrugName,
			DrugStrength:    record.Strength,
			DrugForm:        record.Form,
			Holder:          record.Holder,
			ExpiryDate:      record.ExpiryDate,
			Description:     description,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		outcome, err := s.upserter.Insert(ctx, event)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("insert %s: %v", key, err))
			continue
		}
		summary.record(outcome)
	}

	logger.Info().
		Str("source", summary.Source).
		Int("created", summary.Created).
		Int("skipped", summary.Skipped).
		Int("skipped_rows", summary.SkippedRows).
		Int("errors", len(summary.Errors)).
		Msg("drug event ingestion finished")

	return summary, nil
}
