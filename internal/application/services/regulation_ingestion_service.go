package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/govpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/application/enrichment"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/normalize"
)

const regulationTitleMaxLen = 500

// RegulationSource fetches regulation register entries.
type RegulationSource interface {
	Fetch(ctx context.Context) ([]govpl.Record, []sources.RowIssue, error)
	SourceURL() string
}

// RegulationEnricher generates regulation titles and summaries.
type RegulationEnricher interface {
	RegulationTitleAndSummary(ctx context.Context, input enrichment.RegulationInput) (string, string, bool)
}

// RegulationIngestionService turns register entries into stored
// regulations.
type RegulationIngestionService struct {
	source   RegulationSource
	upserter *RegulationUpserter
	enricher RegulationEnricher
	now      func() time.Time
}

// NewRegulationIngestionService creates a new regulation ingestion service.
func NewRegulationIngestionService(
	source RegulationSource,
	upserter *RegulationUpserter,
	enricher RegulationEnricher,
) *RegulationIngestionService {
	return &RegulationIngestionService{
		source:   source,
		upserter: upserter,
		enricher: enricher,
		now:      time.Now,
	}
}

// Run ingests the regulation register. Known registry numbers are
// skipped before the enrichment call, so reruns cost no AI requests.
func (s *RegulationIngestionService) Run(ctx context.Context) (*IngestionSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	summary := &IngestionSummary{Source: "REGULATIONS"}

	records, issues, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	summary.SkippedRows = len(issues)
	for _, issue := range issues {
		logger.Warn().Int("row", issue.Index).Str("reason", issue.Reason).Msg("skipped register entry")
	}

	for _, record := range records {
		exists, err := s.upserter.Exists(ctx, record.RegistryNumber)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("lookup %s: %v", record.RegistryNumber, err))
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		title, regSummary, ok := s.enricher.RegulationTitleAndSummary(ctx, enrichment.RegulationInput{
			RegistryNumber:     record.RegistryNumber,
			LegalBasis:         record.LegalBasis,
			OriginalTitle:      record.OriginalTitle,
			Essence:            record.Essence,
			ReasonAndNeed:      record.ReasonAndNeed,
			ResignationReasons: record.ResignationReasons,
		})
		if !ok {
			// Fall back to the register's own wording.
			title = normalize.Truncate(record.OriginalTitle, regulationTitleMaxLen)
			regSummary = record.Essence
			if title == "" {
				title = "Brak tytułu"
			}
			if regSummary == "" {
				regSummary = "Brak opisu"
			}
		}

		now := s.now().UTC()
		regulation := &entities.LegalRegulation{
			ID:                 uuid.New().String(),
			Ordinal:            record.Ordinal,
			RegistryNumber:     record.RegistryNumber,
			LegalBasis:         record.LegalBasis,
			OriginalTitle:      record.OriginalTitle,
			ResignationReasons: record.ResignationReasons,
			PlannedTermText:    record.PlannedTermText,
			PlannedDate:        record.PlannedDate,
			Essence:            record.Essence,
			ResponsiblePerson:  record.ResponsiblePerson,
			ReasonAndNeed:      record.ReasonAndNeed,
			Title:              title,
			Summary:            regSummary,
			SourceURL:          s.source.SourceURL(),
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		outcome, err := s.upserter.Insert(ctx, regulation)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("insert %s: %v", record.RegistryNumber, err))
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
		Msg("regulation ingestion finished")

	return summary, nil
}
