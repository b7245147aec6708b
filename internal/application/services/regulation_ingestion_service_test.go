package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/govpl"
)

func TestRegulationRun(t *testing.T) {
	planned := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	repo := newFakeRegulationRepo()
	enricher := &fakeRegulationEnricher{title: "Nowy wykaz", summary: "Opis AI", ok: true}
	source := &fakeRegulationSource{
		records: []govpl.Record{
			{
				RegistryNumber:    "MZ 1578",
				Ordinal:           "12",
				LegalBasis:        "art. 37 ustawy",
				OriginalTitle:     "Rozporządzenie w sprawie wykazu",
				Essence:           "Istota rozwiązań",
				ResponsiblePerson: "Jan Kowalski",
				PlannedTermText:   "III kwartał 2026",
				PlannedDate:       &planned,
			},
		},
		issues: []sources.RowIssue{{Index: 3, Reason: "entry has no registry number"}},
	}

	service := NewRegulationIngestionService(source, NewRegulationUpserter(repo), enricher)

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.SkippedRows)

	stored, err := repo.GetByRegistryNumber(context.Background(), "MZ 1578")
	require.NoError(t, err)
	assert.Equal(t, "Nowy wykaz", stored.Title)
	assert.Equal(t, "Opis AI", stored.Summary)
	assert.Equal(t, "12", stored.Ordinal)
	assert.Equal(t, "art. 37 ustawy", stored.LegalBasis)
	assert.Equal(t, "Rozporządzenie w sprawie wykazu", stored.OriginalTitle)
	assert.Equal(t, "Istota rozwiązań", stored.Essence)
	assert.Equal(t, "Jan Kowalski", stored.ResponsiblePerson)
	assert.Equal(t, "III kwartał 2026", stored.PlannedTermText)
	assert.Equal(t, source.SourceURL(), stored.SourceURL)
	require.NotNil(t, stored.PlannedDate)
	assert.Equal(t, planned, *stored.PlannedDate)
}

func TestRegulationRunSkipsKnownEntriesBeforeEnrichment(t *testing.T) {
	repo := newFakeRegulationRepo()
	enricher := &fakeRegulationEnricher{title: "T", summary: "S", ok: true}
	source := &fakeRegulationSource{
		records: []govpl.Record{{RegistryNumber: "MZ 1578", OriginalTitle: "Tytuł"}},
	}

	service := NewRegulationIngestionService(source, NewRegulationUpserter(repo), enricher)

	_, err := service.Run(context.Background())
	require.NoError(t, err)

	second, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 1, enricher.calls, "known entries must not spend enrichment requests")
}

func TestRegulationRunEnrichmentFallback(t *testing.T) {
	repo := newFakeRegulationRepo()
	source := &fakeRegulationSource{
		records: []govpl.Record{
			{
				RegistryNumber: "MZ 1600",
				OriginalTitle:  strings.Repeat("t", 600),
				Essence:        "Istota rozwiązań",
			},
			{RegistryNumber: "MZ 1601"},
		},
	}

	service := NewRegulationIngestionService(source, NewRegulationUpserter(repo), &fakeRegulationEnricher{ok: false})

	summary, err := service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)

	// The register's own wording stands in, truncated to the title cap.
	stored, err := repo.GetByRegistryNumber(context.Background(), "MZ 1600")
	require.NoError(t, err)
	assert.Len(t, stored.Title, 500)
	assert.Equal(t, "Istota rozwiązań", stored.Summary)

	// Entries with no usable wording get placeholders.
	empty, err := repo.GetByRegistryNumber(context.Background(), "MZ 1601")
	require.NoError(t, err)
	assert.Equal(t, "Brak tytułu", empty.Title)
	assert.Equal(t, "Brak opisu", empty.Summary)
}

func TestRegulationRunFetchFailure(t *testing.T) {
	source := &fakeRegulationSource{err: errors.New("timeout")}
	service := NewRegulationIngestionService(source, NewRegulationUpserter(newFakeRegulationRepo()), &fakeRegulationEnricher{})

	_, err := service.Run(context.Background())
	assert.Error(t, err)
}
