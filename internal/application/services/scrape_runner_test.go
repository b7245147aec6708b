package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/gif"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/pubmed"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/adapters/sources/urpl"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
)

func newTestRunner(repo *fakeEventRepo, gifErr error) *ScrapeRunner {
	gifSource := &fakeGIFSource{err: gifErr}
	if gifErr == nil {
		gifSource.records = []gif.Record{
			{
				EventType:    entities.EventTypeWithdrawal,
				DecisionDate: time.Now().UTC().AddDate(0, 0, -1),
				DrugName:     "Apap",
			},
		}
	}
	urplSource := &fakeURPLSource{
		records: []urpl.Record{{EventType: entities.EventTypeRegistration, DrugName: "Paracetamolum"}},
	}

	drugEvents := NewDrugEventIngestionService(gifSource, urplSource, NewDrugEventUpserter(repo), &fakeDrugEnricher{ok: true})
	regulations := NewRegulationIngestionService(&fakeRegulationSource{}, NewRegulationUpserter(newFakeRegulationRepo()), &fakeRegulationEnricher{ok: true})
	news := NewNewsIngestionService(&fakeNewsSource{articles: []pubmed.Article{}}, NewNewsUpserter(newFakeNewsRepo()), &fakeTranslator{ok: true})

	return NewScrapeRunner(drugEvents, regulations, news, repo)
}

func TestRunAll(t *testing.T) {
	runner := newTestRunner(newFakeEventRepo(), nil)

	summaries := runner.RunAll(context.Background())

	require.Len(t, summaries, 4)
	assert.Equal(t, "GIF", summaries[0].Source)
	assert.Equal(t, "URPL", summaries[1].Source)
	assert.Equal(t, "REGULATIONS", summaries[2].Source)
	assert.Equal(t, "PUBMED", summaries[3].Source)
	assert.Equal(t, 1, summaries[0].Created)
	assert.Equal(t, 1, summaries[1].Created)
}

func TestRunAllIsolatesFailingSource(t *testing.T) {
	runner := newTestRunner(newFakeEventRepo(), errors.New("connection refused"))

	summaries := runner.RunAll(context.Background())

	require.Len(t, summaries, 4)
	require.Len(t, summaries[0].Errors, 1)
	assert.Contains(t, summaries[0].Errors[0], "connection refused")

	// The remaining sources still ran.
	assert.Equal(t, 1, summaries[1].Created)
}

func TestRanToday(t *testing.T) {
	repo := newFakeEventRepo()
	runner := newTestRunner(repo, nil)

	ran, err := runner.RanToday(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)

	runner.RunAll(context.Background())

	ran, err = runner.RanToday(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestRunAllIfNeeded(t *testing.T) {
	repo := newFakeEventRepo()
	runner := newTestRunner(repo, nil)

	summaries, err := runner.RunAllIfNeeded(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summaries)

	// The second call sees today's events and skips.
	skipped, err := runner.RunAllIfNeeded(context.Background())
	require.NoError(t, err)
	assert.Nil(t, skipped)
}
