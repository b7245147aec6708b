package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
)

type stubEventRepo struct {
	repositories.DrugEventRepository

	events     []*entities.DrugEvent
	lastFilter repositories.DrugEventFilter
	byID       map[string]*entities.DrugEvent
}

func (s *stubEventRepo) List(_ context.Context, filter repositories.DrugEventFilter) ([]*entities.DrugEvent, error) {
	s.lastFilter = filter
	return s.events, nil
}

func (s *stubEventRepo) GetByID(_ context.Context, id string) (*entities.DrugEvent, error) {
	if e, ok := s.byID[id]; ok {
		return e, nil
	}
	return nil, apperrors.NewNotFoundError("drug event not found")
}

func TestListDrugEvents(t *testing.T) {
	repo := &stubEventRepo{
		events: []*entities.DrugEvent{
			{ID: "evt-1", DrugName: "Apap", EventType: entities.EventTypeWithdrawal, Source: entities.DataSourceGIF},
		},
	}
	handler := NewDrugEventHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/drug-events?event_type=WITHDRAWAL&source=GIF&limit=10", nil)
	w := httptest.NewRecorder()

	handler.ListDrugEvents(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, entities.EventTypeWithdrawal, repo.lastFilter.EventType)
	assert.Equal(t, entities.DataSourceGIF, repo.lastFilter.Source)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Nil(t, repo.lastFilter.PublishedAfter)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(1), response["count"])
}

func TestListDrugEventsRecentOnly(t *testing.T) {
	repo := &stubEventRepo{}
	handler := NewDrugEventHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/drug-events?recent_only=true", nil)
	w := httptest.NewRecorder()

	handler.ListDrugEvents(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.lastFilter.PublishedAfter)

	expected := time.Now().AddDate(0, 0, -10)
	assert.WithinDuration(t, expected, *repo.lastFilter.PublishedAfter, time.Minute)
}

func TestGetDrugEvent(t *testing.T) {
	repo := &stubEventRepo{
		byID: map[string]*entities.DrugEvent{
			"evt-1": {ID: "evt-1", DrugName: "Apap"},
		},
	}
	handler := NewDrugEventHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/drug-events/evt-1", nil)
	req.SetPathValue("id", "evt-1")
	w := httptest.NewRecorder()

	handler.GetDrugEvent(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var event entities.DrugEvent
	require.NoError(t, json.NewDecoder(w.Body).Decode(&event))
	assert.Equal(t, "Apap", event.DrugName)
}

func TestGetDrugEventNotFound(t *testing.T) {
	handler := NewDrugEventHandler(&stubEventRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/drug-events/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.GetDrugEvent(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
