package repositories

import (
	"context"
	"time"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
)

// DrugEventRepository defines the interface for drug event data operations
type DrugEventRepository interface {
	// Create creates a new drug event
	Create(ctx context.Context, event *entities.DrugEvent) error

	// GetByID retrieves a drug event by ID
	GetByID(ctx context.Context, id string) (*entities.DrugEvent, error)

	// GetByKey retrieves a drug event by its natural key
	GetByKey(ctx context.Context, key entities.DrugEventKey) (*entities.DrugEvent, error)

	// List retrieves drug events with filters, newest publication first
	List(ctx context.Context, filter DrugEventFilter) ([]*entities.DrugEvent, error)

	// CountBySource counts events recorded for a source
	CountBySource(ctx context.Context, source entities.DataSource) (int64, error)

	// CountCreatedSince counts events recorded at or after the given time
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// DrugEventFilter defines filters for listing drug events
type DrugEventFilter struct {
	EventType entities.EventType
	Source    entities.DataSource
	// PublishedAfter keeps only events published on or after the date
	PublishedAfter *time.Time
	Limit          int
	Offset         int
}
