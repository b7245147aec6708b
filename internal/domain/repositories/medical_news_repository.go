package repositories

import (
	"context"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
)

// MedicalNewsRepository defines the interface for news data operations
type MedicalNewsRepository interface {
	// Create creates a new news item
	Create(ctx context.Context, news *entities.MedicalNews) error

	// GetByID retrieves a news item by ID
	GetByID(ctx context.Context, id string) (*entities.MedicalNews, error)

	// GetByURL retrieves a news item by its canonical URL
	GetByURL(ctx context.Context, url string) (*entities.MedicalNews, error)

	// Update updates a news item, used to backfill translations
	Update(ctx context.Context, news *entities.MedicalNews) error

	// List retrieves news items, newest publication first
	List(ctx context.Context, filter MedicalNewsFilter) ([]*entities.MedicalNews, error)
}

// MedicalNewsFilter defines filters for listing news
type MedicalNewsFilter struct {
	// Translated filters by translation status when set
	Translated *bool
	Limit      int
	Offset     int
}
