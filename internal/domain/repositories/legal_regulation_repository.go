package repositories

import (
	"context"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
)

// LegalRegulationRepository defines the interface for regulation data operations
type LegalRegulationRepository interface {
	// Create creates a new legal regulation
	Create(ctx context.Context, regulation *entities.LegalRegulation) error

	// GetByID retrieves a regulation by ID
	GetByID(ctx context.Context, id string) (*entities.LegalRegulation, error)

	// GetByRegistryNumber retrieves a regulation by its registry number
	GetByRegistryNumber(ctx context.Context, registryNumber string) (*entities.LegalRegulation, error)

	// List retrieves regulations, newest first
	List(ctx context.Context, filter LegalRegulationFilter) ([]*entities.LegalRegulation, error)
}

// LegalRegulationFilter defines filters for listing regulations
type LegalRegulationFilter struct {
	Responsible string
	Limit       int
	Offset      int
}
