package repositories

import (
	"context"

	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
)

// DrugRepository defines the interface for drug registry data operations
type DrugRepository interface {
	// Create creates a new drug
	Create(ctx context.Context, drug *entities.Drug) error

	// GetByID retrieves a drug by ID
	GetByID(ctx context.Context, id string) (*entities.Drug, error)

	// GetByProductAndSubstance retrieves a drug by its natural key
	GetByProductAndSubstance(ctx context.Context, productName, activeSubstance string) (*entities.Drug, error)

	// List retrieves drugs with case-insensitive substring filters
	List(ctx context.Context, filter DrugFilter) ([]*entities.Drug, error)

	// SearchByName searches drugs by product name, common name or holder
	SearchByName(ctx context.Context, name string, limit int) ([]*entities.Drug, error)

	// SearchBySubstance searches drugs by active substance
	SearchBySubstance(ctx context.Context, substance string, limit int) ([]*entities.Drug, error)
}

// DrugFilter defines filters for listing drugs
type DrugFilter struct {
	ProductName     string
	CommonName      string
	ActiveSubstance string
	Limit           int
	Offset          int
}
