package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/observability"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
)

// drugImportEntry mirrors the bulk export's verbatim Polish field names,
// including the accented "ilość" quantity key.
type drugImportEntry struct {
	ProductName         string   `json:"nazwa_produktu_leczniczego"`
	CommonName          string   `json:"nazwa_powszechnie_stosowana"`
	AdministrationRoute string   `json:"droga_podania_gatunek_tkanka_okres_karencji"`
	Strength            string   `json:"moc"`
	ActiveSubstance     string   `json:"substancja_czynna"`
	AuthorizationNumber string   `json:"numer_pozwolenia"`
	Holder              string   `json:"podmiot_odpowiedzialny"`
	Manufacturer        string   `json:"nazwa_wytw_rcy"`
	Price               *float64 `json:"cena"`
	Quantity            *int     `json:"ilość"`
}

// DrugImportService loads the medicinal product registry from a bulk
// JSON export.
type DrugImportService struct {
	upserter *DrugUpserter
	now      func() time.Time
}

// NewDrugImportService creates a new drug import service.
func NewDrugImportService(upserter *DrugUpserter) *DrugImportService {
	return &DrugImportService{
		upserter: upserter,
		now:      time.Now,
	}
}

// ImportFromJSON reads a JSON array of products and stores the ones not
// yet present, keyed on (product name, active substance).
func (s *DrugImportService) ImportFromJSON(ctx context.Context, r io.Reader) (*IngestionSummary, error) {
	logger := observability.LoggerFromContext(ctx)
	summary := &IngestionSummary{Source: "DRUG_IMPORT"}

	var entries []drugImportEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid drug import payload: %v", err))
	}

	for i, entry := range entries {
		if entry.ProductName == "" {
			summary.SkippedRows++
			logger.Warn().Int("row", i).Msg("skipped product without a name")
			continue
		}

		exists, err := s.upserter.Exists(ctx, entry.ProductName, entry.ActiveSubstance)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("lookup %s: %v", entry.ProductName, err))
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		now := s.now().UTC()
		drug := &entities.Drug{
			ID:                  uuid.New().String(),
			ProductName:         entry.ProductName,
			CommonName:          entry.CommonName,
			AdministrationRoute: entry.AdministrationRoute,
			Strength:            entry.Strength,
			ActiveSubstance:     entry.ActiveSubstance,
			AuthorizationNumber: entry.AuthorizationNumber,
			Holder:              entry.Holder,
			Manufacturer:        entry.Manufacturer,
			Price:               entry.Price,
			Quantity:            entry.Quantity,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		outcome, err := s.upserter.Insert(ctx, drug)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("insert %s: %v", entry.ProductName, err))
			continue
		}
		summary.record(outcome)
	}

	logger.Info().
		Int("created", summary.Created).
		Int("skipped", summary.Skipped).
		Int("skipped_rows", summary.SkippedRows).
		Int("errors", len(summary.Errors)).
		Msg("drug import finished")

	return summary, nil
}
