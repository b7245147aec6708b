package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
)

var legalRegulationColumns = []interface{}{
	"id", "ordinal", "registry_number", "legal_basis", "original_title",
	"resignation_reasons", "planned_term_text", "planned_date", "essence",
	"responsible_person", "reason_and_need", "title", "summary", "source_url",
	"created_at", "updated_at",
}

// LegalRegulationAdapter implements LegalRegulationRepository
type LegalRegulationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLegalRegulationAdapter creates a new legal regulation adapter
func NewLegalRegulationAdapter(client *postgres.Client) repositories.LegalRegulationRepository {
	return &LegalRegulationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new legal regulation. The registry number is unique;
// violations surface as a conflict error.
func (a *LegalRegulationAdapter) Create(ctx context.Context, regulation *entities.LegalRegulation) error {
	var planned sql.NullTime
	if regulation.PlannedDate != nil {
		planned = sql.NullTime{Time: *regulation.PlannedDate, Valid: true}
	}

	record := goqu.Record{
		"id":                  regulation.ID,
		"ordinal":             nullString(regulation.Ordinal),
		"registry_number":     regulation.RegistryNumber,
		"legal_basis":         nullString(regulation.LegalBasis),
		"original_title":      nullString(regulation.OriginalTitle),
		"resignation_reasons": nullString(regulation.ResignationReasons),
		"planned_term_text":   nullString(regulation.PlannedTermText),
		"planned_date":        planned,
		"essence":             nullString(regulation.Essence),
		"responsible_person":  nullString(regulation.ResponsiblePerson),
		"reason_and_need":     nullString(regulation.ReasonAndNeed),
		"title":               regulation.Title,
		"summary":             regulation.Summary,
		"source_url":          nullString(regulation.SourceURL),
		"created_at":          regulation.CreatedAt,
		"updated_at":          regulation.UpdatedAt,
	}

	query, args, err := a.db.Insert("legal_regulations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("regulation %s already exists", regulation.RegistryNumber))
		}
		return apperrors.NewInternalError("failed to create regulation", err)
	}

	return nil
}

// GetByID retrieves a regulation by ID
func (a *LegalRegulationAdapter) GetByID(ctx context.Context, id string) (*entities.LegalRegulation, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("regulation with id %s not found", id))
}

// GetByRegistryNumber retrieves a regulation by its registry number
func (a *LegalRegulationAdapter) GetByRegistryNumber(ctx context.Context, registryNumber string) (*entities.LegalRegulation, error) {
	return a.getOne(ctx, goqu.Ex{"registry_number": registryNumber}, fmt.Sprintf("regulation %s not found", registryNumber))
}

func (a *LegalRegulationAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.LegalRegulation, error) {
	query, args, err := a.db.Select(legalRegulationColumns...).
		From("legal_regulations").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	regulation, err := scanLegalRegulation(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get regulation", err)
	}

	return regulation, nil
}

// List retrieves regulations, newest first
func (a *LegalRegulationAdapter) List(ctx context.Context, filter repositories.LegalRegulationFilter) ([]*entities.LegalRegulation, error) {
	ds := a.db.Select(legalRegulationColumns...).
		From("legal_regulations").
		Order(goqu.I("created_at").Desc())

	if filter.Responsible != "" {
		ds = ds.Where(goqu.I("responsible_person").ILike("%" + filter.Responsible + "%"))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list regulations", err)
	}
	defer rows.Close()

	regulations := []*entities.LegalRegulation{}
	for rows.Next() {
		regulation, err := scanLegalRegulation(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan regulation", err)
		}
		regulations = append(regulations, regulation)
	}

	return regulations, nil
}

func scanLegalRegulation(row rowScanner) (*entities.LegalRegulation, error) {
	regulation := &entities.LegalRegulation{}
	var ordinal, legalBasis, originalTitle, resignation sql.NullString
	var plannedText, essence, responsible, reasonAndNeed, sourceURL sql.NullString
	var planned sql.NullTime

	err := row.Scan(
		&regulation.ID,
		&ordinal,
		&regulation.RegistryNumber,
		&legalBasis,
		&originalTitle,
		&resignation,
		&plannedText,
		&planned,
		&essence,
		&responsible,
		&reasonAndNeed,
		&regulation.Title,
		&regulation.Summary,
		&sourceURL,
		&regulation.CreatedAt,
		&regulation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	regulation.Ordinal = ordinal.String
	regulation.LegalBasis = legalBasis.String
	regulation.OriginalTitle = originalTitle.String
	regulation.ResignationReasons = resignation.String
	regulation.PlannedTermText = plannedText.String
	regulation.Essence = essence.String
	regulation.ResponsiblePerson = responsible.String
	regulation.ReasonAndNeed = reasonAndNeed.String
	regulation.SourceURL = sourceURL.String
	if planned.Valid {
		t := planned.Time
		regulation.PlannedDate = &t
	}

	return regulation, nil
}
