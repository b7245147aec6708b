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

var medicalNewsColumns = []interface{}{
	"id", "title", "description", "title_pl", "description_pl", "url", "image_url",
	"source_name", "publication_date", "is_translated", "created_at", "updated_at",
}

// MedicalNewsAdapter implements MedicalNewsRepository
type MedicalNewsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicalNewsAdapter creates a new medical news adapter
func NewMedicalNewsAdapter(client *postgres.Client) repositories.MedicalNewsRepository {
	return &MedicalNewsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new news item. The URL is unique; violations surface
// as a conflict error.
func (a *MedicalNewsAdapter) Create(ctx context.Context, news *entities.MedicalNews) error {
	record := goqu.Record{
		"id":               news.ID,
		"title":            news.Title,
		"description":      news.Description,
		"title_pl":         sql.NullString{String: news.TitlePL, Valid: news.TitlePL != ""},
		"description_pl":   sql.NullString{String: news.DescriptionPL, Valid: news.DescriptionPL != ""},
		"url":              news.URL,
		"image_url":        nullString(news.ImageURL),
		"source_name":      news.SourceName,
		"publication_date": news.PublicationDate,
		"is_translated":    news.IsTranslated,
		"created_at":       news.CreatedAt,
		"updated_at":       news.UpdatedAt,
	}

	query, args, err := a.db.Insert("medical_news").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("news item %s already exists", news.URL))
		}
		return apperrors.NewInternalError("failed to create news item", err)
	}

	return nil
}

// GetByID retrieves a news item by ID
func (a *MedicalNewsAdapter) GetByID(ctx context.Context, id string) (*entities.MedicalNews, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("news item with id %s not found", id))
}

// GetByURL retrieves a news item by its canonical URL
func (a *MedicalNewsAdapter) GetByURL(ctx context.Context, url string) (*entities.MedicalNews, error) {
	return a.getOne(ctx, goqu.Ex{"url": url}, fmt.Sprintf("news item %s not found", url))
}

func (a *MedicalNewsAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.MedicalNews, error) {
	query, args, err := a.db.Select(medicalNewsColumns...).
		From("medical_news").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	news, err := scanMedicalNews(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get news item", err)
	}

	return news, nil
}

// Update updates a news item, used to backfill translations
func (a *MedicalNewsAdapter) Update(ctx context.Context, news *entities.MedicalNews) error {
	record := goqu.Record{
		"title":          news.Title,
		"description":    news.Description,
		"title_pl":       sql.NullString{String: news.TitlePL, Valid: news.TitlePL != ""},
		"description_pl": sql.NullString{String: news.DescriptionPL, Valid: news.DescriptionPL != ""},
		"image_url":      nullString(news.ImageURL),
		"source_name":    news.SourceName,
		"is_translated":  news.IsTranslated,
		"updated_at":     news.UpdatedAt,
	}

	query, args, err := a.db.Update("medical_news").
		Set(record).
		Where(goqu.Ex{"id": news.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update news item", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("news item with id %s not found", news.ID))
	}

	return nil
}

// List retrieves news items, newest publication first
func (a *MedicalNewsAdapter) List(ctx context.Context, filter repositories.MedicalNewsFilter) ([]*entities.MedicalNews, error) {
	ds := a.db.Select(medicalNewsColumns...).
		From("medical_news").
		Order(goqu.I("publication_date").Desc(), goqu.I("created_at").Desc())

	if filter.Translated != nil {
		ds = ds.Where(goqu.Ex{"is_translated": *filter.Translated})
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
		return nil, apperrors.NewInternalError("failed to list news", err)
	}
	defer rows.Close()

	items := []*entities.MedicalNews{}
	for rows.Next() {
		news, err := scanMedicalNews(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan news item", err)
		}
		items = append(items, news)
	}

	return items, nil
}

func scanMedicalNews(row rowScanner) (*entities.MedicalNews, error) {
	news := &entities.MedicalNews{}
	var titlePL, descriptionPL, imageURL sql.NullString

	err := row.Scan(
		&news.ID,
		&news.Title,
		&news.Description,
		&titlePL,
		&descriptionPL,
		&news.URL,
		&imageURL,
		&news.SourceName,
		&news.PublicationDate,
		&news.IsTranslated,
		&news.CreatedAt,
		&news.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	news.TitlePL = titlePL.String
	news.DescriptionPL = descriptionPL.String
	news.ImageURL = imageURL.String

	return news, nil
}
