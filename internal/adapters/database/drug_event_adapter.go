package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/entities"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/domain/repositories"
	"github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/internal/infrastructure/clients/postgres"
	apperrors "github.com/mateuszciolkowski/PharmaRadar-HackAndPlay-Hackathon/pkg/errors"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var drugEventColumns = []interface{}{
	"id", "event_type", "source", "publication_date", "decision_number",
	"drug_name", "drug_strength", "drug_form", "marketing_authorisation_holder",
	"batch_number", "expiry_date", "description", "created_at", "updated_at",
}

// DrugEventAdapter implements DrugEventRepository
type DrugEventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDrugEventAdapter creates a new drug event adapter
func NewDrugEventAdapter(client *postgres.Client) repositories.DrugEventRepository {
	return &DrugEventAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new drug event. A unique constraint on
// (event_type, drug_name, source) guards against duplicates; violations
// surface as a conflict error.
func (a *DrugEventAdapter) Create(ctx context.Context, event *entities.DrugEvent) error {
	var expiry sql.NullTime
	if event.ExpiryDate != nil {
		expiry = sql.NullTime{Time: *event.ExpiryDate, Valid: true}
	}

	record := goqu.Record{
		"id":                             event.ID,
		"event_type":                     string(event.EventType),
		"source":                         string(event.Source),
		"publication_date":               event.PublicationDate,
		"decision_number":                sql.NullString{String: event.DecisionNumber, Valid: event.DecisionNumber != ""},
		"drug_name":                      event.DrugName,
		"drug_strength":                  sql.NullString{String: event.DrugStrength, Valid: event.DrugStrength != ""},
		"drug_form":                      sql.NullString{String: event.DrugForm, Valid: event.DrugForm != ""},
		"marketing_authorisation_holder": sql.NullString{String: event.Holder, Valid: event.Holder != ""},
		"batch_number":                   sql.NullString{String: event.BatchNumber, Valid: event.BatchNumber != ""},
		"expiry_date":                    expiry,
		"description":                    sql.NullString{String: event.Description, Valid: event.Description != ""},
		"created_at":                     event.CreatedAt,
		"updated_at":                     event.UpdatedAt,
	}

	query, args, err := a.db.Insert("drug_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("drug event %s already exists", event.Key()))
		}
		return apperrors.NewInternalError("failed to create drug event", err)
	}

	return nil
}

// GetByID retrieves a drug event by ID
func (a *DrugEventAdapter) GetByID(ctx context.Context, id string) (*entities.DrugEvent, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("drug event with id %s not found", id))
}

// GetByKey retrieves a drug event by its natural key
func (a *DrugEventAdapter) GetByKey(ctx context.Context, key entities.DrugEventKey) (*entities.DrugEvent, error) {
	return a.getOne(ctx, goqu.Ex{
		"event_type": string(key.EventType),
		"drug_name":  key.DrugName,
		"source":     string(key.Source),
	}, fmt.Sprintf("drug event %s not found", key))
}

func (a *DrugEventAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.DrugEvent, error) {
	query, args, err := a.db.Select(drugEventColumns...).
		From("drug_events").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	event, err := scanDrugEvent(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get drug event", err)
	}

	return event, nil
}

// List retrieves drug events with filters, newest publication first
func (a *DrugEventAdapter) List(ctx context.Context, filter repositories.DrugEventFilter) ([]*entities.DrugEvent, error) {
	ds := a.db.Select(drugEventColumns...).
		From("drug_events").
		Order(goqu.I("publication_date").Desc(), goqu.I("created_at").Desc())

	if filter.EventType != "" {
		ds = ds.Where(goqu.Ex{"event_type": string(filter.EventType)})
	}
	if filter.Source != "" {
		ds = ds.Where(goqu.Ex{"source": string(filter.Source)})
	}
	if filter.PublishedAfter != nil {
		ds = ds.Where(goqu.I("publication_date").Gte(*filter.PublishedAfter))
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
		return nil, apperrors.NewInternalError("failed to list drug events", err)
	}
	defer rows.Close()

	events := []*entities.DrugEvent{}
	for rows.Next() {
		event, err := scanDrugEvent(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan drug event", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// CountBySource counts events recorded for a source
func (a *DrugEventAdapter) CountBySource(ctx context.Context, source entities.DataSource) (int64, error) {
	return a.count(ctx, goqu.Ex{"source": string(source)})
}

// CountCreatedSince counts events recorded at or after the given time
func (a *DrugEventAdapter) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("drug_events").
		Where(goqu.I("created_at").Gte(since)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count drug events", err)
	}
	return count, nil
}

func (a *DrugEventAdapter) count(ctx context.Context, where goqu.Ex) (int64, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("drug_events").
		Where(where).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count drug events", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDrugEvent(row rowScanner) (*entities.DrugEvent, error) {
	event := &entities.DrugEvent{}
	var eventType, source string
	var decisionNumber, strength, form, holder, batch, description sql.NullString
	var expiry sql.NullTime

	err := row.Scan(
		&event.ID,
		&eventType,
		&source,
		&event.PublicationDate,
		&decisionNumber,
		&event.DrugName,
		&strength,
		&form,
		&holder,
		&batch,
		&expiry,
		&description,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.EventType = entities.EventType(eventType)
	event.Source = entities.DataSource(source)
	event.DecisionNumber = decisionNumber.String
	event.DrugStrength = strength.String
	event.DrugForm = form.String
	event.Holder = holder.String
	event.BatchNumber = batch.String
	event.Description = description.String
	if expiry.Valid {
		t := expiry.Time
		event.ExpiryDate = &t
	}

	return event, nil
}
