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

var drugColumns = []interface{}{
	"id", "product_name", "common_name", "administration_route", "strength",
	"active_substance", "authorization_number", "marketing_authorisation_holder",
	"manufacturer", "price", "quantity", "created_at", "updated_at",
}

// DrugAdapter implements DrugRepository
type DrugAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDrugAdapter creates a new drug adapter
func NewDrugAdapter(client *postgres.Client) repositories.DrugRepository {
	return &DrugAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new drug. The (product_name, active_substance) pair is
// unique; violations surface as a conflict error.
func (a *DrugAdapter) Create(ctx context.Context, drug *entities.Drug) error {
	var price sql.NullFloat64
	if drug.Price != nil {
		price = sql.NullFloat64{Float64: *drug.Price, Valid: true}
	}
	var quantity sql.NullInt64
	if drug.Quantity != nil {
		quantity = sql.NullInt64{Int64: int64(*drug.Quantity), Valid: true}
	}

	record := goqu.Record{
		"id":                             drug.ID,
		"product_name":                   drug.ProductName,
		"common_name":                    nullString(drug.CommonName),
		"administration_route":           nullString(drug.AdministrationRoute),
		"strength":                       nullString(drug.Strength),
		"active_substance":               drug.ActiveSubstance,
		"authorization_number":           nullString(drug.AuthorizationNumber),
		"marketing_authorisation_holder": nullString(drug.Holder),
		"manufacturer":                   nullString(drug.Manufacturer),
		"price":                          price,
		"quantity":                       quantity,
		"created_at":                     drug.CreatedAt,
		"updated_at":                     drug.UpdatedAt,
	}

	query, args, err := a.db.Insert("drugs").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("drug %s / %s already exists", drug.ProductName, drug.ActiveSubstance))
		}
		return apperrors.NewInternalError("failed to create drug", err)
	}

	return nil
}

// GetByID retrieves a drug by ID
func (a *DrugAdapter) GetByID(ctx context.Context, id string) (*entities.Drug, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("drug with id %s not found", id))
}

// GetByProductAndSubstance retrieves a drug by its natural key
func (a *DrugAdapter) GetByProductAndSubstance(ctx context.Context, productName, activeSubstance string) (*entities.Drug, error) {
	return a.getOne(ctx, goqu.Ex{
		"product_name":     productName,
		"active_substance": activeSubstance,
	}, fmt.Sprintf("drug %s / %s not found", productName, activeSubstance))
}

func (a *DrugAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.Drug, error) {
	query, args, err := a.db.Select(drugColumns...).
		From("drugs").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	drug, err := scanDrug(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get drug", err)
	}

	return drug, nil
}

// List retrieves drugs with case-insensitive substring filters
func (a *DrugAdapter) List(ctx context.Context, filter repositories.DrugFilter) ([]*entities.Drug, error) {
	ds := a.db.Select(drugColumns...).
		From("drugs").
		Order(goqu.I("product_name").Asc())

	if filter.ProductName != "" {
		ds = ds.Where(goqu.I("product_name").ILike("%" + filter.ProductName + "%"))
	}
	if filter.CommonName != "" {
		ds = ds.Where(goqu.I("common_name").ILike("%" + filter.CommonName + "%"))
	}
	if filter.ActiveSubstance != "" {
		ds = ds.Where(goqu.I("active_substance").ILike("%" + filter.ActiveSubstance + "%"))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	return a.query(ctx, ds)
}

// SearchByName searches drugs by product name, common name or holder
func (a *DrugAdapter) SearchByName(ctx context.Context, name string, limit int) ([]*entities.Drug, error) {
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + name + "%"
	ds := a.db.Select(drugColumns...).
		From("drugs").
		Where(goqu.Or(
			goqu.I("product_name").ILike(pattern),
			goqu.I("common_name").ILike(pattern),
			goqu.I("marketing_authorisation_holder").ILike(pattern),
		)).
		Order(goqu.I("product_name").Asc()).
		Limit(uint(limit))

	return a.query(ctx, ds)
}

// SearchBySubstance searches drugs by active substance
func (a *DrugAdapter) SearchBySubstance(ctx context.Context, substance string, limit int) ([]*entities.Drug, error) {
	if limit <= 0 {
		limit = 50
	}

	ds := a.db.Select(drugColumns...).
		From("drugs").
		Where(goqu.I("active_substance").ILike("%" + substance + "%")).
		Order(goqu.I("product_name").Asc()).
		Limit(uint(limit))

	return a.query(ctx, ds)
}

func (a *DrugAdapter) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Drug, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list drugs", err)
	}
	defer rows.Close()

	drugs := []*entities.Drug{}
	for rows.Next() {
		drug, err := scanDrug(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan drug", err)
		}
		drugs = append(drugs, drug)
	}

	return drugs, nil
}

func scanDrug(row rowScanner) (*entities.Drug, error) {
	drug := &entities.Drug{}
	var commonName, route, strength, authNumber, holder, manufacturer sql.NullString
	var price sql.NullFloat64
	var quantity sql.NullInt64

	err := row.Scan(
		&drug.ID,
		&drug.ProductName,
		&commonName,
		&route,
		&strength,
		&drug.ActiveSubstance,
		&authNumber,
		&holder,
		&manufacturer,
		&price,
		&quantity,
		&drug.CreatedAt,
		&drug.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	drug.CommonName = commonName.String
	drug.AdministrationRoute = route.String
	drug.Strength = strength.String
	drug.AuthorizationNumber = authNumber.String
	drug.Holder = holder.String
	drug.Manufacturer = manufacturer.String
	if price.Valid {
		p := price.Float64
		drug.Price = &p
	}
	if quantity.Valid {
		q := int(quantity.Int64)
		drug.Quantity = &q
	}

	return drug, nil
}
