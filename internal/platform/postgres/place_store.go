package postgres

import (
	"context"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/store"
)

const placesTable = "places"

var placeColumns = []any{
	"id", "name", "description", "latitude", "longitude",
	"address", "city", "country", "category", "image_url",
	"website", "phone", "email", "created_at", "updated_at",
}

// PostgresPlaceStore implements the store.PlaceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPlaceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlaceStore creates a new PostgreSQL implementation of the PlaceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPlaceStore(db store.DBTX, logger *slog.Logger) *PostgresPlaceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPlaceStore{
		db:     db,
		logger: logger.With(slog.String("component", "place_store")),
	}
}

// Ensure PostgresPlaceStore implements store.PlaceStore interface
var _ store.PlaceStore = (*PostgresPlaceStore)(nil)

func scanPlace(row rowScanner) (domain.Place, error) {
	var p domain.Place
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Latitude, &p.Longitude,
		&p.Address, &p.City, &p.Country, &p.Category, &p.ImageURL,
		&p.Website, &p.Phone, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (s *PostgresPlaceStore) selectPlaces() *goqu.SelectDataset {
	return dialect.From(placesTable).Prepared(true).
		Select(placeColumns...).
		Order(goqu.C("id").Asc())
}

// List implements store.PlaceStore.List
func (s *PostgresPlaceStore) List(ctx context.Context) ([]domain.Place, error) {
	places, err := queryRows(ctx, s.db, s.selectPlaces(), scanPlace)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list places",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("place", "list", "query failed", err)
	}
	return places, nil
}

// GetByID implements store.PlaceStore.GetByID
func (s *PostgresPlaceStore) GetByID(ctx context.Context, id domain.ID) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving place by ID", slog.Int64("place_id", int64(id)))

	ds := s.selectPlaces().Where(goqu.C("id").Eq(id))
	p, err := queryRow(ctx, s.db, ds, scanPlace, store.ErrPlaceNotFound)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("place not found", slog.Int64("place_id", int64(id)))
		} else {
			log.Error("failed to get place", slog.Int64("place_id", int64(id)), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &p, nil
}

// Create implements store.PlaceStore.Create
func (s *PostgresPlaceStore) Create(ctx context.Context, place *domain.Place) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := place.Validate(); err != nil {
		log.Warn("place validation failed during create", slog.String("error", err.Error()))
		return err
	}

	ds := dialect.Insert(placesTable).Prepared(true).
		Rows(goqu.Record{
			"name":        place.Name,
			"description": place.Description,
			"latitude":    place.Latitude,
			"longitude":   place.Longitude,
			"address":     place.Address,
			"city":        place.City,
			"country":     place.Country,
			"category":    place.Category,
			"image_url":   place.ImageURL,
			"website":     place.Website,
			"phone":       place.Phone,
			"email":       place.Email,
		}).
		Returning("id", "created_at", "updated_at")

	query, args, err := ds.ToSQL()
	if err != nil {
		return store.NewStoreError("place", "create", "failed to build query", err)
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&place.ID, &place.CreatedAt, &place.UpdatedAt)
	if err != nil {
		log.Error("failed to create place", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("place created", slog.Int64("place_id", int64(place.ID)))
	return nil
}

func placePatchRecord(p domain.PlacePatch) goqu.Record {
	rec := goqu.Record{}
	setIfPresent(rec, "name", p.Name)
	setIfPresent(rec, "description", p.Description)
	setIfPresent(rec, "latitude", p.Latitude)
	setIfPresent(rec, "longitude", p.Longitude)
	setIfPresent(rec, "address", p.Address)
	setIfPresent(rec, "city", p.City)
	setIfPresent(rec, "country", p.Country)
	setIfPresent(rec, "category", p.Category)
	setIfPresent(rec, "image_url", p.ImageURL)
	setIfPresent(rec, "website", p.Website)
	setIfPresent(rec, "phone", p.Phone)
	setIfPresent(rec, "email", p.Email)
	return rec
}

// setIfPresent adds *v to rec under col when v is non-nil.
func setIfPresent[T any](rec goqu.Record, col string, v *T) {
	if v != nil {
		rec[col] = *v
	}
}

// Update implements store.PlaceStore.Update
func (s *PostgresPlaceStore) Update(ctx context.Context, id domain.ID, patch domain.PlacePatch) (*domain.Place, error) {
	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec := placePatchRecord(patch)
	rec["updated_at"] = goqu.L("NOW()")

	ds := dialect.Update(placesTable).Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(id)).
		Returning(placeColumns...)

	p, err := queryRow(ctx, s.db, ds, scanPlace, store.ErrPlaceNotFound)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to update place", slog.Int64("place_id", int64(id)), slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("place updated", slog.Int64("place_id", int64(id)))
	return &p, nil
}

// Delete implements store.PlaceStore.Delete
func (s *PostgresPlaceStore) Delete(ctx context.Context, id domain.ID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ds := dialect.Delete(placesTable).Prepared(true).Where(goqu.C("id").Eq(id))
	if err := execDelete(ctx, s.db, ds, store.ErrPlaceNotFound); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete place", slog.Int64("place_id", int64(id)), slog.String("error", err.Error()))
		}
		return err
	}

	log.Info("place deleted", slog.Int64("place_id", int64(id)))
	return nil
}

// Search implements store.PlaceStore.Search
func (s *PostgresPlaceStore) Search(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, error) {
	ds := s.selectPlaces().Where(anyColumnContains(filter.Query, "name", "description"))
	if filter.Category != nil {
		ds = ds.Where(goqu.C("category").Eq(*filter.Category))
	}

	places, err := queryRows(ctx, s.db, ds, scanPlace)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search places",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("place", "search", "query failed", err)
	}
	return places, nil
}

// ListByTaxi implements store.PlaceStore.ListByTaxi
func (s *PostgresPlaceStore) ListByTaxi(ctx context.Context, taxiID domain.ID) ([]domain.Place, error) {
	ds := dialect.From(goqu.T(placesTable).As("p")).Prepared(true).
		Join(goqu.T(placeTaxisTable).As("pt"), goqu.On(goqu.T("pt").Col("place_id").Eq(goqu.T("p").Col("id")))).
		Select(qualify("p", placeColumns)...).
		Where(goqu.T("pt").Col("taxi_id").Eq(taxiID)).
		Order(goqu.T("p").Col("id").Asc())

	places, err := queryRows(ctx, s.db, ds, scanPlace)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list places for taxi",
			slog.Int64("taxi_id", int64(taxiID)), slog.String("error", err.Error()))
		return nil, store.NewStoreError("place", "list_by_taxi", "query failed", err)
	}
	return places, nil
}
