package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/store"
)

const (
	taxisTable      = "taxis"
	placeTaxisTable = "place_taxis"
)

var taxiColumns = []any{
	"id", "name", "phone", "company", "is_available", "rating", "created_at", "updated_at",
}

// PostgresTaxiStore implements the store.TaxiStore interface
// using a PostgreSQL database as the storage backend.
// It holds the pool itself because linking places needs a transaction.
type PostgresTaxiStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaxiStore creates a new PostgreSQL implementation of the TaxiStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaxiStore(db *sql.DB, logger *slog.Logger) *PostgresTaxiStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaxiStore{
		db:     db,
		logger: logger.With(slog.String("component", "taxi_store")),
	}
}

// Ensure PostgresTaxiStore implements store.TaxiStore interface
var _ store.TaxiStore = (*PostgresTaxiStore)(nil)

func scanTaxi(row rowScanner) (domain.Taxi, error) {
	var t domain.Taxi
	err := row.Scan(
		&t.ID, &t.Name, &t.Phone, &t.Company, &t.IsAvailable,
		&t.Rating, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func selectTaxis() *goqu.SelectDataset {
	return dialect.From(taxisTable).Prepared(true).
		Select(taxiColumns...).
		Order(goqu.C("id").Asc())
}

// List implements store.TaxiStore.List
func (s *PostgresTaxiStore) List(ctx context.Context) ([]domain.Taxi, error) {
	taxis, err := queryRows(ctx, s.db, selectTaxis(), scanTaxi)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list taxis",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("taxi", "list", "query failed", err)
	}
	return taxis, nil
}

// GetByID implements store.TaxiStore.GetByID
func (s *PostgresTaxiStore) GetByID(ctx context.Context, id domain.ID) (*domain.Taxi, error) {
	return s.getByID(ctx, s.db, id)
}

func (s *PostgresTaxiStore) getByID(ctx context.Context, db store.DBTX, id domain.ID) (*domain.Taxi, error) {
	ds := selectTaxis().Where(goqu.C("id").Eq(id))
	t, err := queryRow(ctx, db, ds, scanTaxi, store.ErrTaxiNotFound)
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get taxi",
				slog.Int64("taxi_id", int64(id)), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return &t, nil
}

// Create implements store.TaxiStore.Create
func (s *PostgresTaxiStore) Create(ctx context.Context, taxi *domain.Taxi, placeIDs []domain.ID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := taxi.Validate(); err != nil {
		log.Warn("taxi validation failed during create", slog.String("error", err.Error()))
		return err
	}

	insert := func(ctx context.Context, db store.DBTX) error {
		ds := dialect.Insert(taxisTable).Prepared(true).
			Rows(goqu.Record{
				"name":         taxi.Name,
				"phone":        taxi.Phone,
				"company":      taxi.Company,
				"is_available": taxi.IsAvailable,
				"rating":       taxi.Rating,
			}).
			Returning("id", "created_at", "updated_at")

		query, args, err := ds.ToSQL()
		if err != nil {
			return store.NewStoreError("taxi", "create", "failed to build query", err)
		}
		if err := db.QueryRowContext(ctx, query, args...).Scan(&taxi.ID, &taxi.CreatedAt, &taxi.UpdatedAt); err != nil {
			return MapError(err)
		}
		return s.connectPlaces(ctx, db, taxi.ID, placeIDs)
	}

	var err error
	if len(placeIDs) == 0 {
		err = insert(ctx, s.db)
	} else {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return insert(ctx, tx)
		})
	}
	if err != nil {
		log.Error("failed to create taxi", slog.String("error", err.Error()))
		return err
	}

	log.Info("taxi created",
		slog.Int64("taxi_id", int64(taxi.ID)),
		slog.Int("connected_places", len(placeIDs)))
	return nil
}

// connectPlaces links taxiID to each place. Links that already exist are kept.
func (s *PostgresTaxiStore) connectPlaces(ctx context.Context, db store.DBTX, taxiID domain.ID, placeIDs []domain.ID) error {
	if len(placeIDs) == 0 {
		return nil
	}

	ds := dialect.Insert(placeTaxisTable).Prepared(true).Cols("place_id", "taxi_id")
	for _, pid := range placeIDs {
		ds = ds.Vals(goqu.Vals{pid, taxiID})
	}
	ds = ds.OnConflict(goqu.DoNothing())

	query, args, err := ds.ToSQL()
	if err != nil {
		return store.NewStoreError("taxi", "connect_places", "failed to build query", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return MapError(err)
	}
	return nil
}

func taxiPatchRecord(p domain.TaxiPatch) goqu.Record {
	rec := goqu.Record{}
	setIfPresent(rec, "name", p.Name)
	setIfPresent(rec, "phone", p.Phone)
	setIfPresent(rec, "company", p.Company)
	setIfPresent(rec, "is_available", p.IsAvailable)
	setIfPresent(rec, "rating", p.Rating)
	return rec
}

// Update implements store.TaxiStore.Update
func (s *PostgresTaxiStore) Update(ctx context.Context, id domain.ID, patch domain.TaxiPatch) (*domain.Taxi, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	update := func(ctx context.Context, db store.DBTX) (*domain.Taxi, error) {
		if !patch.HasColumns() {
			taxi, err := s.getByID(ctx, db, id)
			if err != nil {
				return nil, err
			}
			return taxi, s.connectPlaces(ctx, db, id, patch.ConnectPlaceIDs)
		}

		rec := taxiPatchRecord(patch)
		rec["updated_at"] = goqu.L("NOW()")
		ds := dialect.Update(taxisTable).Prepared(true).
			Set(rec).
			Where(goqu.C("id").Eq(id)).
			Returning(taxiColumns...)

		t, err := queryRow(ctx, db, ds, scanTaxi, store.ErrTaxiNotFound)
		if err != nil {
			return nil, err
		}
		return &t, s.connectPlaces(ctx, db, id, patch.ConnectPlaceIDs)
	}

	var (
		taxi *domain.Taxi
		err  error
	)
	if len(patch.ConnectPlaceIDs) == 0 {
		taxi, err = update(ctx, s.db)
	} else {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			var txErr error
			taxi, txErr = update(ctx, tx)
			return txErr
		})
	}
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to update taxi", slog.Int64("taxi_id", int64(id)), slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.Info("taxi updated", slog.Int64("taxi_id", int64(id)))
	return taxi, nil
}

// Delete implements store.TaxiStore.Delete
func (s *PostgresTaxiStore) Delete(ctx context.Context, id domain.ID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ds := dialect.Delete(taxisTable).Prepared(true).Where(goqu.C("id").Eq(id))
	if err := execDelete(ctx, s.db, ds, store.ErrTaxiNotFound); err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to delete taxi", slog.Int64("taxi_id", int64(id)), slog.String("error", err.Error()))
		}
		return err
	}

	log.Info("taxi deleted", slog.Int64("taxi_id", int64(id)))
	return nil
}

// Search implements store.TaxiStore.Search
func (s *PostgresTaxiStore) Search(ctx context.Context, filter domain.TaxiFilter) ([]domain.Taxi, error) {
	ds := selectTaxis().Where(anyColumnContains(filter.Query, "name", "company", "phone"))
	if filter.Available != nil {
		// Eq on a bool renders IS, which cannot take a placeholder.
		ds = ds.Where(goqu.L("? = ?", goqu.C("is_available"), *filter.Available))
	}

	taxis, err := queryRows(ctx, s.db, ds, scanTaxi)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search taxis",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("taxi", "search", "query failed", err)
	}
	return taxis, nil
}

// ListByPlace implements store.TaxiStore.ListByPlace
func (s *PostgresTaxiStore) ListByPlace(ctx context.Context, placeID domain.ID) ([]domain.Taxi, error) {
	ds := dialect.From(goqu.T(taxisTable).As("t")).Prepared(true).
		Join(goqu.T(placeTaxisTable).As("pt"), goqu.On(goqu.T("pt").Col("taxi_id").Eq(goqu.T("t").Col("id")))).
		Select(qualify("t", taxiColumns)...).
		Where(goqu.T("pt").Col("place_id").Eq(placeID)).
		Order(goqu.T("t").Col("id").Asc())

	taxis, err := queryRows(ctx, s.db, ds, scanTaxi)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list taxis for place",
			slog.Int64("place_id", int64(placeID)), slog.String("error", err.Error()))
		return nil, store.NewStoreError("taxi", "list_by_place", "query failed", err)
	}
	return taxis, nil
}
