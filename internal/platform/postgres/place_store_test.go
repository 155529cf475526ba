package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/store"
)

func placeRows() *sqlmock.Rows {
	return sqlmock.NewRows(columnNames(placeColumns))
}

func addPlaceRow(rows *sqlmock.Rows, id int64, name string, description any) *sqlmock.Rows {
	return rows.AddRow(
		id, name, description, 48.8584, 2.2945,
		nil, "Paris", "France", "landmark", nil,
		nil, nil, nil, testTime, testTime,
	)
}

func TestPostgresPlaceStore_List(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresPlaceStore(db, nil)

	rows := addPlaceRow(placeRows(), 1, "Eiffel Tower", "Iron lattice tower")
	addPlaceRow(rows, 2, "Louvre Museum", nil)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "places" ORDER BY "id" ASC`)).WillReturnRows(rows)

	places, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, domain.ID(1), places[0].ID)
	assert.Equal(t, "Iron lattice tower", *places[0].Description)
	assert.Nil(t, places[1].Description)
	assert.Equal(t, "Paris", *places[1].City)
}

func TestPostgresPlaceStore_ListEmptyIsNotNil(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresPlaceStore(db, nil)

	mock.ExpectQuery(`FROM "places"`).WillReturnRows(placeRows())

	places, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, places)
	assert.Empty(t, places)
}

func TestPostgresPlaceStore_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "places" WHERE ("id" = $1)`)).
			WithArgs(int64(1)).
			WillReturnRows(addPlaceRow(placeRows(), 1, "Eiffel Tower", nil))

		p, err := s.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Eiffel Tower", p.Name)
		assert.Equal(t, testTime, p.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(`FROM "places"`).WithArgs(int64(42)).WillReturnRows(placeRows())

		p, err := s.GetByID(context.Background(), 42)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, store.ErrPlaceNotFound)
	})
}

func TestPostgresPlaceStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("writes back generated fields", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "places"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, testTime, testTime))

		p := &domain.Place{Name: "Central Park", Latitude: 40.78, Longitude: -73.96, Category: ptr("park")}
		require.NoError(t, s.Create(context.Background(), p))
		assert.Equal(t, domain.ID(7), p.ID)
		assert.Equal(t, testTime, p.UpdatedAt)
	})

	t.Run("invalid place never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		err := s.Create(context.Background(), &domain.Place{Name: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("check violation is a constraint error", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(`INSERT INTO "places"`).
			WillReturnError(newPgError(checkViolationCode, "places_latitude_check"))

		err := s.Create(context.Background(), &domain.Place{Name: "Somewhere", Latitude: 10})
		var ce *store.ConstraintError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, store.ConstraintCheck, ce.Kind)
		assert.Equal(t, "places_latitude_check", ce.Constraint)
	})
}

func TestPostgresPlaceStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("sets only patched columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "places" SET`)).
			WithArgs("Tour Eiffel", int64(1)).
			WillReturnRows(addPlaceRow(placeRows(), 1, "Tour Eiffel", nil))

		p, err := s.Update(context.Background(), 1, domain.PlacePatch{Name: ptr("Tour Eiffel")})
		require.NoError(t, err)
		assert.Equal(t, "Tour Eiffel", p.Name)
	})

	t.Run("absent id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(`UPDATE "places"`).WillReturnRows(placeRows())

		_, err := s.Update(context.Background(), 99, domain.PlacePatch{City: ptr("Lyon")})
		assert.ErrorIs(t, err, store.ErrPlaceNotFound)
	})

	t.Run("empty patch reads the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(`SELECT .* FROM "places"`).
			WithArgs(int64(1)).
			WillReturnRows(addPlaceRow(placeRows(), 1, "Eiffel Tower", nil))

		p, err := s.Update(context.Background(), 1, domain.PlacePatch{})
		require.NoError(t, err)
		assert.Equal(t, "Eiffel Tower", p.Name)
	})
}

func TestPostgresPlaceStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "places" WHERE ("id" = $1)`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), 3))
	})

	t.Run("absent id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectExec(`DELETE FROM "places"`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), 3), store.ErrPlaceNotFound)
	})
}

func TestPostgresPlaceStore_Search(t *testing.T) {
	t.Parallel()

	t.Run("query only", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(`"name" ILIKE \$1\) OR \("description" ILIKE \$2`).
			WithArgs("%park%", "%park%").
			WillReturnRows(addPlaceRow(placeRows(), 5, "Central Park", nil))

		places, err := s.Search(context.Background(), domain.PlaceFilter{Query: "park"})
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "Central Park", places[0].Name)
	})

	t.Run("with category and escaped metacharacters", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresPlaceStore(db, nil)

		mock.ExpectQuery(`"category" = \$3`).
			WithArgs(`%100\%%`, `%100\%%`, "museum").
			WillReturnRows(placeRows())

		places, err := s.Search(context.Background(), domain.PlaceFilter{Query: "100%", Category: ptr("museum")})
		require.NoError(t, err)
		assert.Empty(t, places)
	})
}

func TestPostgresPlaceStore_ListByTaxi(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresPlaceStore(db, nil)

	mock.ExpectQuery(`INNER JOIN "place_taxis" AS "pt"`).
		WithArgs(int64(4)).
		WillReturnRows(addPlaceRow(placeRows(), 1, "Eiffel Tower", nil))

	places, err := s.ListByTaxi(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, places, 1)
}
