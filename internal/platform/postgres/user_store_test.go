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

const testHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func TestPostgresUserStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WithArgs("traveller@example.com", testHash, "USER").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, testTime))

		u := &domain.User{Email: "traveller@example.com", HashedPassword: testHash, Role: domain.RoleUser}
		require.NoError(t, s.Create(context.Background(), u))
		assert.Equal(t, domain.ID(1), u.ID)
		assert.Equal(t, testTime, u.CreatedAt)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnError(newPgError(uniqueViolationCode, "users_email_key"))

		u := &domain.User{Email: "traveller@example.com", HashedPassword: testHash, Role: domain.RoleUser}
		err := s.Create(context.Background(), u)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})
}

func TestPostgresUserStore_GetByEmail(t *testing.T) {
	t.Parallel()

	t.Run("normalises the lookup", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "users" WHERE ("email" = $1)`)).
			WithArgs("traveller@example.com").
			WillReturnRows(sqlmock.NewRows(columnNames(userColumns)).
				AddRow(1, "traveller@example.com", testHash, "ADMIN", testTime))

		u, err := s.GetByEmail(context.Background(), " Traveller@Example.com ")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, u.Role)
		assert.Equal(t, testHash, u.HashedPassword)
	})

	t.Run("unknown", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`FROM "users"`).WillReturnRows(sqlmock.NewRows(columnNames(userColumns)))

		_, err := s.GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_GetByID(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE ("id" = $1)`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(columnNames(userColumns)).AddRow(4, "a@example.com", testHash, "USER", testTime))

	u, err := s.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(4), u.ID)
}
