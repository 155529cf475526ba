//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/postgres"
	"github.com/travelinfo/travel-api/internal/store"
	"github.com/travelinfo/travel-api/internal/testdb"
)

func TestStores_Integration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	places := postgres.NewPostgresPlaceStore(db, nil)
	taxis := postgres.NewPostgresTaxiStore(db, nil)
	reviews := postgres.NewPostgresReviewStore(db, nil)
	users := postgres.NewPostgresUserStore(db, nil)

	user, err := domain.NewUser("Traveller@Example.com", "$2a$10$abcdefghijklmnopqrstuv", domain.RoleUser)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))

	dup, err := domain.NewUser("traveller@example.com", "$2a$10$abcdefghijklmnopqrstuv", domain.RoleUser)
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)

	city := "Paris"
	louvre := &domain.Place{Name: "Louvre Museum", Latitude: 48.8606, Longitude: 2.3376, City: &city}
	require.NoError(t, places.Create(ctx, louvre))
	require.Positive(t, louvre.ID)

	t.Run("taxi links are all or nothing", func(t *testing.T) {
		bad := &domain.Taxi{Name: "Ghost Cab", Phone: "000", IsAvailable: true}
		err := taxis.Create(ctx, bad, []domain.ID{louvre.ID, 999999})
		var cerr *store.ConstraintError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, store.ConstraintForeignKey, cerr.Kind)

		list, err := taxis.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("taxi connects places", func(t *testing.T) {
		cab := &domain.Taxi{Name: "Paris Taxi Service", Phone: "+33123456789", IsAvailable: true}
		require.NoError(t, taxis.Create(ctx, cab, []domain.ID{louvre.ID}))

		byPlace, err := taxis.ListByPlace(ctx, louvre.ID)
		require.NoError(t, err)
		require.Len(t, byPlace, 1)
		assert.Equal(t, cab.ID, byPlace[0].ID)

		served, err := places.ListByTaxi(ctx, cab.ID)
		require.NoError(t, err)
		require.Len(t, served, 1)
	})

	t.Run("rating summary", func(t *testing.T) {
		empty, err := reviews.RatingSummary(ctx, louvre.ID)
		require.NoError(t, err)
		assert.Nil(t, empty.Average)
		assert.Zero(t, empty.Count)

		for _, rating := range []int{5, 4} {
			require.NoError(t, reviews.Create(ctx, &domain.Review{
				Content: "Worth it", Rating: rating, PlaceID: louvre.ID, UserID: user.ID,
			}))
		}
		summary, err := reviews.RatingSummary(ctx, louvre.ID)
		require.NoError(t, err)
		require.NotNil(t, summary.Average)
		assert.InDelta(t, 4.5, *summary.Average, 0.0001)
		assert.Equal(t, int64(2), summary.Count)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		found, err := places.Search(ctx, domain.PlaceFilter{Query: "LOUVRE"})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("deleting a place removes its reviews and links", func(t *testing.T) {
		require.NoError(t, places.Delete(ctx, louvre.ID))

		remaining, err := reviews.ListByPlace(ctx, louvre.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)

		_, err = places.GetByID(ctx, louvre.ID)
		assert.ErrorIs(t, err, store.ErrPlaceNotFound)
	})
}
