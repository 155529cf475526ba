package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/mocks"
	"github.com/travelinfo/travel-api/internal/platform/logger"
)

func strPtr(s string) *string { return &s }

// fixture seeds a user, a place and returns the memory it lives in.
type fixture struct {
	mem   *mocks.Memory
	user  domain.Identity
	other domain.Identity
	admin domain.Identity
	place domain.Place
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	mem := mocks.NewMemory()
	users := mem.UserStore()

	mk := func(email string, role domain.Role) domain.Identity {
		u := &domain.User{Email: email, HashedPassword: "plain:password123", Role: role}
		require.NoError(t, users.Create(ctx, u))
		return u.Identity()
	}

	f := &fixture{
		mem:   mem,
		user:  mk("user@example.com", domain.RoleUser),
		other: mk("other@example.com", domain.RoleUser),
		admin: mk("admin@example.com", domain.RoleAdmin),
	}
	f.place = domain.Place{Name: "Eiffel Tower", Latitude: 48.8584, Longitude: 2.2945, Category: strPtr("landmark")}
	require.NoError(t, mem.PlaceStore().Create(ctx, &f.place))
	return f
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	_, l := logger.NewTestLogger(t)
	return l
}
