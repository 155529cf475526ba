package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/config"
	"github.com/travelinfo/travel-api/internal/domain"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var (
	fixedTime    = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	testIdentity = domain.Identity{ID: 42, Email: "alice@example.com", Role: domain.RoleUser}
)

func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   secret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
		BCryptCost:                  4,
	}
}

func newTestService(t *testing.T, secret string, now time.Time) JWTService {
	t.Helper()
	svc, err := NewJWTServiceWithClock(testAuthConfig(secret), func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RejectsWeakSecret(t *testing.T) {
	t.Parallel()

	for _, secret := range []string{"", "short", "0123456789012345678901234567890"} {
		_, err := NewJWTService(testAuthConfig(secret))
		assert.ErrorIs(t, err, ErrWeakSecret, "secret %q", secret)
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testSecret, fixedTime)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, testIdentity, claims.Identity())
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateTokenPair(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testSecret, fixedTime)
	ctx := context.Background()

	pair, err := svc.GenerateTokenPair(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, fixedTime.Add(time.Hour), pair.ExpiresAt)

	_, err = svc.ValidateToken(ctx, pair.AccessToken)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, fixedTime.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := newTestService(t, testSecret, fixedTime)
	access, err := issuer.GenerateToken(ctx, testIdentity)
	require.NoError(t, err)
	refresh, err := issuer.GenerateRefreshToken(ctx, testIdentity)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid": 42, "role": "ADMIN", "type": "access", "exp": fixedTime.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name      string
		validator JWTService
		token     string
		wantErr   error
	}{
		{"valid token", issuer, access, nil},
		{"expired token", newTestService(t, testSecret, fixedTime.Add(2*time.Hour)), access, ErrExpiredToken},
		{"within clock skew", newTestService(t, testSecret, fixedTime.Add(61*time.Minute)), access, nil},
		{"issued in the future", newTestService(t, testSecret, fixedTime.Add(-time.Hour)), access, ErrTokenNotYetValid},
		{"invalid signature", newTestService(t, wrongSecret, fixedTime), access, ErrInvalidToken},
		{"malformed token", issuer, "this.is.not.a.valid.jwt.token", ErrInvalidToken},
		{"empty token", issuer, "", ErrInvalidToken},
		{"refresh token as access", issuer, refresh, ErrWrongTokenType},
		{"unsigned token", issuer, noneToken, ErrInvalidToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := tt.validator.ValidateToken(ctx, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				assert.True(t, IsTokenError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testIdentity.ID, claims.UserID)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := newTestService(t, testSecret, fixedTime)
	access, err := issuer.GenerateToken(ctx, testIdentity)
	require.NoError(t, err)
	refresh, err := issuer.GenerateRefreshToken(ctx, testIdentity)
	require.NoError(t, err)

	tests := []struct {
		name      string
		validator JWTService
		token     string
		wantErr   error
	}{
		{"valid refresh token", issuer, refresh, nil},
		{"access token as refresh", issuer, access, ErrWrongTokenType},
		{"expired", newTestService(t, testSecret, fixedTime.Add(8*24*time.Hour)), refresh, ErrExpiredRefreshToken},
		{"wrong secret", newTestService(t, wrongSecret, fixedTime), refresh, ErrInvalidRefreshToken},
		{"garbage", issuer, "abc", ErrInvalidRefreshToken},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := tt.validator.ValidateRefreshToken(ctx, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TokenTypeRefresh, claims.TokenType)
			assert.Equal(t, testIdentity, claims.Identity())
		})
	}
}
