package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelinfo/travel-api/internal/api/shared"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/mocks"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/service/auth"
)

func captureCaller(t *testing.T, tokens TokenValidator, header string) domain.Caller {
	t.Helper()

	var got domain.Caller
	h := Identity(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = shared.CallerFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/trpc/place.list", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	return got
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	who := domain.Identity{ID: 7, Email: "a@example.com", Role: domain.RoleUser}
	jwt := &mocks.MockJWTService{
		ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "good":
				return &auth.Claims{UserID: who.ID, Email: who.Email, Role: who.Role, TokenType: auth.TokenTypeAccess}, nil
			case "expired":
				return nil, auth.ErrExpiredToken
			case "refresh":
				return nil, auth.ErrWrongTokenType
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}

	tests := []struct {
		name   string
		header string
		want   domain.Caller
	}{
		{"valid access token", "Bearer good", who},
		{"lower-case scheme", "bearer good", who},
		{"missing header", "", domain.Anonymous{}},
		{"wrong scheme", "Basic good", domain.Anonymous{}},
		{"scheme only", "Bearer", domain.Anonymous{}},
		{"empty token", "Bearer   ", domain.Anonymous{}},
		{"bad signature", "Bearer forged", domain.Anonymous{}},
		{"expired", "Bearer expired", domain.Anonymous{}},
		{"refresh token", "Bearer refresh", domain.Anonymous{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, captureCaller(t, jwt, tt.header))
		})
	}
}

func TestTrace(t *testing.T) {
	t.Parallel()

	buf, log := logger.NewTestLogger(t)
	var traceID string
	h := Trace(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Len(t, traceID, 32)
	assert.Equal(t, traceID, rec.Header().Get(TraceHeader))
	logger.AssertLogContains(t, buf, traceID)
}

func TestRequestLog(t *testing.T) {
	t.Parallel()

	buf, log := logger.NewTestLogger(t)
	h := Trace(log)(RequestLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/trpc/place.create", nil))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "request completed", last["msg"])
	assert.Equal(t, "/trpc/place.create", last["path"])
	assert.EqualValues(t, http.StatusTeapot, last["status"])
}
