package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/travelinfo/travel-api/internal/api/shared"
	"github.com/travelinfo/travel-api/internal/domain"
	"github.com/travelinfo/travel-api/internal/platform/logger"
	"github.com/travelinfo/travel-api/internal/service/auth"
)

// TokenValidator is the part of auth.JWTService the identity middleware needs.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// Identity resolves the caller of every request and stores it with
// shared.WithCaller. It never rejects a request: a missing, malformed,
// expired or refresh-type token yields domain.Anonymous, and authorization
// is left to the procedure gates.
func Identity(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var caller domain.Caller = domain.Anonymous{}

			if token, ok := bearerToken(r); ok {
				claims, err := tokens.ValidateToken(ctx, token)
				if err == nil {
					caller = claims.Identity()
				} else {
					logger.FromContext(ctx).Debug("bearer token rejected, continuing anonymously",
						"error", err)
				}
			}

			next.ServeHTTP(w, r.WithContext(shared.WithCaller(ctx, caller)))
		})
	}
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
