package api

import (
	"github.com/travelinfo/travel-api/internal/domain"
)

// Gate decides whether a caller may invoke a procedure. It runs before the
// input is decoded.
type Gate func(caller domain.Caller) error

// Public admits every caller.
func Public(domain.Caller) error { return nil }

// Authenticated admits any identity.
func Authenticated(caller domain.Caller) error {
	_, err := RequireAuthenticated(caller)
	return err
}

// Role admits identities holding role. ADMIN is not implied for other roles.
func Role(role domain.Role) Gate {
	return func(caller domain.Caller) error {
		_, err := RequireRole(caller, role)
		return err
	}
}

// All admits a caller only if every gate does, checking in order.
func All(gates ...Gate) Gate {
	return func(caller domain.Caller) error {
		for _, g := range gates {
			if err := g(caller); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequireAuthenticated returns the identity of caller or ErrUnauthenticated.
func RequireAuthenticated(caller domain.Caller) (domain.Identity, error) {
	who, ok := caller.(domain.Identity)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return who, nil
}

// RequireRole checks authentication first, then role.
func RequireRole(caller domain.Caller, role domain.Role) (domain.Identity, error) {
	who, err := RequireAuthenticated(caller)
	if err != nil {
		return domain.Identity{}, err
	}
	if who.Role != role {
		return domain.Identity{}, domain.ErrForbidden
	}
	return who, nil
}
