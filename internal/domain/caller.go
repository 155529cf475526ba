package domain

// Role is the authorization role attached to a user.
type Role string

// Supported roles.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Caller is the resolved originator of a request: either an Identity or
// Anonymous. The set is closed; switch on the concrete type.
type Caller interface {
	isCaller()
}

// Identity is a caller established from a verified access token.
type Identity struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Anonymous is a caller without a valid credential.
type Anonymous struct{}

func (Identity) isCaller()  {}
func (Anonymous) isCaller() {}

// IsAdmin reports whether the identity holds the ADMIN role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
