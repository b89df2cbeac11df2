package account

import (
	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain/organization"
)

// Role is the account privilege level.
type Role string

// Role constants.
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

// Account is an authenticated identity tied to one organization.
// It drives every authorization decision.
type Account struct {
	ID                uuid.UUID
	OrganizationSiret organization.Siret
	Email             string
	Role              Role
	APIToken          string
}

// PasswordUser links an account to a password hash for direct login.
type PasswordUser struct {
	AccountID    uuid.UUID
	Account      Account
	PasswordHash string
}

// DataPassUser links an account provisioned through the DataPass
// OpenID flow. No local credential is stored.
type DataPassUser struct {
	AccountID uuid.UUID
	Account   Account
}
