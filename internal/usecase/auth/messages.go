package auth

import (
	"github.com/google/uuid"

	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
)

// CreatePasswordUser is the command registering a password-based user.
// An empty role defaults to USER.
type CreatePasswordUser struct {
	OrganizationSiret string
	Email             string
	Password          string
	Role              domacct.Role
}

// CreateDataPassUser is the command linking an account provisioned by
// the DataPass OpenID flow.
type CreateDataPassUser struct {
	OrganizationSiret string
	Email             string
}

// LoginPasswordUser is the command verifying password credentials.
type LoginPasswordUser struct {
	Email    string
	Password string
}

// ChangePassword is the command replacing a user's password. The API
// token rotates with it.
type ChangePassword struct {
	Email       string
	NewPassword string
}

// DeletePasswordUser is the command removing a password-based user.
type DeletePasswordUser struct {
	AccountID uuid.UUID
}

// GetAccountByAPIToken is the query resolving the account behind a
// Bearer token.
type GetAccountByAPIToken struct {
	Token string
}

// GetAccountByEmail is the query resolving an account by email.
type GetAccountByEmail struct {
	Email string
}
