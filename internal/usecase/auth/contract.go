package auth

import (
	"context"

	"github.com/google/uuid"

	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
)

// Repository defines the storage contract for accounts and credential
// links.
type Repository interface {
	CreatePasswordUser(ctx context.Context, user domacct.PasswordUser) error
	CreateDataPassUser(ctx context.Context, user domacct.DataPassUser) error
	CreateDataPassLink(ctx context.Context, user domacct.DataPassUser) error
	GetAccountByEmail(ctx context.Context, email string) (domacct.Account, error)
	GetAccountByAPIToken(ctx context.Context, token string) (domacct.Account, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (domacct.Account, error)
	GetPasswordUser(ctx context.Context, accountID uuid.UUID) (domacct.PasswordUser, error)
	GetDataPassUser(ctx context.Context, accountID uuid.UUID) (domacct.DataPassUser, error)
	UpdatePasswordUser(ctx context.Context, user domacct.PasswordUser, previousToken string) error
	DeletePasswordUser(ctx context.Context, user domacct.PasswordUser) error
}

// PasswordEncoder hashes and verifies passwords.
type PasswordEncoder interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) (bool, error)
}
