package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// TokenGenerator produces opaque API tokens.
type TokenGenerator func() (string, error)

// Service handles account and credential operations.
type Service struct {
	repo     Repository
	encoder  PasswordEncoder
	newToken TokenGenerator
}

// New creates an auth service.
func New(repo Repository, encoder PasswordEncoder, newToken TokenGenerator) *Service {
	return &Service{repo: repo, encoder: encoder, newToken: newToken}
}

// CreatePasswordUser registers a password-based user. A taken email is
// a conflict.
func (s *Service) CreatePasswordUser(ctx context.Context, cmd CreatePasswordUser) (domacct.Account, error) {
	siret, err := domorg.ParseSiret(cmd.OrganizationSiret)
	if err != nil {
		return domacct.Account{}, err
	}
	if cmd.Email == "" {
		return domacct.Account{}, domain.Invalid("email", "must not be empty")
	}
	if cmd.Password == "" {
		return domacct.Account{}, domain.Invalid("password", "must not be empty")
	}
	role := cmd.Role
	if role == "" {
		role = domacct.RoleUser
	}
	if !role.Valid() {
		return domacct.Account{}, domain.Invalid("role", "unknown value")
	}

	hash, err := s.encoder.Hash(cmd.Password)
	if err != nil {
		return domacct.Account{}, fmt.Errorf("hash password: %w", err)
	}
	token, err := s.newToken()
	if err != nil {
		return domacct.Account{}, err
	}

	acct := domacct.Account{
		ID:                uuid.New(),
		OrganizationSiret: siret,
		Email:             cmd.Email,
		Role:              role,
		APIToken:          token,
	}
	user := domacct.PasswordUser{AccountID: acct.ID, Account: acct, PasswordHash: hash}
	if err := s.repo.CreatePasswordUser(ctx, user); err != nil {
		return domacct.Account{}, fmt.Errorf("create password user: %w", err)
	}
	return acct, nil
}

// CreateDataPassUser links a DataPass-provisioned account. Re-linking an
// existing email to a different organization is a data integrity fault,
// not a business conflict: it points at a broken provisioning flow
// upstream and must fail loudly.
func (s *Service) CreateDataPassUser(ctx context.Context, cmd CreateDataPassUser) (domacct.Account, error) {
	siret, err := domorg.ParseSiret(cmd.OrganizationSiret)
	if err != nil {
		return domacct.Account{}, err
	}
	if cmd.Email == "" {
		return domacct.Account{}, domain.Invalid("email", "must not be empty")
	}

	existing, err := s.repo.GetAccountByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		if existing.OrganizationSiret != siret {
			return domacct.Account{}, fmt.Errorf(
				"%w: email %s already linked to organization %s",
				domain.ErrIntegrity, cmd.Email, existing.OrganizationSiret,
			)
		}
		if _, err := s.repo.GetDataPassUser(ctx, existing.ID); err == nil {
			return domacct.Account{}, fmt.Errorf("datapass user %s: %w", cmd.Email, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domacct.Account{}, fmt.Errorf("get datapass user: %w", err)
		}
		// Same organization, no link yet: attach DataPass to the
		// existing account.
		user := domacct.DataPassUser{AccountID: existing.ID, Account: existing}
		if err := s.repo.CreateDataPassLink(ctx, user); err != nil {
			return domacct.Account{}, fmt.Errorf("link datapass user: %w", err)
		}
		return existing, nil
	case !errors.Is(err, domain.ErrNotFound):
		return domacct.Account{}, fmt.Errorf("get account by email: %w", err)
	}

	token, err := s.newToken()
	if err != nil {
		return domacct.Account{}, err
	}
	acct := domacct.Account{
		ID:                uuid.New(),
		OrganizationSiret: siret,
		Email:             cmd.Email,
		Role:              domacct.RoleUser,
		APIToken:          token,
	}
	user := domacct.DataPassUser{AccountID: acct.ID, Account: acct}
	if err := s.repo.CreateDataPassUser(ctx, user); err != nil {
		return domacct.Account{}, fmt.Errorf("create datapass user: %w", err)
	}
	return acct, nil
}

// Login verifies password credentials. An unknown email still runs one
// hash verification so response timing does not reveal which emails
// exist.
func (s *Service) Login(ctx context.Context, cmd LoginPasswordUser) (domacct.Account, error) {
	acct, err := s.repo.GetAccountByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_, _ = s.encoder.Verify(dummyHash, cmd.Password)
			return domacct.Account{}, domain.ErrLoginFailed
		}
		return domacct.Account{}, fmt.Errorf("get account by email: %w", err)
	}

	user, err := s.repo.GetPasswordUser(ctx, acct.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domacct.Account{}, domain.ErrLoginFailed
		}
		return domacct.Account{}, fmt.Errorf("get password user: %w", err)
	}

	ok, err := s.encoder.Verify(user.PasswordHash, cmd.Password)
	if err != nil {
		return domacct.Account{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domacct.Account{}, domain.ErrLoginFailed
	}
	return user.Account, nil
}

// GetAccountByAPIToken resolves the account behind a Bearer token.
func (s *Service) GetAccountByAPIToken(ctx context.Context, token string) (domacct.Account, error) {
	acct, err := s.repo.GetAccountByAPIToken(ctx, token)
	if err != nil {
		return domacct.Account{}, fmt.Errorf("get account by token: %w", err)
	}
	return acct, nil
}

// GetAccountByEmail resolves an account by email.
func (s *Service) GetAccountByEmail(ctx context.Context, email string) (domacct.Account, error) {
	acct, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return domacct.Account{}, fmt.Errorf("get account by email: %w", err)
	}
	return acct, nil
}

// ChangePassword replaces a user's password and rotates the API token,
// invalidating clients that held the old one.
func (s *Service) ChangePassword(ctx context.Context, cmd ChangePassword) error {
	if cmd.NewPassword == "" {
		return domain.Invalid("new_password", "must not be empty")
	}

	acct, err := s.repo.GetAccountByEmail(ctx, cmd.Email)
	if err != nil {
		return fmt.Errorf("get account by email: %w", err)
	}
	user, err := s.repo.GetPasswordUser(ctx, acct.ID)
	if err != nil {
		return fmt.Errorf("get password user: %w", err)
	}

	hash, err := s.encoder.Hash(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	token, err := s.newToken()
	if err != nil {
		return err
	}

	previousToken := user.Account.APIToken
	user.PasswordHash = hash
	user.Account.APIToken = token
	if err := s.repo.UpdatePasswordUser(ctx, user, previousToken); err != nil {
		return fmt.Errorf("update password user: %w", err)
	}
	return nil
}

// DeletePasswordUser removes a password-based user and its account.
func (s *Service) DeletePasswordUser(ctx context.Context, accountID uuid.UUID) error {
	user, err := s.repo.GetPasswordUser(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get password user: %w", err)
	}
	if err := s.repo.DeletePasswordUser(ctx, user); err != nil {
		return fmt.Errorf("delete password user: %w", err)
	}
	return nil
}

// dummyHash is a valid argon2id hash of an unguessable throwaway value,
// used to equalize login timing for unknown emails.
const dummyHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$PstkXDgGpa7rq2LyIyB9YYGM1HKuZTbza0uYJbeOtdY"
