// Package account stores accounts and their credential links. Accounts
// live in hashes keyed by id; email and API token lookups go through
// plain KV index keys holding the account id.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/db"
	"github.com/opencatalogue/catalogd/internal/domain"
	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// store is the consumer interface for accounts (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/auth.Repository.
type Repo struct {
	store store
}

// New creates an account repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// CreatePasswordUser stores the account, its password link, and the
// email and token indexes. Fails when the email is taken.
func (r *Repo) CreatePasswordUser(ctx context.Context, user domacct.PasswordUser) error {
	if err := r.createAccount(ctx, user.Account); err != nil {
		return err
	}
	fields := accountToHash(user.Account)
	fields["password_hash"] = user.PasswordHash
	if err := r.store.HSet(ctx, passwordUserKey(user.AccountID), fields); err != nil {
		return fmt.Errorf("hset password user %s: %w", user.AccountID, err)
	}
	return nil
}

// CreateDataPassUser stores the account and its DataPass link. Fails
// when the email is taken.
func (r *Repo) CreateDataPassUser(ctx context.Context, user domacct.DataPassUser) error {
	if err := r.createAccount(ctx, user.Account); err != nil {
		return err
	}
	return r.CreateDataPassLink(ctx, user)
}

// CreateDataPassLink attaches a DataPass link to an already stored
// account.
func (r *Repo) CreateDataPassLink(ctx context.Context, user domacct.DataPassUser) error {
	if err := r.store.HSet(ctx, dataPassUserKey(user.AccountID), accountToHash(user.Account)); err != nil {
		return fmt.Errorf("hset datapass user %s: %w", user.AccountID, err)
	}
	return nil
}

func (r *Repo) createAccount(ctx context.Context, acct domacct.Account) error {
	taken, err := r.store.Exists(ctx, emailKey(acct.Email))
	if err != nil {
		return fmt.Errorf("check email exists: %w", err)
	}
	if taken {
		return domain.ErrAlreadyExists
	}

	if err := r.store.HSet(ctx, accountKey(acct.ID), accountToHash(acct)); err != nil {
		return fmt.Errorf("hset account %s: %w", acct.ID, err)
	}
	if err := r.store.Set(ctx, emailKey(acct.Email), []byte(acct.ID.String())); err != nil {
		return fmt.Errorf("set email index: %w", err)
	}
	if err := r.store.Set(ctx, tokenKey(acct.APIToken), []byte(acct.ID.String())); err != nil {
		return fmt.Errorf("set token index: %w", err)
	}
	return nil
}

// GetAccountByEmail resolves an account through the email index.
func (r *Repo) GetAccountByEmail(ctx context.Context, email string) (domacct.Account, error) {
	return r.getIndexed(ctx, emailKey(email))
}

// GetAccountByAPIToken resolves an account through the token index.
func (r *Repo) GetAccountByAPIToken(ctx context.Context, token string) (domacct.Account, error) {
	return r.getIndexed(ctx, tokenKey(token))
}

func (r *Repo) getIndexed(ctx context.Context, indexKey string) (domacct.Account, error) {
	raw, err := r.store.Get(ctx, indexKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domacct.Account{}, domain.ErrNotFound
		}
		return domacct.Account{}, fmt.Errorf("get index: %w", err)
	}

	id, err := uuid.Parse(string(raw))
	if err != nil {
		return domacct.Account{}, fmt.Errorf("invalid indexed account id %q: %w", raw, err)
	}
	return r.GetAccountByID(ctx, id)
}

// GetAccountByID retrieves an account.
func (r *Repo) GetAccountByID(ctx context.Context, id uuid.UUID) (domacct.Account, error) {
	m, err := r.store.HGetAll(ctx, accountKey(id))
	if err != nil {
		return domacct.Account{}, fmt.Errorf("hgetall account %s: %w", id, err)
	}
	if len(m) == 0 {
		return domacct.Account{}, domain.ErrNotFound
	}
	return accountFromHash(m)
}

// GetPasswordUser retrieves the password link for an account.
func (r *Repo) GetPasswordUser(ctx context.Context, accountID uuid.UUID) (domacct.PasswordUser, error) {
	m, err := r.store.HGetAll(ctx, passwordUserKey(accountID))
	if err != nil {
		return domacct.PasswordUser{}, fmt.Errorf("hgetall password user %s: %w", accountID, err)
	}
	if len(m) == 0 {
		return domacct.PasswordUser{}, domain.ErrNotFound
	}

	acct, err := accountFromHash(m)
	if err != nil {
		return domacct.PasswordUser{}, err
	}
	return domacct.PasswordUser{
		AccountID:    acct.ID,
		Account:      acct,
		PasswordHash: m["password_hash"],
	}, nil
}

// GetDataPassUser retrieves the DataPass link for an account.
func (r *Repo) GetDataPassUser(ctx context.Context, accountID uuid.UUID) (domacct.DataPassUser, error) {
	m, err := r.store.HGetAll(ctx, dataPassUserKey(accountID))
	if err != nil {
		return domacct.DataPassUser{}, fmt.Errorf("hgetall datapass user %s: %w", accountID, err)
	}
	if len(m) == 0 {
		return domacct.DataPassUser{}, domain.ErrNotFound
	}

	acct, err := accountFromHash(m)
	if err != nil {
		return domacct.DataPassUser{}, err
	}
	return domacct.DataPassUser{AccountID: acct.ID, Account: acct}, nil
}

// UpdatePasswordUser rewrites the account hash, password link, and the
// token index after a password or token change.
func (r *Repo) UpdatePasswordUser(ctx context.Context, user domacct.PasswordUser, previousToken string) error {
	if err := r.store.HSet(ctx, accountKey(user.AccountID), accountToHash(user.Account)); err != nil {
		return fmt.Errorf("hset account %s: %w", user.AccountID, err)
	}
	fields := accountToHash(user.Account)
	fields["password_hash"] = user.PasswordHash
	if err := r.store.HSet(ctx, passwordUserKey(user.AccountID), fields); err != nil {
		return fmt.Errorf("hset password user %s: %w", user.AccountID, err)
	}

	if previousToken != user.Account.APIToken {
		if err := r.store.Del(ctx, tokenKey(previousToken)); err != nil {
			return fmt.Errorf("del previous token index: %w", err)
		}
		if err := r.store.Set(ctx, tokenKey(user.Account.APIToken), []byte(user.AccountID.String())); err != nil {
			return fmt.Errorf("set token index: %w", err)
		}
	}
	return nil
}

// DeletePasswordUser removes the account, its password link and its
// indexes.
func (r *Repo) DeletePasswordUser(ctx context.Context, user domacct.PasswordUser) error {
	for _, key := range []string{
		passwordUserKey(user.AccountID),
		accountKey(user.AccountID),
		emailKey(user.Account.Email),
		tokenKey(user.Account.APIToken),
	} {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("del %s: %w", key, err)
		}
	}
	return nil
}

// Redis key patterns: catalogd:account:{id}, catalogd:account_email:{email},
// catalogd:account_token:{token}, catalogd:password_user:{id},
// catalogd:datapass_user:{id}

func accountKey(id uuid.UUID) string {
	return fmt.Sprintf("%saccount:%s", domain.KeyPrefix, id)
}

func emailKey(email string) string {
	return fmt.Sprintf("%saccount_email:%s", domain.KeyPrefix, email)
}

func tokenKey(token string) string {
	return fmt.Sprintf("%saccount_token:%s", domain.KeyPrefix, token)
}

func passwordUserKey(id uuid.UUID) string {
	return fmt.Sprintf("%spassword_user:%s", domain.KeyPrefix, id)
}

func dataPassUserKey(id uuid.UUID) string {
	return fmt.Sprintf("%sdatapass_user:%s", domain.KeyPrefix, id)
}

func accountToHash(acct domacct.Account) map[string]string {
	return map[string]string{
		"id":                 acct.ID.String(),
		"organization_siret": string(acct.OrganizationSiret),
		"email":              acct.Email,
		"role":               string(acct.Role),
		"api_token":          acct.APIToken,
	}
}

func accountFromHash(m map[string]string) (domacct.Account, error) {
	id, err := uuid.Parse(m["id"])
	if err != nil {
		return domacct.Account{}, fmt.Errorf("invalid account id %q: %w", m["id"], err)
	}
	return domacct.Account{
		ID:                id,
		OrganizationSiret: domorg.Siret(m["organization_siret"]),
		Email:             m["email"],
		Role:              domacct.Role(m["role"]),
		APIToken:          m["api_token"],
	}, nil
}
