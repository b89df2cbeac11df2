package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
)

// --- Mocks ---

// mockRepo is an in-memory account store.
type mockRepo struct {
	accountsByEmail map[string]domacct.Account
	passwordUsers   map[uuid.UUID]domacct.PasswordUser
	dataPassUsers   map[uuid.UUID]domacct.DataPassUser
	links           int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		accountsByEmail: make(map[string]domacct.Account),
		passwordUsers:   make(map[uuid.UUID]domacct.PasswordUser),
		dataPassUsers:   make(map[uuid.UUID]domacct.DataPassUser),
	}
}

func (m *mockRepo) CreatePasswordUser(_ context.Context, user domacct.PasswordUser) error {
	if _, ok := m.accountsByEmail[user.Account.Email]; ok {
		return fmt.Errorf("account %s: %w", user.Account.Email, domain.ErrAlreadyExists)
	}
	m.accountsByEmail[user.Account.Email] = user.Account
	m.passwordUsers[user.AccountID] = user
	return nil
}

func (m *mockRepo) CreateDataPassUser(_ context.Context, user domacct.DataPassUser) error {
	if _, ok := m.accountsByEmail[user.Account.Email]; ok {
		return fmt.Errorf("account %s: %w", user.Account.Email, domain.ErrAlreadyExists)
	}
	m.accountsByEmail[user.Account.Email] = user.Account
	m.dataPassUsers[user.AccountID] = user
	return nil
}

func (m *mockRepo) CreateDataPassLink(_ context.Context, user domacct.DataPassUser) error {
	m.dataPassUsers[user.AccountID] = user
	m.links++
	return nil
}

func (m *mockRepo) GetAccountByEmail(_ context.Context, email string) (domacct.Account, error) {
	acct, ok := m.accountsByEmail[email]
	if !ok {
		return domacct.Account{}, fmt.Errorf("account %s: %w", email, domain.ErrNotFound)
	}
	return acct, nil
}

func (m *mockRepo) GetAccountByAPIToken(_ context.Context, token string) (domacct.Account, error) {
	for _, acct := range m.accountsByEmail {
		if acct.APIToken == token {
			return acct, nil
		}
	}
	return domacct.Account{}, fmt.Errorf("token: %w", domain.ErrNotFound)
}

func (m *mockRepo) GetAccountByID(_ context.Context, id uuid.UUID) (domacct.Account, error) {
	for _, acct := range m.accountsByEmail {
		if acct.ID == id {
			return acct, nil
		}
	}
	return domacct.Account{}, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
}

func (m *mockRepo) GetPasswordUser(_ context.Context, accountID uuid.UUID) (domacct.PasswordUser, error) {
	user, ok := m.passwordUsers[accountID]
	if !ok {
		return domacct.PasswordUser{}, fmt.Errorf("password user %s: %w", accountID, domain.ErrNotFound)
	}
	return user, nil
}

func (m *mockRepo) GetDataPassUser(_ context.Context, accountID uuid.UUID) (domacct.DataPassUser, error) {
	user, ok := m.dataPassUsers[accountID]
	if !ok {
		return domacct.DataPassUser{}, fmt.Errorf("datapass user %s: %w", accountID, domain.ErrNotFound)
	}
	return user, nil
}

func (m *mockRepo) UpdatePasswordUser(_ context.Context, user domacct.PasswordUser, _ string) error {
	m.passwordUsers[user.AccountID] = user
	m.accountsByEmail[user.Account.Email] = user.Account
	return nil
}

func (m *mockRepo) DeletePasswordUser(_ context.Context, user domacct.PasswordUser) error {
	delete(m.passwordUsers, user.AccountID)
	delete(m.accountsByEmail, user.Account.Email)
	return nil
}

// fakeEncoder reverses nothing: hash is "hash:" + password.
type fakeEncoder struct {
	verifications int
}

func (e *fakeEncoder) Hash(password string) (string, error) {
	return "hash:" + password, nil
}

func (e *fakeEncoder) Verify(encoded, password string) (bool, error) {
	e.verifications++
	return encoded == "hash:"+password, nil
}

// --- Fixtures ---

func newTestService() (*Service, *mockRepo, *fakeEncoder) {
	repo := newMockRepo()
	enc := &fakeEncoder{}
	tokens := 0
	svc := New(repo, enc, func() (string, error) {
		tokens++
		return fmt.Sprintf("token-%d", tokens), nil
	})
	return svc, repo, enc
}

func createUser(t *testing.T, svc *Service, email string) domacct.Account {
	t.Helper()
	acct, err := svc.CreatePasswordUser(context.Background(), CreatePasswordUser{
		OrganizationSiret: "11122233344455",
		Email:             email,
		Password:          "s3cret",
	})
	if err != nil {
		t.Fatalf("CreatePasswordUser: %v", err)
	}
	return acct
}
