// Package organization stores organizations as Redis hashes keyed by
// siret.
package organization

import (
	"context"
	"fmt"
	"sort"

	"github.com/opencatalogue/catalogd/internal/domain"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// store is the consumer interface for organizations (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/organization.Repository.
type Repo struct {
	store store
}

// New creates an organization repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores an organization. Fails when the siret is taken.
func (r *Repo) Create(ctx context.Context, org domorg.Organization) error {
	key := orgKey(org.Siret)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	if err := r.store.HSet(ctx, key, organizationToHash(org)); err != nil {
		return fmt.Errorf("hset organization %s: %w", org.Siret, err)
	}
	return nil
}

// GetBySiret retrieves an organization by siret.
func (r *Repo) GetBySiret(ctx context.Context, siret domorg.Siret) (domorg.Organization, error) {
	m, err := r.store.HGetAll(ctx, orgKey(siret))
	if err != nil {
		return domorg.Organization{}, fmt.Errorf("hgetall organization %s: %w", siret, err)
	}
	if len(m) == 0 {
		return domorg.Organization{}, domain.ErrNotFound
	}
	return organizationFromHash(m), nil
}

// GetAll returns all organizations sorted by name.
func (r *Repo) GetAll(ctx context.Context) ([]domorg.Organization, error) {
	keys, err := r.store.Scan(ctx, orgKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan organizations: %w", err)
	}
	if len(keys) == 0 {
		return []domorg.Organization{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi organizations: %w", err)
	}

	orgs := make([]domorg.Organization, 0, len(results))
	for _, m := range results {
		if len(m) == 0 {
			continue
		}
		orgs = append(orgs, organizationFromHash(m))
	}

	sort.Slice(orgs, func(i, j int) bool { return orgs[i].Name < orgs[j].Name })
	return orgs, nil
}

// Redis key pattern: catalogd:organization:{siret}

func orgKey(siret domorg.Siret) string {
	return fmt.Sprintf("%sorganization:%s", domain.KeyPrefix, siret.Normalized())
}

func organizationToHash(org domorg.Organization) map[string]string {
	return map[string]string{
		"siret":    string(org.Siret),
		"name":     org.Name,
		"logo_url": org.LogoURL,
	}
}

func organizationFromHash(m map[string]string) domorg.Organization {
	return domorg.Organization{
		Siret:   domorg.Siret(m["siret"]),
		Name:    m["name"],
		LogoURL: m["logo_url"],
	}
}
