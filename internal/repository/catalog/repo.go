// Package catalog stores catalogs as Redis hashes keyed by the owning
// organization's siret, with the extra-field schema serialized as JSON.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/opencatalogue/catalogd/internal/domain"
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// store is the consumer interface for catalogs (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// organizations resolves the owning organization during hydration.
type organizations interface {
	GetBySiret(ctx context.Context, siret domorg.Siret) (domorg.Organization, error)
}

// Repo implements usecase/catalog.Repository.
type Repo struct {
	store store
	orgs  organizations
}

// New creates a catalog repository.
func New(s store, orgs organizations) *Repo {
	return &Repo{store: s, orgs: orgs}
}

// Create stores a catalog. Fails when the organization already has one.
func (r *Repo) Create(ctx context.Context, c domcat.Catalog) error {
	key := catalogKey(c.Siret())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	data, err := catalogToHash(c)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, data); err != nil {
		return fmt.Errorf("hset catalog %s: %w", c.Siret(), err)
	}
	return nil
}

// GetBySiret retrieves a catalog with its organization resolved.
func (r *Repo) GetBySiret(ctx context.Context, siret domorg.Siret) (domcat.Catalog, error) {
	m, err := r.store.HGetAll(ctx, catalogKey(siret))
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("hgetall catalog %s: %w", siret, err)
	}
	if len(m) == 0 {
		return domcat.Catalog{}, domain.ErrNotFound
	}
	return r.hydrate(ctx, m)
}

// GetAll returns all catalogs sorted by organization name.
func (r *Repo) GetAll(ctx context.Context) ([]domcat.Catalog, error) {
	keys, err := r.store.Scan(ctx, catalogKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan catalogs: %w", err)
	}
	if len(keys) == 0 {
		return []domcat.Catalog{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi catalogs: %w", err)
	}

	catalogs := make([]domcat.Catalog, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		c, err := r.hydrate(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", keys[i], err)
		}
		catalogs = append(catalogs, c)
	}

	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].Organization().Name < catalogs[j].Organization().Name
	})
	return catalogs, nil
}

func (r *Repo) hydrate(ctx context.Context, m map[string]string) (domcat.Catalog, error) {
	siret := domorg.Siret(m["siret"])

	org, err := r.orgs.GetBySiret(ctx, siret)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("resolve organization %s: %w", siret, err)
	}

	fields, err := extraFieldsFromJSON(m["extra_fields_json"], siret)
	if err != nil {
		return domcat.Catalog{}, err
	}
	return domcat.Reconstruct(org, fields), nil
}

// Redis key pattern: catalogd:catalog:{siret}

func catalogKey(siret domorg.Siret) string {
	return fmt.Sprintf("%scatalog:%s", domain.KeyPrefix, siret.Normalized())
}

func catalogToHash(c domcat.Catalog) (map[string]string, error) {
	fieldsJSON, err := extraFieldsToJSON(c.ExtraFields())
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"siret":             string(c.Siret()),
		"extra_fields_json": fieldsJSON,
	}, nil
}
