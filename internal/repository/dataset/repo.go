// Package dataset stores datasets as Redis hashes keyed by id. The
// catalog record, tags, formats and extra-field values are denormalized
// into the hash: tags and formats are immutable once created, so the
// snapshot cannot go stale, and a dataset writes atomically as one HSET.
package dataset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
)

// store is the consumer interface for datasets (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/dataset.Repository.
type Repo struct {
	store store
}

// New creates a dataset repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a dataset. Fails when the id is taken.
func (r *Repo) Create(ctx context.Context, d domds.Dataset) error {
	key := datasetKey(d.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	data, err := datasetToHash(d)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, data); err != nil {
		return fmt.Errorf("hset dataset %s: %w", d.ID(), err)
	}
	return nil
}

// GetByID retrieves a dataset.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domds.Dataset, error) {
	m, err := r.store.HGetAll(ctx, datasetKey(id))
	if err != nil {
		return domds.Dataset{}, fmt.Errorf("hgetall dataset %s: %w", id, err)
	}
	if len(m) == 0 {
		return domds.Dataset{}, domain.ErrNotFound
	}
	return datasetFromHash(m)
}

// Update replaces a dataset's stored attributes.
func (r *Repo) Update(ctx context.Context, d domds.Dataset) error {
	key := datasetKey(d.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}

	// Full hash rewrite: updates replace every attribute, so stale
	// fields from the previous version must not survive.
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del dataset %s: %w", d.ID(), err)
	}
	data, err := datasetToHash(d)
	if err != nil {
		return err
	}
	if err := r.store.HSet(ctx, key, data); err != nil {
		return fmt.Errorf("hset dataset %s: %w", d.ID(), err)
	}
	return nil
}

// Delete removes a dataset. Deleting an absent dataset is not an error.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.store.Del(ctx, datasetKey(id)); err != nil {
		return fmt.Errorf("del dataset %s: %w", id, err)
	}
	return nil
}

// GetAll returns every stored dataset, unordered. Ordering, filtering
// and pagination belong to the query evaluator.
func (r *Repo) GetAll(ctx context.Context) ([]domds.Dataset, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%sdataset:*", domain.KeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("scan datasets: %w", err)
	}
	if len(keys) == 0 {
		return []domds.Dataset{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi datasets: %w", err)
	}

	datasets := make([]domds.Dataset, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		d, err := datasetFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", keys[i], err)
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

// Redis key pattern: catalogd:dataset:{id}

func datasetKey(id uuid.UUID) string {
	return fmt.Sprintf("%sdataset:%s", domain.KeyPrefix, id)
}
