// Package tag stores tags as Redis hashes keyed by id.
package tag

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
)

// store is the consumer interface for tags (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/tag.Repository.
type Repo struct {
	store store
}

// New creates a tag repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a tag.
func (r *Repo) Create(ctx context.Context, t domtag.Tag) error {
	if err := r.store.HSet(ctx, tagKey(t.ID), tagToHash(t)); err != nil {
		return fmt.Errorf("hset tag %s: %w", t.ID, err)
	}
	return nil
}

// GetByID retrieves a tag.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domtag.Tag, error) {
	m, err := r.store.HGetAll(ctx, tagKey(id))
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("hgetall tag %s: %w", id, err)
	}
	if len(m) == 0 {
		return domtag.Tag{}, domain.ErrNotFound
	}
	return tagFromHash(m)
}

// GetAll returns all tags sorted by name.
func (r *Repo) GetAll(ctx context.Context) ([]domtag.Tag, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%stag:*", domain.KeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	if len(keys) == 0 {
		return []domtag.Tag{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi tags: %w", err)
	}

	tags := make([]domtag.Tag, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		t, err := tagFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse tag %s: %w", keys[i], err)
		}
		tags = append(tags, t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// Redis key pattern: catalogd:tag:{id}

func tagKey(id uuid.UUID) string {
	return fmt.Sprintf("%stag:%s", domain.KeyPrefix, id)
}

func tagToHash(t domtag.Tag) map[string]string {
	return map[string]string{"id": t.ID.String(), "name": t.Name}
}

func tagFromHash(m map[string]string) (domtag.Tag, error) {
	id, err := uuid.Parse(m["id"])
	if err != nil {
		return domtag.Tag{}, fmt.Errorf("invalid tag id %q: %w", m["id"], err)
	}
	return domtag.Tag{ID: id, Name: m["name"]}, nil
}
