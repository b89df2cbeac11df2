// Package dataformat stores data formats as Redis hashes keyed by a
// sequential id drawn from an INCR counter.
package dataformat

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/opencatalogue/catalogd/internal/domain"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
)

// store is the consumer interface for data formats (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// Repo implements usecase/dataformat.Repository.
type Repo struct {
	store store
}

// New creates a data format repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create allocates an id from the sequence and stores the format.
func (r *Repo) Create(ctx context.Context, name string) (domfmt.DataFormat, error) {
	id, err := r.store.Incr(ctx, seqKey())
	if err != nil {
		return domfmt.DataFormat{}, fmt.Errorf("next format id: %w", err)
	}

	f := domfmt.DataFormat{ID: id, Name: name}
	if err := r.store.HSet(ctx, formatKey(id), formatToHash(f)); err != nil {
		return domfmt.DataFormat{}, fmt.Errorf("hset dataformat %d: %w", id, err)
	}
	return f, nil
}

// GetByID retrieves a data format.
func (r *Repo) GetByID(ctx context.Context, id int64) (domfmt.DataFormat, error) {
	m, err := r.store.HGetAll(ctx, formatKey(id))
	if err != nil {
		return domfmt.DataFormat{}, fmt.Errorf("hgetall dataformat %d: %w", id, err)
	}
	if len(m) == 0 {
		return domfmt.DataFormat{}, domain.ErrNotFound
	}
	return formatFromHash(m)
}

// GetAll returns all data formats sorted by name.
func (r *Repo) GetAll(ctx context.Context) ([]domfmt.DataFormat, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%sdataformat:*", domain.KeyPrefix))
	if err != nil {
		return nil, fmt.Errorf("scan dataformats: %w", err)
	}
	if len(keys) == 0 {
		return []domfmt.DataFormat{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi dataformats: %w", err)
	}

	formats := make([]domfmt.DataFormat, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		f, err := formatFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse dataformat %s: %w", keys[i], err)
		}
		formats = append(formats, f)
	}

	sort.Slice(formats, func(i, j int) bool { return formats[i].Name < formats[j].Name })
	return formats, nil
}

// Redis key patterns: catalogd:dataformat:{id}, catalogd:dataformat_seq

func formatKey(id int64) string {
	return fmt.Sprintf("%sdataformat:%d", domain.KeyPrefix, id)
}

func seqKey() string {
	return domain.KeyPrefix + "dataformat_seq"
}

func formatToHash(f domfmt.DataFormat) map[string]string {
	return map[string]string{
		"id":   strconv.FormatInt(f.ID, 10),
		"name": f.Name,
	}
}

func formatFromHash(m map[string]string) (domfmt.DataFormat, error) {
	id, err := strconv.ParseInt(m["id"], 10, 64)
	if err != nil {
		return domfmt.DataFormat{}, fmt.Errorf("invalid dataformat id %q: %w", m["id"], err)
	}
	return domfmt.DataFormat{ID: id, Name: m["name"]}, nil
}
