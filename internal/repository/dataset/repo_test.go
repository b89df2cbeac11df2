package dataset

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	"github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/tag"
)

// fakeStore is an in-memory hash store.
type fakeStore struct {
	hashes map[string]map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{hashes: make(map[string]map[string]string)}
}

func (s *fakeStore) HSet(_ context.Context, key string, fields map[string]string) error {
	h, ok := s.hashes[key]
	if !ok {
		h = make(map[string]string)
		s.hashes[key] = h
	}
	for k, v := range fields {
		h[k] = v
	}
	return nil
}

func (s *fakeStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	out := make(map[string]string, len(s.hashes[key]))
	for k, v := range s.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, key := range keys {
		m, err := s.HGetAll(ctx, key)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func (s *fakeStore) Del(_ context.Context, key string) error {
	delete(s.hashes, key)
	return nil
}

func (s *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.hashes[key]
	return ok, nil
}

func (s *fakeStore) Scan(_ context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range s.hashes {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func makeDataset(t *testing.T, id uuid.UUID) domds.Dataset {
	t.Helper()
	lastUpdated := time.Date(2023, 3, 7, 0, 0, 0, 0, time.UTC)
	record := domds.CatalogRecord{
		ID:                uuid.New(),
		OrganizationSiret: "11122233344455",
		CreatedAt:         time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	d, err := domds.New(id, record, domds.Attributes{
		Title:                "Base Carbone",
		Description:          "Facteurs d'émissions",
		Service:              "DSI",
		GeographicalCoverage: "France",
		Formats:              []dataformat.DataFormat{{ID: 1, Name: "CSV"}, {ID: 2, Name: "API"}},
		TechnicalSource:      "SI interne",
		ContactEmails:        []string{"a@example.org", "b@example.org"},
		UpdateFrequency:      domds.FrequencyYearly,
		LastUpdatedAt:        &lastUpdated,
		URL:                  "https://example.org/base-carbone",
		License:              "Licence Ouverte",
		Tags:                 []tag.Tag{{ID: uuid.New(), Name: "climat"}},
		ExtraFieldValues:     []extrafield.Value{{ExtraFieldID: uuid.New(), Value: "2.4 Go"}},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return d
}

func TestRepo_CreateAndGetByID(t *testing.T) {
	repo := New(newFakeStore())
	d := makeDataset(t, uuid.New())

	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(context.Background(), d.ID())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, d)
	}
}

func TestRepo_CreateDuplicate(t *testing.T) {
	repo := New(newFakeStore())
	d := makeDataset(t, uuid.New())

	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(context.Background(), d); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestRepo_GetByIDMissing(t *testing.T) {
	repo := New(newFakeStore())
	if _, err := repo.GetByID(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestRepo_UpdateDropsStaleFields(t *testing.T) {
	repo := New(newFakeStore())
	d := makeDataset(t, uuid.New())
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	attrs := d.Attributes()
	attrs.LastUpdatedAt = nil
	attrs.ExtraFieldValues = nil
	updated, err := d.Update(attrs)
	if err != nil {
		t.Fatalf("Update attrs: %v", err)
	}
	if err := repo.Update(context.Background(), updated); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(context.Background(), d.ID())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Attributes().LastUpdatedAt != nil {
		t.Error("expected last_updated_at cleared by the rewrite")
	}
	if len(got.Attributes().ExtraFieldValues) != 0 {
		t.Errorf("expected extra-field values cleared, got %v", got.Attributes().ExtraFieldValues)
	}
}

func TestRepo_UpdateMissing(t *testing.T) {
	repo := New(newFakeStore())
	d := makeDataset(t, uuid.New())
	if err := repo.Update(context.Background(), d); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestRepo_DeleteIdempotent(t *testing.T) {
	repo := New(newFakeStore())
	d := makeDataset(t, uuid.New())
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(context.Background(), d.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), d.ID()); err != nil {
		t.Errorf("expected deleting an absent dataset to succeed, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), d.ID()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestRepo_GetAll(t *testing.T) {
	repo := New(newFakeStore())

	empty, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected an empty slice, got %v", empty)
	}

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		if err := repo.Create(context.Background(), makeDataset(t, id)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != len(ids) {
		t.Errorf("expected %d datasets, got %d", len(ids), len(all))
	}
}
