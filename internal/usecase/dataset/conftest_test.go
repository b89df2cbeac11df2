package dataset

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
)

const (
	ownerSiret = "11122233344455"
	otherSiret = "99988877766655"
)

// --- Mocks ---

type mockRepo struct {
	datasets map[uuid.UUID]domds.Dataset
}

func newMockRepo() *mockRepo {
	return &mockRepo{datasets: make(map[uuid.UUID]domds.Dataset)}
}

func (m *mockRepo) Create(_ context.Context, d domds.Dataset) error {
	m.datasets[d.ID()] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (domds.Dataset, error) {
	d, ok := m.datasets[id]
	if !ok {
		return domds.Dataset{}, fmt.Errorf("dataset %s: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

func (m *mockRepo) Update(_ context.Context, d domds.Dataset) error {
	m.datasets[d.ID()] = d
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.datasets, id)
	return nil
}

func (m *mockRepo) GetAll(_ context.Context) ([]domds.Dataset, error) {
	out := make([]domds.Dataset, 0, len(m.datasets))
	for _, d := range m.datasets {
		out = append(out, d)
	}
	return out, nil
}

type mockCatalogs struct {
	catalogs map[domorg.Siret]domcat.Catalog
}

func (m *mockCatalogs) GetBySiret(_ context.Context, siret domorg.Siret) (domcat.Catalog, error) {
	c, ok := m.catalogs[siret]
	if !ok {
		return domcat.Catalog{}, fmt.Errorf("catalog %s: %w", siret, domain.ErrNotFound)
	}
	return c, nil
}

func (m *mockCatalogs) GetAll(_ context.Context) ([]domcat.Catalog, error) {
	out := make([]domcat.Catalog, 0, len(m.catalogs))
	for _, c := range m.catalogs {
		out = append(out, c)
	}
	return out, nil
}

type mockTags struct {
	tags map[uuid.UUID]domtag.Tag
}

func (m *mockTags) GetByID(_ context.Context, id uuid.UUID) (domtag.Tag, error) {
	t, ok := m.tags[id]
	if !ok {
		return domtag.Tag{}, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}

func (m *mockTags) GetAll(_ context.Context) ([]domtag.Tag, error) {
	out := make([]domtag.Tag, 0, len(m.tags))
	for _, t := range m.tags {
		out = append(out, t)
	}
	return out, nil
}

type mockFormats struct {
	formats map[int64]domfmt.DataFormat
}

func (m *mockFormats) GetByID(_ context.Context, id int64) (domfmt.DataFormat, error) {
	f, ok := m.formats[id]
	if !ok {
		return domfmt.DataFormat{}, fmt.Errorf("format %d: %w", id, domain.ErrNotFound)
	}
	return f, nil
}

func (m *mockFormats) GetAll(_ context.Context) ([]domfmt.DataFormat, error) {
	out := make([]domfmt.DataFormat, 0, len(m.formats))
	for _, f := range m.formats {
		out = append(out, f)
	}
	return out, nil
}

// --- Fixtures ---

type fixture struct {
	svc      *Service
	repo     *mockRepo
	sizeID   uuid.UUID // TEXT extra field on the owner catalog
	levelID  uuid.UUID // ENUM extra field on the owner catalog
	formatID int64
	tagID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sizeField, err := extrafield.NewText(ownerSiret, "poids", "Poids", "")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	levelField, err := extrafield.NewEnum(ownerSiret, "niveau", "Niveau", "", []string{"or", "argent"})
	if err != nil {
		t.Fatalf("NewEnum: %v", err)
	}

	owner := mustCatalog(t, ownerSiret, []extrafield.Field{sizeField, levelField})
	other := mustCatalog(t, otherSiret, nil)

	repo := newMockRepo()
	catalogs := &mockCatalogs{catalogs: map[domorg.Siret]domcat.Catalog{
		owner.Siret(): owner,
		other.Siret(): other,
	}}

	tagID := uuid.New()
	tags := &mockTags{tags: map[uuid.UUID]domtag.Tag{
		tagID: {ID: tagID, Name: "climat"},
	}}
	formats := &mockFormats{formats: map[int64]domfmt.DataFormat{
		1: {ID: 1, Name: "CSV"},
	}}

	clock := func() time.Time { return time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC) }
	return &fixture{
		svc:      New(repo, catalogs, tags, formats, clock),
		repo:     repo,
		sizeID:   sizeField.ID(),
		levelID:  levelField.ID(),
		formatID: 1,
		tagID:    tagID,
	}
}

func mustCatalog(t *testing.T, siret string, fields []extrafield.Field) domcat.Catalog {
	t.Helper()
	org, err := domorg.New(domorg.Siret(siret), "Org "+siret, "")
	if err != nil {
		t.Fatalf("organization.New: %v", err)
	}
	c, err := domcat.New(org, fields)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func (f *fixture) payload() Payload {
	return Payload{
		Title:                "Base Carbone",
		Description:          "Facteurs d'émissions",
		Service:              "DSI",
		GeographicalCoverage: "France",
		FormatIDs:            []int64{f.formatID},
		ContactEmails:        []string{"contact@example.org"},
		TagIDs:               []uuid.UUID{f.tagID},
	}
}
