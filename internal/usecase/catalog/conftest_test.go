package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/opencatalogue/catalogd/internal/domain"
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

const ownerSiret = "11122233344455"

// --- Mocks ---

type mockRepo struct {
	catalogs map[domorg.Siret]domcat.Catalog
}

func newMockRepo() *mockRepo {
	return &mockRepo{catalogs: make(map[domorg.Siret]domcat.Catalog)}
}

func (m *mockRepo) Create(_ context.Context, c domcat.Catalog) error {
	if _, ok := m.catalogs[c.Siret()]; ok {
		return fmt.Errorf("catalog %s: %w", c.Siret(), domain.ErrAlreadyExists)
	}
	m.catalogs[c.Siret()] = c
	return nil
}

func (m *mockRepo) GetBySiret(_ context.Context, siret domorg.Siret) (domcat.Catalog, error) {
	c, ok := m.catalogs[siret]
	if !ok {
		return domcat.Catalog{}, fmt.Errorf("catalog %s: %w", siret, domain.ErrNotFound)
	}
	return c, nil
}

func (m *mockRepo) GetAll(_ context.Context) ([]domcat.Catalog, error) {
	out := make([]domcat.Catalog, 0, len(m.catalogs))
	for _, c := range m.catalogs {
		out = append(out, c)
	}
	return out, nil
}

type mockOrgs struct {
	orgs map[domorg.Siret]domorg.Organization
}

func (m *mockOrgs) GetBySiret(_ context.Context, siret domorg.Siret) (domorg.Organization, error) {
	org, ok := m.orgs[siret]
	if !ok {
		return domorg.Organization{}, fmt.Errorf("organization %s: %w", siret, domain.ErrNotFound)
	}
	return org, nil
}

type mockDatasets struct {
	datasets []domds.Dataset
}

func (m *mockDatasets) GetAll(_ context.Context) ([]domds.Dataset, error) {
	return m.datasets, nil
}

// --- Fixtures ---

func newTestService(t *testing.T) (*Service, *mockRepo, *mockDatasets) {
	t.Helper()
	org, err := domorg.New(ownerSiret, "Ville", "")
	if err != nil {
		t.Fatalf("organization.New: %v", err)
	}
	repo := newMockRepo()
	datasets := &mockDatasets{}
	svc := New(repo, &mockOrgs{orgs: map[domorg.Siret]domorg.Organization{
		org.Siret: org,
	}}, datasets)
	return svc, repo, datasets
}

func makeDataset(t *testing.T, title string, createdAt time.Time, restriction domds.PublicationRestriction) domds.Dataset {
	t.Helper()
	record := domds.CatalogRecord{
		ID:                uuid.New(),
		OrganizationSiret: ownerSiret,
		CreatedAt:         createdAt,
	}
	d, err := domds.New(uuid.New(), record, domds.Attributes{
		Title:                  title,
		Description:            "Description de " + title,
		Service:                "DSI",
		GeographicalCoverage:   "France",
		Formats:                []dataformat.DataFormat{{ID: 1, Name: "CSV"}},
		ContactEmails:          []string{"contact@example.org"},
		PublicationRestriction: restriction,
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return d
}
