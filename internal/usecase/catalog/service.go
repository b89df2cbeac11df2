package catalog

import (
	"context"
	"fmt"

	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/query"
	"github.com/opencatalogue/catalogd/internal/domain/dataset/spec"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	"github.com/opencatalogue/catalogd/internal/domain/page"
)

// Service handles catalog operations.
type Service struct {
	repo     Repository
	orgs     OrganizationRepository
	datasets DatasetRepository
}

// New creates a catalog service.
func New(repo Repository, orgs OrganizationRepository, datasets DatasetRepository) *Service {
	return &Service{repo: repo, orgs: orgs, datasets: datasets}
}

// Create builds a catalog from raw extra-field definitions and stores
// it. The organization must already exist; one catalog per organization.
func (s *Service) Create(ctx context.Context, cmd CreateCatalog) (domcat.Catalog, error) {
	siret, err := domorg.ParseSiret(cmd.Siret)
	if err != nil {
		return domcat.Catalog{}, err
	}

	org, err := s.orgs.GetBySiret(ctx, siret)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("resolve organization %s: %w", siret, err)
	}

	fields, err := extrafield.ParseDefinitions(cmd.ExtraFields, siret)
	if err != nil {
		return domcat.Catalog{}, err
	}

	c, err := domcat.New(org, fields)
	if err != nil {
		return domcat.Catalog{}, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return domcat.Catalog{}, fmt.Errorf("create catalog: %w", err)
	}
	return c, nil
}

// GetBySiret retrieves a catalog.
func (s *Service) GetBySiret(ctx context.Context, raw string) (domcat.Catalog, error) {
	siret, err := domorg.ParseSiret(raw)
	if err != nil {
		return domcat.Catalog{}, err
	}
	c, err := s.repo.GetBySiret(ctx, siret)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("get catalog: %w", err)
	}
	return c, nil
}

// GetAll returns all catalogs.
func (s *Service) GetAll(ctx context.Context) ([]domcat.Catalog, error) {
	catalogs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all catalogs: %w", err)
	}
	return catalogs, nil
}

// GetExport assembles the export payload: every dataset of the catalog's
// organization that carries no publication restriction, oldest first so
// the file is stable across exports.
func (s *Service) GetExport(ctx context.Context, raw string) (Export, error) {
	c, err := s.GetBySiret(ctx, raw)
	if err != nil {
		return Export{}, err
	}

	all, err := s.datasets.GetAll(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("get datasets: %w", err)
	}

	exportSpec := spec.New().WithOrganization(c.Siret()).WithoutRestricted()
	p, err := page.New(1, maxExportRows)
	if err != nil {
		return Export{}, err
	}
	hits, _ := query.Evaluate(all, exportSpec, nil, p)

	datasets := make([]domds.Dataset, 0, len(hits))
	for i := len(hits) - 1; i >= 0; i-- {
		datasets = append(datasets, hits[i].Dataset)
	}
	return Export{Catalog: c, Datasets: datasets}, nil
}

// maxExportRows bounds one export page; catalogs are far smaller.
const maxExportRows = 1_000_000
