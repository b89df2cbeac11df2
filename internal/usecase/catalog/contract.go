package catalog

import (
	"context"

	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// Repository defines the storage contract for catalogs.
type Repository interface {
	Create(ctx context.Context, c domcat.Catalog) error
	GetBySiret(ctx context.Context, siret domorg.Siret) (domcat.Catalog, error)
	GetAll(ctx context.Context) ([]domcat.Catalog, error)
}

// OrganizationRepository resolves the organization a catalog belongs to.
type OrganizationRepository interface {
	GetBySiret(ctx context.Context, siret domorg.Siret) (domorg.Organization, error)
}

// DatasetRepository provides the datasets feeding the export.
type DatasetRepository interface {
	GetAll(ctx context.Context) ([]domds.Dataset, error)
}
