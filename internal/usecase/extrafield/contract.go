package extrafield

import (
	"context"

	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// CatalogRepository resolves the catalog carrying the extra-field schema.
type CatalogRepository interface {
	GetBySiret(ctx context.Context, siret domorg.Siret) (domcat.Catalog, error)
}
