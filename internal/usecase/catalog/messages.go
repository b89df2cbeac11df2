package catalog

import (
	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
)

// CreateCatalog is the command creating an organization's catalog with
// its extra-field schema.
type CreateCatalog struct {
	Siret       string
	ExtraFields []extrafield.Definition
}

// GetCatalogBySiret is the query fetching one catalog.
type GetCatalogBySiret struct {
	Siret string
}

// GetAllCatalogs is the query listing every catalog.
type GetAllCatalogs struct{}

// GetCatalogExport is the query assembling the export payload: the
// catalog schema plus its unrestricted datasets.
type GetCatalogExport struct {
	Siret string
}

// Export is the payload feeding CSV rendering.
type Export struct {
	Catalog  domcat.Catalog
	Datasets []domds.Dataset
}
