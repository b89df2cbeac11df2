package dataset

import (
	"context"

	"github.com/google/uuid"

	domcat "github.com/opencatalogue/catalogd/internal/domain/catalog"
	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
	domds "github.com/opencatalogue/catalogd/internal/domain/dataset"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
)

// Repository defines the storage contract for datasets.
type Repository interface {
	Create(ctx context.Context, d domds.Dataset) error
	GetByID(ctx context.Context, id uuid.UUID) (domds.Dataset, error)
	Update(ctx context.Context, d domds.Dataset) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context) ([]domds.Dataset, error)
}

// CatalogRepository resolves the target catalog on publish.
type CatalogRepository interface {
	GetBySiret(ctx context.Context, siret domorg.Siret) (domcat.Catalog, error)
	GetAll(ctx context.Context) ([]domcat.Catalog, error)
}

// TagRepository resolves tag references on a dataset payload.
type TagRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domtag.Tag, error)
	GetAll(ctx context.Context) ([]domtag.Tag, error)
}

// FormatRepository resolves format references on a dataset payload.
type FormatRepository interface {
	GetByID(ctx context.Context, id int64) (domfmt.DataFormat, error)
	GetAll(ctx context.Context) ([]domfmt.DataFormat, error)
}
