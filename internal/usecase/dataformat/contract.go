package dataformat

import (
	"context"

	domfmt "github.com/opencatalogue/catalogd/internal/domain/dataformat"
)

// Repository defines the storage contract for data formats.
type Repository interface {
	Create(ctx context.Context, name string) (domfmt.DataFormat, error)
	GetByID(ctx context.Context, id int64) (domfmt.DataFormat, error)
	GetAll(ctx context.Context) ([]domfmt.DataFormat, error)
}
