package tag

import (
	"context"

	"github.com/google/uuid"

	domtag "github.com/opencatalogue/catalogd/internal/domain/tag"
)

// Repository defines the storage contract for tags.
type Repository interface {
	Create(ctx context.Context, t domtag.Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (domtag.Tag, error)
	GetAll(ctx context.Context) ([]domtag.Tag, error)
}
