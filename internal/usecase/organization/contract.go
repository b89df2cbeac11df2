package organization

import (
	"context"

	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// Repository defines the storage contract for organizations.
type Repository interface {
	Create(ctx context.Context, org domorg.Organization) error
	GetBySiret(ctx context.Context, siret domorg.Siret) (domorg.Organization, error)
	GetAll(ctx context.Context) ([]domorg.Organization, error)
}
