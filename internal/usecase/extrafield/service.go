package extrafield

import (
	"context"
	"fmt"

	"github.com/opencatalogue/catalogd/internal/domain/catalog/extrafield"
	domorg "github.com/opencatalogue/catalogd/internal/domain/organization"
)

// Service answers extra-field schema queries.
type Service struct {
	catalogs CatalogRepository
}

// New creates an extra-field service.
func New(catalogs CatalogRepository) *Service {
	return &Service{catalogs: catalogs}
}

// GetAll returns an organization's extra fields in definition order.
func (s *Service) GetAll(ctx context.Context, raw string) ([]extrafield.Field, error) {
	siret, err := domorg.ParseSiret(raw)
	if err != nil {
		return nil, err
	}
	c, err := s.catalogs.GetBySiret(ctx, siret)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return c.ExtraFields(), nil
}
