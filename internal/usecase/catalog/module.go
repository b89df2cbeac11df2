package catalog

import (
	"context"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/bus"
)

// Module exposes the catalog service on the bus.
type Module struct {
	svc *Service
}

// NewModule creates the catalog bus module.
func NewModule(svc *Service) *Module {
	return &Module{svc: svc}
}

// CommandHandlers returns the command handler map.
func (m *Module) CommandHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(CreateCatalog{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.Create(ctx, msg.(CreateCatalog))
		},
	}
}

// QueryHandlers returns the query handler map.
func (m *Module) QueryHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(GetCatalogBySiret{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetBySiret(ctx, msg.(GetCatalogBySiret).Siret)
		},
		reflect.TypeOf(GetAllCatalogs{}): func(ctx context.Context, _ any) (any, error) {
			return m.svc.GetAll(ctx)
		},
		reflect.TypeOf(GetCatalogExport{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetExport(ctx, msg.(GetCatalogExport).Siret)
		},
	}
}
