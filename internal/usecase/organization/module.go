package organization

import (
	"context"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/bus"
)

// Module exposes the organization service on the bus.
type Module struct {
	svc *Service
}

// NewModule creates the organization bus module.
func NewModule(svc *Service) *Module {
	return &Module{svc: svc}
}

// CommandHandlers returns the command handler map.
func (m *Module) CommandHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(CreateOrganization{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.Create(ctx, msg.(CreateOrganization))
		},
	}
}

// QueryHandlers returns the query handler map.
func (m *Module) QueryHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(GetAllOrganizations{}): func(ctx context.Context, _ any) (any, error) {
			return m.svc.GetAll(ctx)
		},
		reflect.TypeOf(GetOrganizationBySiret{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetBySiret(ctx, msg.(GetOrganizationBySiret).Siret)
		},
	}
}
