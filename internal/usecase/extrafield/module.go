package extrafield

import (
	"context"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/bus"
)

// Module exposes the extra-field service on the bus.
type Module struct {
	svc *Service
}

// NewModule creates the extra-field bus module.
func NewModule(svc *Service) *Module {
	return &Module{svc: svc}
}

// CommandHandlers returns the command handler map (none).
func (m *Module) CommandHandlers() map[reflect.Type]bus.Handler {
	return nil
}

// QueryHandlers returns the query handler map.
func (m *Module) QueryHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(GetAllExtraFields{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetAll(ctx, msg.(GetAllExtraFields).Siret)
		},
	}
}
