package tag

import (
	"context"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/bus"
)

// Module exposes the tag service on the bus.
type Module struct {
	svc *Service
}

// NewModule creates the tag bus module.
func NewModule(svc *Service) *Module {
	return &Module{svc: svc}
}

// CommandHandlers returns the command handler map.
func (m *Module) CommandHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(CreateTag{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.Create(ctx, msg.(CreateTag))
		},
	}
}

// QueryHandlers returns the query handler map.
func (m *Module) QueryHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(GetAllTags{}): func(ctx context.Context, _ any) (any, error) {
			return m.svc.GetAll(ctx)
		},
		reflect.TypeOf(GetTagsByIDs{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetByIDs(ctx, msg.(GetTagsByIDs).IDs)
		},
	}
}
