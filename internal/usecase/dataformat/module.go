package dataformat

import (
	"context"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/bus"
)

// Module exposes the data format service on the bus.
type Module struct {
	svc *Service
}

// NewModule creates the data format bus module.
func NewModule(svc *Service) *Module {
	return &Module{svc: svc}
}

// CommandHandlers returns the command handler map.
func (m *Module) CommandHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(CreateDataFormat{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.Create(ctx, msg.(CreateDataFormat))
		},
	}
}

// QueryHandlers returns the query handler map.
func (m *Module) QueryHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(GetAllDataFormats{}): func(ctx context.Context, _ any) (any, error) {
			return m.svc.GetAll(ctx)
		},
		reflect.TypeOf(GetDataFormatsByIDs{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetByIDs(ctx, msg.(GetDataFormatsByIDs).IDs)
		},
	}
}
