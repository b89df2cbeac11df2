package dataset

import (
	"context"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/bus"
)

// Module exposes the dataset service on the bus.
type Module struct {
	svc *Service
}

// NewModule creates the dataset bus module.
func NewModule(svc *Service) *Module {
	return &Module{svc: svc}
}

// CommandHandlers returns the command handler map.
func (m *Module) CommandHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(CreateDataset{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.Create(ctx, msg.(CreateDataset))
		},
		reflect.TypeOf(UpdateDataset{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.Update(ctx, msg.(UpdateDataset))
		},
		reflect.TypeOf(DeleteDataset{}): func(ctx context.Context, msg any) (any, error) {
			return nil, m.svc.Delete(ctx, msg.(DeleteDataset).ID)
		},
	}
}

// QueryHandlers returns the query handler map.
func (m *Module) QueryHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(GetAllDatasets{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetAll(ctx, msg.(GetAllDatasets))
		},
		reflect.TypeOf(GetDatasetByID{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetByID(ctx, msg.(GetDatasetByID))
		},
		reflect.TypeOf(GetDatasetFilters{}): func(ctx context.Context, _ any) (any, error) {
			return m.svc.GetFilters(ctx)
		},
	}
}
