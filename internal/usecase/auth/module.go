package auth

import (
	"context"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/bus"
)

// Module exposes the auth service on the bus.
type Module struct {
	svc *Service
}

// NewModule creates the auth bus module.
func NewModule(svc *Service) *Module {
	return &Module{svc: svc}
}

// CommandHandlers returns the command handler map.
func (m *Module) CommandHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(CreatePasswordUser{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.CreatePasswordUser(ctx, msg.(CreatePasswordUser))
		},
		reflect.TypeOf(CreateDataPassUser{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.CreateDataPassUser(ctx, msg.(CreateDataPassUser))
		},
		reflect.TypeOf(LoginPasswordUser{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.Login(ctx, msg.(LoginPasswordUser))
		},
		reflect.TypeOf(ChangePassword{}): func(ctx context.Context, msg any) (any, error) {
			return nil, m.svc.ChangePassword(ctx, msg.(ChangePassword))
		},
		reflect.TypeOf(DeletePasswordUser{}): func(ctx context.Context, msg any) (any, error) {
			return nil, m.svc.DeletePasswordUser(ctx, msg.(DeletePasswordUser).AccountID)
		},
	}
}

// QueryHandlers returns the query handler map.
func (m *Module) QueryHandlers() map[reflect.Type]bus.Handler {
	return map[reflect.Type]bus.Handler{
		reflect.TypeOf(GetAccountByAPIToken{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetAccountByAPIToken(ctx, msg.(GetAccountByAPIToken).Token)
		},
		reflect.TypeOf(GetAccountByEmail{}): func(ctx context.Context, msg any) (any, error) {
			return m.svc.GetAccountByEmail(ctx, msg.(GetAccountByEmail).Email)
		},
	}
}
