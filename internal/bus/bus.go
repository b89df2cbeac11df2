// Package bus is the in-process command/query dispatcher. Each feature
// module contributes handler maps keyed by message type; the bus merges
// them at construction and routes by the concrete type of the message.
package bus

import (
	"context"
	"fmt"
	"reflect"

	"github.com/opencatalogue/catalogd/internal/domain"
)

// Handler executes one command or query message.
type Handler func(ctx context.Context, msg any) (any, error)

// Module is a feature unit contributing its handlers to the bus.
type Module interface {
	CommandHandlers() map[reflect.Type]Handler
	QueryHandlers() map[reflect.Type]Handler
}

// Bus routes messages to the handler registered for their type.
type Bus struct {
	handlers map[reflect.Type]Handler
}

// New merges the modules' handler maps. A message type registered twice
// is a wiring defect and fails construction.
func New(modules ...Module) (*Bus, error) {
	handlers := make(map[reflect.Type]Handler)

	register := func(m map[reflect.Type]Handler) error {
		for t, h := range m {
			if _, ok := handlers[t]; ok {
				return fmt.Errorf("%w: duplicate handler for %s", domain.ErrConfiguration, t)
			}
			handlers[t] = h
		}
		return nil
	}

	for _, mod := range modules {
		if err := register(mod.CommandHandlers()); err != nil {
			return nil, err
		}
		if err := register(mod.QueryHandlers()); err != nil {
			return nil, err
		}
	}

	return &Bus{handlers: handlers}, nil
}

// Execute routes msg to its handler by concrete type.
func (b *Bus) Execute(ctx context.Context, msg any) (any, error) {
	h, ok := b.handlers[reflect.TypeOf(msg)]
	if !ok {
		return nil, fmt.Errorf("%w: no handler for %T", domain.ErrConfiguration, msg)
	}
	return h(ctx, msg)
}

// Execute dispatches msg and asserts the result to R.
func Execute[R any](ctx context.Context, b *Bus, msg any) (R, error) {
	var zero R
	res, err := b.Execute(ctx, msg)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	typed, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("%w: handler for %T returned %T", domain.ErrConfiguration, msg, res)
	}
	return typed, nil
}
