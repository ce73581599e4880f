package kernel

import (
	"context"

	"github.com/viant/rrsched/model/process"
)

// Dispatcher runs a process until it stops. The context carries a deadline of
// one timeslice; returning because that deadline expired is reported as
// process.Exhausted. A returned error means the process faulted.
type Dispatcher interface {
	Dispatch(ctx context.Context, id process.ID) (process.Outcome, error)
}

// DispatchFunc adapts a function to Dispatcher
type DispatchFunc func(ctx context.Context, id process.ID) (process.Outcome, error)

// Dispatch calls fn
func (fn DispatchFunc) Dispatch(ctx context.Context, id process.ID) (process.Outcome, error) {
	return fn(ctx, id)
}
