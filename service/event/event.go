// Package event carries scheduling transitions from the kernel loop to
// observers over a messaging queue.
package event

import (
	"time"

	"github.com/viant/rrsched/internal/clock"
	"github.com/viant/rrsched/model/process"
)

// Type identifies a kernel loop event
type Type string

const (
	// TypeDispatch is emitted after a process ran and the outcome was applied.
	TypeDispatch Type = "dispatch"
	// TypeLoad is emitted when a newly loaded process joins the run queue.
	TypeLoad Type = "load"
	// TypeTerminate is emitted when a process is removed out of band.
	TypeTerminate Type = "terminate"
	// TypeIdle is emitted when the loop parks on an empty run queue.
	TypeIdle Type = "idle"
)

// Context identifies where an event comes from
type Context struct {
	BootID    string     `json:"bootID"`
	ProcessID process.ID `json:"processID,omitempty"`
	Type      Type       `json:"type"`
}

// Transition describes the run queue after a kernel loop boundary.
type Transition struct {
	Outcome process.Outcome `json:"outcome,omitempty"`
	Elapsed time.Duration   `json:"elapsed,omitempty"`
	Queued  int             `json:"queued"`
	Next    process.ID      `json:"next,omitempty"`
}

// Event wraps a payload with its origin
type Event[T any] struct {
	Context   *Context  `json:"context"`
	CreatedAt time.Time `json:"createdAt"`
	Data      T         `json:"data"`
}

// NewEvent creates an event stamped with the current time
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Data:      data,
	}
}
