package runqueue

import (
	"github.com/cockroachdb/errors"
)

// Invariant violations. They are always returned wrapped as assertion
// failures: a caller hitting one has a bug, not a recoverable condition.
var (
	// ErrFull is returned when a push would exceed the arena capacity.
	ErrFull = errors.New("runqueue: queue is full")

	// ErrInvalidHandle is returned for a handle outside of the arena.
	ErrInvalidHandle = errors.New("runqueue: invalid handle")

	// ErrUninitialized is returned when pushing a slot that holds no node.
	ErrUninitialized = errors.New("runqueue: uninitialized node")

	// ErrLinked is returned when pushing a node that is already queued.
	ErrLinked = errors.New("runqueue: node already linked")

	// ErrDuplicate is returned when another queued node has the same identity.
	ErrDuplicate = errors.New("runqueue: duplicate process id")
)

func fault(cause error, format string, args ...interface{}) error {
	return errors.WithAssertionFailure(errors.Wrapf(cause, format, args...))
}
