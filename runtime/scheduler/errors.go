package scheduler

import (
	"github.com/cockroachdb/errors"
)

// Boot errors returned by Build.
var (
	ErrInvalidStore     = errors.New("scheduler: store has no capacity")
	ErrStoreInitialized = errors.New("scheduler: store already initialized")
	ErrTableOverflow    = errors.New("scheduler: process table exceeds store capacity")
)

// ErrInvalidID is returned when a process is added without identity.
var ErrInvalidID = errors.New("scheduler: invalid process id")

// Internal-consistency faults, always wrapped as assertion failures.
var (
	// ErrNotRunning means the kernel loop and the scheduler disagree about
	// which process ran.
	ErrNotRunning = errors.New("scheduler: process is not at the head of the run queue")

	// ErrUnknownOutcome is returned for an outcome the scheduler cannot apply.
	ErrUnknownOutcome = errors.New("scheduler: unknown outcome")

	// ErrSlotInUse is returned when adding into a slot whose node is queued.
	ErrSlotInUse = errors.New("scheduler: slot already scheduled")
)

// IsFatal reports whether err is an internal-consistency fault. Such errors
// are never retried; the kernel is expected to abort.
func IsFatal(err error) bool {
	return err != nil && errors.HasAssertionFailure(err)
}

func fault(cause error, format string, args ...interface{}) error {
	return errors.WithAssertionFailure(errors.Wrapf(cause, format, args...))
}
