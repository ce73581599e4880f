package scheduler

import (
	"log/slog"
	"time"
)

// DefaultTimeslice is the quantum used when none is configured.
const DefaultTimeslice = 10 * time.Millisecond

// Option customises a Core
type Option func(c *Core)

// WithTimeslice sets the global timeslice quantum; non-positive values keep
// the default.
func WithTimeslice(d time.Duration) Option {
	return func(c *Core) {
		if d > 0 {
			c.timeslice = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Core) {
		if logger != nil {
			c.logger = logger
		}
	}
}
