package kernel

import "time"

// Config represents kernel loop configuration
type Config struct {
	// IdleInterval bounds how long the loop parks on an empty run queue
	// before checking again.
	IdleInterval time.Duration
	// RequestBuffer is the number of lifecycle requests that can wait for
	// the next boundary without blocking the caller.
	RequestBuffer int
}

// DefaultConfig returns the default loop configuration
func DefaultConfig() Config {
	return Config{
		IdleInterval:  5 * time.Millisecond,
		RequestBuffer: 16,
	}
}
