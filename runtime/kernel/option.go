package kernel

import (
	"log/slog"

	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/service/event"
)

// Option customises a Loop
type Option func(l *Loop)

// WithConfig sets the loop configuration
func WithConfig(config Config) Option {
	return func(l *Loop) {
		l.config = config
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithProgress sets the scheduling counters tracker
func WithProgress(tracker *progress.Progress) Option {
	return func(l *Loop) {
		l.progress = tracker
	}
}

// WithPublisher sets the transition event publisher
func WithPublisher(publisher *event.Publisher[event.Transition]) Option {
	return func(l *Loop) {
		l.publisher = publisher
	}
}

// WithBootID sets the identifier of this kernel run
func WithBootID(id string) Option {
	return func(l *Loop) {
		if id != "" {
			l.bootID = id
		}
	}
}
