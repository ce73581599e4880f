package rrsched

import (
	"io"
	"log/slog"

	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/service/event"
	"github.com/viant/rrsched/service/messaging"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service
type Option func(s *Service)

// WithLogger sets the logger, overriding the log section of the config.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLogWriter sets where the configured logger writes; defaults to os.Stderr.
func WithLogWriter(w io.Writer) Option {
	return func(s *Service) {
		s.logWriter = w
	}
}

// WithBootID sets the identifier of this kernel run
func WithBootID(id string) Option {
	return func(s *Service) {
		s.bootID = id
	}
}

// WithQueue sets the transition event queue, overriding events.buffer.
func WithQueue(queue messaging.Queue[event.Event[event.Transition]]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithProgressListener registers a callback invoked on every counter change.
func WithProgressListener(fn func(progress.Counters)) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// WithTracingExporter sends spans to exporter when tracing is enabled,
// instead of the stdout exporter.
func WithTracingExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.exporter = exporter
	}
}
