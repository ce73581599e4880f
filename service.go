package rrsched

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/viant/rrsched/internal/idgen"
	"github.com/viant/rrsched/internal/logging"
	"github.com/viant/rrsched/model/process"
	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/runtime/kernel"
	"github.com/viant/rrsched/runtime/scheduler"
	"github.com/viant/rrsched/service/event"
	"github.com/viant/rrsched/service/messaging"
	mmemory "github.com/viant/rrsched/service/messaging/memory"
	"github.com/viant/rrsched/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serviceName    = "rrsched"
	serviceVersion = "0.1.0"
)

// Service wires a scheduler core, its node store and the kernel loop.
type Service struct {
	config     *Config
	store      []process.Node
	core       *scheduler.Core
	loop       *kernel.Loop
	logger     *slog.Logger
	logWriter  io.Writer
	bootID     string
	queue      messaging.Queue[event.Event[event.Transition]]
	publisher  *event.Publisher[event.Transition]
	progress   *progress.Progress
	onProgress func(progress.Counters)
	exporter   sdktrace.SpanExporter
}

// New allocates a node store of config.Scheduler.Capacity, seeds it from
// table and returns a service ready to Run. A nil config means DefaultConfig.
func New(config *Config, table process.Table, dispatcher kernel.Dispatcher, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	s := &Service{config: config}
	for _, option := range options {
		option(s)
	}
	if err := s.init(table, dispatcher); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init(table process.Table, dispatcher kernel.Dispatcher) error {
	s.ensureBaseSetup()
	if s.config.Tracing.Enabled {
		var err error
		if s.exporter != nil {
			err = tracing.InitWithExporter(serviceName, serviceVersion, s.exporter)
		} else {
			err = tracing.Init(serviceName, serviceVersion, s.config.Tracing.Output)
		}
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}

	s.store = make([]process.Node, s.config.Scheduler.Capacity)
	core, err := scheduler.Build(s.store, table,
		scheduler.WithTimeslice(s.config.Scheduler.Timeslice),
		scheduler.WithLogger(s.logger))
	if err != nil {
		return err
	}
	s.core = core

	loopOptions := []kernel.Option{
		kernel.WithConfig(kernel.Config{
			IdleInterval:  s.config.Kernel.IdleInterval,
			RequestBuffer: s.config.Kernel.RequestBuffer,
		}),
		kernel.WithLogger(s.logger),
		kernel.WithBootID(s.bootID),
		kernel.WithProgress(s.progress),
	}
	if s.publisher != nil {
		loopOptions = append(loopOptions, kernel.WithPublisher(s.publisher))
	}
	s.loop, err = kernel.New(s.core, dispatcher, loopOptions...)
	return err
}

func (s *Service) ensureBaseSetup() {
	if s.logger == nil {
		if s.logWriter == nil {
			s.logWriter = os.Stderr
		}
		s.logger = logging.New(s.config.Log.Level, s.config.Log.Format, s.logWriter)
	}
	if s.bootID == "" {
		s.bootID = idgen.New()
	}
	if s.queue == nil && s.config.Events.Buffer > 0 {
		switch messaging.Vendor(s.config.Events.Vendor) {
		case "", messaging.VendorMemory:
			cfg := mmemory.DefaultConfig()
			cfg.QueueBuffer = s.config.Events.Buffer
			queue := mmemory.NewQueue[event.Event[event.Transition]](cfg)
			s.logger.Debug("events enabled", "vendor", queue.Vendor(), "buffer", cfg.QueueBuffer)
			s.queue = queue
		}
	}
	if s.queue != nil {
		s.publisher = event.NewPublisher[event.Transition](s.queue)
	}
	s.progress = progress.New(s.bootID, s.onProgress)
}

// Run drives the kernel loop until ctx ends or a fatal scheduler fault.
func (s *Service) Run(ctx context.Context) error {
	return s.loop.Run(logging.WithLogger(ctx, s.logger))
}

// Load schedules a newly loaded process occupying table slot slot.
func (s *Service) Load(ctx context.Context, slot int, id process.ID) error {
	return s.loop.Load(ctx, slot, id)
}

// Terminate removes id from the run queue at the next boundary.
func (s *Service) Terminate(ctx context.Context, id process.ID) (bool, error) {
	return s.loop.Terminate(ctx, id)
}

// Close flushes spans when tracing is enabled. Call it after Run returned.
func (s *Service) Close(ctx context.Context) error {
	if !s.config.Tracing.Enabled {
		return nil
	}
	return tracing.Shutdown(ctx)
}

// Config returns the effective configuration
func (s *Service) Config() *Config { return s.config }

// BootID returns the identifier of this kernel run
func (s *Service) BootID() string { return s.bootID }

// Scheduler returns the scheduler core. It must only be used from the loop
// goroutine or while the loop is not running.
func (s *Service) Scheduler() *scheduler.Core { return s.core }

// Loop returns the kernel loop
func (s *Service) Loop() *kernel.Loop { return s.loop }

// Events returns the transition event publisher, nil when events are disabled.
func (s *Service) Events() *event.Publisher[event.Transition] { return s.publisher }

// Progress returns a snapshot of the scheduling counters
func (s *Service) Progress() progress.Counters { return s.progress.Snapshot() }
