package rrsched

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/rrsched/runtime/kernel"
	"github.com/viant/rrsched/runtime/scheduler"
	"github.com/viant/rrsched/service/messaging"
	"github.com/viant/rrsched/service/meta"
)

// Config is a serialisable representation of the kernel scheduling
// configuration. It is populated from YAML or JSON; fields missing from the
// document keep their DefaultConfig values.
type Config struct {
	Scheduler SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Kernel    KernelConfig    `json:"kernel" yaml:"kernel"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
}

// SchedulerConfig sizes the node store and sets the quantum.
type SchedulerConfig struct {
	Capacity  int           `json:"capacity" yaml:"capacity"`
	Timeslice time.Duration `json:"timeslice" yaml:"timeslice"`
}

// KernelConfig tunes the kernel loop.
type KernelConfig struct {
	IdleInterval  time.Duration `json:"idleInterval" yaml:"idleInterval"`
	RequestBuffer int           `json:"requestBuffer" yaml:"requestBuffer"`
}

// EventsConfig selects and sizes the transition event queue; a zero buffer
// disables events.
type EventsConfig struct {
	Vendor string `json:"vendor" yaml:"vendor"`
	Buffer int    `json:"buffer" yaml:"buffer"`
}

// LogConfig selects the log level (debug, info, warn, error) and format
// (text, json).
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// TracingConfig enables OpenTelemetry spans; an empty Output writes to stdout.
type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Output  string `json:"output" yaml:"output"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	loop := kernel.DefaultConfig()
	return &Config{
		Scheduler: SchedulerConfig{
			Capacity:  16,
			Timeslice: scheduler.DefaultTimeslice,
		},
		Kernel: KernelConfig{
			IdleInterval:  loop.IdleInterval,
			RequestBuffer: loop.RequestBuffer,
		},
		Events: EventsConfig{Vendor: string(messaging.VendorMemory), Buffer: 64},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Scheduler.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.capacity must be > 0"))
	}
	if c.Scheduler.Timeslice <= 0 {
		errs = append(errs, fmt.Errorf("scheduler.timeslice must be > 0"))
	}
	if c.Kernel.IdleInterval <= 0 {
		errs = append(errs, fmt.Errorf("kernel.idleInterval must be > 0"))
	}
	if c.Kernel.RequestBuffer < 0 {
		errs = append(errs, fmt.Errorf("kernel.requestBuffer must be >= 0"))
	}
	if c.Events.Buffer < 0 {
		errs = append(errs, fmt.Errorf("events.buffer must be >= 0"))
	}
	switch messaging.Vendor(c.Events.Vendor) {
	case "", messaging.VendorMemory:
	default:
		errs = append(errs, fmt.Errorf("events.vendor %q is not supported", c.Events.Vendor))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not supported", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not supported", c.Log.Format))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the configuration at URL over DefaultConfig and validates
// it. Any afs supported URL works; options are passed to the download.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	cfg := DefaultConfig()
	if err := meta.New(afs.New(), "", options...).Load(ctx, URL, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return cfg, nil
}
