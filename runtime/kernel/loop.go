package kernel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/viant/rrsched/internal/clock"
	"github.com/viant/rrsched/internal/idgen"
	"github.com/viant/rrsched/internal/logging"
	"github.com/viant/rrsched/model/process"
	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/runtime/scheduler"
	"github.com/viant/rrsched/service/event"
	"github.com/viant/rrsched/service/messaging"
	"github.com/viant/rrsched/tracing"
)

// Loop is the kernel main loop over a scheduler core
type Loop struct {
	config     Config
	core       *scheduler.Core
	dispatcher Dispatcher
	bootID     string
	logger     *slog.Logger
	progress   *progress.Progress
	publisher  *event.Publisher[event.Transition]

	requests chan *request
	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	idle     bool
}

// New creates a loop driving core with dispatcher
func New(core *scheduler.Core, dispatcher Dispatcher, opts ...Option) (*Loop, error) {
	if core == nil {
		return nil, fmt.Errorf("kernel: scheduler core is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("kernel: dispatcher is required")
	}
	l := &Loop{
		config:     DefaultConfig(),
		core:       core,
		dispatcher: dispatcher,
		logger:     slog.Default(),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.config.IdleInterval <= 0 {
		return nil, fmt.Errorf("kernel: idle interval must be positive, got %v", l.config.IdleInterval)
	}
	if l.config.RequestBuffer < 0 {
		return nil, fmt.Errorf("kernel: request buffer must not be negative, got %d", l.config.RequestBuffer)
	}
	if l.bootID == "" {
		l.bootID = idgen.New()
	}
	if l.progress == nil {
		l.progress = progress.New(l.bootID, nil)
	}
	l.requests = make(chan *request, l.config.RequestBuffer)
	return l, nil
}

// BootID returns the identifier of this kernel run
func (l *Loop) BootID() string { return l.bootID }

// Progress returns the scheduling counters tracker
func (l *Loop) Progress() *progress.Progress { return l.progress }

// Wake interrupts an idle park. It never blocks.
func (l *Loop) Wake() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes the loop until ctx ends or the scheduler reports a fatal
// fault. It returns ctx.Err() on cancellation and the fault otherwise.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer l.stopOnce.Do(func() { close(l.done) })
	ctx = logging.WithLogger(ctx, l.logger)
	ctx = progress.WithTracker(ctx, l.progress)
	ctx, span := tracing.StartSpan(ctx, "kernel.run")
	span.WithAttributes(map[string]string{"boot.id": l.bootID})
	defer func() {
		if errors.Is(err, context.Canceled) {
			tracing.EndSpan(span, nil)
			return
		}
		tracing.EndSpan(span, err)
	}()

	l.logger.Info("kernel loop started", "bootID", l.bootID, "queued", l.core.Len(), "timeslice", l.core.Timeslice())
	for {
		if err = l.Step(ctx); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				l.logger.Info("kernel loop stopped", "bootID", l.bootID)
			} else {
				l.logger.Error("kernel loop aborted", "bootID", l.bootID, "error", err)
			}
			return err
		}
	}
}

// Step runs a single iteration: apply pending lifecycle requests, then either
// dispatch the next process or park while the run queue is empty.
func (l *Loop) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.drain(ctx); err != nil {
		return err
	}
	decision := l.core.Decide()
	if decision.Idle() {
		return l.park(ctx)
	}
	l.idle = false
	return l.dispatch(ctx, decision)
}

func (l *Loop) park(ctx context.Context) error {
	if !l.idle {
		l.idle = true
		l.logger.Debug("kernel idle", "bootID", l.bootID)
		l.publish(ctx, event.TypeIdle, process.None, event.Transition{})
	}
	l.progress.Update(progress.Delta{Idle: 1})

	timer := time.NewTimer(l.config.IdleInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case req := <-l.requests:
		return l.apply(ctx, req)
	case <-l.wake:
		return nil
	case <-timer.C:
		return nil
	}
}

func (l *Loop) dispatch(ctx context.Context, decision scheduler.Decision) error {
	spanCtx, span := tracing.StartSpan(ctx, "kernel.dispatch")
	span.WithAttributes(map[string]string{
		"process.id": string(decision.ID),
		"timeslice":  decision.Timeslice.String(),
	})

	sliceCtx, cancel := context.WithTimeout(spanCtx, decision.Timeslice)
	started := clock.Now()
	outcome, err := l.dispatcher.Dispatch(sliceCtx, decision.ID)
	elapsed := clock.Since(started)
	expired := errors.Is(sliceCtx.Err(), context.DeadlineExceeded)
	cancel()

	outcome = l.resolve(ctx, decision.ID, outcome, err, expired)
	if nerr := l.core.NotifyElapsed(decision.ID, outcome, elapsed); nerr != nil {
		tracing.EndSpan(span, nerr)
		return nerr
	}
	span.WithAttributes(map[string]string{
		"outcome": string(outcome),
		"elapsed": elapsed.String(),
	})
	tracing.EndSpan(span, err)

	l.progress.Update(progress.OutcomeDelta(outcome))
	next, _ := l.core.Next()
	l.logger.Debug("dispatched", "pid", decision.ID, "outcome", outcome, "elapsed", elapsed, "next", next)
	l.publish(ctx, event.TypeDispatch, decision.ID, event.Transition{
		Outcome: outcome,
		Elapsed: elapsed,
		Queued:  l.core.Len(),
		Next:    next,
	})
	return nil
}

// resolve maps what the dispatcher returned onto a scheduling outcome.
func (l *Loop) resolve(ctx context.Context, id process.ID, outcome process.Outcome, err error, expired bool) process.Outcome {
	switch {
	case ctx.Err() != nil:
		// shutdown interrupted the process; it keeps the head
		return process.Preempted
	case expired && (err == nil || errors.Is(err, context.DeadlineExceeded)):
		if outcome == process.Yielded || outcome == process.Faulted {
			return outcome
		}
		return process.Exhausted
	case err != nil:
		l.logger.Warn("process faulted", "pid", id, "error", err)
		return process.Faulted
	case !outcome.IsValid():
		l.logger.Warn("process faulted", "pid", id, "error", fmt.Sprintf("unsupported outcome %q", outcome))
		return process.Faulted
	}
	return outcome
}

func (l *Loop) apply(ctx context.Context, req *request) error {
	var r reply
	switch req.kind {
	case event.TypeLoad:
		r.err = l.core.Add(req.slot, req.id)
		if r.err == nil {
			l.progress.Update(progress.Delta{Loaded: 1})
			l.logger.Debug("process loaded", "pid", req.id, "slot", req.slot)
			l.publish(ctx, event.TypeLoad, req.id, event.Transition{Queued: l.core.Len(), Next: l.head()})
		}
	case event.TypeTerminate:
		r.removed = l.core.Remove(req.id)
		if r.removed {
			l.progress.Update(progress.Delta{Removed: 1})
			l.logger.Debug("process terminated", "pid", req.id)
			l.publish(ctx, event.TypeTerminate, req.id, event.Transition{Queued: l.core.Len(), Next: l.head()})
		}
	default:
		r.err = fmt.Errorf("kernel: unsupported request %q", req.kind)
	}
	req.reply <- r
	if r.err != nil && scheduler.IsFatal(r.err) {
		return r.err
	}
	return nil
}

func (l *Loop) head() process.ID {
	id, _ := l.core.Next()
	return id
}

func (l *Loop) publish(ctx context.Context, kind event.Type, id process.ID, data event.Transition) {
	if l.publisher == nil {
		return
	}
	evt := event.NewEvent(&event.Context{BootID: l.bootID, ProcessID: id, Type: kind}, data)
	if err := l.publisher.Publish(ctx, evt); err != nil {
		if errors.Is(err, messaging.ErrQueueFull) {
			l.logger.Debug("event dropped", "type", kind, "pid", id)
			return
		}
		l.logger.Warn("event publish failed", "type", kind, "pid", id, "error", err)
	}
}
