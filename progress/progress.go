package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/rrsched/model/process"
)

// Delta represents an incremental counter change emitted by the kernel loop.
type Delta struct {
	Dispatched int
	Exhausted  int
	Yielded    int
	Faulted    int
	Preempted  int
	Removed    int
	Loaded     int
	Idle       int
}

// OutcomeDelta returns a Delta counting one dispatch ending with outcome.
func OutcomeDelta(outcome process.Outcome) Delta {
	d := Delta{Dispatched: 1}
	switch outcome {
	case process.Exhausted:
		d.Exhausted = 1
	case process.Yielded:
		d.Yielded = 1
	case process.Faulted:
		d.Faulted = 1
	case process.Preempted:
		d.Preempted = 1
	}
	return d
}

// Counters is a point-in-time view of the tracker.
type Counters struct {
	BootID    string
	StartedAt time.Time

	Dispatched int
	Exhausted  int
	Yielded    int
	Faulted    int
	Preempted  int
	Removed    int
	Loaded     int
	Idle       int
}

// Progress keeps aggregated scheduling counters. It is safe for concurrent
// use.
type Progress struct {
	mu       sync.Mutex
	counters Counters
	onChange func(Counters)
}

// New creates a tracker for the kernel run identified by bootID.
func New(bootID string, onChange func(Counters)) *Progress {
	return &Progress{
		counters: Counters{BootID: bootID, StartedAt: time.Now()},
		onChange: onChange,
	}
}

// Update applies the supplied delta. The onChange callback, if any, runs
// outside the critical section with a copy of the updated counters.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	c := &p.counters
	c.Dispatched += d.Dispatched
	c.Exhausted += d.Exhausted
	c.Yielded += d.Yielded
	c.Faulted += d.Faulted
	c.Preempted += d.Preempted
	c.Removed += d.Removed
	c.Loaded += d.Loaded
	c.Idle += d.Idle
	snapshot := *c
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every Update; nil disables it.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and
// returns both.
func WithNewTracker(ctx context.Context, bootID string, onChange func(Counters)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := New(bootID, onChange)
	return WithTracker(ctx, tr), tr
}

// WithTracker embeds an existing tracker in ctx.
func WithTracker(ctx context.Context, tr *Progress) context.Context {
	return context.WithValue(ctx, trackerKey, tr)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// GetSnapshot combines FromContext and Snapshot.
func GetSnapshot(ctx context.Context) (Counters, bool) {
	if tr, ok := FromContext(ctx); ok {
		return tr.Snapshot(), true
	}
	return Counters{}, false
}

// UpdateCtx looks up the tracker in ctx (if any) and applies d.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
