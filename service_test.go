package rrsched

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rrsched/internal/logging"
	"github.com/viant/rrsched/model/process"
	"github.com/viant/rrsched/progress"
	"github.com/viant/rrsched/runtime/kernel"
	"github.com/viant/rrsched/runtime/scheduler"
	"github.com/viant/rrsched/service/event"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func yielding() kernel.Dispatcher {
	return kernel.DispatchFunc(func(ctx context.Context, id process.ID) (process.Outcome, error) {
		return process.Yielded, nil
	})
}

func TestNew(t *testing.T) {
	small := DefaultConfig()
	small.Scheduler.Capacity = 2
	invalid := DefaultConfig()
	invalid.Scheduler.Timeslice = 0

	testCases := []struct {
		description string
		config      *Config
		table       process.Table
		dispatcher  kernel.Dispatcher
		expectErr   error
		expectAny   bool
		expectOrder []process.ID
	}{
		{description: "default config", table: process.Table{"A", "", "B"}, dispatcher: yielding(), expectOrder: []process.ID{"A", "B"}},
		{description: "table overflow", config: small, table: process.Table{"A", "B", "C"}, dispatcher: yielding(), expectErr: scheduler.ErrTableOverflow},
		{description: "invalid config", config: invalid, dispatcher: yielding(), expectAny: true},
		{description: "missing dispatcher", table: process.Table{"A"}, expectAny: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			srv, err := New(tc.config, tc.table, tc.dispatcher, WithLogger(logging.Discard()))
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			if tc.expectAny {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectOrder, srv.Scheduler().Order())
			assert.NotEmpty(t, srv.BootID())
			assert.NotNil(t, srv.Events())
			assert.Equal(t, 16, srv.Scheduler().Cap())
		})
	}
}

func TestService_Run(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scheduler.Capacity = 4
	cfg.Scheduler.Timeslice = time.Millisecond
	cfg.Kernel.IdleInterval = time.Millisecond
	cfg.Tracing.Enabled = true
	exporter := tracetest.NewInMemoryExporter()

	var mu sync.Mutex
	runs := map[process.ID]int{}
	dispatcher := kernel.DispatchFunc(func(ctx context.Context, id process.ID) (process.Outcome, error) {
		mu.Lock()
		runs[id]++
		n := runs[id]
		mu.Unlock()
		if id == "B" && n == 2 {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return process.Yielded, nil
	})

	var logs bytes.Buffer
	var changes int
	var changesMu sync.Mutex
	srv, err := New(cfg, process.Table{"A", "B"}, dispatcher,
		WithLogWriter(&logs),
		WithBootID("boot-42"),
		WithTracingExporter(exporter),
		WithProgressListener(func(progress.Counters) {
			changesMu.Lock()
			changes++
			changesMu.Unlock()
		}))
	require.NoError(t, err)
	assert.Equal(t, "boot-42", srv.BootID())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	runCtx, stop := context.WithCancel(ctx)
	ran := make(chan error, 1)
	go func() { ran <- srv.Run(runCtx) }()

	require.NoError(t, srv.Load(ctx, 2, "C"))
	removed, err := srv.Terminate(ctx, "A")
	require.NoError(t, err)
	assert.True(t, removed)

	var first *event.Event[event.Transition]
	for first == nil || first.Context.Type != event.TypeDispatch {
		first, err = srv.Events().Consume(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, "boot-42", first.Context.BootID)

	require.Eventually(t, func() bool {
		return srv.Progress().Exhausted >= 1
	}, 4*time.Second, time.Millisecond)
	stop()
	assert.ErrorIs(t, <-ran, context.Canceled)

	counters := srv.Progress()
	assert.Equal(t, "boot-42", counters.BootID)
	assert.Equal(t, 1, counters.Loaded)
	assert.Equal(t, 1, counters.Removed)
	assert.GreaterOrEqual(t, counters.Dispatched, 2)
	assert.NotContains(t, srv.Scheduler().Order(), process.ID("A"))
	changesMu.Lock()
	assert.Positive(t, changes)
	changesMu.Unlock()

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "kernel.dispatch")
	assert.Contains(t, names, "kernel.run")
	assert.NoError(t, srv.Close(context.Background()))
	assert.Contains(t, logs.String(), "kernel loop started")
}
