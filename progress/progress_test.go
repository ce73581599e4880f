package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/rrsched/model/process"
)

func TestProgress_Update(t *testing.T) {
	var last Counters
	ctx, tracker := WithNewTracker(context.Background(), "boot-1", func(c Counters) { last = c })

	UpdateCtx(ctx, OutcomeDelta(process.Exhausted))
	UpdateCtx(ctx, OutcomeDelta(process.Faulted))
	UpdateCtx(ctx, Delta{Idle: 2, Loaded: 1})

	snapshot, ok := GetSnapshot(ctx)
	assert.True(t, ok)
	assert.Equal(t, "boot-1", snapshot.BootID)
	assert.Equal(t, 2, snapshot.Dispatched)
	assert.Equal(t, 1, snapshot.Exhausted)
	assert.Equal(t, 1, snapshot.Faulted)
	assert.Equal(t, 2, snapshot.Idle)
	assert.Equal(t, 1, snapshot.Loaded)
	assert.Equal(t, snapshot, last)
	assert.Equal(t, snapshot, tracker.Snapshot())
}

func TestProgress_Concurrent(t *testing.T) {
	tracker := New("boot", nil)
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.Update(OutcomeDelta(process.Yielded))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, tracker.Snapshot().Yielded)
}

func TestProgress_Nil(t *testing.T) {
	var tracker *Progress
	tracker.Update(Delta{Idle: 1})
	assert.Equal(t, Counters{}, tracker.Snapshot())
	_, ok := GetSnapshot(context.Background())
	assert.False(t, ok)
}
