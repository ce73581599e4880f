package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/rrsched/service/messaging"
)

type testPayload struct {
	PID   string
	Count int
}

func TestQueue(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()

	payload := testPayload{PID: "A", Count: 1}
	require.NoError(t, queue.Publish(ctx, &payload))
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, message.ID())
	assert.Equal(t, payload, *message.T())
	assert.Equal(t, 0, queue.Size())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
}

func TestQueue_Full(t *testing.T) {
	queue := NewQueue[testPayload](Config{QueueBuffer: 1})
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &testPayload{PID: "A"}))
	assert.ErrorIs(t, queue.Publish(ctx, &testPayload{PID: "B"}), messaging.ErrQueueFull)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, queue.Publish(cancelled, &testPayload{PID: "C"}), context.Canceled)
	assert.Equal(t, 1, queue.Size())
	assert.Equal(t, messaging.VendorMemory, queue.Vendor())
}

func TestQueue_Nack(t *testing.T) {
	queue := NewQueue[testPayload](Config{QueueBuffer: 2, MaxRetries: 1, DeadLetter: true})
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &testPayload{PID: "A"}))

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Nack(assert.AnError))
	assert.Equal(t, 1, queue.Size())

	retried, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, message.ID(), retried.ID())
	require.NoError(t, retried.Nack(assert.AnError))
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
