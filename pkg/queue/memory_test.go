package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue_EnqueueDequeue(t *testing.T) {
	q := NewInMemoryQueue[int](4)

	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	assert.Equal(t, 2, q.Size())

	item, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, item)

	item, err = q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, item)
	assert.Equal(t, 0, q.Size())
}

func TestInMemoryQueue_EnqueueFull(t *testing.T) {
	q := NewInMemoryQueue[string](1)

	require.NoError(t, q.Enqueue("a"))
	assert.ErrorIs(t, q.Enqueue("b"), ErrQueueFull)
}

func TestInMemoryQueue_DequeueContextCancel(t *testing.T) {
	q := NewInMemoryQueue[int](1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInMemoryQueue_Clear(t *testing.T) {
	q := NewInMemoryQueue[int](4)
	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))

	q.Clear()

	assert.Equal(t, 0, q.Size())
}
