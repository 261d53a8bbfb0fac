package queue

import (
	"context"
	"fmt"
)

// ErrQueueFull is returned by Enqueue when the queue is at capacity.
var ErrQueueFull = fmt.Errorf("queue is full")

// InMemoryQueue implements a bounded in-memory queue backed by a
// buffered channel.
type InMemoryQueue[T any] struct {
	ch chan T
}

// NewInMemoryQueue creates a new queue with the given capacity.
func NewInMemoryQueue[T any](capacity int) *InMemoryQueue[T] {
	return &InMemoryQueue[T]{
		ch: make(chan T, capacity),
	}
}

func (q *InMemoryQueue[T]) Enqueue(item T) error {
	select {
	case q.ch <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *InMemoryQueue[T]) Dequeue(ctx context.Context) (T, error) {
	select {
	case item := <-q.ch:
		return item, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (q *InMemoryQueue[T]) Size() int {
	return len(q.ch)
}

func (q *InMemoryQueue[T]) Clear() {
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}
