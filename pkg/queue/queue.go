package queue

import "context"

// Queue represents a basic bounded queue.
type Queue[T any] interface {
	// Enqueue adds an item to the end of the queue without blocking.
	Enqueue(item T) error
	// Dequeue removes and returns the item from the front of the
	// queue, blocking until an item is available or ctx is done.
	Dequeue(ctx context.Context) (T, error)
	// Size returns the number of items currently in the queue.
	Size() int
	// Clear removes all items from the queue.
	Clear()
}
