package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultSlowDelay models the long-running external operation performed by
// the default slow handler before the payload is stored.
const DefaultSlowDelay = 5 * time.Second

type (
	// Store persists a task payload. Any returned error is treated as a
	// recoverable failure on the fast path and as terminal on the slow path.
	Store interface {
		Store(ctx context.Context, payload json.RawMessage) error
	}

	// StoreFunc adapts a function to the Store interface.
	StoreFunc func(ctx context.Context, payload json.RawMessage) error

	// FastHandler handles a task synchronously inside the dispatch loop.
	// The task is passed by reference: the scheduler keeps ownership of the
	// retry bookkeeping. Handlers must not retry on their own.
	FastHandler func(ctx context.Context, task *Task, store Store) error

	// SlowHandler handles a task in its own goroutine.
	// The task is passed by value. Handlers must not retry on their own.
	SlowHandler func(ctx context.Context, task Task, store Store) error
)

func (f StoreFunc) Store(ctx context.Context, payload json.RawMessage) error {
	return f(ctx, payload)
}

// HandleFast is the default fast-path strategy: it stores the payload.
func HandleFast(ctx context.Context, task *Task, store Store) error {
	if err := store.Store(ctx, task.Payload); err != nil {
		return fmt.Errorf("failed to store payload of task %s: %w", task.ID, err)
	}
	return nil
}

// NewSlowHandler returns the default slow-path strategy: it waits for delay
// and then stores the payload. The wait honours ctx cancellation.
func NewSlowHandler(delay time.Duration) SlowHandler {
	return func(ctx context.Context, task Task, store Store) error {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return fmt.Errorf("slow task %s interrupted: %w", task.ID, ctx.Err())
			case <-timer.C:
			}
		}

		if err := store.Store(ctx, task.Payload); err != nil {
			return fmt.Errorf("failed to store payload of slow task %s: %w", task.ID, err)
		}
		return nil
	}
}
