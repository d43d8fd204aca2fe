package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dmitrymomot/taskd/pkg/logger"
)

// Pusher accepts new tasks. *PriorityQueue satisfies it.
type Pusher interface {
	Push(task *Task)
}

// Enqueuer is the submission boundary: it turns a payload and a priority
// into a Task and hands it to the queue.
type Enqueuer struct {
	queue  Pusher
	logger *slog.Logger
}

// EnqueuerOption is a functional option for configuring an enqueuer
type EnqueuerOption func(*Enqueuer)

// WithEnqueuerLogger sets the logger for the enqueuer
func WithEnqueuerLogger(l *slog.Logger) EnqueuerOption {
	return func(e *Enqueuer) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEnqueuer creates a new Enqueuer
func NewEnqueuer(q Pusher, opts ...EnqueuerOption) (*Enqueuer, error) {
	if q == nil {
		return nil, ErrQueueNil
	}

	e := &Enqueuer{
		queue:  q,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("enqueuer"))

	return e, nil
}

// Enqueue creates a task with a fresh ID and RetryCount 0 and pushes it.
// The payload must be non-empty valid JSON; JSON null is accepted.
// Submission is fire-and-forget: the returned task is only for correlation.
func (e *Enqueuer) Enqueue(ctx context.Context, payload json.RawMessage, priority Priority) (*Task, error) {
	if len(payload) == 0 {
		return nil, ErrPayloadNil
	}
	if !json.Valid(payload) {
		return nil, ErrPayloadInvalid
	}

	task := NewTask(payload, priority)
	e.queue.Push(task)

	e.logger.DebugContext(ctx, "task enqueued",
		logger.TaskID(task.ID),
		logger.Priority(int(task.Priority)))

	return task, nil
}
