package queue_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskd/pkg/logger"
	"github.com/dmitrymomot/taskd/pkg/queue"
)

func TestNewEnqueuer(t *testing.T) {
	t.Parallel()

	e, err := queue.NewEnqueuer(nil)
	assert.ErrorIs(t, err, queue.ErrQueueNil)
	assert.Nil(t, e)
}

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()

	t.Run("pushes a fresh task", func(t *testing.T) {
		t.Parallel()

		q := queue.NewPriorityQueue()
		e, err := queue.NewEnqueuer(q, queue.WithEnqueuerLogger(logger.NewNop()))
		require.NoError(t, err)

		task, err := e.Enqueue(context.Background(), json.RawMessage(`{"user":42}`), 150)
		require.NoError(t, err)
		require.NotNil(t, task)

		assert.NotEmpty(t, task.ID)
		assert.Equal(t, uint8(0), task.RetryCount)
		assert.Equal(t, queue.Priority(150), task.Priority)
		assert.False(t, task.CreatedAt.IsZero())

		popped, ok := q.Pop()
		require.True(t, ok)
		assert.Same(t, task, popped)
	})

	t.Run("distinct ids", func(t *testing.T) {
		t.Parallel()

		e, err := queue.NewEnqueuer(queue.NewPriorityQueue())
		require.NoError(t, err)

		a, err := e.Enqueue(context.Background(), json.RawMessage(`1`), 1)
		require.NoError(t, err)
		b, err := e.Enqueue(context.Background(), json.RawMessage(`1`), 1)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("null payload is accepted", func(t *testing.T) {
		t.Parallel()

		e, err := queue.NewEnqueuer(queue.NewPriorityQueue())
		require.NoError(t, err)

		_, err = e.Enqueue(context.Background(), json.RawMessage(`null`), 0)
		assert.NoError(t, err)
	})

	t.Run("rejects bad payloads", func(t *testing.T) {
		t.Parallel()

		q := queue.NewPriorityQueue()
		e, err := queue.NewEnqueuer(q)
		require.NoError(t, err)

		_, err = e.Enqueue(context.Background(), nil, 10)
		assert.ErrorIs(t, err, queue.ErrPayloadNil)

		_, err = e.Enqueue(context.Background(), json.RawMessage{}, 10)
		assert.ErrorIs(t, err, queue.ErrPayloadNil)

		_, err = e.Enqueue(context.Background(), json.RawMessage(`{"a":`), 10)
		assert.ErrorIs(t, err, queue.ErrPayloadInvalid)

		assert.Equal(t, 0, q.Len())
	})
}
