package queue_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/taskd/pkg/queue"
)

func TestRetryPolicy(t *testing.T) {
	t.Parallel()

	t.Run("default ceiling allows three retries", func(t *testing.T) {
		t.Parallel()

		policy := queue.DefaultRetryPolicy()
		task := queue.NewTask(json.RawMessage(`{}`), 10)

		var counts []uint8
		for policy.Retry(task) {
			counts = append(counts, task.RetryCount)
		}

		assert.Equal(t, []uint8{1, 2, 3}, counts)
		assert.True(t, policy.Exhausted(task))
		assert.Equal(t, 0, policy.Remaining(task))
	})

	t.Run("exhausted task is not modified", func(t *testing.T) {
		t.Parallel()

		policy := queue.RetryPolicy{MaxRetries: 2}
		task := &queue.Task{RetryCount: 2}

		assert.False(t, policy.Retry(task))
		assert.Equal(t, uint8(2), task.RetryCount)
	})

	t.Run("zero ceiling never retries", func(t *testing.T) {
		t.Parallel()

		policy := queue.RetryPolicy{}
		task := &queue.Task{}

		assert.True(t, policy.Exhausted(task))
		assert.False(t, policy.Retry(task))
		assert.Equal(t, uint8(0), task.RetryCount)
	})

	t.Run("remaining", func(t *testing.T) {
		t.Parallel()

		policy := queue.DefaultRetryPolicy()
		assert.Equal(t, 3, policy.Remaining(&queue.Task{}))
		assert.Equal(t, 1, policy.Remaining(&queue.Task{RetryCount: 2}))
	})
}
