package queue

// DefaultMaxRetries is the retry ceiling for fast-path tasks.
const DefaultMaxRetries uint8 = 3

// RetryPolicy decides whether a failed fast-path task goes back to the queue.
//
// A task that failed with RetryCount below MaxRetries is retried and its
// RetryCount is incremented; otherwise it is exhausted and dropped. With the
// default ceiling a task that always fails is dispatched four times and
// re-enqueued with RetryCount 1, 2 and 3.
//
// Slow-path failures never consult the policy.
type RetryPolicy struct {
	MaxRetries uint8
}

// DefaultRetryPolicy returns the policy with the default ceiling.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: DefaultMaxRetries}
}

// Exhausted reports whether task has used up its retries.
func (p RetryPolicy) Exhausted(task *Task) bool {
	return task.RetryCount >= p.MaxRetries
}

// Retry increments the retry count of task and reports true when the task may
// be re-enqueued. An exhausted task is left untouched and false is returned.
func (p RetryPolicy) Retry(task *Task) bool {
	if p.Exhausted(task) {
		return false
	}
	task.RetryCount++
	return true
}

// Remaining returns how many more retries task may use.
func (p RetryPolicy) Remaining(task *Task) int {
	if p.Exhausted(task) {
		return 0
	}
	return int(p.MaxRetries - task.RetryCount)
}
