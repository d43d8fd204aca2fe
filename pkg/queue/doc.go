// Package queue is the in-memory core of taskd: a priority queue of tasks,
// a scheduler that drains it, and the retry policy applied to failures.
//
// The package is organised around three components:
//
//   - PriorityQueue: a mutex-guarded binary max-heap keyed by Priority
//   - Enqueuer: builds a Task from a JSON payload and pushes it
//   - Scheduler: pops tasks and routes them to the fast or the slow path
//
// # Routing
//
// A task whose priority is strictly greater than the slow threshold (100 by
// default, see WithSlowThreshold) runs on the slow path: in its own goroutine,
// bounded by WithMaxConcurrentSlowTasks, with failures logged and dropped.
// Every other task runs on the fast path inside the loop under
// WithFastTimeout. A failed fast task is pushed back with RetryCount+1 until
// RetryCount reaches the ceiling (3 by default), then it is dropped.
//
// Both paths persist the payload through a Store. Implementations live in
// pkg/store.
//
// # Usage
//
//	q := queue.NewPriorityQueue()
//
//	enq, err := queue.NewEnqueuer(q)
//	if err != nil {
//	    return err
//	}
//
//	sched, err := queue.NewScheduler(q, st,
//	    queue.WithMaxConcurrentSlowTasks(8),
//	    queue.WithSchedulerLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(sched.Run(ctx))
//
//	task, err := enq.Enqueue(ctx, json.RawMessage(`{"hello":"world"}`), 50)
//
// # Ordering
//
// Pop always returns a task of maximum priority. Tasks of equal priority are
// returned in no particular order; the heap is not FIFO-stable.
//
// # Errors
//
// Handler failures never reach the caller of Enqueue. They are counted in
// Stats and logged with task_id, priority, retry_count, path and outcome.
// A handler that exceeds the fast timeout fails with ErrHandlerTimeout, a
// panicking handler with ErrHandlerPanic; both are retried like any other
// fast-path failure.
package queue
