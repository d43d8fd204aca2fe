// Package async runs a computation in its own goroutine and lets the caller
// wait for it with or without a deadline.
//
// Async starts the supplied function and immediately returns a *Future. The
// caller waits with Await, bounds the wait with AwaitContext, or polls with
// IsComplete. A panic inside the function is recovered and surfaces as an
// error wrapping ErrPanic, so a misbehaving callback never takes the caller's
// goroutine down with it.
//
// AwaitContext is what lets the task scheduler put a hard deadline on a
// fast-path handler: even a handler that ignores its context cannot hold the
// dispatch loop longer than the deadline.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
//	defer cancel()
//
//	future := async.Async(ctx, task, func(ctx context.Context, t *queue.Task) (struct{}, error) {
//	    return struct{}{}, handle(ctx, t)
//	})
//	if _, err := future.AwaitContext(ctx); err != nil {
//	    // context.DeadlineExceeded, ErrPanic or the handler error
//	}
package async
