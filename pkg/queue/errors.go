package queue

import "errors"

// Common errors
var (
	// ErrQueueNil is returned when a nil task queue is provided
	ErrQueueNil = errors.New("task queue cannot be nil")

	// ErrStoreNil is returned when a nil persistence store is provided
	ErrStoreNil = errors.New("store cannot be nil")

	// ErrPayloadNil is returned when attempting to enqueue an empty payload
	ErrPayloadNil = errors.New("payload cannot be empty")

	// ErrPayloadInvalid is returned when the payload is not valid JSON
	ErrPayloadInvalid = errors.New("payload must be valid JSON")

	// ErrSchedulerAlreadyStarted is returned by Start on a running scheduler
	ErrSchedulerAlreadyStarted = errors.New("scheduler already started")

	// ErrSchedulerNotStarted is returned by Stop on a scheduler that is not running
	ErrSchedulerNotStarted = errors.New("scheduler not started")

	// ErrShutdownTimeout is returned by Stop when slow tasks outlive the shutdown timeout
	ErrShutdownTimeout = errors.New("timed out waiting for slow tasks to finish")

	// ErrHandlerTimeout is returned when a fast handler exceeds its timeout
	ErrHandlerTimeout = errors.New("fast handler timed out")

	// ErrHandlerPanic is returned when a handler panics
	ErrHandlerPanic = errors.New("panic in task handler")

	// ErrRetriesExhausted marks a fast-path task dropped after the retry ceiling
	ErrRetriesExhausted = errors.New("task retries exhausted")
)
