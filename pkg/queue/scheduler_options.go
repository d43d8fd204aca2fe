package queue

import (
	"log/slog"
	"time"
)

// Scheduler defaults
const (
	DefaultIdleInterval           = time.Second
	DefaultFastTimeout            = 30 * time.Second
	DefaultMaxConcurrentSlowTasks = 16
	DefaultShutdownTimeout        = 30 * time.Second
)

// SchedulerOption is a functional option for configuring a scheduler
type SchedulerOption func(*schedulerOptions)

type schedulerOptions struct {
	idleInterval    time.Duration
	slowThreshold   Priority
	maxRetries      uint8
	fastTimeout     time.Duration
	maxSlowTasks    int
	shutdownTimeout time.Duration
	fastHandler     FastHandler
	slowHandler     SlowHandler
	logger          *slog.Logger
}

func defaultSchedulerOptions() *schedulerOptions {
	return &schedulerOptions{
		idleInterval:    DefaultIdleInterval,
		slowThreshold:   DefaultSlowThreshold,
		maxRetries:      DefaultMaxRetries,
		fastTimeout:     DefaultFastTimeout,
		maxSlowTasks:    DefaultMaxConcurrentSlowTasks,
		shutdownTimeout: DefaultShutdownTimeout,
		fastHandler:     HandleFast,
		slowHandler:     NewSlowHandler(DefaultSlowDelay),
		logger:          slog.Default(),
	}
}

// WithIdleInterval sets how long the loop waits after finding the queue empty
func WithIdleInterval(d time.Duration) SchedulerOption {
	return func(o *schedulerOptions) {
		if d > 0 {
			o.idleInterval = d
		}
	}
}

// WithSlowThreshold sets the priority above which tasks take the slow path.
// A task with priority equal to the threshold stays on the fast path.
func WithSlowThreshold(p Priority) SchedulerOption {
	return func(o *schedulerOptions) {
		o.slowThreshold = p
	}
}

// WithMaxRetries sets the retry ceiling for fast-path tasks.
// Zero disables retries: the first failure exhausts the task.
func WithMaxRetries(n uint8) SchedulerOption {
	return func(o *schedulerOptions) {
		o.maxRetries = n
	}
}

// WithFastTimeout bounds a single fast handler invocation
func WithFastTimeout(d time.Duration) SchedulerOption {
	return func(o *schedulerOptions) {
		if d > 0 {
			o.fastTimeout = d
		}
	}
}

// WithMaxConcurrentSlowTasks caps the number of slow handlers executing at once
func WithMaxConcurrentSlowTasks(n int) SchedulerOption {
	return func(o *schedulerOptions) {
		if n > 0 {
			o.maxSlowTasks = n
		}
	}
}

// WithShutdownTimeout bounds how long Stop waits for in-flight slow tasks
func WithShutdownTimeout(d time.Duration) SchedulerOption {
	return func(o *schedulerOptions) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// WithFastHandler replaces the fast-path strategy
func WithFastHandler(h FastHandler) SchedulerOption {
	return func(o *schedulerOptions) {
		if h != nil {
			o.fastHandler = h
		}
	}
}

// WithSlowHandler replaces the slow-path strategy
func WithSlowHandler(h SlowHandler) SchedulerOption {
	return func(o *schedulerOptions) {
		if h != nil {
			o.slowHandler = h
		}
	}
}

// WithSchedulerLogger sets the logger for the scheduler
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(o *schedulerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
