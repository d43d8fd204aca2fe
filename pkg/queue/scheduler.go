package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/taskd/pkg/async"
	"github.com/dmitrymomot/taskd/pkg/logger"
)

// TaskQueue is the container the scheduler drains.
// Pop must return immediately with false when there is nothing to dispatch.
type TaskQueue interface {
	Push(task *Task)
	Pop() (*Task, bool)
}

// Stats is a snapshot of scheduler counters.
type Stats struct {
	FastDispatched uint64
	SlowDispatched uint64
	Succeeded      uint64
	Retried        uint64
	Exhausted      uint64
	SlowFailed     uint64
	SlowInFlight   int64
}

type counters struct {
	fastDispatched atomic.Uint64
	slowDispatched atomic.Uint64
	succeeded      atomic.Uint64
	retried        atomic.Uint64
	exhausted      atomic.Uint64
	slowFailed     atomic.Uint64
	slowInFlight   atomic.Int64
}

// Scheduler pops tasks from a TaskQueue and routes them by priority.
//
// Tasks above the slow threshold run in their own goroutine and are never
// retried. All other tasks run inside the loop; a failed fast task is pushed
// back with an incremented RetryCount until the retry ceiling is reached.
type Scheduler struct {
	queue  TaskQueue
	store  Store
	policy RetryPolicy

	fastHandler     FastHandler
	slowHandler     SlowHandler
	slowThreshold   Priority
	idleInterval    time.Duration
	fastTimeout     time.Duration
	shutdownTimeout time.Duration

	slowSem      *semaphore.Weighted
	maxSlowTasks int
	slowWG       sync.WaitGroup

	logger *slog.Logger
	stats  counters

	// State management
	mu         sync.Mutex
	cancel     context.CancelFunc
	taskCtx    context.Context
	taskCancel context.CancelFunc
	loopDone   chan struct{}
}

// NewScheduler creates a scheduler draining q and persisting through store.
func NewScheduler(q TaskQueue, store Store, opts ...SchedulerOption) (*Scheduler, error) {
	if q == nil {
		return nil, ErrQueueNil
	}
	if store == nil {
		return nil, ErrStoreNil
	}

	options := defaultSchedulerOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Scheduler{
		queue:           q,
		store:           store,
		policy:          RetryPolicy{MaxRetries: options.maxRetries},
		fastHandler:     options.fastHandler,
		slowHandler:     options.slowHandler,
		slowThreshold:   options.slowThreshold,
		idleInterval:    options.idleInterval,
		fastTimeout:     options.fastTimeout,
		shutdownTimeout: options.shutdownTimeout,
		slowSem:         semaphore.NewWeighted(int64(options.maxSlowTasks)),
		maxSlowTasks:    options.maxSlowTasks,
		logger:          options.logger.With(logger.Component("scheduler")),
	}, nil
}

// Start runs the dispatch loop in the background until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrSchedulerAlreadyStarted
	}

	loopCtx, cancel := context.WithCancel(ctx)
	// Handlers are detached from the loop so a shutdown lets in-flight work finish.
	s.taskCtx, s.taskCancel = context.WithCancel(context.Background())
	s.cancel = cancel
	s.loopDone = make(chan struct{})

	go s.run(loopCtx, s.loopDone)

	s.logger.Info("scheduler started",
		slog.Int("slow_threshold", int(s.slowThreshold)),
		logger.MaxRetries(int(s.policy.MaxRetries)),
		slog.Int("max_concurrent_slow", s.maxSlowTasks),
		slog.Duration("idle_interval", s.idleInterval),
		slog.Duration("fast_timeout", s.fastTimeout))

	return nil
}

// Stop cancels the loop, waits for the current iteration to finish and then
// for in-flight slow tasks, up to the shutdown timeout. Slow tasks still
// running after the timeout get their context cancelled and ErrShutdownTimeout
// is returned.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	cancel, taskCancel, loopDone := s.cancel, s.taskCancel, s.loopDone
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	<-loopDone

	s.logger.Info("scheduler stopping, waiting for slow tasks",
		slog.Int64("in_flight", s.stats.slowInFlight.Load()))

	done := make(chan struct{})
	go func() {
		s.slowWG.Wait()
		close(done)
	}()

	timer := time.NewTimer(s.shutdownTimeout)
	defer timer.Stop()

	select {
	case <-done:
		taskCancel()
		s.logger.Info("scheduler stopped")
		return nil
	case <-timer.C:
		taskCancel()
		s.logger.Warn("scheduler stopped before slow tasks finished",
			slog.Int64("in_flight", s.stats.slowInFlight.Load()),
			logger.Duration(s.shutdownTimeout))
		return ErrShutdownTimeout
	}
}

// Run starts the scheduler and returns a function suitable for errgroup
func (s *Scheduler) Run(ctx context.Context) func() error {
	return func() error {
		if err := s.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()

		return s.Stop()
	}
}

// Stats returns a snapshot of the scheduler counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		FastDispatched: s.stats.fastDispatched.Load(),
		SlowDispatched: s.stats.slowDispatched.Load(),
		Succeeded:      s.stats.succeeded.Load(),
		Retried:        s.stats.retried.Load(),
		Exhausted:      s.stats.exhausted.Load(),
		SlowFailed:     s.stats.slowFailed.Load(),
		SlowInFlight:   s.stats.slowInFlight.Load(),
	}
}

// run is the dispatch loop
func (s *Scheduler) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	idle := time.NewTimer(s.idleInterval)
	idle.Stop()
	defer idle.Stop()

	for {
		if ctx.Err() != nil {
			return
		}

		task, ok := s.queue.Pop()
		if !ok {
			idle.Reset(s.idleInterval)
			select {
			case <-ctx.Done():
				return
			case <-idle.C:
			}
			continue
		}

		s.dispatch(task)
	}
}

func (s *Scheduler) dispatch(task *Task) {
	if task.Priority > s.slowThreshold {
		s.dispatchSlow(task)
		return
	}
	s.runFast(task)
}

// dispatchSlow hands a copy of task to a goroutine and returns at once.
// The goroutine waits for a semaphore slot, so the loop never blocks on the bound.
func (s *Scheduler) dispatchSlow(task *Task) {
	s.stats.slowDispatched.Add(1)
	s.stats.slowInFlight.Add(1)
	s.slowWG.Add(1)

	t := *task
	ctx := s.taskCtx

	s.logger.Debug("task dispatched",
		logger.TaskID(t.ID),
		logger.Priority(int(t.Priority)),
		logger.Path(string(PathSlow)))

	go func() {
		defer s.slowWG.Done()
		defer s.stats.slowInFlight.Add(-1)

		if err := s.slowSem.Acquire(ctx, 1); err != nil {
			s.slowFailure(t, fmt.Errorf("waiting for slow task slot: %w", err), 0)
			return
		}
		defer s.slowSem.Release(1)

		start := time.Now()
		if err := s.callSlow(ctx, t); err != nil {
			s.slowFailure(t, err, time.Since(start))
			return
		}

		s.stats.succeeded.Add(1)
		s.logger.Info("task completed",
			logger.TaskID(t.ID),
			logger.Priority(int(t.Priority)),
			logger.Path(string(PathSlow)),
			logger.Outcome(string(OutcomeSucceeded)),
			logger.Duration(time.Since(start)))
	}()
}

func (s *Scheduler) callSlow(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return s.slowHandler(ctx, task, s.store)
}

// slowFailure records a terminal slow-path failure. Slow tasks are not retried.
func (s *Scheduler) slowFailure(task Task, err error, duration time.Duration) {
	s.stats.slowFailed.Add(1)
	s.logger.Error("slow task failed",
		logger.TaskID(task.ID),
		logger.Priority(int(task.Priority)),
		logger.RetryCount(int(task.RetryCount)),
		logger.Path(string(PathSlow)),
		logger.Outcome(string(OutcomeFailed)),
		logger.Duration(duration),
		logger.Error(err))
}

// runFast executes the fast handler and waits for it at most fastTimeout.
func (s *Scheduler) runFast(task *Task) {
	s.stats.fastDispatched.Add(1)
	start := time.Now()

	ctx, cancel := context.WithTimeout(s.taskCtx, s.fastTimeout)
	defer cancel()

	future := async.Async(ctx, task, func(ctx context.Context, t *Task) (struct{}, error) {
		return struct{}{}, s.fastHandler(ctx, t, s.store)
	})

	_, err := future.AwaitContext(ctx)
	duration := time.Since(start)

	if err == nil {
		s.stats.succeeded.Add(1)
		s.logger.Info("task completed",
			logger.TaskID(task.ID),
			logger.Priority(int(task.Priority)),
			logger.RetryCount(int(task.RetryCount)),
			logger.Path(string(PathFast)),
			logger.Outcome(string(OutcomeSucceeded)),
			logger.Duration(duration))
		return
	}

	switch {
	case errors.Is(err, async.ErrPanic):
		err = fmt.Errorf("%w: %w", ErrHandlerPanic, err)
	case errors.Is(err, context.DeadlineExceeded):
		err = fmt.Errorf("%w after %s: %w", ErrHandlerTimeout, s.fastTimeout, err)
	}

	// An abandoned handler may still read the task; retry a copy.
	if !future.IsComplete() {
		t := *task
		task = &t
	}

	s.fastFailure(task, err, duration)
}

// fastFailure re-enqueues task with an incremented retry count, or drops it
// once the retry ceiling is reached.
func (s *Scheduler) fastFailure(task *Task, execErr error, duration time.Duration) {
	if s.policy.Retry(task) {
		s.stats.retried.Add(1)
		s.logger.Warn("task failed, retrying",
			logger.TaskID(task.ID),
			logger.Priority(int(task.Priority)),
			logger.RetryCount(int(task.RetryCount)),
			logger.MaxRetries(int(s.policy.MaxRetries)),
			logger.Path(string(PathFast)),
			logger.Outcome(string(OutcomeRetrying)),
			logger.Duration(duration),
			logger.Error(execErr))
		s.queue.Push(task)
		return
	}

	s.stats.exhausted.Add(1)
	s.logger.Error("task dropped",
		logger.TaskID(task.ID),
		logger.Priority(int(task.Priority)),
		logger.RetryCount(int(task.RetryCount)),
		logger.MaxRetries(int(s.policy.MaxRetries)),
		logger.Path(string(PathFast)),
		logger.Outcome(string(OutcomeExhausted)),
		logger.Duration(duration),
		logger.Error(fmt.Errorf("%w: %w", ErrRetriesExhausted, execErr)))
}
