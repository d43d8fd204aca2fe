package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/taskd/pkg/api"
	"github.com/dmitrymomot/taskd/pkg/clientip"
	"github.com/dmitrymomot/taskd/pkg/httpserver"
	"github.com/dmitrymomot/taskd/pkg/logger"
	"github.com/dmitrymomot/taskd/pkg/queue"
	"github.com/dmitrymomot/taskd/pkg/ratelimiter"
	"github.com/dmitrymomot/taskd/pkg/requestid"
	"github.com/dmitrymomot/taskd/pkg/store"
)

const storeCloseTimeout = 10 * time.Second

type app struct {
	cfg       AppConfig
	log       *slog.Logger
	backend   store.Backend
	queue     *queue.PriorityQueue
	scheduler *queue.Scheduler
	server    *httpserver.Server
	handler   http.Handler
}

// newLogger builds the process logger. When LOG_DIR is set every record is
// also appended to a daily JSON file; the returned closer releases it.
func newLogger(cfg AppConfig) (*slog.Logger, io.Closer, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}

	var closer io.Closer = io.NopCloser(nil)
	if cfg.LogDir != "" {
		file, err := logger.NewDailyFile(cfg.LogDir, "")
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, logger.WithAdditionalOutput(file))
		closer = file
	}

	return logger.New(opts...), closer, nil
}

func newApp(ctx context.Context, cfg AppConfig, log *slog.Logger) (*app, error) {
	backend, err := store.New(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}

	q := queue.NewPriorityQueue()

	enqueuer, err := queue.NewEnqueuer(q, queue.WithEnqueuerLogger(log))
	if err != nil {
		return nil, errors.Join(err, backend.Close(ctx))
	}

	scheduler, err := queue.NewScheduler(q, backend,
		append(cfg.Queue.Options(), queue.WithSchedulerLogger(log))...)
	if err != nil {
		return nil, errors.Join(err, backend.Close(ctx))
	}

	routerOpts := []api.Option{
		api.WithLogger(log),
		api.WithReadinessCheck(httpserver.Check{Name: "store", Fn: backend.Healthcheck}),
	}
	if cfg.RateLimit.Enabled() {
		limiter, err := ratelimiter.New(cfg.RateLimit)
		if err != nil {
			return nil, errors.Join(err, backend.Close(ctx))
		}
		routerOpts = append(routerOpts, api.WithRateLimiter(limiter))
	}
	handler := api.NewRouter(enqueuer, routerOpts...)

	server := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStopHook(func(l *slog.Logger, _ net.Addr) {
			l.Info("http server stopped, draining scheduler",
				slog.Int("queued", q.Len()))
		}))

	return &app{
		cfg:       cfg,
		log:       log,
		backend:   backend,
		queue:     q,
		scheduler: scheduler,
		server:    server,
		handler:   handler,
	}, nil
}

// run serves HTTP and dispatches tasks until ctx is done, then stops the
// scheduler and closes the store. Tasks still queued at that point are lost.
func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.scheduler.Run(ctx))
	g.Go(func() error {
		return a.server.Run(ctx, a.handler)
	})

	err := g.Wait()

	if n := a.queue.Len(); n > 0 {
		a.log.Warn("dropping queued tasks on shutdown", slog.Int("queued", n))
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
	defer cancel()
	if cerr := a.backend.Close(closeCtx); cerr != nil {
		a.log.Error("failed to close store", logger.Error(cerr))
		err = errors.Join(err, cerr)
	}

	stats := a.scheduler.Stats()
	a.log.Info("taskd stopped",
		slog.Uint64("succeeded", stats.Succeeded),
		slog.Uint64("retried", stats.Retried),
		slog.Uint64("exhausted", stats.Exhausted),
		slog.Uint64("slow_failed", stats.SlowFailed))

	return err
}
