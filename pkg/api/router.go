package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/taskd/pkg/clientip"
	"github.com/dmitrymomot/taskd/pkg/httpserver"
	"github.com/dmitrymomot/taskd/pkg/logger"
	"github.com/dmitrymomot/taskd/pkg/ratelimiter"
	"github.com/dmitrymomot/taskd/pkg/requestid"
)

const (
	tasksPath = "/tasks"
	livePath  = "/health/live"
	readyPath = "/health/ready"

	// DefaultMaxBodyBytes caps the size of a task submission.
	DefaultMaxBodyBytes int64 = 1 << 20
)

// Option configures the router.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	checks   []httpserver.Check
	maxBytes int64
	limiter  *ratelimiter.Limiter
}

// WithLogger sets the logger used for request and handler logs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReadinessCheck adds a dependency probed by GET /health/ready.
func WithReadinessCheck(check httpserver.Check) Option {
	return func(o *options) {
		if check.Fn != nil {
			o.checks = append(o.checks, check)
		}
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// WithRateLimiter limits task submissions per client address.
func WithRateLimiter(l *ratelimiter.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// NewRouter builds the HTTP surface of the service:
//
//	POST /tasks          submit a task, 202 Accepted
//	GET  /health/live    liveness probe
//	GET  /health/ready   readiness probe over the registered checks
func NewRouter(enq TaskEnqueuer, opts ...Option) http.Handler {
	o := &options{
		logger:   slog.Default(),
		maxBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(o)
	}
	log := o.logger.With(logger.Component("api"))

	tasks := &tasksHandler{
		enqueuer: enq,
		maxBytes: o.maxBytes,
		logger:   log,
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", http.StatusText(http.StatusMethodNotAllowed))
	})

	r.Group(func(r chi.Router) {
		if o.limiter != nil {
			r.Use(ratelimiter.Middleware(o.limiter, clientKey, rateLimited))
		}
		r.Post(tasksPath, tasks.create)
	})
	r.Get(livePath, httpserver.HealthCheckHandler(log))
	r.Get(readyPath, httpserver.HealthCheckHandler(log, o.checks...))

	return r
}

func clientKey(r *http.Request) string {
	return clientip.FromContext(r.Context())
}

func rateLimited(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusTooManyRequests, "rate_limited", http.StatusText(http.StatusTooManyRequests))
}
