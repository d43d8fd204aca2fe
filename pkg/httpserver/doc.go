// Package httpserver runs an http.Handler with graceful shutdown, configurable
// timeouts and slog logging.
//
// Run binds the listener first, so bind errors are returned immediately and
// wrapped with ErrStart, then serves until the context is cancelled or the
// process receives SIGINT or SIGTERM. Shutdown drains in-flight requests for
// at most the shutdown timeout and is safe to call more than once.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	g.Go(func() error { return srv.Run(ctx, router) })
//
// HealthCheckHandler serves liveness (no checks) and readiness (named checks)
// probes.
package httpserver
