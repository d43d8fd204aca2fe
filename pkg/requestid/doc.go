// Package requestid attaches a correlation id to every HTTP request.
//
// The middleware reuses a client-supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-]; otherwise it generates a UUIDv4. The id is
// stored in the request context, echoed in the response header and, through
// LoggerExtractor, added to every log record written with that context.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
