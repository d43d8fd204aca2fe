// Package clientip resolves the address of the client behind an HTTP request.
//
// Resolve checks forwarding headers (X-Forwarded-For, then X-Real-IP by
// default) and falls back to the TCP peer address. Middleware stores the
// result in the request context, where FromContext, rate limiters and the
// logger extractor pick it up:
//
//	r := chi.NewRouter()
//	r.Use(clientip.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
//
// Forwarding headers are client-controlled unless a proxy rewrites them.
// Services exposed directly should call New with a header that only their
// own proxy sets.
package clientip
