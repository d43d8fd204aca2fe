// Package ratelimiter provides an in-memory token bucket limiter and an HTTP
// middleware built on it.
//
// Every key owns a bucket of Capacity tokens refilled by RefillRate tokens per
// RefillInterval. A request takes one token; when the bucket is empty the
// request is denied without taking anything. Buckets idle for StaleAfter are
// dropped.
//
//	limiter, err := ratelimiter.New(ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.With(ratelimiter.Middleware(limiter, func(r *http.Request) string {
//		return clientip.FromContext(r.Context())
//	}, nil)).Post("/tasks", create)
//
// State lives in process memory; replicas limit independently.
package ratelimiter
