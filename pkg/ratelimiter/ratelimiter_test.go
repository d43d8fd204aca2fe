package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskd/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newLimiter(t *testing.T, clock *fakeClock, cfg ratelimiter.Config) *ratelimiter.Limiter {
	t.Helper()

	l, err := ratelimiter.New(cfg, ratelimiter.WithClock(clock.Now))
	require.NoError(t, err)
	return l
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	} {
		_, err := ratelimiter.New(cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}

	assert.False(t, ratelimiter.Config{}.Enabled())
	assert.True(t, ratelimiter.Config{Capacity: 1}.Enabled())
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newLimiter(t, clock, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})

	for i := range 3 {
		res := l.Allow("a")
		require.True(t, res.Allowed, "request %d", i)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, 2-i, res.Remaining)
	}

	denied := l.Allow("a")
	assert.False(t, denied.Allowed)
	assert.Equal(t, 0, denied.Remaining)
	assert.Equal(t, time.Second, denied.RetryAfter(clock.Now()))

	// other keys have their own bucket
	assert.True(t, l.Allow("b").Allowed)

	clock.Advance(time.Second)
	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
}

func TestLimiter_RefillCapsAtCapacity(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newLimiter(t, clock, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Second})

	l.Allow("a")
	l.Allow("a")
	clock.Advance(24 * time.Hour)

	res := l.Allow("a")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
}

func TestLimiter_AllowN(t *testing.T) {
	t.Parallel()

	l := newLimiter(t, newFakeClock(), ratelimiter.Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Second})

	_, err := l.AllowN("a", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	res, err := l.AllowN("a", 6)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 5, res.Remaining, "denied call must not take tokens")

	res, err = l.AllowN("a", 5)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestLimiter_DropsStaleBuckets(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newLimiter(t, clock, ratelimiter.Config{
		Capacity: 1, RefillRate: 1, RefillInterval: time.Second, StaleAfter: time.Minute,
	})

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Len())

	clock.Advance(2 * time.Minute)
	l.Allow("c")
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	l := newLimiter(t, newFakeClock(), ratelimiter.Config{Capacity: 100, RefillRate: 1, RefillInterval: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 500 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := newLimiter(t, clock, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 10 * time.Second})

	keyFunc := func(r *http.Request) string { return r.Header.Get("X-Client") }
	h := ratelimiter.Middleware(l, keyFunc, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(client string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
		if client != "" {
			req.Header.Set("X-Client", client)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := call("a")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	rec = call("a")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("Retry-After"))

	// requests without a key pass through untouched
	rec = call("")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestMiddleware_CustomDenied(t *testing.T) {
	t.Parallel()

	l := newLimiter(t, newFakeClock(), ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	denied := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	h := ratelimiter.Middleware(l, func(*http.Request) string { return "k" }, denied)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
