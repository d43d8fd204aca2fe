package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskd/pkg/logger"
	"github.com/dmitrymomot/taskd/pkg/queue"
	"github.com/dmitrymomot/taskd/pkg/ratelimiter"
	"github.com/dmitrymomot/taskd/pkg/store"
)

func testConfig() AppConfig {
	return AppConfig{
		Name: "taskd-test",
		Env:  "development",
		Queue: queue.Config{
			IdleInterval:           10 * time.Millisecond,
			SlowThreshold:          100,
			MaxRetries:             3,
			SlowDelay:              time.Millisecond,
			FastTimeout:            time.Second,
			MaxConcurrentSlowTasks: 2,
			ShutdownTimeout:        time.Second,
		},
		Store: store.Config{Driver: store.DriverMemory},
	}
}

func TestApp_SubmitAndPersist(t *testing.T) {
	t.Parallel()

	a, err := newApp(context.Background(), testConfig(), logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, a.scheduler.Start(ctx))
	t.Cleanup(func() { _ = a.scheduler.Stop() })

	for _, body := range []string{
		`{"payload":{"kind":"fast"},"priority":10}`,
		`{"payload":{"kind":"slow"},"priority":200}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		a.handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	}

	mem, ok := a.backend.(*store.MemoryStore)
	require.True(t, ok)
	assert.Eventually(t, func() bool { return mem.Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Store.Driver = "cassandra"

	_, err := newApp(context.Background(), cfg, logger.NewNop())
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestNewLogger_DailyFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.LogDir = t.TempDir()

	log, closer, err := newLogger(cfg)
	require.NoError(t, err)

	log.Info("hello from test")
	require.NoError(t, closer.Close())

	entries, err := os.ReadDir(cfg.LogDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "app.log."))
}

func TestApp_InvalidRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit.Capacity = 5

	_, err := newApp(context.Background(), cfg, logger.NewNop())
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}
