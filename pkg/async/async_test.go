package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskd/pkg/async"
)

func TestAsync_Result(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), 42, func(ctx context.Context, num int) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return fmt.Sprintf("Number: %d", num), nil
	})

	res, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, "Number: 42", res)
	assert.True(t, future.IsComplete())
}

func TestAsync_ErrorPropagation(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	future := async.Async(context.Background(), struct{}{}, func(ctx context.Context, _ struct{}) (int, error) {
		return 0, boom
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, boom)
}

func TestAsync_PreCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	future := async.Async(ctx, 1, func(ctx context.Context, n int) (int, error) {
		called = true
		return n, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestAsync_Panic(t *testing.T) {
	t.Parallel()

	future := async.Async(context.Background(), "x", func(ctx context.Context, s string) (string, error) {
		panic("handler exploded")
	})

	res, err := future.Await()
	require.Error(t, err)
	assert.ErrorIs(t, err, async.ErrPanic)
	assert.Contains(t, err.Error(), "handler exploded")
	assert.Empty(t, res)
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	t.Run("completes before deadline", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		future := async.Async(ctx, 2, func(ctx context.Context, n int) (int, error) {
			return n * 2, nil
		})

		res, err := future.AwaitContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, res)
	})

	t.Run("deadline wins over a function that ignores ctx", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		future := async.Async(ctx, 0, func(_ context.Context, n int) (int, error) {
			<-release
			return n, nil
		})

		start := time.Now()
		_, err := future.AwaitContext(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
		assert.False(t, future.IsComplete())
	})
}

func TestAsync_Concurrency(t *testing.T) {
	t.Parallel()

	const n = 100
	futures := make([]*async.Future[int], n)
	for i := range n {
		futures[i] = async.Async(context.Background(), i, func(ctx context.Context, v int) (int, error) {
			return v * v, nil
		})
	}

	var wg sync.WaitGroup
	for i, f := range futures {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.Await()
			assert.NoError(t, err)
			assert.Equal(t, i*i, res)
		}()
	}
	wg.Wait()
}
