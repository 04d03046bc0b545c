package queue_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shaulkr/ragcontent"
	"github.com/shaulkr/ragcontent/mock"
	"github.com/shaulkr/ragcontent/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingPinger records pings per page and can block until released.
type countingPinger struct {
	mu      sync.Mutex
	counts  map[int64]int
	release chan struct{} // nil means never block
}

func (p *countingPinger) pinger() *mock.Pinger {
	return &mock.Pinger{
		PingFn: func(_ context.Context, pageID int64) error {
			if p.release != nil {
				<-p.release
			}
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.counts == nil {
				p.counts = make(map[int64]int)
			}
			p.counts[pageID]++
			return nil
		},
	}
}

func (p *countingPinger) count(pageID int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[pageID]
}

func TestMemory_PushAndExecute(t *testing.T) {
	t.Parallel()

	p := &countingPinger{}
	q := queue.NewMemory(p.pinger(), discardLogger())

	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "a", PageID: 1}))
	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "b", PageID: 2}))
	require.NoError(t, q.Close())

	assert.Equal(t, 1, p.count(1))
	assert.Equal(t, 1, p.count(2))
}

func TestMemory_DeduplicatesPendingJobs(t *testing.T) {
	t.Parallel()

	p := &countingPinger{release: make(chan struct{})}
	q := queue.NewMemory(p.pinger(), discardLogger())

	// Occupy the worker so subsequent jobs stay pending.
	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "blocker", PageID: 99}))

	// Back-to-back edits to the same page while its job is pending.
	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "e1", PageID: 1}))
	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "e2", PageID: 1}))
	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "e3", PageID: 1}))

	close(p.release)
	require.NoError(t, q.Close())

	assert.Equal(t, 1, p.count(1), "pending duplicates must collapse to one pingback")
	assert.Equal(t, 1, p.count(99))
}

func TestMemory_PushAfterCloseFails(t *testing.T) {
	t.Parallel()

	q := queue.NewMemory((&countingPinger{}).pinger(), discardLogger())
	require.NoError(t, q.Close())

	err := q.Push(context.Background(), ragcontent.UpdateJob{ID: "late", PageID: 1})
	require.Error(t, err)
	assert.Equal(t, ragcontent.EUNAVAILABLE, ragcontent.ErrorCode(err))
}

func TestMemory_FullQueueFails(t *testing.T) {
	t.Parallel()

	p := &countingPinger{release: make(chan struct{})}
	q := queue.NewMemory(p.pinger(), discardLogger(), queue.WithCapacity(1))

	// First job occupies the worker; second fills the buffer.
	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "a", PageID: 1}))

	// Give the worker a moment to dequeue the first job.
	require.Eventually(t, func() bool {
		return q.Push(context.Background(), ragcontent.UpdateJob{ID: "b", PageID: 2}) == nil
	}, time.Second, 5*time.Millisecond)

	err := q.Push(context.Background(), ragcontent.UpdateJob{ID: "c", PageID: 3})
	require.Error(t, err)
	assert.Equal(t, ragcontent.EUNAVAILABLE, ragcontent.ErrorCode(err))

	close(p.release)
	require.NoError(t, q.Close())
}

func TestMemory_FailedJobIsTerminal(t *testing.T) {
	t.Parallel()

	var calls int
	var mu sync.Mutex
	pinger := &mock.Pinger{
		PingFn: func(_ context.Context, _ int64) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return ragcontent.Errorf(ragcontent.EUNAVAILABLE, "pingback returned HTTP 502")
		},
	}

	q := queue.NewMemory(pinger, discardLogger())
	require.NoError(t, q.Push(context.Background(), ragcontent.UpdateJob{ID: "a", PageID: 1}))
	require.NoError(t, q.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "a failed job must not be retried")
}
