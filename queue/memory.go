// Package queue provides an in-process job queue with per-page
// deduplication, executing update jobs through a Pinger.
package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shaulkr/ragcontent"
)

// DefaultCapacity is the default buffered job capacity.
const DefaultCapacity = 128

// DefaultJobTimeout bounds a single pingback attempt.
const DefaultJobTimeout = 30 * time.Second

// Ensure Memory implements ragcontent.JobQueue at compile time.
var _ ragcontent.JobQueue = (*Memory)(nil)

// Memory is an in-process job queue. A job pushed while another job with
// the same dedup key is pending is absorbed, so back-to-back edits to one
// page yield a single pingback. Execution is best-effort: a failed pingback
// is logged and the job dies without retry.
type Memory struct {
	pinger  ragcontent.Pinger
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]bool
	closed  bool

	jobs chan ragcontent.UpdateJob
	done chan struct{}
}

// Option configures a Memory queue.
type Option func(*Memory)

// WithCapacity sets the buffered job capacity.
func WithCapacity(n int) Option {
	return func(q *Memory) {
		if n > 0 {
			q.jobs = make(chan ragcontent.UpdateJob, n)
		}
	}
}

// WithJobTimeout bounds each pingback attempt.
func WithJobTimeout(d time.Duration) Option {
	return func(q *Memory) {
		q.timeout = d
	}
}

// NewMemory creates a Memory queue and starts its worker goroutine.
// Call Close to stop the worker and drain remaining jobs.
func NewMemory(pinger ragcontent.Pinger, logger *slog.Logger, opts ...Option) *Memory {
	q := &Memory{
		pinger:  pinger,
		logger:  logger,
		timeout: DefaultJobTimeout,
		pending: make(map[string]bool),
		jobs:    make(chan ragcontent.UpdateJob, DefaultCapacity),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	go q.run()
	return q
}

// Push enqueues a job unless one with the same dedup key is already
// pending, in which case the new job is absorbed and Push returns nil.
func (q *Memory) Push(_ context.Context, job ragcontent.UpdateJob) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ragcontent.Errorf(ragcontent.EUNAVAILABLE, "job queue is closed")
	}
	key := job.DedupKey()
	if q.pending[key] {
		q.mu.Unlock()
		q.logger.Debug("update job absorbed by pending duplicate",
			"job", job.ID,
			"page", job.PageID,
		)
		return nil
	}
	q.pending[key] = true
	q.mu.Unlock()

	select {
	case q.jobs <- job:
		return nil
	default:
		q.unmark(key)
		return ragcontent.Errorf(ragcontent.EUNAVAILABLE, "job queue is full")
	}
}

// Close stops accepting jobs, waits for the worker to drain the queue and
// returns. Safe to call more than once.
func (q *Memory) Close() error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	<-q.done
	return nil
}

func (q *Memory) run() {
	defer close(q.done)
	for job := range q.jobs {
		// The job stops being pending once it starts: an edit arriving
		// mid-pingback must produce a fresh notification.
		q.unmark(job.DedupKey())
		q.execute(job)
	}
}

func (q *Memory) execute(job ragcontent.UpdateJob) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	begin := time.Now()
	err := q.pinger.Ping(ctx, job.PageID)
	if err != nil {
		q.logger.Error("pingback failed",
			"job", job.ID,
			"page", job.PageID,
			"revision", job.RevisionID,
			"duration", time.Since(begin),
			"err", err,
		)
		return
	}
	q.logger.Info("pingback delivered",
		"job", job.ID,
		"page", job.PageID,
		"revision", job.RevisionID,
		"duration", time.Since(begin),
	)
}

func (q *Memory) unmark(key string) {
	q.mu.Lock()
	delete(q.pending, key)
	q.mu.Unlock()
}
