// Package slog provides logging decorators for core interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaulkr/ragcontent"
)

// Ensure LoggingJobQueue implements ragcontent.JobQueue.
var _ ragcontent.JobQueue = (*LoggingJobQueue)(nil)

// LoggingJobQueue wraps a JobQueue with logging of job enqueues.
type LoggingJobQueue struct {
	next   ragcontent.JobQueue
	logger *slog.Logger
}

// NewLoggingJobQueue creates a new LoggingJobQueue.
func NewLoggingJobQueue(next ragcontent.JobQueue, logger *slog.Logger) *LoggingJobQueue {
	return &LoggingJobQueue{next: next, logger: logger}
}

// Push delegates to the wrapped queue and logs the outcome.
func (q *LoggingJobQueue) Push(ctx context.Context, job ragcontent.UpdateJob) error {
	begin := time.Now()
	err := q.next.Push(ctx, job)
	if err != nil {
		q.logger.Error("job enqueue failed",
			"job_id", job.ID,
			"page_id", job.PageID,
			"duration", time.Since(begin),
			"error", err,
		)
		return err
	}
	q.logger.Debug("job enqueued",
		"job_id", job.ID,
		"page_id", job.PageID,
		"revision_id", job.RevisionID,
		"duration", time.Since(begin),
	)
	return nil
}
