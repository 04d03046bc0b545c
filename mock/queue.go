package mock

import (
	"context"

	"github.com/shaulkr/ragcontent"
)

var _ ragcontent.JobQueue = (*JobQueue)(nil)

// JobQueue is a mock implementation of ragcontent.JobQueue.
type JobQueue struct {
	PushFn func(ctx context.Context, job ragcontent.UpdateJob) error
}

func (q *JobQueue) Push(ctx context.Context, job ragcontent.UpdateJob) error {
	return q.PushFn(ctx, job)
}
