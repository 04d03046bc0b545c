package ragcontent

import (
	"context"
	"strconv"
)

// UpdateJob asks the asynchronous worker to ping the external indexing
// service about a changed page. Jobs are fire-and-forget: a failed pingback
// is terminal for the job instance and is not retried by this system.
type UpdateJob struct {
	// ID correlates log lines across enqueue and execution.
	ID string `json:"id"`

	PageID int64 `json:"pageId"`

	// RevisionID is the current revision at enqueue time, zero when the
	// page has none (e.g. a deletion).
	RevisionID int64 `json:"revisionId"`
}

// DedupKey identifies the page the job is about. Pushing a job whose key
// matches one already pending collapses the two: back-to-back edits to the
// same page yield one pingback, not two.
func (j UpdateJob) DedupKey() string {
	return strconv.FormatInt(j.PageID, 10)
}

// JobQueue enqueues update jobs for later execution. Push is synchronous
// and non-blocking from the triggering event's perspective; delivery is
// best-effort.
type JobQueue interface {
	Push(ctx context.Context, job UpdateJob) error
}

// Pinger performs the outbound pingback for one page, announcing the change
// and the callback URI the indexing service should pull content from.
type Pinger interface {
	Ping(ctx context.Context, pageID int64) error
}
