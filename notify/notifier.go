// Package notify reacts to content-changing wiki events and enqueues
// pingback jobs for pages that qualify for the external RAG index.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shaulkr/ragcontent"
)

// Notifier observes page creation/edit, deletion and move events. It is
// strictly fire-and-forget: enqueue failures are logged and never propagate
// to the triggering content change.
type Notifier struct {
	config *ragcontent.Config
	filter *ragcontent.RelevanceFilter
	queue  ragcontent.JobQueue
	pages  ragcontent.PageService
	logger *slog.Logger
}

// New creates a Notifier.
func New(config *ragcontent.Config, filter *ragcontent.RelevanceFilter, queue ragcontent.JobQueue, pages ragcontent.PageService, logger *slog.Logger) *Notifier {
	return &Notifier{
		config: config,
		filter: filter,
		queue:  queue,
		pages:  pages,
		logger: logger,
	}
}

// PageUpdated handles creation and edit events. It reports whether a job
// was enqueued.
func (n *Notifier) PageUpdated(ctx context.Context, page *ragcontent.Page) bool {
	return n.push(ctx, page, false)
}

// PageDeleted handles deletion events. The page argument is the snapshot
// taken before the deletion applied, so the relevance gates still see the
// page as existing.
func (n *Notifier) PageDeleted(ctx context.Context, page *ragcontent.Page) bool {
	return n.push(ctx, page, false)
}

// PageMoved handles move events. A move into or out of a tracked namespace
// is itself the signal, so when either end of the move is an allowed
// namespace the job is enqueued for the destination with the namespace gate
// bypassed. A move entirely between untracked namespaces enqueues nothing.
func (n *Notifier) PageMoved(ctx context.Context, fromNamespace int, page *ragcontent.Page) bool {
	if !n.config.PingConfigured() {
		return false
	}
	if page == nil {
		return false
	}
	if !ragcontent.IsAllowedNamespace(n.config, fromNamespace) &&
		!ragcontent.IsAllowedNamespace(n.config, page.Namespace) {
		return false
	}
	return n.push(ctx, page, true)
}

// push runs the relevance policy and enqueues an update job. An empty ping
// target disables the feature entirely, so it is checked before relevance:
// evaluating relevance is meaningless without a destination to notify.
func (n *Notifier) push(ctx context.Context, page *ragcontent.Page, ignoreNamespaceCheck bool) bool {
	if !n.config.PingConfigured() {
		return false
	}

	relevant, err := n.filter.IsRelevant(ctx, page, ignoreNamespaceCheck)
	if err != nil {
		n.logger.Error("relevance check failed",
			"page", page.ID,
			"err", err,
		)
		return false
	}
	if !relevant {
		return false
	}

	job := ragcontent.UpdateJob{ID: uuid.NewString(), PageID: page.ID}

	// The current revision id travels with the job when one exists; a
	// deleted page has none.
	if rev, err := n.pages.CurrentRevision(ctx, page.ID); err == nil {
		job.RevisionID = rev.ID
	}

	if err := n.queue.Push(ctx, job); err != nil {
		n.logger.Error("update job enqueue failed",
			"job", job.ID,
			"page", page.ID,
			"err", err,
		)
		return false
	}

	n.logger.Info("update job enqueued",
		"job", job.ID,
		"page", page.ID,
		"revision", job.RevisionID,
	)
	return true
}
