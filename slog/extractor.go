package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaulkr/ragcontent"
)

// Ensure LoggingExtractor implements ragcontent.Extractor.
var _ ragcontent.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of extraction runs.
type LoggingExtractor struct {
	next   ragcontent.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next ragcontent.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, page *ragcontent.Page) (*ragcontent.ExtractionResult, error) {
	begin := time.Now()
	res, err := e.next.Extract(ctx, page)
	if err != nil {
		e.logger.Error("extraction failed",
			"page_id", page.ID,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	e.logger.Info("extraction complete",
		"page_id", page.ID,
		"revision_id", res.RevisionID,
		"content_bytes", len(res.Content),
		"duration", time.Since(begin),
	)
	return res, nil
}
