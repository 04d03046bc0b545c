package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaulkr/ragcontent"
)

// Ensure LoggingPinger implements ragcontent.Pinger.
var _ ragcontent.Pinger = (*LoggingPinger)(nil)

// LoggingPinger wraps a Pinger with logging of outbound pingbacks.
type LoggingPinger struct {
	next   ragcontent.Pinger
	logger *slog.Logger
}

// NewLoggingPinger creates a new LoggingPinger.
func NewLoggingPinger(next ragcontent.Pinger, logger *slog.Logger) *LoggingPinger {
	return &LoggingPinger{next: next, logger: logger}
}

// Ping delegates to the wrapped pinger and logs the outcome.
func (p *LoggingPinger) Ping(ctx context.Context, pageID int64) error {
	begin := time.Now()
	err := p.next.Ping(ctx, pageID)
	if err != nil {
		p.logger.Error("pingback failed",
			"page_id", pageID,
			"duration", time.Since(begin),
			"error", err,
		)
		return err
	}
	p.logger.Info("pingback sent",
		"page_id", pageID,
		"duration", time.Since(begin),
	)
	return nil
}
