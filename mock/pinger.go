package mock

import (
	"context"

	"github.com/shaulkr/ragcontent"
)

var _ ragcontent.Pinger = (*Pinger)(nil)

// Pinger is a mock implementation of ragcontent.Pinger.
type Pinger struct {
	PingFn func(ctx context.Context, pageID int64) error
}

func (p *Pinger) Ping(ctx context.Context, pageID int64) error {
	return p.PingFn(ctx, pageID)
}
