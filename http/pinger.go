// Package http provides the HTTP boundary: the content retrieval API served
// to the external indexing service and the outbound pingback client.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shaulkr/ragcontent"
	"golang.org/x/time/rate"
)

// RoutePrefix is where the content API mounts under the service's REST path.
const RoutePrefix = "/cbragcontent/v0"

// DefaultPingTimeout bounds a single outbound pingback request.
const DefaultPingTimeout = 10 * time.Second

// Ensure Pinger implements ragcontent.Pinger at compile time.
var _ ragcontent.Pinger = (*Pinger)(nil)

// Pinger announces page changes to the configured indexing service with a
// single HTTP POST. Outbound calls are rate limited so bursts of edits
// cannot hammer the index service. A non-success response is an error; the
// caller decides whether to log or give up, there is no retry here.
type Pinger struct {
	client       *http.Client
	limiter      *rate.Limiter
	pingURL      string
	callbackBase string
	timeout      time.Duration
}

// PingerOption configures a Pinger.
type PingerOption func(*Pinger)

// WithPingTimeout sets the timeout for outbound pingback requests.
func WithPingTimeout(d time.Duration) PingerOption {
	return func(p *Pinger) {
		p.timeout = d
	}
}

// WithPingRate overrides the outbound rate limit.
func WithPingRate(limit rate.Limit, burst int) PingerOption {
	return func(p *Pinger) {
		p.limiter = rate.NewLimiter(limit, burst)
	}
}

// NewPinger creates a Pinger from the service configuration.
func NewPinger(cfg *ragcontent.Config, opts ...PingerOption) *Pinger {
	p := &Pinger{
		pingURL:      cfg.PingURL,
		callbackBase: strings.TrimRight(cfg.Server, "/") + strings.TrimRight(cfg.RestPath, "/"),
		timeout:      DefaultPingTimeout,
		limiter:      rate.NewLimiter(rate.Limit(5), 10),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = &http.Client{Timeout: p.timeout}
	return p
}

// pingRequest is the JSON body of the outbound pingback.
type pingRequest struct {
	PageID      int64  `json:"page_id"`
	CallbackURI string `json:"callback_uri"`
}

// Ping posts the page identifier and a callback URI pointing back at this
// service's content endpoint. Any 2xx response counts as success.
func (p *Pinger) Ping(ctx context.Context, pageID int64) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(pingRequest{
		PageID:      pageID,
		CallbackURI: p.callbackURI(pageID),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.pingURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return ragcontent.Errorf(ragcontent.EUNAVAILABLE, "pingback request failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ragcontent.Errorf(ragcontent.EUNAVAILABLE, "pingback returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// callbackURI composes the URL the indexing service pulls content from.
func (p *Pinger) callbackURI(pageID int64) string {
	return fmt.Sprintf("%s%s/page_id/%d", p.callbackBase, RoutePrefix, pageID)
}
