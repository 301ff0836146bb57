package http

import (
	"cmp"
	"context"
	"net/http"
	"net/url"

	"github.com/fwojciec/itemfeed"
)

// Ensure Fetcher implements itemfeed.Fetcher at compile time.
var _ itemfeed.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves server-rendered HTML without executing JavaScript.
// WaitSelector and Settle are ignored; Timeout is honored.
type Fetcher struct {
	cfg *config
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	return &Fetcher{cfg: newConfig(opts)}
}

// Fetch retrieves the HTML document at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, opts itemfeed.FetchOptions) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", itemfeed.Errorf(itemfeed.EINVALID, "invalid URL: %v", err)
	}

	body, err := get(ctx, f.cfg.client, cmp.Or(opts.Timeout, f.cfg.timeout), f.cfg.limiter, u, func(r *http.Request) {
		r.Header.Set("User-Agent", f.cfg.userAgent)
		r.Header.Set("Accept", "text/html,application/xhtml+xml")
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
