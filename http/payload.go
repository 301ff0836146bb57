// Package http implements itemfeed.PayloadFetcher and a plain itemfeed.Fetcher
// over net/http.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/itemfeed"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is sent unless a request overrides it.
const DefaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Ensure PayloadFetcher implements itemfeed.PayloadFetcher at compile time.
var _ itemfeed.PayloadFetcher = (*PayloadFetcher)(nil)

// PayloadFetcher performs JSON API GET requests.
type PayloadFetcher struct {
	cfg *config
}

// Option configures a PayloadFetcher or a Fetcher.
type Option func(*config)

type config struct {
	client    *http.Client
	timeout   time.Duration
	limiter   *DomainLimiter
	userAgent string
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithClient uses the given client instead of a fresh one.
func WithClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithRateLimit limits requests to rps per second per host.
func WithRateLimit(rps float64) Option {
	return func(c *config) {
		c.limiter = NewDomainLimiter(rps)
	}
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	return c
}

// NewPayloadFetcher creates a new PayloadFetcher.
func NewPayloadFetcher(opts ...Option) *PayloadFetcher {
	return &PayloadFetcher{cfg: newConfig(opts)}
}

// FetchPayload issues the request and returns the raw response body.
func (f *PayloadFetcher) FetchPayload(ctx context.Context, req *itemfeed.PayloadRequest) ([]byte, error) {
	if req == nil || req.URL == "" {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "payload request URL required")
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "invalid payload URL: %v", err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			q[k] = vs
		}
		u.RawQuery = q.Encode()
	}

	return get(ctx, f.cfg.client, f.cfg.timeout, f.cfg.limiter, u, func(r *http.Request) {
		r.Header.Set("User-Agent", f.cfg.userAgent)
		r.Header.Set("Accept", "application/json")
		for k, v := range req.Headers {
			r.Header.Set(k, v)
		}
	})
}

// get performs a rate-limited GET and returns the body decoded to UTF-8.
func get(ctx context.Context, client *http.Client, timeout time.Duration, limiter *DomainLimiter, u *url.URL, prepare func(*http.Request)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if limiter != nil {
		if err := limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	prepare(r)

	resp, err := client.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, u.Redacted())
	}

	body, err := decode(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", u.Redacted(), err)
	}

	return io.ReadAll(io.LimitReader(body, maxBodyBytes))
}

// decode transcodes body to UTF-8 when the response declares another
// charset. Undeclared bodies are taken as UTF-8.
func decode(body io.Reader, contentType string) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return body, nil
	}
	return charset.NewReader(body, contentType)
}
