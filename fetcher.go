package itemfeed

import (
	"context"
	"net/url"
	"time"
)

// FetchOptions controls when a rendered page counts as ready.
type FetchOptions struct {
	// WaitSelector, if set, must match an element before the HTML is read.
	WaitSelector string

	// Settle is an extra delay after the page is ready, for listings that
	// keep loading asynchronously.
	Settle time.Duration

	// Timeout bounds the whole fetch. Zero uses the fetcher's default.
	Timeout time.Duration
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits until the page is ready according
	// to opts and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, opts FetchOptions) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// PayloadRequest describes a JSON API call.
type PayloadRequest struct {
	URL     string
	Query   url.Values
	Headers map[string]string
}

// PayloadFetcher retrieves raw JSON payloads.
type PayloadFetcher interface {
	FetchPayload(ctx context.Context, req *PayloadRequest) ([]byte, error)
}
