// Package rod implements itemfeed.Fetcher with headless Chrome.
package rod

import (
	"cmp"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/itemfeed"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a fetch when neither the caller nor the
// route supplies a timeout.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements itemfeed.Fetcher at compile time.
var _ itemfeed.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Each fetch runs in its own tab. Fetcher is safe for concurrent use.
type Fetcher struct {
	manager      *BrowserManager
	managerOpts  []ManagerOption
	fetchTimeout time.Duration
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the default per-fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher launches a headless browser and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, waits for the load event, then for
// opts.WaitSelector and opts.Settle, and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts itemfeed.FetchOptions) (string, error) {
	if f.closed.Load() {
		return "", itemfeed.Errorf(itemfeed.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, cmp.Or(opts.Timeout, f.fetchTimeout))
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer f.manager.IncrementPageCount()
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s to load: %w", url, err)
	}

	if opts.WaitSelector != "" {
		if _, err := page.Element(opts.WaitSelector); err != nil {
			return "", fmt.Errorf("waiting for %q: %w", opts.WaitSelector, err)
		}
	}

	if opts.Settle > 0 {
		timer := time.NewTimer(opts.Settle)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading rendered HTML: %w", err)
	}

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
