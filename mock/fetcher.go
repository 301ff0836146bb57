package mock

import (
	"context"

	"github.com/fwojciec/itemfeed"
)

var _ itemfeed.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of itemfeed.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, opts itemfeed.FetchOptions) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, opts itemfeed.FetchOptions) (string, error) {
	return f.FetchFn(ctx, url, opts)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ itemfeed.PayloadFetcher = (*PayloadFetcher)(nil)

// PayloadFetcher is a mock implementation of itemfeed.PayloadFetcher.
type PayloadFetcher struct {
	FetchPayloadFn func(ctx context.Context, req *itemfeed.PayloadRequest) ([]byte, error)
}

func (f *PayloadFetcher) FetchPayload(ctx context.Context, req *itemfeed.PayloadRequest) ([]byte, error) {
	return f.FetchPayloadFn(ctx, req)
}
