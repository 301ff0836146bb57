// Package slog decorates itemfeed services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/itemfeed"
)

// Ensure LoggingFetcher implements itemfeed.Fetcher.
var _ itemfeed.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   itemfeed.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next itemfeed.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the page size.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, opts itemfeed.FetchOptions) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"wait", opts.WaitSelector,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, opts)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingPayloadFetcher implements itemfeed.PayloadFetcher.
var _ itemfeed.PayloadFetcher = (*LoggingPayloadFetcher)(nil)

// LoggingPayloadFetcher wraps a PayloadFetcher with logging.
type LoggingPayloadFetcher struct {
	next   itemfeed.PayloadFetcher
	logger *slog.Logger
}

// NewLoggingPayloadFetcher creates a new LoggingPayloadFetcher.
func NewLoggingPayloadFetcher(next itemfeed.PayloadFetcher, logger *slog.Logger) *LoggingPayloadFetcher {
	return &LoggingPayloadFetcher{next: next, logger: logger}
}

// FetchPayload delegates to the wrapped fetcher and logs the payload size.
func (f *LoggingPayloadFetcher) FetchPayload(ctx context.Context, req *itemfeed.PayloadRequest) (body []byte, err error) {
	defer func(begin time.Time) {
		var url string
		if req != nil {
			url = req.URL
		}
		f.logger.Info("fetch payload",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchPayload(ctx, req)
}
