package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/itemfeed"
)

// Ensure LoggingItemHistory implements itemfeed.ItemHistory.
var _ itemfeed.ItemHistory = (*LoggingItemHistory)(nil)

// LoggingItemHistory wraps an ItemHistory with logging.
type LoggingItemHistory struct {
	next   itemfeed.ItemHistory
	logger *slog.Logger
}

// NewLoggingItemHistory creates a new LoggingItemHistory.
func NewLoggingItemHistory(next itemfeed.ItemHistory, logger *slog.Logger) *LoggingItemHistory {
	return &LoggingItemHistory{next: next, logger: logger}
}

// Observe delegates to the wrapped history.
func (h *LoggingItemHistory) Observe(ctx context.Context, item *itemfeed.FeedItem) (rec *itemfeed.ItemRecord, err error) {
	defer func() {
		if err != nil {
			h.logger.Error("observe item", "link", item.Link, "err", err)
			return
		}
		h.logger.Debug("observe item",
			"link", rec.Link,
			"first_seen", rec.FirstSeen,
			"updated_at", rec.UpdatedAt,
		)
	}()
	return h.next.Observe(ctx, item)
}

// FindItemByLink delegates to the wrapped history.
func (h *LoggingItemHistory) FindItemByLink(ctx context.Context, link string) (*itemfeed.ItemRecord, error) {
	return h.next.FindItemByLink(ctx, link)
}

// FindItems delegates to the wrapped history.
func (h *LoggingItemHistory) FindItems(ctx context.Context, filter itemfeed.ItemFilter) ([]*itemfeed.ItemRecord, error) {
	return h.next.FindItems(ctx, filter)
}
