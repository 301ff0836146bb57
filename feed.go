package itemfeed

import (
	"context"
	"io"
	"time"
)

// FeedZone is the fixed offset feed timestamps are reported in.
var FeedZone = time.FixedZone("UTC+8", 8*60*60)

// FeedItem is one rendered entry of a feed.
type FeedItem struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Author      string     `json:"author,omitempty"`
	PubDate     *time.Time `json:"pubDate,omitempty"`
	Updated     *time.Time `json:"updated,omitempty"`

	// AllowEmpty marks an empty description as legitimate rather than as
	// an extraction failure.
	AllowEmpty bool `json:"allowEmpty,omitempty"`
}

// Feed is the output of one route run.
type Feed struct {
	Title       string      `json:"title"`
	Link        string      `json:"link"`
	Description string      `json:"description,omitempty"`
	Items       []*FeedItem `json:"items"`
}

// FeedEncoder serializes a feed in one output format.
type FeedEncoder interface {
	Encode(w io.Writer, feed *Feed) error
}

// Renderer turns an entity into a description string.
// Render must tolerate every optional field being empty and never fails.
type Renderer interface {
	Render(e Entity) string
}

// ItemRecord tracks when a feed item was first seen and last changed.
type ItemRecord struct {
	ID          string    `json:"id"`
	Link        string    `json:"link"`
	ContentHash string    `json:"contentHash"`
	FirstSeen   time.Time `json:"firstSeen"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemHistory remembers feed items across runs so sources that publish no
// dates still get stable pubDate and updated values.
type ItemHistory interface {
	// Observe records the item and returns its history. UpdatedAt moves
	// forward only when the item's title or description changed.
	Observe(ctx context.Context, item *FeedItem) (*ItemRecord, error)

	// FindItemByLink returns the history of a link.
	// Returns ENOTFOUND if the link was never observed.
	FindItemByLink(ctx context.Context, link string) (*ItemRecord, error)

	// FindItems returns records, most recently updated first.
	FindItems(ctx context.Context, filter ItemFilter) ([]*ItemRecord, error)
}

// ItemFilter narrows FindItems.
type ItemFilter struct {
	// Since keeps records updated at or after the time.
	Since *time.Time

	Limit  int
	Offset int
}
