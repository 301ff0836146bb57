// Package json writes feeds as indented JSON documents.
package json

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/itemfeed"
)

// Ensure Encoder implements itemfeed.FeedEncoder at compile time.
var _ itemfeed.FeedEncoder = (*Encoder)(nil)

// Encoder writes the feed with its items in order. Descriptions are
// written as is, HTML included.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes feed to w.
func (e *Encoder) Encode(w io.Writer, feed *itemfeed.Feed) error {
	if feed == nil {
		return itemfeed.Errorf(itemfeed.EINVALID, "feed required")
	}
	if feed.Items == nil {
		cp := *feed
		cp.Items = []*itemfeed.FeedItem{}
		feed = &cp
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(feed)
}
