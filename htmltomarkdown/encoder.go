package htmltomarkdown

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/itemfeed"
)

// Ensure Encoder implements itemfeed.FeedEncoder at compile time.
var _ itemfeed.FeedEncoder = (*Encoder)(nil)

// Encoder writes a feed as a Markdown document: the feed title as a
// heading, then one section per item with its description converted from
// HTML.
type Encoder struct {
	conv itemfeed.Converter
}

// NewEncoder creates a new Encoder using conv for item descriptions.
func NewEncoder(conv itemfeed.Converter) *Encoder {
	return &Encoder{conv: conv}
}

// Encode writes feed to w.
func (e *Encoder) Encode(w io.Writer, feed *itemfeed.Feed) error {
	if feed == nil {
		return itemfeed.Errorf(itemfeed.EINVALID, "feed required")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", feed.Title)
	if feed.Link != "" {
		fmt.Fprintf(bw, "<%s>\n", feed.Link)
	}

	for _, item := range feed.Items {
		if err := e.writeItem(bw, item); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (e *Encoder) writeItem(w io.Writer, item *itemfeed.FeedItem) error {
	if item.Link != "" {
		fmt.Fprintf(w, "\n## [%s](%s)\n", item.Title, item.Link)
	} else {
		fmt.Fprintf(w, "\n## %s\n", item.Title)
	}

	if meta := itemMeta(item); meta != "" {
		fmt.Fprintf(w, "\n*%s*\n", meta)
	}

	if item.Description == "" {
		return nil
	}
	md, err := e.conv.Convert(item.Description)
	if err != nil {
		return fmt.Errorf("converting description of %s: %w", item.Link, err)
	}
	if md != "" {
		fmt.Fprintf(w, "\n%s\n", md)
	}
	return nil
}

func itemMeta(item *itemfeed.FeedItem) string {
	meta := item.Author
	if item.PubDate != nil {
		date := item.PubDate.In(itemfeed.FeedZone).Format(time.DateTime)
		if meta != "" {
			meta += " · "
		}
		meta += date
	}
	return meta
}
