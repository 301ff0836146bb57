// Package rss writes feeds as RSS 2.0 documents.
package rss

import (
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/itemfeed"
)

// Ensure Encoder implements itemfeed.FeedEncoder at compile time.
var _ itemfeed.FeedEncoder = (*Encoder)(nil)

// Generator is written to the channel's generator element.
const Generator = "itemfeed"

const atomNS = "http://www.w3.org/2005/Atom"

// Encoder writes RSS 2.0 with one item per feed item. Item dates are
// written in the feed zone as RFC 1123 with numeric offset.
type Encoder struct {
	// Now returns the build time. Defaults to time.Now.
	Now func() time.Time
}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{Now: time.Now}
}

// Encode writes feed to w.
func (e *Encoder) Encode(w io.Writer, feed *itemfeed.Feed) error {
	if feed == nil {
		return itemfeed.Errorf(itemfeed.EINVALID, "feed required")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("rss")
	root.CreateAttr("version", "2.0")
	root.CreateAttr("xmlns:atom", atomNS)

	channel := root.CreateElement("channel")
	channel.CreateElement("title").SetText(feed.Title)
	channel.CreateElement("link").SetText(feed.Link)
	channel.CreateElement("description").SetText(channelDescription(feed))
	channel.CreateElement("generator").SetText(Generator)
	channel.CreateElement("lastBuildDate").SetText(formatDate(e.Now()))

	for _, item := range feed.Items {
		writeItem(channel, item)
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func writeItem(channel *etree.Element, item *itemfeed.FeedItem) {
	el := channel.CreateElement("item")
	el.CreateElement("title").SetText(item.Title)

	desc := item.Description
	if desc == "" && !item.AllowEmpty {
		desc = item.Title
	}
	el.CreateElement("description").SetText(desc)

	if item.Link != "" {
		el.CreateElement("link").SetText(item.Link)
		guid := el.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "false")
		guid.SetText(item.Link)
	}
	if item.PubDate != nil {
		el.CreateElement("pubDate").SetText(formatDate(*item.PubDate))
	}
	if item.Updated != nil {
		el.CreateElement("atom:updated").SetText(item.Updated.In(itemfeed.FeedZone).Format(time.RFC3339))
	}
	if item.Author != "" {
		el.CreateElement("author").SetText(item.Author)
	}
}

func channelDescription(feed *itemfeed.Feed) string {
	if feed.Description != "" {
		return feed.Description
	}
	return feed.Title
}

func formatDate(t time.Time) string {
	return t.In(itemfeed.FeedZone).Format(time.RFC1123Z)
}
