package mock

import (
	"context"

	"github.com/fwojciec/itemfeed"
)

var _ itemfeed.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of itemfeed.Renderer.
type Renderer struct {
	RenderFn func(e itemfeed.Entity) string
}

func (r *Renderer) Render(e itemfeed.Entity) string {
	return r.RenderFn(e)
}

var _ itemfeed.ItemHistory = (*ItemHistory)(nil)

// ItemHistory is a mock implementation of itemfeed.ItemHistory.
type ItemHistory struct {
	ObserveFn        func(ctx context.Context, item *itemfeed.FeedItem) (*itemfeed.ItemRecord, error)
	FindItemByLinkFn func(ctx context.Context, link string) (*itemfeed.ItemRecord, error)
	FindItemsFn      func(ctx context.Context, filter itemfeed.ItemFilter) ([]*itemfeed.ItemRecord, error)
}

func (h *ItemHistory) Observe(ctx context.Context, item *itemfeed.FeedItem) (*itemfeed.ItemRecord, error) {
	return h.ObserveFn(ctx, item)
}

func (h *ItemHistory) FindItemByLink(ctx context.Context, link string) (*itemfeed.ItemRecord, error) {
	return h.FindItemByLinkFn(ctx, link)
}

func (h *ItemHistory) FindItems(ctx context.Context, filter itemfeed.ItemFilter) ([]*itemfeed.ItemRecord, error) {
	return h.FindItemsFn(ctx, filter)
}

var _ itemfeed.Converter = (*Converter)(nil)

// Converter is a mock implementation of itemfeed.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
