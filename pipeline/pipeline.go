// Package pipeline runs a route end to end: acquire the page or payload,
// extract blocks, normalize them into entities and render a feed.
package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/itemfeed"
)

// Runner orchestrates one route run. Stages run strictly forward and any
// stage failure aborts the run.
type Runner struct {
	Fetcher   itemfeed.Fetcher
	Payloads  itemfeed.PayloadFetcher
	Extractor itemfeed.BlockExtractor
	Renderer  itemfeed.Renderer

	// History stamps items that carry no dates of their own. Optional.
	History itemfeed.ItemHistory
}

// source is what acquisition and extraction produced for one run.
type source struct {
	bags    []itemfeed.RawFieldBag
	title   string
	baseURL string
}

// Run produces the feed for route with the given parameters.
//
// Acquisition failures are EACQUIRE. A run that yields no items is EEMPTY
// when the route requires items, and an empty feed otherwise.
func (r *Runner) Run(ctx context.Context, route *itemfeed.Route, params itemfeed.Params) (*itemfeed.Feed, error) {
	if route == nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "route required")
	}
	if err := route.Validate(); err != nil {
		return nil, err
	}
	if r.Renderer == nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "renderer required")
	}

	var src *source
	var err error
	if route.Page != nil {
		src, err = r.page(ctx, route.Page, params)
	} else {
		src, err = r.payload(ctx, route.API, params)
	}
	if err != nil {
		return nil, err
	}

	n := itemfeed.Normalizer{Kind: route.Kind, BaseURL: src.baseURL, Describe: route.Describe}
	entities := n.NormalizeAll(src.bags)
	if route.Dedupe {
		entities = dedupe(entities)
	}

	if len(entities) == 0 && route.RequireItems {
		return nil, itemfeed.Errorf(itemfeed.EEMPTY, "route %q produced no items, the page layout likely changed", route.Name)
	}

	items := make([]*itemfeed.FeedItem, 0, len(entities))
	for _, e := range entities {
		item := r.item(e, route.AllowEmpty)
		if item.PubDate == nil && r.History != nil {
			if err := r.stamp(ctx, item); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}

	feed := &itemfeed.Feed{
		Title:       src.title,
		Link:        route.Link(params),
		Description: route.Description,
		Items:       items,
	}
	if feed.Title == "" && route.Title != nil {
		feed.Title = route.Title(params)
	}
	feed.Title = cmp.Or(feed.Title, route.Name)
	return feed, nil
}

func (r *Runner) page(ctx context.Context, page *itemfeed.PageSource, params itemfeed.Params) (*source, error) {
	if r.Fetcher == nil || r.Extractor == nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "page fetcher and extractor required")
	}

	url := page.URL(params)
	html, err := r.Fetcher.Fetch(ctx, url, page.Fetch)
	if err != nil {
		return nil, itemfeed.WrapError(itemfeed.EACQUIRE, err, "fetching %s", url)
	}

	bags, err := r.Extractor.ExtractBlocks(html, cmp.Or(page.BaseURL, url), page.Descriptor)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", url, err)
	}

	return &source{
		bags:    bags,
		title:   r.Extractor.Title(html),
		baseURL: cmp.Or(page.BaseURL, url),
	}, nil
}

func (r *Runner) payload(ctx context.Context, api itemfeed.PayloadSource, params itemfeed.Params) (*source, error) {
	if r.Payloads == nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "payload fetcher required")
	}

	req := api.Request(params)
	body, err := r.Payloads.FetchPayload(ctx, req)
	if err != nil {
		return nil, itemfeed.WrapError(itemfeed.EACQUIRE, err, "fetching %s", req.URL)
	}

	bags, err := api.Bags(body)
	if err != nil {
		return nil, itemfeed.WrapError(itemfeed.EACQUIRE, err, "decoding payload from %s", req.URL)
	}
	return &source{bags: bags}, nil
}

func (r *Runner) item(e itemfeed.Entity, allowEmpty bool) *itemfeed.FeedItem {
	item := &itemfeed.FeedItem{
		Title:       itemfeed.ItemTitle(e),
		Link:        e.EntityURL(),
		Description: r.Renderer.Render(e),
		AllowEmpty:  allowEmpty,
	}

	switch v := e.(type) {
	case *itemfeed.Book:
		item.Author = v.Author
	case *itemfeed.Show:
		item.PubDate = epoch(v.CreateTime)
		item.Updated = epoch(v.UpdateTime)
	}
	return item
}

// stamp sets PubDate to the first time the item was seen and Updated to
// the last time its content changed.
func (r *Runner) stamp(ctx context.Context, item *itemfeed.FeedItem) error {
	rec, err := r.History.Observe(ctx, item)
	if err != nil {
		return fmt.Errorf("recording %s: %w", item.Link, err)
	}
	pub := rec.FirstSeen.In(itemfeed.FeedZone)
	updated := rec.UpdatedAt.In(itemfeed.FeedZone)
	item.PubDate = &pub
	if item.Updated == nil {
		item.Updated = &updated
	}
	return nil
}

// dedupe keeps the first entity of each canonical link.
func dedupe(entities []itemfeed.Entity) []itemfeed.Entity {
	seen := make(map[string]struct{}, len(entities))
	kept := entities[:0]
	for _, e := range entities {
		if _, ok := seen[e.EntityURL()]; ok {
			continue
		}
		seen[e.EntityURL()] = struct{}{}
		kept = append(kept, e)
	}
	return kept
}

func epoch(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).In(itemfeed.FeedZone)
	return &t
}
