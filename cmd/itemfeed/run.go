package main

import (
	"fmt"

	"github.com/fwojciec/itemfeed"
	"github.com/fwojciec/itemfeed/htmltomarkdown"
	feedjson "github.com/fwojciec/itemfeed/json"
	"github.com/fwojciec/itemfeed/rss"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	route, err := deps.Routes.Get(c.Route)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", itemfeed.ErrorMessage(err))
		return err
	}

	params, err := route.BindParams(c.Params)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", itemfeed.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "usage: itemfeed run %s\n", usage(route))
		return err
	}

	feed, err := deps.Runner.Run(deps.Ctx, route, params)
	if err != nil {
		switch itemfeed.ErrorCode(err) {
		case itemfeed.EEMPTY:
			fmt.Fprintln(deps.Stderr, "Hint: the page layout may have changed. Override its selectors with --descriptors")
		case itemfeed.EACQUIRE:
			fmt.Fprintln(deps.Stderr, "Hint: try a longer --timeout")
		}
		return err
	}

	return encoder(c.Format, feed.Link).Encode(deps.Stdout, feed)
}

// encoder returns the encoder for format. Markdown output resolves relative
// references in descriptions against the feed's link.
func encoder(format, baseURL string) itemfeed.FeedEncoder {
	switch format {
	case "json":
		return feedjson.NewEncoder()
	case "markdown":
		return htmltomarkdown.NewEncoder(htmltomarkdown.NewConverter(htmltomarkdown.WithBaseURL(baseURL)))
	default:
		return rss.NewEncoder()
	}
}
