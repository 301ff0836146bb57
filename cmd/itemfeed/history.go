package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/itemfeed"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := itemfeed.ItemFilter{Limit: c.Limit}
	if c.Since > 0 {
		since := time.Now().Add(-c.Since)
		filter.Since = &since
	}

	recs, err := deps.History.FindItems(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", itemfeed.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No items recorded. Use 'itemfeed run' to build a feed.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n",
			r.UpdatedAt.In(itemfeed.FeedZone).Format(time.DateTime),
			r.FirstSeen.In(itemfeed.FeedZone).Format(time.DateTime),
			r.Link,
		)
	}
	return nil
}
