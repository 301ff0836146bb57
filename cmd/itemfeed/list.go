package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/itemfeed"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	for _, r := range deps.Routes.List() {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", usage(r), r.Description)
		if r.Example != "" {
			fmt.Fprintf(deps.Stdout, "    e.g. itemfeed run %s\n", r.Example)
		}
	}
	return nil
}

// usage renders a route name followed by its parameters, optional ones in
// brackets.
func usage(r *itemfeed.Route) string {
	parts := []string{r.Name}
	for _, p := range r.Params {
		if p.Optional {
			parts = append(parts, "["+p.Name+"]")
		} else {
			parts = append(parts, "<"+p.Name+">")
		}
	}
	return strings.Join(parts, " ")
}
