// Package routes holds the feeds this tool knows how to build.
package routes

import (
	"slices"
	"strings"

	"github.com/fwojciec/itemfeed"
)

var _ itemfeed.RouteRegistry = (*Registry)(nil)

// Registry manages routes by name.
type Registry struct {
	routes map[string]*itemfeed.Route
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]*itemfeed.Route)}
}

// Default returns a Registry holding every built-in route.
func Default() *Registry {
	r := NewRegistry()
	for _, route := range []*itemfeed.Route{
		Category(),
		Chart(),
		Tag(),
		Keyword(),
		Clothing(),
		DoubanMonthly(),
		LiveStart(),
	} {
		if err := r.Register(route); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a route. A route with the same name is replaced.
// Returns EINVALID if the route is not runnable.
func (r *Registry) Register(route *itemfeed.Route) error {
	if route == nil {
		return itemfeed.Errorf(itemfeed.EINVALID, "route required")
	}
	if err := route.Validate(); err != nil {
		return err
	}
	r.routes[route.Name] = route
	return nil
}

// Get returns the named route.
func (r *Registry) Get(name string) (*itemfeed.Route, error) {
	route, ok := r.routes[name]
	if !ok {
		return nil, itemfeed.Errorf(itemfeed.ENOTFOUND, "unknown route %q", name)
	}
	return route, nil
}

// List returns all routes ordered by name.
func (r *Registry) List() []*itemfeed.Route {
	routes := make([]*itemfeed.Route, 0, len(r.routes))
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	slices.SortFunc(routes, func(a, b *itemfeed.Route) int {
		return strings.Compare(a.Name, b.Name)
	})
	return routes
}

// SetDescriptor replaces the block descriptor of a page route.
// Returns ENOTFOUND for an unknown route and EINVALID for an API route or
// a descriptor without candidates.
func (r *Registry) SetDescriptor(name string, desc *itemfeed.BlockDescriptor) error {
	route, err := r.Get(name)
	if err != nil {
		return err
	}
	if route.Page == nil {
		return itemfeed.Errorf(itemfeed.EINVALID, "route %q reads an API and has no descriptor", name)
	}
	if desc == nil {
		return itemfeed.Errorf(itemfeed.EINVALID, "route %q: descriptor required", name)
	}
	if err := desc.Validate(); err != nil {
		return err
	}

	page := *route.Page
	page.Descriptor = desc
	updated := *route
	updated.Page = &page
	r.routes[name] = &updated
	return nil
}
