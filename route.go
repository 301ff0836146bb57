package itemfeed

import "strings"

// Params holds the positional parameters of a route invocation by name.
type Params map[string]string

// Get returns the named parameter, or "" if unset.
func (p Params) Get(name string) string {
	return p[name]
}

// Param declares one route parameter.
type Param struct {
	Name     string
	Help     string
	Optional bool
}

// PageSource describes a browser-rendered listing page.
type PageSource struct {
	// URL builds the page address for the given parameters.
	URL func(p Params) string

	// BaseURL resolves relative links found on the page.
	BaseURL string

	Fetch      FetchOptions
	Descriptor *BlockDescriptor
}

// Route is the static configuration of one feed.
// Exactly one of Page and API is set.
type Route struct {
	Name        string
	Description string
	Example     string
	Params      []Param
	Kind        EntityKind

	Page *PageSource
	API  PayloadSource

	// Link builds the feed's own link.
	Link func(p Params) string

	// Title builds the feed title used when the page has no <title>.
	Title func(p Params) string

	// Describe controls how Book descriptions are composed.
	Describe DescriptionStyle

	// AllowEmpty marks empty item descriptions as legitimate.
	AllowEmpty bool

	// RequireItems makes a run that yields no items fail with EEMPTY.
	RequireItems bool

	// Dedupe drops entities whose canonical link was already emitted in
	// the same run.
	Dedupe bool
}

// Validate returns an error if the route is not runnable.
func (r *Route) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "route name required")
	}
	if (r.Page == nil) == (r.API == nil) {
		return Errorf(EINVALID, "route %q must have exactly one of page or api source", r.Name)
	}
	if r.Page != nil {
		if r.Page.URL == nil {
			return Errorf(EINVALID, "route %q page URL required", r.Name)
		}
		if r.Page.Descriptor == nil {
			return Errorf(EINVALID, "route %q descriptor required", r.Name)
		}
		if err := r.Page.Descriptor.Validate(); err != nil {
			return err
		}
	}
	if r.Link == nil {
		return Errorf(EINVALID, "route %q link required", r.Name)
	}
	return nil
}

// BindParams maps positional arguments onto the route's declared
// parameters. Missing required parameters and surplus arguments are
// EINVALID.
func (r *Route) BindParams(args []string) (Params, error) {
	if len(args) > len(r.Params) {
		return nil, Errorf(EINVALID, "route %q takes at most %d parameters, got %d", r.Name, len(r.Params), len(args))
	}
	params := make(Params, len(r.Params))
	for i, p := range r.Params {
		if i < len(args) && strings.TrimSpace(args[i]) != "" {
			params[p.Name] = strings.TrimSpace(args[i])
			continue
		}
		if !p.Optional {
			return nil, Errorf(EINVALID, "route %q: parameter %q required", r.Name, p.Name)
		}
	}
	return params, nil
}

// RouteRegistry holds the known routes.
type RouteRegistry interface {
	// Get returns the named route.
	// Returns ENOTFOUND if no route has that name.
	Get(name string) (*Route, error)

	// List returns all routes ordered by name.
	List() []*Route
}
