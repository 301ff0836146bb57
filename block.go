package itemfeed

// Extract kinds for FieldRule.
const (
	// ExtractText takes the trimmed text content of the element.
	ExtractText = "text"

	// ExtractAttr takes the value of FieldRule.Attr.
	ExtractAttr = "attr"

	// ExtractHref takes the href attribute resolved against the page URL,
	// the way a browser's anchor href property does.
	ExtractHref = "href"

	// ExtractStyleURL takes the inline style attribute (or FieldRule.Attr)
	// and captures the first url("...") declaration in it.
	ExtractStyleURL = "style-url"
)

// BlockDescriptor describes how to find and parse one kind of repeating
// content block on a page.
//
// Candidates are tried in order. The first candidate whose selector matches
// at least one element wins, and every block in the document is located
// with that selector; results from different candidates are never merged.
type BlockDescriptor struct {
	Name       string      `yaml:"name"`
	Candidates []Candidate `yaml:"candidates"`

	// Link and Fields are the default rule set, used by candidates that do
	// not declare their own.
	Link   FieldRule   `yaml:"link"`
	Fields []FieldRule `yaml:"fields"`
}

// Candidate pairs a block selector with the rules used for blocks it matches.
type Candidate struct {
	Selector string      `yaml:"selector"`
	Link     *FieldRule  `yaml:"link,omitempty"`
	Fields   []FieldRule `yaml:"fields,omitempty"`
}

// CandidateSelectors returns the block selectors in fallback order.
func (d *BlockDescriptor) CandidateSelectors() []string {
	selectors := make([]string, 0, len(d.Candidates))
	for _, c := range d.Candidates {
		selectors = append(selectors, c.Selector)
	}
	return selectors
}

// Rules returns the link rule and field rules that apply to blocks matched
// by the candidate at index i.
func (d *BlockDescriptor) Rules(i int) (FieldRule, []FieldRule) {
	link, fields := d.Link, d.Fields
	if i < 0 || i >= len(d.Candidates) {
		return link, fields
	}
	c := d.Candidates[i]
	if c.Link != nil {
		link = *c.Link
	}
	if c.Fields != nil {
		fields = c.Fields
	}
	return link, fields
}

// Validate returns an error if the descriptor cannot locate any block.
// Selector syntax is checked by the extractor implementation.
func (d *BlockDescriptor) Validate() error {
	if len(d.Candidates) == 0 {
		return Errorf(EINVALID, "descriptor %q has no candidate selectors", d.Name)
	}
	for i, c := range d.Candidates {
		if c.Selector == "" {
			return Errorf(EINVALID, "descriptor %q candidate %d has empty selector", d.Name, i)
		}
	}
	return nil
}

// FieldRule is a declarative instruction for pulling one named value out of
// a matched block. Every step is null-safe: a rule that cannot be satisfied
// yields the empty string.
type FieldRule struct {
	Name string `yaml:"name"`

	// Selector is relative to the rule's scope. Empty means the scope
	// element itself.
	Selector string `yaml:"selector,omitempty"`

	// Within narrows the scope to the first descendant matching it before
	// Selector is applied.
	Within string `yaml:"within,omitempty"`

	// Index picks the n-th match of Selector instead of the first.
	// Out of range yields "".
	Index *int `yaml:"index,omitempty"`

	// Join collects every match of Selector, skips empty values and joins
	// them with the separator.
	Join string `yaml:"join,omitempty"`

	Extract string `yaml:"extract,omitempty"`
	Attr    string `yaml:"attr,omitempty"`

	// Remove deletes the first occurrence of the string from each value.
	Remove string `yaml:"remove,omitempty"`

	// Cross moves the scope out of the block before Selector is applied.
	Cross *CrossBlock `yaml:"cross,omitempty"`

	// Fallbacks are tried in order when the rule yields "".
	Fallbacks []FieldRule `yaml:"fallbacks,omitempty"`
}

// CrossBlock locates data that lives next to a block rather than inside it:
// climb to the closest Ancestor (the block itself counts), then step
// Sibling element siblings (negative steps go backwards). The rule's
// Selector is then applied inside that sibling.
type CrossBlock struct {
	Ancestor string `yaml:"ancestor"`
	Sibling  int    `yaml:"sibling"`
}

// At returns a pointer to i, for use as FieldRule.Index.
func At(i int) *int {
	return &i
}

// Field is one named value extracted from a block.
type Field struct {
	Name  string
	Value string
}

// RawFieldBag holds the values extracted from one block, in rule order,
// plus the block's link.
type RawFieldBag struct {
	Link   string
	Fields []Field
}

// Get returns the value of the named field, or "" if absent.
func (b RawFieldBag) Get(name string) string {
	for _, f := range b.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Set replaces the named field or appends it.
func (b *RawFieldBag) Set(name, value string) {
	for i := range b.Fields {
		if b.Fields[i].Name == name {
			b.Fields[i].Value = value
			return
		}
	}
	b.Fields = append(b.Fields, Field{Name: name, Value: value})
}

// BlockExtractor locates repeating blocks in an HTML document.
type BlockExtractor interface {
	// ExtractBlocks returns one bag per block, in document order.
	// A document in which no candidate matches yields an empty result and
	// no error. The baseURL resolves relative links.
	ExtractBlocks(html string, baseURL string, desc *BlockDescriptor) ([]RawFieldBag, error)

	// Title returns the document title, or "" if the page has none.
	Title(html string) string
}

// PayloadSource projects a JSON API response into field bags.
type PayloadSource interface {
	// Request builds the API request for the given route parameters.
	Request(params Params) *PayloadRequest

	// Bags decodes the payload and returns one bag per listed entry,
	// in source array order.
	Bags(payload []byte) ([]RawFieldBag, error)
}
