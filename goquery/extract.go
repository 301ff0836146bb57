// Package goquery implements itemfeed.BlockExtractor on top of goquery.
package goquery

import (
	"cmp"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/itemfeed"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// DefaultConcurrency is the default number of blocks extracted in parallel.
const DefaultConcurrency = 4

// Ensure Extractor implements itemfeed.BlockExtractor at compile time.
var _ itemfeed.BlockExtractor = (*Extractor)(nil)

// styleURLPattern captures the image reference of an inline
// background-image declaration.
var styleURLPattern = regexp.MustCompile(`url\("([^"]+)"\)`)

// Extractor locates repeating blocks with CSS selectors and applies field
// rules to each of them. The parsed document is never mutated, so blocks
// are extracted concurrently and reassembled in document order.
type Extractor struct {
	concurrency int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConcurrency sets how many blocks are extracted in parallel.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		e.concurrency = n
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.concurrency < 1 {
		e.concurrency = 1
	}
	return e
}

// ExtractBlocks returns one bag per block matched by the first candidate
// selector that matches anything, in document order.
func (e *Extractor) ExtractBlocks(rawHTML string, baseURL string, desc *itemfeed.BlockDescriptor) ([]itemfeed.RawFieldBag, error) {
	if desc == nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "block descriptor required")
	}

	var base *url.URL
	if baseURL != "" {
		b, err := url.Parse(baseURL)
		if err != nil {
			return nil, itemfeed.Errorf(itemfeed.EINVALID, "invalid base URL: %v", err)
		}
		base = b
	}

	doc, err := parseDocument(rawHTML)
	if err != nil {
		return nil, err
	}

	blocks, candidate := selectBlocks(doc, desc)
	if blocks == nil {
		return []itemfeed.RawFieldBag{}, nil
	}

	link, fields := desc.Rules(candidate)
	if link.Extract == "" {
		link.Extract = itemfeed.ExtractHref
	}

	bags := make([]itemfeed.RawFieldBag, blocks.Length())

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	blocks.Each(func(i int, block *goquery.Selection) {
		g.Go(func() error {
			bags[i] = extractBlock(block, base, &link, fields)
			return nil
		})
	})
	_ = g.Wait()

	return bags, nil
}

// Title returns the text of the document's <title> element.
func (e *Extractor) Title(rawHTML string) string {
	doc, err := parseDocument(rawHTML)
	if err != nil {
		return ""
	}
	return cleanText(doc.Find("title").First().Text())
}

// StyleURL returns the reference captured from the first url("...")
// declaration in an inline style, or "" if there is none.
func StyleURL(style string) string {
	m := styleURLPattern.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return m[1]
}

func parseDocument(rawHTML string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "failed to parse HTML: %v", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// selectBlocks returns the matches of the first candidate selector that
// matches at least one element, and that candidate's index.
func selectBlocks(doc *goquery.Document, desc *itemfeed.BlockDescriptor) (*goquery.Selection, int) {
	for i, c := range desc.Candidates {
		if c.Selector == "" {
			continue
		}
		if sel := doc.Find(c.Selector); sel.Length() > 0 {
			return sel, i
		}
	}
	return nil, -1
}

func extractBlock(block *goquery.Selection, base *url.URL, link *itemfeed.FieldRule, fields []itemfeed.FieldRule) itemfeed.RawFieldBag {
	bag := itemfeed.RawFieldBag{
		Link:   applyRule(block, base, link),
		Fields: make([]itemfeed.Field, 0, len(fields)),
	}
	for i := range fields {
		bag.Fields = append(bag.Fields, itemfeed.Field{
			Name:  fields[i].Name,
			Value: applyRule(block, base, &fields[i]),
		})
	}
	return bag
}

// applyRule evaluates a rule and its fallbacks against a block.
func applyRule(block *goquery.Selection, base *url.URL, r *itemfeed.FieldRule) string {
	v := evalRule(block, base, r)
	for i := 0; v == "" && i < len(r.Fallbacks); i++ {
		v = applyRule(block, base, &r.Fallbacks[i])
	}
	return v
}

func evalRule(block *goquery.Selection, base *url.URL, r *itemfeed.FieldRule) string {
	scope := block
	if r.Cross != nil {
		scope = crossScope(scope, r.Cross)
	}
	if r.Within != "" {
		scope = scope.Find(r.Within).First()
	}
	if scope.Length() == 0 {
		return ""
	}

	matches := scope
	if r.Selector != "" {
		matches = scope.Find(r.Selector)
	}

	if r.Join != "" {
		var values []string
		matches.Each(func(_ int, s *goquery.Selection) {
			if v := extractValue(s, base, r); v != "" {
				values = append(values, v)
			}
		})
		return strings.Join(values, r.Join)
	}

	if r.Index != nil {
		i := *r.Index
		if i < 0 || i >= matches.Length() {
			return ""
		}
		matches = matches.Eq(i)
	} else {
		matches = matches.First()
	}
	if matches.Length() == 0 {
		return ""
	}

	return extractValue(matches, base, r)
}

// crossScope climbs to the closest ancestor (inclusive) and steps across
// element siblings. A missing step yields an empty selection.
func crossScope(block *goquery.Selection, c *itemfeed.CrossBlock) *goquery.Selection {
	scope := block
	if c.Ancestor != "" {
		scope = scope.Closest(c.Ancestor)
	}
	for i := 0; i < c.Sibling && scope.Length() > 0; i++ {
		scope = scope.Next()
	}
	for i := 0; i > c.Sibling && scope.Length() > 0; i-- {
		scope = scope.Prev()
	}
	return scope
}

func extractValue(s *goquery.Selection, base *url.URL, r *itemfeed.FieldRule) string {
	var v string
	switch r.Extract {
	case itemfeed.ExtractAttr:
		attr, _ := s.Attr(r.Attr)
		v = strings.TrimSpace(attr)
	case itemfeed.ExtractHref:
		href, ok := s.Attr(cmp.Or(r.Attr, "href"))
		if ok {
			v = resolveHref(base, href)
		}
	case itemfeed.ExtractStyleURL:
		style, _ := s.Attr(cmp.Or(r.Attr, "style"))
		v = StyleURL(style)
	default:
		v = cleanText(s.Text())
	}

	if r.Remove != "" {
		v = strings.TrimSpace(strings.Replace(v, r.Remove, "", 1))
	}
	return v
}

// resolveHref resolves an href the way a browser's anchor href property
// does. Empty or unparsable references yield "".
func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
