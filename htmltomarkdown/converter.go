// Package htmltomarkdown turns rendered item descriptions into Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/itemfeed"
)

var _ itemfeed.Converter = (*Converter)(nil)

// Converter converts description HTML (cover images, labelled lines split
// by <br>, links) to Markdown.
type Converter struct {
	conv    *converter.Converter
	baseURL string
}

// Option configures a Converter.
type Option func(*Converter)

// WithBaseURL resolves relative image and link references against u.
func WithBaseURL(u string) Option {
	return func(c *Converter) {
		c.baseURL = u
	}
}

// NewConverter creates a Converter. Strong text uses "**" so labels such
// as "**书名：**" stay readable next to CJK text, and lists use "-".
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithStrongDelimiter("**"),
					commonmark.WithEmDelimiter("*"),
					commonmark.WithBulletListMarker("-"),
				),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML fragment into Markdown. A <br> becomes a
// hard line break, so each labelled line keeps its own line.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", itemfeed.Errorf(itemfeed.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.baseURL != "" {
		opts = append(opts, converter.WithDomain(c.baseURL))
	}

	md, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
