package itemfeed

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a rendered item
	// description, into Markdown.
	Convert(html string) (string, error)
}
