// Package bloom answers "was this link ever recorded?" without a storage
// lookup when the answer is no.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate sizes filters created by NewLinkFilter.
const DefaultFalsePositiveRate = 0.01

// LinkFilter holds canonical links. MayContain never reports an added
// link as absent; it may report an absent link as present, so a positive
// still needs an exact lookup.
type LinkFilter struct {
	f *bloom.BloomFilter
}

// NewLinkFilter creates a filter sized for n expected links.
func NewLinkFilter(n uint) *LinkFilter {
	return &LinkFilter{
		f: bloom.NewWithEstimates(max(n, 1), DefaultFalsePositiveRate),
	}
}

// Add records link.
func (l *LinkFilter) Add(link string) {
	l.f.AddString(link)
}

// MayContain reports whether link may have been added.
func (l *LinkFilter) MayContain(link string) bool {
	return l.f.TestString(link)
}
