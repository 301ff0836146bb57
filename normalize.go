package itemfeed

import (
	"math"
	"strconv"
	"strings"
)

// DescriptionStyle selects how a Book's free-text description is composed
// from its extracted fields.
type DescriptionStyle string

// Book description styles.
const (
	// DescribeField uses the bag's description field as is.
	DescribeField DescriptionStyle = ""

	// DescribeMeta joins author, publisher, publish date and price, and
	// appends the reader comment when one was found.
	DescribeMeta DescriptionStyle = "meta"

	// DescribeComment uses the reader comment.
	DescribeComment DescriptionStyle = "comment"

	// DescribeTags lists the book's tags.
	DescribeTags DescriptionStyle = "tags"
)

// Normalizer maps field bags into canonical entities.
// The zero value normalizes books whose links are absolute or start with
// a host name.
type Normalizer struct {
	Kind EntityKind

	// BaseURL resolves relative links found in bags.
	BaseURL string

	// Describe controls Book descriptions.
	Describe DescriptionStyle
}

// Normalize canonicalizes the bag's link and projects the bag into an
// entity. It reports false when the bag must be dropped because its link
// cannot be canonicalized.
func (n *Normalizer) Normalize(bag RawFieldBag) (Entity, bool) {
	link := CanonicalURL(bag.Link, n.BaseURL)
	if link == "" {
		return nil, false
	}

	common := Common{
		ID:       LinkID(link),
		Title:    bag.Get(FieldTitle),
		URL:      link,
		CoverURL: bag.Get(FieldImage),
	}
	if common.ID == "" {
		common.ID = link
	}

	switch n.Kind {
	case KindApparel:
		return &ApparelItem{
			Common:             common,
			Brand:              bag.Get(FieldBrand),
			Price:              bag.Get(FieldPrice),
			Discount:           bag.Get(FieldDiscount),
			RecommendationText: bag.Get(FieldRecommend),
		}, true
	case KindShow:
		return &Show{
			Common:     common,
			City:       bag.Get(FieldCity),
			Venue:      bag.Get(FieldVenue),
			Performers: bag.Get(FieldPerformers),
			PriceRange: bag.Get(FieldPrices),
			PosterRef:  bag.Get(FieldPoster),
			ShowTime:   ParseEpoch(bag.Get(FieldShowTime)),
			CreateTime: ParseEpoch(bag.Get(FieldCreateTime)),
			UpdateTime: ParseEpoch(bag.Get(FieldUpdateTime)),
		}, true
	default:
		book := &Book{
			Common:      common,
			Author:      bag.Get(FieldAuthor),
			Publisher:   bag.Get(FieldPublisher),
			PublishDate: bag.Get(FieldPublishDate),
			Price:       bag.Get(FieldPrice),
			Rating:      bag.Get(FieldRating),
			Comment:     bag.Get(FieldComment),
			Commenter:   bag.Get(FieldCommenter),
			CommentDate: bag.Get(FieldCommentDate),
			Tags:        splitTags(bag.Get(FieldTags)),
		}
		book.Description = n.describe(book, bag)
		return book, true
	}
}

// NormalizeAll normalizes every bag and returns the surviving entities in
// input order.
func (n *Normalizer) NormalizeAll(bags []RawFieldBag) []Entity {
	entities := make([]Entity, 0, len(bags))
	for _, bag := range bags {
		if e, ok := n.Normalize(bag); ok {
			entities = append(entities, e)
		}
	}
	return entities
}

func (n *Normalizer) describe(b *Book, bag RawFieldBag) string {
	switch n.Describe {
	case DescribeMeta:
		desc := strings.Join([]string{b.Author, b.Publisher, b.PublishDate, b.Price}, " | ")
		if b.Comment != "" {
			desc += "\n\n评论: " + b.Comment + " (" + b.Commenter + " - " + b.CommentDate + ")"
		}
		return desc
	case DescribeComment:
		return b.Comment
	case DescribeTags:
		if len(b.Tags) == 0 {
			return ""
		}
		return "标签: " + strings.Join(b.Tags, ", ")
	default:
		return bag.Get(FieldDescription)
	}
}

// TagSeparator joins multi-valued tag fields in a bag.
const TagSeparator = ", "

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, TagSeparator) {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseEpoch leniently parses a Unix timestamp in seconds. Fractions are
// truncated; anything unparsable, non-finite or negative yields 0.
func ParseEpoch(s string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}
