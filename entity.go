package itemfeed

// EntityKind identifies which canonical shape a bag is normalized into.
type EntityKind string

// Supported entity kinds.
const (
	KindBook    EntityKind = "book"
	KindApparel EntityKind = "apparel"
	KindShow    EntityKind = "show"
)

// Field names shared by descriptors, payload sources and the Normalizer.
const (
	FieldTitle       = "title"
	FieldImage       = "imgUrl"
	FieldAuthor      = "author"
	FieldPublisher   = "publisher"
	FieldPublishDate = "publishDate"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldRating      = "rating"
	FieldComment     = "comment"
	FieldCommenter   = "user"
	FieldCommentDate = "dateText"
	FieldTags        = "tags"
	FieldBrand       = "brand"
	FieldDiscount    = "discount"
	FieldRecommend   = "recommendSentence"
	FieldCity        = "city"
	FieldVenue       = "site"
	FieldPerformers  = "performers"
	FieldPrices      = "prices"
	FieldPoster      = "poster"
	FieldShowTime    = "showTime"
	FieldCreateTime  = "createTime"
	FieldUpdateTime  = "updateTime"
)

// Entity is the family of canonical items produced by the Normalizer.
type Entity interface {
	Kind() EntityKind
	EntityID() string
	EntityTitle() string
	EntityURL() string
}

// Common holds the attributes every entity carries.
// ID and URL are never empty on an emitted entity.
type Common struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	CoverURL string `json:"coverUrl,omitempty"`
}

func (c *Common) EntityID() string { return c.ID }
func (c *Common) EntityTitle() string { return c.Title }
func (c *Common) EntityURL() string { return c.URL }

// Book is a listed book.
type Book struct {
	Common
	Author      string   `json:"author,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	Price       string   `json:"price,omitempty"`
	Description string   `json:"description,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	Comment     string   `json:"comment,omitempty"`
	Commenter   string   `json:"commenter,omitempty"`
	CommentDate string   `json:"commentDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Kind implements Entity.
func (b *Book) Kind() EntityKind { return KindBook }

// ApparelItem is a listed clothing product.
type ApparelItem struct {
	Common
	Brand              string `json:"brand,omitempty"`
	Price              string `json:"price,omitempty"`
	Discount           string `json:"discount,omitempty"`
	RecommendationText string `json:"recommendationText,omitempty"`
}

// Kind implements Entity.
func (a *ApparelItem) Kind() EntityKind { return KindApparel }

// Show is a live event listing. Times are epoch seconds; 0 means unknown.
type Show struct {
	Common
	City       string `json:"city,omitempty"`
	Venue      string `json:"venue,omitempty"`
	Performers string `json:"performers,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
	PosterRef  string `json:"posterRef,omitempty"`
	ShowTime   int64  `json:"showTime,omitempty"`
	CreateTime int64  `json:"createTime,omitempty"`
	UpdateTime int64  `json:"updateTime,omitempty"`
}

// Kind implements Entity.
func (s *Show) Kind() EntityKind { return KindShow }

// ItemTitle returns the feed item title for an entity.
// Apparel titles are prefixed with the brand.
func ItemTitle(e Entity) string {
	if a, ok := e.(*ApparelItem); ok && a.Brand != "" {
		return a.Brand + " - " + a.Title
	}
	return e.EntityTitle()
}
