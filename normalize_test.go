package itemfeed_test

import (
	"testing"

	"github.com/fwojciec/itemfeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bag(link string, kv ...string) itemfeed.RawFieldBag {
	b := itemfeed.RawFieldBag{Link: link}
	for i := 0; i+1 < len(kv); i += 2 {
		b.Set(kv[i], kv[i+1])
	}
	return b
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("derives id from last path segment of canonical link", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindBook}
		e, ok := n.Normalize(bag("https://x.test/books/12345?from=chart", itemfeed.FieldTitle, "Dune"))

		require.True(t, ok)
		assert.Equal(t, "12345", e.EntityID())
		assert.Equal(t, "https://x.test/books/12345", e.EntityURL())
		assert.Equal(t, "Dune", e.EntityTitle())
	})

	t.Run("drops bag with empty link", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindBook}
		e, ok := n.Normalize(bag("", itemfeed.FieldTitle, "Orphan"))

		assert.False(t, ok)
		assert.Nil(t, e)
	})

	t.Run("drops relative link without base", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindBook}
		e, ok := n.Normalize(bag("books/12345", itemfeed.FieldTitle, "Dune"))

		assert.False(t, ok)
		assert.Nil(t, e)
	})

	t.Run("drops bag whose link cannot be canonicalized", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindApparel, BaseURL: "https://x.test"}
		_, ok := n.Normalize(bag("javascript:void(0)"))

		assert.False(t, ok)
	})

	t.Run("resolves relative link against base", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindBook, BaseURL: "https://www.duozhuayu.com/charts/1"}
		e, ok := n.Normalize(bag("/books/777?ref=x"))

		require.True(t, ok)
		assert.Equal(t, "https://www.duozhuayu.com/books/777", e.EntityURL())
		assert.Equal(t, "777", e.EntityID())
	})

	t.Run("uses canonical link as id when link has no path", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindBook}
		e, ok := n.Normalize(bag("https://x.test/?id=1"))

		require.True(t, ok)
		assert.Equal(t, "https://x.test/", e.EntityID())
	})

	t.Run("maps book fields with missing values as empty", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindBook}
		e, ok := n.Normalize(bag("https://x.test/books/1",
			itemfeed.FieldTitle, "T",
			itemfeed.FieldAuthor, "Author A",
			itemfeed.FieldImage, "https://img.test/1.jpg",
		))

		require.True(t, ok)
		book, isBook := e.(*itemfeed.Book)
		require.True(t, isBook)
		assert.Equal(t, "Author A", book.Author)
		assert.Equal(t, "https://img.test/1.jpg", book.CoverURL)
		assert.Empty(t, book.Publisher)
		assert.Empty(t, book.PublishDate)
		assert.Empty(t, book.Comment)
		assert.Nil(t, book.Tags)
	})

	t.Run("maps apparel fields", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindApparel}
		e, ok := n.Normalize(bag("https://x.test/clothing/55",
			itemfeed.FieldTitle, "Wool Coat",
			itemfeed.FieldBrand, "Acme",
			itemfeed.FieldPrice, "¥120",
			itemfeed.FieldDiscount, "3折",
		))

		require.True(t, ok)
		item, isApparel := e.(*itemfeed.ApparelItem)
		require.True(t, isApparel)
		assert.Equal(t, itemfeed.KindApparel, item.Kind())
		assert.Equal(t, "Acme", item.Brand)
		assert.Equal(t, "¥120", item.Price)
		assert.Equal(t, "3折", item.Discount)
		assert.Empty(t, item.RecommendationText)
		assert.Equal(t, "Acme - Wool Coat", itemfeed.ItemTitle(item))
	})

	t.Run("parses show times leniently", func(t *testing.T) {
		t.Parallel()

		n := &itemfeed.Normalizer{Kind: itemfeed.KindShow}
		e, ok := n.Normalize(bag("www.live.test/show/9",
			itemfeed.FieldTitle, "Gig",
			itemfeed.FieldShowTime, "1735732800",
			itemfeed.FieldCreateTime, "garbage",
			itemfeed.FieldUpdateTime, "1735732800.9",
			itemfeed.FieldPrices, "80 - 120",
		))

		require.True(t, ok)
		show, isShow := e.(*itemfeed.Show)
		require.True(t, isShow)
		assert.Equal(t, "https://www.live.test/show/9", show.URL)
		assert.Equal(t, "9", show.ID)
		assert.Equal(t, int64(1735732800), show.ShowTime)
		assert.Equal(t, int64(0), show.CreateTime)
		assert.Equal(t, int64(1735732800), show.UpdateTime)
		assert.Equal(t, "80 - 120", show.PriceRange)
	})
}

func TestNormalizer_Describe(t *testing.T) {
	t.Parallel()

	full := bag("https://x.test/books/1",
		itemfeed.FieldAuthor, "Author A",
		itemfeed.FieldPublisher, "Publisher B",
		itemfeed.FieldPublishDate, "2020-01-01",
		itemfeed.FieldPrice, "¥12",
		itemfeed.FieldComment, "Great read",
		itemfeed.FieldCommenter, "reader",
		itemfeed.FieldCommentDate, "3天前",
		itemfeed.FieldTags, "科幻, 小说",
		itemfeed.FieldDescription, "as given",
	)

	tests := []struct {
		style itemfeed.DescriptionStyle
		in    itemfeed.RawFieldBag
		want  string
	}{
		{itemfeed.DescribeMeta, full, "Author A | Publisher B | 2020-01-01 | ¥12\n\n评论: Great read (reader - 3天前)"},
		{itemfeed.DescribeMeta, bag("https://x.test/books/1", itemfeed.FieldAuthor, "Author A"), "Author A |  |  | "},
		{itemfeed.DescribeComment, full, "Great read"},
		{itemfeed.DescribeTags, full, "标签: 科幻, 小说"},
		{itemfeed.DescribeTags, bag("https://x.test/books/1"), ""},
		{itemfeed.DescribeField, full, "as given"},
	}

	for _, tt := range tests {
		n := &itemfeed.Normalizer{Kind: itemfeed.KindBook, Describe: tt.style}
		e, ok := n.Normalize(tt.in)
		require.True(t, ok)
		assert.Equal(t, tt.want, e.(*itemfeed.Book).Description, "style %q", tt.style)
	}
}

func TestNormalizer_NormalizeAll(t *testing.T) {
	t.Parallel()

	n := &itemfeed.Normalizer{Kind: itemfeed.KindBook}
	entities := n.NormalizeAll([]itemfeed.RawFieldBag{
		bag("https://x.test/books/1"),
		bag(""),
		bag("https://x.test/books/2"),
		bag("mailto:nobody@x.test"),
		bag("https://x.test/books/3"),
	})

	require.Len(t, entities, 3)
	assert.Equal(t, "1", entities[0].EntityID())
	assert.Equal(t, "2", entities[1].EntityID())
	assert.Equal(t, "3", entities[2].EntityID())
	for _, e := range entities {
		assert.NotEmpty(t, e.EntityID())
		assert.NotEmpty(t, e.EntityURL())
	}
}

func TestParseEpoch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(42), itemfeed.ParseEpoch("42"))
	assert.Equal(t, int64(42), itemfeed.ParseEpoch(" 42 "))
	assert.Equal(t, int64(0), itemfeed.ParseEpoch(""))
	assert.Equal(t, int64(0), itemfeed.ParseEpoch("NaN"))
	assert.Equal(t, int64(0), itemfeed.ParseEpoch("Inf"))
	assert.Equal(t, int64(0), itemfeed.ParseEpoch("-5"))
	assert.Equal(t, int64(0), itemfeed.ParseEpoch("1e400"))
}

func TestRawFieldBag(t *testing.T) {
	t.Parallel()

	var b itemfeed.RawFieldBag
	b.Set("a", "1")
	b.Set("b", "2")
	b.Set("a", "3")

	assert.Equal(t, "3", b.Get("a"))
	assert.Equal(t, "2", b.Get("b"))
	assert.Equal(t, "", b.Get("missing"))
	require.Len(t, b.Fields, 2)
	assert.Equal(t, "a", b.Fields[0].Name)
}
