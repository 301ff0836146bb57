package routes

import (
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/itemfeed"
)

// DuozhuayuURL is the duozhuayu web site. Relative links on its pages
// resolve against it.
const DuozhuayuURL = "https://www.duozhuayu.com"

// commentSection is the wrapper whose next sibling holds a book's reader
// comment on category pages.
const commentSection = ".jsx-1569806635"

func text(name, selector string) itemfeed.FieldRule {
	return itemfeed.FieldRule{Name: name, Selector: selector, Extract: itemfeed.ExtractText}
}

func nth(name, selector string, i int) itemfeed.FieldRule {
	r := text(name, selector)
	r.Index = itemfeed.At(i)
	return r
}

func styleURL(name, selector string) itemfeed.FieldRule {
	return itemfeed.FieldRule{Name: name, Selector: selector, Extract: itemfeed.ExtractStyleURL}
}

func anchor() itemfeed.FieldRule {
	return itemfeed.FieldRule{Name: "link", Selector: "a", Extract: itemfeed.ExtractHref}
}

// bookFields are the fields of a listing card: title, the three .info
// lines (author, publisher, publish date), price and the cover image held
// in an inline style.
func bookFields() []itemfeed.FieldRule {
	return []itemfeed.FieldRule{
		text(itemfeed.FieldTitle, ".title"),
		nth(itemfeed.FieldAuthor, ".info", 0),
		nth(itemfeed.FieldPublisher, ".info", 1),
		nth(itemfeed.FieldPublishDate, ".info", 2),
		text(itemfeed.FieldPrice, ".Price"),
		styleURL(itemfeed.FieldImage, ".img"),
	}
}

// CategoryDescriptor locates book cards on a category page. The page has
// shipped several layouts, so five block selectors are tried in order.
// Comments live outside the card, in the sibling after its section.
func CategoryDescriptor() *itemfeed.BlockDescriptor {
	cross := &itemfeed.CrossBlock{Ancestor: commentSection, Sibling: 1}
	fields := append(bookFields(),
		itemfeed.FieldRule{Name: itemfeed.FieldComment, Selector: ".reason", Extract: itemfeed.ExtractText, Cross: cross},
		itemfeed.FieldRule{Name: itemfeed.FieldCommenter, Selector: ".name", Extract: itemfeed.ExtractText, Cross: cross},
		itemfeed.FieldRule{Name: itemfeed.FieldCommentDate, Selector: ".comment-footer span", Extract: itemfeed.ExtractText, Cross: cross},
	)
	return &itemfeed.BlockDescriptor{
		Name: "category",
		Candidates: []itemfeed.Candidate{
			{Selector: commentSection + ".book-item"},
			{Selector: ".book-item"},
			{Selector: `[class*="book-item"]`},
			{Selector: ".main"},
			// Bare anchors are their own link.
			{Selector: `a[href*="/books/"]`, Link: &itemfeed.FieldRule{Name: "link", Extract: itemfeed.ExtractHref}},
		},
		Link:   anchor(),
		Fields: fields,
	}
}

// ChartDescriptor locates book cards on a chart page.
func ChartDescriptor() *itemfeed.BlockDescriptor {
	return &itemfeed.BlockDescriptor{
		Name:       "chart",
		Candidates: []itemfeed.Candidate{{Selector: ".book-item"}},
		Link:       anchor(),
		Fields:     bookFields(),
	}
}

// TagDescriptor locates books on a tag page. Each .book-item-wrap holds a
// .book-item card next to the reader comment.
func TagDescriptor() *itemfeed.BlockDescriptor {
	within := func(r itemfeed.FieldRule) itemfeed.FieldRule {
		r.Within = ".book-item"
		return r
	}
	return &itemfeed.BlockDescriptor{
		Name:       "tag",
		Candidates: []itemfeed.Candidate{{Selector: ".book-item-wrap"}},
		Link:       within(anchor()),
		Fields: []itemfeed.FieldRule{
			within(text(itemfeed.FieldTitle, ".title")),
			within(nth(itemfeed.FieldAuthor, ".info", 0)),
			within(styleURL(itemfeed.FieldImage, ".img")),
			text(itemfeed.FieldComment, ".reason"),
		},
	}
}

// KeywordDescriptor locates books in the book feed and in search results.
func KeywordDescriptor() *itemfeed.BlockDescriptor {
	img := styleURL(itemfeed.FieldImage, ".book-cover .image")
	img.Fallbacks = []itemfeed.FieldRule{{Selector: ".book-cover img", Extract: itemfeed.ExtractAttr, Attr: "src"}}
	return &itemfeed.BlockDescriptor{
		Name:       "keyword",
		Candidates: []itemfeed.Candidate{{Selector: ".book-feed-item"}},
		Link:       anchor(),
		Fields: []itemfeed.FieldRule{
			text(itemfeed.FieldTitle, ".content .title"),
			img,
			{Name: itemfeed.FieldTags, Selector: ".book-tag", Extract: itemfeed.ExtractText, Join: itemfeed.TagSeparator, Remove: "#"},
		},
	}
}

// ClothingDescriptor locates product cards in clothing search results.
func ClothingDescriptor() *itemfeed.BlockDescriptor {
	return &itemfeed.BlockDescriptor{
		Name:       "clothing",
		Candidates: []itemfeed.Candidate{{Selector: ".clothing-product-item"}},
		Link:       anchor(),
		Fields: []itemfeed.FieldRule{
			text(itemfeed.FieldBrand, ".brand"),
			text(itemfeed.FieldTitle, ".title"),
			text(itemfeed.FieldPrice, ".Price"),
			text(itemfeed.FieldDiscount, ".Label"),
			styleURL(itemfeed.FieldImage, ".image-container .root"),
			text(itemfeed.FieldRecommend, ".recommend-sentence"),
		},
	}
}

func categoryURL(p itemfeed.Params) string {
	u := DuozhuayuURL + "/book-categories/" + url.PathEscape(p.Get("categoryId"))
	if sub := p.Get("subCategoryId"); sub != "" {
		u += "?subCategoryId=" + url.QueryEscape(sub)
	}
	return u
}

// Category lists the books of a category, optionally narrowed to a
// subcategory. Reader comments are appended to the description. A page
// with no books is an error.
func Category() *itemfeed.Route {
	return &itemfeed.Route{
		Name:        "category",
		Description: "多抓鱼分类书籍",
		Example:     "category 750409452376692948 767083323578261442",
		Params: []itemfeed.Param{
			{Name: "categoryId", Help: "分类 ID，可在 URL 中找到"},
			{Name: "subCategoryId", Help: "子分类 ID，可在 URL 中找到", Optional: true},
		},
		Kind: itemfeed.KindBook,
		Page: &itemfeed.PageSource{
			URL:     categoryURL,
			BaseURL: DuozhuayuURL,
			Fetch: itemfeed.FetchOptions{
				WaitSelector: "body",
				Settle:       5 * time.Second,
				Timeout:      30 * time.Second,
			},
			Descriptor: CategoryDescriptor(),
		},
		Link:         categoryURL,
		Title:        func(itemfeed.Params) string { return "多抓鱼图书分类" },
		Describe:     itemfeed.DescribeMeta,
		RequireItems: true,
		Dedupe:       true, // [class*="book-item"] can match both a card and its wrapper.
	}
}

// Chart lists the books of a chart.
func Chart() *itemfeed.Route {
	link := func(p itemfeed.Params) string {
		return DuozhuayuURL + "/charts/" + url.PathEscape(p.Get("id"))
	}
	return &itemfeed.Route{
		Name:        "chart",
		Description: "多抓鱼榜单书籍",
		Example:     "chart 765988201625163649",
		Params:      []itemfeed.Param{{Name: "id", Help: "榜单 ID，可在 URL 中找到"}},
		Kind:        itemfeed.KindBook,
		Page: &itemfeed.PageSource{
			URL:        link,
			BaseURL:    DuozhuayuURL,
			Fetch:      itemfeed.FetchOptions{Settle: 2 * time.Second},
			Descriptor: ChartDescriptor(),
		},
		Link:     link,
		Title:    func(p itemfeed.Params) string { return "多抓鱼榜单 - " + p.Get("id") },
		Describe: itemfeed.DescribeMeta,
	}
}

// Tag lists the books of a tag with their reader comments.
func Tag() *itemfeed.Route {
	link := func(p itemfeed.Params) string {
		return DuozhuayuURL + "/tags/" + url.PathEscape(p.Get("id"))
	}
	return &itemfeed.Route{
		Name:        "tag",
		Description: "多抓鱼标签书籍",
		Example:     "tag 750411312898310145",
		Params:      []itemfeed.Param{{Name: "id", Help: "标签 ID，可在 URL 中找到"}},
		Kind:        itemfeed.KindBook,
		Page: &itemfeed.PageSource{
			URL:        link,
			BaseURL:    DuozhuayuURL,
			Fetch:      itemfeed.FetchOptions{Settle: 2 * time.Second},
			Descriptor: TagDescriptor(),
		},
		Link:     link,
		Title:    func(p itemfeed.Params) string { return "多抓鱼 - " + p.Get("id") },
		Describe: itemfeed.DescribeComment,
	}
}

// Keyword lists search results for a keyword, or the book feed when no
// keyword is given. Items may have no description.
func Keyword() *itemfeed.Route {
	link := func(p itemfeed.Params) string {
		if kw := p.Get("keyword"); kw != "" {
			return DuozhuayuURL + "/search/book/" + url.PathEscape(kw)
		}
		return DuozhuayuURL + "/book"
	}
	return &itemfeed.Route{
		Name:        "keyword",
		Description: "多抓鱼书籍",
		Example:     "keyword 村上春树",
		Params:      []itemfeed.Param{{Name: "keyword", Help: "搜索关键词，默认为空", Optional: true}},
		Kind:        itemfeed.KindBook,
		Page: &itemfeed.PageSource{
			URL:        link,
			BaseURL:    DuozhuayuURL,
			Fetch:      itemfeed.FetchOptions{Settle: 2 * time.Second},
			Descriptor: KeywordDescriptor(),
		},
		Link: link,
		Title: func(p itemfeed.Params) string {
			return strings.TrimSpace("多抓鱼书籍 " + p.Get("keyword"))
		},
		Describe:   itemfeed.DescribeTags,
		AllowEmpty: true,
	}
}

// Clothing lists men's clothing search results for a keyword.
func Clothing() *itemfeed.Route {
	link := func(p itemfeed.Params) string {
		return DuozhuayuURL + "/search/clothing/" + url.PathEscape(p.Get("keyword")) + "?genderList=male"
	}
	return &itemfeed.Route{
		Name:        "clothing",
		Description: "多抓鱼服饰搜索",
		Example:     "clothing 衬衫",
		Params:      []itemfeed.Param{{Name: "keyword", Help: "搜索关键词"}},
		Kind:        itemfeed.KindApparel,
		Page: &itemfeed.PageSource{
			URL:        link,
			BaseURL:    DuozhuayuURL,
			Fetch:      itemfeed.FetchOptions{Settle: 2 * time.Second},
			Descriptor: ClothingDescriptor(),
		},
		Link:  link,
		Title: func(p itemfeed.Params) string { return "多抓鱼服饰 - " + p.Get("keyword") },
	}
}
