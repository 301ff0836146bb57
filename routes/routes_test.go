package routes_test

import (
	"testing"

	"github.com/fwojciec/itemfeed"
	"github.com/fwojciec/itemfeed/goquery"
	"github.com/fwojciec/itemfeed/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// extract runs a route's descriptor over html and normalizes the result
// the way the route would.
func extract(t *testing.T, route *itemfeed.Route, html string) []itemfeed.Entity {
	t.Helper()
	bags, err := goquery.NewExtractor().ExtractBlocks(html, route.Page.BaseURL, route.Page.Descriptor)
	require.NoError(t, err)
	n := itemfeed.Normalizer{Kind: route.Kind, BaseURL: route.Page.BaseURL, Describe: route.Describe}
	return n.NormalizeAll(bags)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("lists every route by name", func(t *testing.T) {
		t.Parallel()

		var names []string
		for _, r := range routes.Default().List() {
			names = append(names, r.Name)
		}

		assert.Equal(t, []string{"category", "chart", "clothing", "douban", "keyword", "livestart", "tag"}, names)
	})

	t.Run("every descriptor compiles", func(t *testing.T) {
		t.Parallel()

		for _, r := range routes.Default().List() {
			if r.Page == nil {
				continue
			}
			assert.NoError(t, goquery.Validate(r.Page.Descriptor), r.Name)
		}
	})

	t.Run("unknown route is not found", func(t *testing.T) {
		t.Parallel()

		_, err := routes.Default().Get("nope")

		assert.Equal(t, itemfeed.ENOTFOUND, itemfeed.ErrorCode(err))
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid route", func(t *testing.T) {
		t.Parallel()

		err := routes.NewRegistry().Register(&itemfeed.Route{Name: "broken"})

		assert.Equal(t, itemfeed.EINVALID, itemfeed.ErrorCode(err))
	})

	t.Run("replaces route with the same name", func(t *testing.T) {
		t.Parallel()

		reg := routes.NewRegistry()
		require.NoError(t, reg.Register(routes.Chart()))
		replacement := routes.Chart()
		replacement.Description = "replaced"
		require.NoError(t, reg.Register(replacement))

		got, err := reg.Get("chart")

		require.NoError(t, err)
		assert.Equal(t, "replaced", got.Description)
		assert.Len(t, reg.List(), 1)
	})
}

func TestRouteLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		route  *itemfeed.Route
		params itemfeed.Params
		want   string
	}{
		{"category", routes.Category(), itemfeed.Params{"categoryId": "750409452376692948"}, "https://www.duozhuayu.com/book-categories/750409452376692948"},
		{"category with subcategory", routes.Category(), itemfeed.Params{"categoryId": "1", "subCategoryId": "2"}, "https://www.duozhuayu.com/book-categories/1?subCategoryId=2"},
		{"chart", routes.Chart(), itemfeed.Params{"id": "765988201625163649"}, "https://www.duozhuayu.com/charts/765988201625163649"},
		{"tag", routes.Tag(), itemfeed.Params{"id": "42"}, "https://www.duozhuayu.com/tags/42"},
		{"keyword", routes.Keyword(), itemfeed.Params{"keyword": "a/b"}, "https://www.duozhuayu.com/search/book/a%2Fb"},
		{"keyword feed", routes.Keyword(), itemfeed.Params{}, "https://www.duozhuayu.com/book"},
		{"clothing", routes.Clothing(), itemfeed.Params{"keyword": "shirt"}, "https://www.duozhuayu.com/search/clothing/shirt?genderList=male"},
		{"douban", routes.DoubanMonthly(), nil, "https://m.douban.com/subject_collection/book_hot_monthly"},
		{"livestart", routes.LiveStart(), itemfeed.Params{"city": "上海"}, "https://www.livestart.com.cn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.route.Link(tt.params))
			if tt.route.Page != nil {
				assert.Equal(t, tt.want, tt.route.Page.URL(tt.params))
			}
		})
	}
}

func TestRouteTitles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "多抓鱼图书分类", routes.Category().Title(itemfeed.Params{"categoryId": "1"}))
	assert.Equal(t, "多抓鱼榜单 - 7", routes.Chart().Title(itemfeed.Params{"id": "7"}))
	assert.Equal(t, "多抓鱼 - 7", routes.Tag().Title(itemfeed.Params{"id": "7"}))
	assert.Equal(t, "多抓鱼书籍", routes.Keyword().Title(itemfeed.Params{}))
	assert.Equal(t, "多抓鱼书籍 村上春树", routes.Keyword().Title(itemfeed.Params{"keyword": "村上春树"}))
	assert.Equal(t, "多抓鱼服饰 - 衬衫", routes.Clothing().Title(itemfeed.Params{"keyword": "衬衫"}))
	assert.Equal(t, "豆瓣读书月度热门", routes.DoubanMonthly().Title(nil))
	assert.Equal(t, "LiveHouse - 上海 - 爵士", routes.LiveStart().Title(itemfeed.Params{"city": "上海", "keyword": "爵士"}))
}

func TestCategory(t *testing.T) {
	t.Parallel()

	t.Run("reads card fields and the comment after its section", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="list">
<div class="jsx-1569806635 section">
  <div class="book-item">
    <a href="/books/101?from=category">
      <div class="img" style='background-image: url("https://image.duozhuayu.com/101.jpg")'></div>
      <div class="title"> 三体 </div>
    </a>
    <div class="info">刘慈欣</div><div class="info">重庆出版社</div><div class="info">2008-1</div>
    <div class="Price">¥12.5</div>
  </div>
</div>
<div class="comment">
  <p class="reason">好看</p><span class="name">读者A</span>
  <div class="comment-footer"><span> 3天前 </span></div>
</div>
<div class="jsx-1569806635 section">
  <div class="book-item">
    <a href="/books/102"><div class="title">沙丘</div></a>
    <div class="info">弗兰克·赫伯特</div>
  </div>
</div>
</div></body></html>`

		entities := extract(t, routes.Category(), html)

		require.Len(t, entities, 2)
		first := entities[0].(*itemfeed.Book)
		assert.Equal(t, "101", first.ID)
		assert.Equal(t, "https://www.duozhuayu.com/books/101", first.URL)
		assert.Equal(t, "三体", first.Title)
		assert.Equal(t, "https://image.duozhuayu.com/101.jpg", first.CoverURL)
		assert.Equal(t, "刘慈欣 | 重庆出版社 | 2008-1 | ¥12.5\n\n评论: 好看 (读者A - 3天前)", first.Description)

		second := entities[1].(*itemfeed.Book)
		assert.Equal(t, "弗兰克·赫伯特 |  |  | ", second.Description)
		assert.Empty(t, second.Comment)
	})

	t.Run("falls back to bare book anchors", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/books/7"><span class="title">百年孤独</span></a>
<a href="/about">关于</a>
</body></html>`

		entities := extract(t, routes.Category(), html)

		require.Len(t, entities, 1)
		assert.Equal(t, "https://www.duozhuayu.com/books/7", entities[0].EntityURL())
		assert.Equal(t, "百年孤独", entities[0].EntityTitle())
	})
}

func TestChart(t *testing.T) {
	t.Parallel()

	html := `<div class="book-item"><a href="https://www.duozhuayu.com/books/9?x=1"><div class="title">活着</div></a>
<div class="info">余华</div><div class="info">作家出版社</div><div class="Price">¥8</div></div>`

	entities := extract(t, routes.Chart(), html)

	require.Len(t, entities, 1)
	book := entities[0].(*itemfeed.Book)
	assert.Equal(t, "https://www.duozhuayu.com/books/9", book.URL)
	assert.Equal(t, "余华", book.Author)
	assert.Equal(t, "作家出版社", book.Publisher)
	assert.Empty(t, book.PublishDate)
	assert.Equal(t, "余华 | 作家出版社 |  | ¥8", book.Description)
}

func TestTag(t *testing.T) {
	t.Parallel()

	html := `<div class="book-item-wrap">
  <div class="book-item">
    <a href="/books/3"><div class="title">挪威的森林</div></a>
    <div class="info">村上春树</div>
    <div class="img" style='background: url("https://image.duozhuayu.com/3.jpg") center'></div>
  </div>
  <div class="reason">青春</div>
</div>
<div class="book-item-wrap"><div class="reason">no card</div></div>`

	entities := extract(t, routes.Tag(), html)

	require.Len(t, entities, 1)
	book := entities[0].(*itemfeed.Book)
	assert.Equal(t, "挪威的森林", book.Title)
	assert.Equal(t, "村上春树", book.Author)
	assert.Equal(t, "https://image.duozhuayu.com/3.jpg", book.CoverURL)
	assert.Equal(t, "青春", book.Description)
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	html := `<div class="book-feed-item"><a href="/books/5?q=x"></a>
  <div class="book-cover"><div class="image" style='background-image: url("https://image.duozhuayu.com/5.jpg")'></div></div>
  <div class="content"><div class="title">海边的卡夫卡</div></div>
  <span class="book-tag">#小说</span><span class="book-tag">#</span><span class="book-tag">#日本</span>
</div>
<div class="book-feed-item"><a href="/books/6"></a>
  <div class="book-cover"><img src="https://image.duozhuayu.com/6.jpg"></div>
  <div class="content"><div class="title">1Q84</div></div>
</div>`

	entities := extract(t, routes.Keyword(), html)

	require.Len(t, entities, 2)
	first := entities[0].(*itemfeed.Book)
	assert.Equal(t, "5", first.ID)
	assert.Equal(t, []string{"小说", "日本"}, first.Tags)
	assert.Equal(t, "标签: 小说, 日本", first.Description)
	assert.Equal(t, "https://image.duozhuayu.com/5.jpg", first.CoverURL)

	second := entities[1].(*itemfeed.Book)
	assert.Equal(t, "https://image.duozhuayu.com/6.jpg", second.CoverURL)
	assert.Empty(t, second.Description)
}

func TestClothing(t *testing.T) {
	t.Parallel()

	html := `<div class="clothing-product-item"><a href="/clothing/88">
  <div class="image-container"><div class="root" style='background-image: url("https://image.duozhuayu.com/88.jpg")'></div></div>
  <div class="brand">UNIQLO</div><div class="title">牛津纺衬衫</div>
  <div class="Price">¥39</div><span class="Label">3折</span>
  <p class="recommend-sentence">几乎全新</p>
</a></div>`

	entities := extract(t, routes.Clothing(), html)

	require.Len(t, entities, 1)
	item := entities[0].(*itemfeed.ApparelItem)
	assert.Equal(t, "UNIQLO - 牛津纺衬衫", itemfeed.ItemTitle(item))
	assert.Equal(t, "¥39", item.Price)
	assert.Equal(t, "3折", item.Discount)
	assert.Equal(t, "几乎全新", item.RecommendationText)
	assert.Equal(t, "https://image.duozhuayu.com/88.jpg", item.CoverURL)
}

func TestRouteParams(t *testing.T) {
	t.Parallel()

	_, err := routes.LiveStart().BindParams(nil)
	assert.Equal(t, itemfeed.EINVALID, itemfeed.ErrorCode(err))

	params, err := routes.Keyword().BindParams(nil)
	require.NoError(t, err)
	assert.Empty(t, params.Get("keyword"))

	_, err = routes.DoubanMonthly().BindParams([]string{"extra"})
	assert.Equal(t, itemfeed.EINVALID, itemfeed.ErrorCode(err))
}
