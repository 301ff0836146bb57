// Package douban reads Douban's monthly hot book collection.
package douban

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/fwojciec/itemfeed"
)

const (
	// BaseURL is the mobile site that serves the collection API.
	BaseURL = "https://m.douban.com"

	// CollectionURL is the human-facing page of the monthly collection.
	CollectionURL = BaseURL + "/subject_collection/book_hot_monthly"

	// FeedTitle names the monthly collection feed.
	FeedTitle = "豆瓣读书月度热门"

	apiURL = BaseURL + "/rexxar/api/v2/subject_collection/book_hot_monthly/items"

	unknownTitle  = "未知标题"
	unknownAuthor = "未知"
	noRating      = "暂无评分"
)

// Ensure MonthlyBooks implements itemfeed.PayloadSource at compile time.
var _ itemfeed.PayloadSource = (*MonthlyBooks)(nil)

// MonthlyBooks projects the monthly hot books collection into book bags.
type MonthlyBooks struct{}

// Request returns the first page of fifty collection items. The API only
// answers requests that look like they come from the mobile site.
func (MonthlyBooks) Request(itemfeed.Params) *itemfeed.PayloadRequest {
	return &itemfeed.PayloadRequest{
		URL: apiURL,
		Query: url.Values{
			"start":      {"0"},
			"count":      {"50"},
			"updated_at": {""},
			"items_only": {"1"},
			"type_tag":   {""},
			"for_mobile": {"1"},
		},
		Headers: map[string]string{
			"Accept":          "*/*",
			"Accept-Language": "zh-CN,zh;q=0.9,en-US;q=0.8,en;q=0.7",
			"Cache-Control":   "no-cache",
			"Referer":         CollectionURL + "?dt_dapp=1",
			"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/134.0.0.0 Safari/537.36",
		},
	}
}

type response struct {
	Items *[]item `json:"subject_collection_items"`
}

type item struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	CardSubtitle string  `json:"card_subtitle"`
	CoverURL     string  `json:"cover_url"`
	Pic          *pic    `json:"pic"`
	Rating       *rating `json:"rating"`
}

type pic struct {
	Normal string `json:"normal"`
}

type rating struct {
	Value json.Number `json:"value"`
	Count json.Number `json:"count"`
}

// Bags decodes the collection payload. A payload without the item list is
// EINVALID.
func (MonthlyBooks) Bags(payload []byte) ([]itemfeed.RawFieldBag, error) {
	var resp response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "invalid Douban response: %v", err)
	}
	if resp.Items == nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "invalid Douban response: missing subject_collection_items")
	}

	bags := make([]itemfeed.RawFieldBag, 0, len(*resp.Items))
	for _, it := range *resp.Items {
		bags = append(bags, it.bag())
	}
	return bags, nil
}

func (it item) bag() itemfeed.RawFieldBag {
	link := it.URL
	if link == "" && it.ID != "" {
		link = BaseURL + "/book/subject/" + it.ID + "/"
	}

	title := it.Title
	if title == "" {
		title = unknownTitle
	}

	author, _, _ := strings.Cut(it.CardSubtitle, "/")
	author = strings.TrimSpace(author)
	if author == "" {
		author = unknownAuthor
	}

	cover := it.CoverURL
	if it.Pic != nil && it.Pic.Normal != "" {
		cover = it.Pic.Normal
	}

	r := noRating
	if it.Rating != nil {
		r = string(it.Rating.Value) + " (" + string(it.Rating.Count) + "人评价)"
	}

	return itemfeed.RawFieldBag{
		Link: link,
		Fields: []itemfeed.Field{
			{Name: itemfeed.FieldTitle, Value: title},
			{Name: itemfeed.FieldAuthor, Value: author},
			{Name: itemfeed.FieldImage, Value: cover},
			{Name: itemfeed.FieldRating, Value: r},
		},
	}
}
