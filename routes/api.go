package routes

import (
	"github.com/fwojciec/itemfeed"
	"github.com/fwojciec/itemfeed/douban"
	"github.com/fwojciec/itemfeed/livestart"
)

// DoubanMonthly lists Douban's monthly hot books.
func DoubanMonthly() *itemfeed.Route {
	return &itemfeed.Route{
		Name:        "douban",
		Description: "豆瓣读书月度热门",
		Example:     "douban",
		Kind:        itemfeed.KindBook,
		API:         douban.MonthlyBooks{},
		Link:        func(itemfeed.Params) string { return douban.CollectionURL },
		Title:       func(itemfeed.Params) string { return douban.FeedTitle },
	}
}

// LiveStart lists the month's live-house shows in a city, optionally
// filtered by keyword. A city with no shows yields an empty feed.
func LiveStart() *itemfeed.Route {
	return &itemfeed.Route{
		Name:        "livestart",
		Description: "LiveHouse 演出",
		Example:     "livestart 上海",
		Params: []itemfeed.Param{
			{Name: "city", Help: "城市"},
			{Name: "keyword", Help: "关键词，可选", Optional: true},
		},
		Kind:       itemfeed.KindShow,
		API:        livestart.Shows{},
		Link:       func(itemfeed.Params) string { return livestart.SiteURL },
		Title:      livestart.FeedTitle,
		AllowEmpty: true,
	}
}
