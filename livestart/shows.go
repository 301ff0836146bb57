// Package livestart reads monthly live-house show listings from LiveStart.
package livestart

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/fwojciec/itemfeed"
)

const (
	// SiteURL is the LiveStart home page.
	SiteURL = "https://www.livestart.com.cn"

	// PosterURL prefixes a show's poster reference.
	PosterURL = SiteURL + "/api/v1/poster/"

	apiURL = SiteURL + "/api/v1/month_liveshow"

	// priceSeparator joins the ticket tiers of a show.
	priceSeparator = " - "
)

// Ensure Shows implements itemfeed.PayloadSource at compile time.
var _ itemfeed.PayloadSource = (*Shows)(nil)

// Shows projects the month_liveshow listing into show bags.
// Parameters: "city" (required) and "keyword" (optional).
type Shows struct{}

// Request builds the listing query for a city and optional keyword.
func (Shows) Request(params itemfeed.Params) *itemfeed.PayloadRequest {
	q := url.Values{"city": {params.Get("city")}}
	if kw := params.Get("keyword"); kw != "" {
		q.Set("keyword", kw)
	}
	return &itemfeed.PayloadRequest{
		URL:   apiURL,
		Query: q,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Access-Token": "livestart",
		},
	}
}

// FeedTitle joins the non-empty parts of "LiveHouse - city - keyword".
func FeedTitle(params itemfeed.Params) string {
	parts := []string{"LiveHouse"}
	for _, p := range []string{params.Get("city"), params.Get("keyword")} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

type response struct {
	Data []struct {
		MonthShow []show `json:"month_show"`
	} `json:"data"`
}

type show struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	City       string  `json:"city"`
	Site       string  `json:"site"`
	Performers string  `json:"performers"`
	Poster     string  `json:"poster"`
	ShowTime   scalar  `json:"show_time"`
	CreateTime scalar  `json:"create_time"`
	UpdateTime scalar  `json:"update_time"`
	Prices     []price `json:"prices"`
}

type price struct {
	Price scalar `json:"price"`
}

// scalar holds a JSON string or number as text. Other values decode to "".
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = scalar(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*s = ""
		return nil
	}
	*s = scalar(n)
	return nil
}

// Bags flattens every month's shows in order and skips shows without a
// title or url.
func (Shows) Bags(payload []byte) ([]itemfeed.RawFieldBag, error) {
	var resp response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "invalid LiveStart response: %v", err)
	}

	var bags []itemfeed.RawFieldBag
	for _, m := range resp.Data {
		for _, s := range m.MonthShow {
			if s.Title == "" || s.URL == "" {
				continue
			}
			bags = append(bags, s.bag())
		}
	}
	return bags, nil
}

func (s show) bag() itemfeed.RawFieldBag {
	prices := make([]string, 0, len(s.Prices))
	for _, p := range s.Prices {
		prices = append(prices, string(p.Price))
	}

	return itemfeed.RawFieldBag{
		Link: s.URL,
		Fields: []itemfeed.Field{
			{Name: itemfeed.FieldTitle, Value: s.Title},
			{Name: itemfeed.FieldCity, Value: s.City},
			{Name: itemfeed.FieldVenue, Value: s.Site},
			{Name: itemfeed.FieldPerformers, Value: s.Performers},
			{Name: itemfeed.FieldPoster, Value: s.Poster},
			{Name: itemfeed.FieldPrices, Value: strings.Join(prices, priceSeparator)},
			{Name: itemfeed.FieldShowTime, Value: string(s.ShowTime)},
			{Name: itemfeed.FieldCreateTime, Value: string(s.CreateTime)},
			{Name: itemfeed.FieldUpdateTime, Value: string(s.UpdateTime)},
		},
	}
}
