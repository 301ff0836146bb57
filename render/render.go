// Package render builds HTML item descriptions with html/template.
package render

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/fwojciec/itemfeed"
)

// Ensure Renderer implements itemfeed.Renderer at compile time.
var _ itemfeed.Renderer = (*Renderer)(nil)

// PosterURL prefixes show poster references.
const PosterURL = "https://www.livestart.com.cn/api/v1/poster/"

var funcs = template.FuncMap{
	"lines":  func(s string) []string { return strings.Split(s, "\n") },
	"poster": func(ref string) string { return PosterURL + ref },
	"date": func(epoch int64) string {
		return time.Unix(epoch, 0).In(itemfeed.FeedZone).Format(time.DateOnly)
	},
	"join": func(sep string, parts ...string) string {
		var kept []string
		for _, p := range parts {
			if p != "" {
				kept = append(kept, p)
			}
		}
		return strings.Join(kept, sep)
	},
}

var bookTmpl = template.Must(template.New("book").Funcs(funcs).Parse(
	`{{if .CoverURL}}<img src="{{.CoverURL}}" style="max-width: 150px; height: auto;"><br>{{end}}` +
		`书名：{{.Title}}<br>` +
		`{{if .Author}}作者：{{.Author}}<br>{{end}}` +
		`{{if .Description}}简介：{{range $i, $l := lines .Description}}{{if $i}}<br>{{end}}{{$l}}{{end}}<br>{{end}}` +
		`{{if .Rating}}评分：{{.Rating}}<br>{{end}}` +
		`<a href="{{.URL}}">查看详情</a>`))

var apparelTmpl = template.Must(template.New("apparel").Funcs(funcs).Parse(
	`{{if .CoverURL}}<img src="{{.CoverURL}}"><br>{{end}}` +
		`品牌：{{.Brand}}<br>` +
		`名称：{{.Title}}<br>` +
		`价格：{{.Price}}` +
		`{{if .Discount}}<br>折扣：{{.Discount}}{{end}}` +
		`{{if .RecommendationText}}<br>推荐：{{.RecommendationText}}{{end}}`))

var showTmpl = template.Must(template.New("show").Funcs(funcs).Parse(
	`{{if .PosterRef}}<img src="{{poster .PosterRef}}" />{{end}}` +
		`{{if .ShowTime}}<p>演出时间：{{date .ShowTime}}</p>{{end}}` +
		`{{with join " - " .City .Venue}}<p>地址：{{.}}</p>{{end}}` +
		`{{if .Performers}}<p>艺人：{{.Performers}}</p>{{end}}` +
		`{{if .PriceRange}}<p>价格：{{.PriceRange}}</p>{{end}}`))

// Renderer renders each entity kind with its own template. Every optional
// field may be empty.
type Renderer struct{}

// Render returns the HTML description of e, or "" for unknown kinds.
func (Renderer) Render(e itemfeed.Entity) string {
	var tmpl *template.Template
	switch e.(type) {
	case *itemfeed.Book:
		tmpl = bookTmpl
	case *itemfeed.ApparelItem:
		tmpl = apparelTmpl
	case *itemfeed.Show:
		tmpl = showTmpl
	default:
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, e); err != nil {
		return ""
	}
	return buf.String()
}
