// Package extract turns catalogue pages into candidate records.
//
// Every function is pure and tolerant: markup that does not match yields no
// record rather than an error, and a page without matches yields an empty slice.
package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nrkcat/nrkcat/constant"
)

// CategoryLink is a drill-down link on the category index.
type CategoryLink struct {
	ID    string
	Title string
}

// EpisodeLink is one episode item on a series or season page.
type EpisodeLink struct {
	URL   string
	Title string
}

// SeasonLink points at the episode listing of one season.
type SeasonLink struct {
	URL   string
	Title string
}

var seasonHref = regexp.MustCompile(`^/program/Episodes/.+/\d+$`)

// IsSeasonPath reports whether path has the shape of a season episode listing.
func IsSeasonPath(path string) bool {
	return seasonHref.MatchString(path)
}

func parse(page []byte) (*goquery.Document, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, false
	}
	return doc, true
}

// text returns the tag-stripped text of s with runs of whitespace collapsed.
func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// Categories finds drill-down anchors below the category path. Candidates whose id
// is empty or contains a further path segment are discarded.
func Categories(page []byte) []CategoryLink {
	doc, ok := parse(page)
	if !ok {
		return []CategoryLink{}
	}

	prefix := constant.CategoryPath + "/"
	links := make([]CategoryLink, 0)
	doc.Find("a.drilldown-link").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		id, found := strings.CutPrefix(href, prefix)
		if !found || id == "" || strings.Contains(id, "/") {
			return
		}

		links = append(links, CategoryLink{ID: id, Title: text(a)})
	})

	return links
}

// Episodes reads list items flagged as episode items. The first anchor gives the url
// and the first h3 the title; items missing either are skipped.
func Episodes(page []byte) []EpisodeLink {
	doc, ok := parse(page)
	if !ok {
		return []EpisodeLink{}
	}

	links := make([]EpisodeLink, 0)
	doc.Find(`li[class^="episode-item"][data-episode]`).Each(func(_ int, li *goquery.Selection) {
		href, ok := li.Find("a[href]").First().Attr("href")
		if !ok || href == "" {
			return
		}

		heading := li.Find("h3").First()
		if heading.Length() == 0 {
			return
		}

		title := text(heading)
		if title == "" {
			return
		}

		links = append(links, EpisodeLink{URL: href, Title: title})
	})

	return links
}

// Seasons finds anchors pointing at a season's episode listing, in page order.
func Seasons(page []byte) []SeasonLink {
	doc, ok := parse(page)
	if !ok {
		return []SeasonLink{}
	}

	links := make([]SeasonLink, 0)
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !seasonHref.MatchString(href) {
			return
		}

		links = append(links, SeasonLink{URL: href, Title: text(a)})
	})

	return links
}
