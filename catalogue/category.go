package catalogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/nrkcat/nrkcat/constant"
	"github.com/nrkcat/nrkcat/internal/cache"
	"github.com/nrkcat/nrkcat/log"
	logrus "github.com/sirupsen/logrus"
)

// Category is a top-level grouping of shows. ID is a single path segment.
type Category struct {
	ID    string
	Title string

	cat *Catalogue
}

func (c *Category) String() string {
	return fmt.Sprintf("Category: %s (%s)", c.Title, c.ID)
}

// URL returns the category's page on the site.
func (c *Category) URL() string {
	return c.cat.absolute(constant.CategoryPath + "/" + c.ID)
}

// listingPage is one page of the category index endpoint.
type listingPage struct {
	Data struct {
		Characters []struct {
			Elements []listingElement `json:"elements"`
		} `json:"characters"`
	} `json:"data"`
}

type listingElement struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Images []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"images"`
}

func (c *Category) pageURL(page int) string {
	return fmt.Sprintf("%s/listobjects/indexelements/%s/page/%d", c.cat.apiOrigin, c.ID, page)
}

// Shows lists every series and standalone episode in the category, cached for one day.
// Listing pages are requested from index 0 until the endpoint answers with an empty
// document. A listing that runs past the page bound fails with ErrPageLimit.
func (c *Category) Shows(ctx context.Context) ([]Show, error) {
	records, err := cache.Remember(ctx, c.cat.cache, showsKey(c.ID), cache.Day, c.fetchShows)
	if err != nil {
		return nil, err
	}

	shows := make([]Show, len(records))
	for i, r := range records {
		shows[i] = r.bind(c.cat)
	}
	return shows, nil
}

func (c *Category) fetchShows(ctx context.Context) ([]showRecord, error) {
	entry := log.WithFields(logrus.Fields{"category": c.ID})
	records := make([]showRecord, 0)

	for page := 0; ; page++ {
		var listing listingPage
		found, err := c.cat.fetcher.FetchJSON(ctx, c.pageURL(page), &listing)
		if err != nil {
			return nil, fmt.Errorf("category %s page %d: %w", c.ID, page, err)
		}
		if !found {
			entry.Debugf("listing exhausted after %d pages", page)
			break
		}
		if page >= c.cat.maxPages {
			return nil, fmt.Errorf("category %s: %w (%d)", c.ID, ErrPageLimit, c.cat.maxPages)
		}

		for _, group := range listing.Data.Characters {
			for _, element := range group.Elements {
				if element.URL == "" {
					entry.Debugf("skipping element without url: %q", element.Title)
					continue
				}
				records = append(records, elementRecord(c.cat, element))
			}
		}
	}

	entry.Infof("listed %d shows", len(records))
	return records, nil
}

func elementRecord(cat *Catalogue, element listingElement) showRecord {
	path := cat.RelativePath(element.URL)
	kind := KindEpisode
	if strings.HasPrefix(path, constant.SeriesPrefix) {
		kind = KindSeries
	}

	images := make([]string, 0, len(element.Images))
	for _, image := range element.Images {
		images = append(images, image.ImageURL)
	}

	return showRecord{
		Kind:   kind,
		URL:    path,
		Title:  element.Title,
		Images: images,
	}
}
