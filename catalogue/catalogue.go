// Package catalogue models the remote content hierarchy: categories own shows,
// series own seasons and recent episodes, seasons own episodes.
//
// Every child collection is fetched lazily on first access, parsed, and stored in
// the shared cache under a key derived from the owner's kind and identity, so later
// traversals inside the entry's lifetime are served without touching the network.
// Nothing is cached for a failed fetch.
package catalogue

import (
	"context"
	"fmt"
	"strings"

	"github.com/nrkcat/nrkcat/constant"
	"github.com/nrkcat/nrkcat/extract"
	"github.com/nrkcat/nrkcat/internal/cache"
	"github.com/nrkcat/nrkcat/log"
)

// Fetcher is the transport the catalogue needs.
type Fetcher interface {
	// Fetch returns the raw body at url.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// FetchJSON decodes the document at url into v. found is false, with a nil
	// error, when the document is empty.
	FetchJSON(ctx context.Context, url string, v any) (found bool, err error)
}

// Catalogue is the entry point of the hierarchy.
type Catalogue struct {
	fetcher   Fetcher
	cache     *cache.Cache
	origin    string
	apiOrigin string
	maxPages  int
}

// Option configures a Catalogue.
type Option func(*Catalogue)

// WithOrigin sets the site origin that relative paths resolve against.
func WithOrigin(origin string) Option {
	return func(c *Catalogue) {
		c.origin = strings.TrimRight(origin, "/")
	}
}

// WithAPIOrigin sets the origin of the paginated listing endpoint.
func WithAPIOrigin(origin string) Option {
	return func(c *Catalogue) {
		c.apiOrigin = strings.TrimRight(origin, "/")
	}
}

// WithMaxPages bounds how many non-empty listing pages one category may span.
func WithMaxPages(n int) Option {
	return func(c *Catalogue) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// New returns a catalogue reading through fetcher and memoizing into store.
func New(fetcher Fetcher, store *cache.Cache, opts ...Option) *Catalogue {
	c := &Catalogue{
		fetcher:   fetcher,
		cache:     store,
		origin:    constant.Origin,
		apiOrigin: constant.APIOrigin,
		maxPages:  constant.MaxListingPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the site origin.
func (c *Catalogue) Origin() string {
	return c.origin
}

// absolute prefixes a site-relative path with the origin.
func (c *Catalogue) absolute(path string) string {
	return c.origin + path
}

// RelativePath strips the origin from a fully qualified url. Relative input is returned as is.
func (c *Catalogue) RelativePath(s string) string {
	if rest, ok := strings.CutPrefix(s, c.origin); ok {
		s = rest
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return s
}

// Categories lists every top-level category, cached for four weeks.
func (c *Catalogue) Categories(ctx context.Context) ([]*Category, error) {
	records, err := cache.Remember(ctx, c.cache, categoriesKey, 4*cache.Week, func(ctx context.Context) ([]categoryRecord, error) {
		url := c.absolute(constant.CategoryPath)
		log.Infof("fetching category index %s", url)

		page, err := c.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("category index: %w", err)
		}

		links := extract.Categories(page)
		records := make([]categoryRecord, len(links))
		for i, link := range links {
			records[i] = categoryRecord{ID: link.ID, Title: link.Title}
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	categories := make([]*Category, len(records))
	for i, r := range records {
		categories[i] = r.bind(c)
	}
	return categories, nil
}

// Category finds the category with the given id.
func (c *Catalogue) Category(ctx context.Context, id string) (*Category, error) {
	categories, err := c.Categories(ctx)
	if err != nil {
		return nil, err
	}

	for _, category := range categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, fmt.Errorf("category %q: %w", id, ErrNotFound)
}

// SeriesAt addresses a series directly by its path (or full url).
func (c *Catalogue) SeriesAt(path, title string) *Series {
	return newSeries(c, c.RelativePath(path), title, nil)
}

// EpisodeAt addresses an episode directly by its path (or full url).
func (c *Catalogue) EpisodeAt(path, title string) *Episode {
	return newEpisode(c, c.RelativePath(path), title, nil)
}

// SeasonAt addresses a season of series directly by its listing path (or full url).
func (c *Catalogue) SeasonAt(series *Series, path, title string) *Season {
	return &Season{series: series, title: title, path: c.RelativePath(path)}
}
