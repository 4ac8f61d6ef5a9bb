package catalogue

import (
	"context"
	"fmt"
	"sync"

	"github.com/nrkcat/nrkcat/extract"
	"github.com/nrkcat/nrkcat/internal/cache"
	"github.com/nrkcat/nrkcat/log"
)

// Series is a multi-season program.
type Series struct {
	showBase

	mu      sync.Mutex
	landing []byte
}

func newSeries(cat *Catalogue, path, title string, images []string) *Series {
	return &Series{showBase: showBase{cat: cat, path: path, title: title, images: images}}
}

func (*Series) show() {}

func (s *Series) Kind() Kind {
	return KindSeries
}

func (s *Series) String() string {
	return fmt.Sprintf("%s: %s", s.Kind().Label(), s.title)
}

// landingPage fetches the series page once per instance. A failed fetch is retried on the next call.
func (s *Series) landingPage(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.landing != nil {
		return s.landing, nil
	}

	log.Infof("fetching series page %s", s.URL())
	page, err := s.cat.fetcher.Fetch(ctx, s.URL())
	if err != nil {
		return nil, fmt.Errorf("series %s: %w", s.path, err)
	}
	if page == nil {
		page = []byte{}
	}

	s.landing = page
	return page, nil
}

// Seasons lists the seasons linked from the series page, cached for one week.
func (s *Series) Seasons(ctx context.Context) ([]*Season, error) {
	records, err := cache.Remember(ctx, s.cat.cache, seasonsKey(s.path), cache.Week, func(ctx context.Context) ([]seasonRecord, error) {
		page, err := s.landingPage(ctx)
		if err != nil {
			return nil, err
		}

		links := extract.Seasons(page)
		records := make([]seasonRecord, len(links))
		for i, link := range links {
			records[i] = seasonRecord{URL: s.cat.RelativePath(link.URL), Title: link.Title}
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	seasons := make([]*Season, len(records))
	for i, r := range records {
		seasons[i] = r.bind(s)
	}
	return seasons, nil
}

// RecentEpisodes lists the episodes featured on the series page, cached for one day.
func (s *Series) RecentEpisodes(ctx context.Context) ([]*Episode, error) {
	records, err := cache.Remember(ctx, s.cat.cache, recentEpisodesKey(s.path), cache.Day, func(ctx context.Context) ([]showRecord, error) {
		page, err := s.landingPage(ctx)
		if err != nil {
			return nil, err
		}
		return episodeRecords(s.cat, extract.Episodes(page)), nil
	})
	if err != nil {
		return nil, err
	}

	return bindEpisodes(s.cat, records), nil
}
