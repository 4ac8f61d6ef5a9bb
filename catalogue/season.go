package catalogue

import (
	"context"
	"fmt"

	"github.com/nrkcat/nrkcat/extract"
	"github.com/nrkcat/nrkcat/internal/cache"
	"github.com/nrkcat/nrkcat/log"
)

// Season groups the episodes of one series season. It points back at its series
// without owning it.
type Season struct {
	series *Series
	title  string
	path   string
}

func (s *Season) String() string {
	return fmt.Sprintf("Season: %s", s.title)
}

func (s *Season) Series() *Series {
	return s.series
}

func (s *Season) Title() string {
	return s.title
}

// Path is the site-relative episode listing of the season.
func (s *Season) Path() string {
	return s.path
}

func (s *Season) URL() string {
	return s.series.cat.absolute(s.path)
}

// Episodes lists the season's episodes, cached for one day. The season page is
// always fetched on its own; the series page is never reused here.
func (s *Season) Episodes(ctx context.Context) ([]*Episode, error) {
	cat := s.series.cat

	records, err := cache.Remember(ctx, cat.cache, seasonEpisodesKey(s.path), cache.Day, func(ctx context.Context) ([]showRecord, error) {
		log.Infof("fetching season page %s", s.URL())
		page, err := cat.fetcher.Fetch(ctx, s.URL())
		if err != nil {
			return nil, fmt.Errorf("season %s: %w", s.path, err)
		}
		return episodeRecords(cat, extract.Episodes(page)), nil
	})
	if err != nil {
		return nil, err
	}

	return bindEpisodes(cat, records), nil
}
