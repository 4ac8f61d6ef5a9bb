package catalogue

import "github.com/nrkcat/nrkcat/extract"

// Cached forms of the entities. They carry no back-references; bind re-attaches
// them to the catalogue (and, for seasons, the owning series) on the way out.

type categoryRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (r categoryRecord) bind(cat *Catalogue) *Category {
	return &Category{ID: r.ID, Title: r.Title, cat: cat}
}

type showRecord struct {
	Kind   Kind     `json:"kind"`
	URL    string   `json:"url"`
	Title  string   `json:"title"`
	Images []string `json:"images,omitempty"`
}

func (r showRecord) bind(cat *Catalogue) Show {
	if r.Kind == KindSeries {
		return newSeries(cat, r.URL, r.Title, r.Images)
	}
	return newEpisode(cat, r.URL, r.Title, r.Images)
}

type seasonRecord struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (r seasonRecord) bind(series *Series) *Season {
	return &Season{series: series, title: r.Title, path: r.URL}
}

// episodeRecords normalizes every href to a site-relative path.
func episodeRecords(cat *Catalogue, links []extract.EpisodeLink) []showRecord {
	records := make([]showRecord, len(links))
	for i, link := range links {
		records[i] = showRecord{Kind: KindEpisode, URL: cat.RelativePath(link.URL), Title: link.Title}
	}
	return records
}

func bindEpisodes(cat *Catalogue, records []showRecord) []*Episode {
	episodes := make([]*Episode, len(records))
	for i, r := range records {
		episodes[i] = newEpisode(cat, r.URL, r.Title, r.Images)
	}
	return episodes
}
