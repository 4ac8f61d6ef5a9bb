// Package inline renders catalogue entities as JSON for non-interactive use.
package inline

import (
	"encoding/json"
	"io"

	"github.com/nrkcat/nrkcat/catalogue"
)

type Category struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Shows []*Show `json:"shows,omitempty"`
}

type Show struct {
	Kind    string    `json:"kind"`
	Title   string    `json:"title"`
	Path    string    `json:"path"`
	URL     string    `json:"url"`
	ID      string    `json:"id,omitempty"`
	Images  []string  `json:"images,omitempty"`
	Recent  []*Show   `json:"recent,omitempty"`
	Seasons []*Season `json:"seasons,omitempty"`
}

type Season struct {
	Title    string  `json:"title"`
	Path     string  `json:"path"`
	URL      string  `json:"url"`
	Episodes []*Show `json:"episodes,omitempty"`
}

// FromCategory converts c without its shows.
func FromCategory(c *catalogue.Category) *Category {
	return &Category{ID: c.ID, Title: c.Title, URL: c.URL()}
}

// FromShow converts a series or an episode.
func FromShow(s catalogue.Show) *Show {
	out := &Show{
		Kind:   string(s.Kind()),
		Title:  s.Title(),
		Path:   s.Path(),
		URL:    s.URL(),
		Images: s.Images(),
	}
	if e, ok := s.(*catalogue.Episode); ok {
		out.ID = e.UniqueID().OrEmpty()
	}
	return out
}

// FromSeason converts a season without its episodes.
func FromSeason(s *catalogue.Season) *Season {
	return &Season{Title: s.Title(), Path: s.Path(), URL: s.URL()}
}

// FromEpisodes converts a list of episodes.
func FromEpisodes(episodes []*catalogue.Episode) []*Show {
	out := make([]*Show, len(episodes))
	for i, e := range episodes {
		out[i] = FromShow(e)
	}
	return out
}

// WriteJSON encodes v to out, indented when pretty is set.
func WriteJSON(out io.Writer, v any, pretty bool) error {
	encoder := json.NewEncoder(out)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
