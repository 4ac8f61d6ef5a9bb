package catalogue

import "fmt"

// Kind tags the concrete variant behind a Show.
type Kind string

const (
	KindSeries  Kind = "series"
	KindEpisode Kind = "episode"
)

// Label is the capitalized form used when rendering.
func (k Kind) Label() string {
	switch k {
	case KindSeries:
		return "Series"
	case KindEpisode:
		return "Episode"
	default:
		return "Show"
	}
}

// Show is either a *Series or an *Episode. Use a type switch or Kind to tell them apart.
type Show interface {
	fmt.Stringer

	Kind() Kind
	Title() string
	// Path is the site-relative location, e.g. /serie/skam.
	Path() string
	// URL is Path resolved against the catalogue origin.
	URL() string
	Images() []string

	show()
}

// showBase holds what both variants share.
type showBase struct {
	cat    *Catalogue
	path   string
	title  string
	images []string
}

func (s *showBase) Title() string {
	return s.title
}

func (s *showBase) Path() string {
	return s.path
}

func (s *showBase) URL() string {
	return s.cat.absolute(s.path)
}

// Images returns a copy of the image urls in listing order.
func (s *showBase) Images() []string {
	return append([]string(nil), s.images...)
}
