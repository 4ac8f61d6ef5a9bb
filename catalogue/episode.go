package catalogue

import (
	"fmt"
	"strings"

	"github.com/nrkcat/nrkcat/constant"
	"github.com/samber/mo"
)

// Episode is a single playable unit.
type Episode struct {
	showBase
}

func newEpisode(cat *Catalogue, path, title string, images []string) *Episode {
	return &Episode{showBase: showBase{cat: cat, path: path, title: title, images: images}}
}

func (*Episode) show() {}

func (e *Episode) Kind() Kind {
	return KindEpisode
}

func (e *Episode) String() string {
	s := fmt.Sprintf("%s: %s", e.Kind().Label(), e.title)
	if id, ok := e.UniqueID().Get(); ok {
		s += fmt.Sprintf(" (%s)", id)
	}
	return s
}

// UniqueID derives the program id from the path:
// /serie/<series>/<id>/... yields the fourth segment and /program/<id> the third.
// Any other shape has no id.
func (e *Episode) UniqueID() mo.Option[string] {
	return uniqueID(e.path)
}

func uniqueID(path string) mo.Option[string] {
	parts := strings.Split(path, "/")

	var id string
	switch {
	case len(parts) >= 4 && "/"+parts[1] == constant.SeriesPrefix:
		id = parts[3]
	case len(parts) >= 3 && "/"+parts[1] == constant.ProgramPrefix:
		id = parts[2]
	}

	if id == "" {
		return mo.None[string]()
	}
	return mo.Some(id)
}
