package inline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nrkcat/nrkcat/catalogue"
	"github.com/nrkcat/nrkcat/log"
	"github.com/samber/lo"
)

// Depth controls how far below a category an export descends.
type Depth int

const (
	DepthShows Depth = iota
	DepthSeasons
	DepthEpisodes
)

var depthNames = map[string]Depth{
	"shows":    DepthShows,
	"seasons":  DepthSeasons,
	"episodes": DepthEpisodes,
}

// DepthNames lists the accepted depth values.
func DepthNames() []string {
	return []string{"shows", "seasons", "episodes"}
}

// ParseDepth resolves a depth by name.
func ParseDepth(name string) (Depth, error) {
	depth, ok := depthNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("invalid depth %q, expected one of %s", name, strings.Join(DepthNames(), ", "))
	}
	return depth, nil
}

type Options struct {
	Out    io.Writer
	Depth  Depth
	Pretty bool
}

// Export walks category down to the requested depth and writes it as one JSON document.
// The category's show listing must succeed; a series or season that fails below it is
// logged and exported without children.
func Export(ctx context.Context, category *catalogue.Category, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	tree, err := Walk(ctx, category, options.Depth)
	if err != nil {
		return err
	}
	return WriteJSON(options.Out, tree, options.Pretty)
}

// Walk builds the export tree for category. Traversal is sequential.
func Walk(ctx context.Context, category *catalogue.Category, depth Depth) (*Category, error) {
	shows, err := category.Shows(ctx)
	if err != nil {
		return nil, err
	}

	out := FromCategory(category)
	out.Shows = lo.Map(shows, func(s catalogue.Show, _ int) *Show {
		return FromShow(s)
	})

	if depth == DepthShows {
		return out, nil
	}

	for i, s := range shows {
		series, ok := s.(*catalogue.Series)
		if !ok {
			continue
		}
		walkSeries(ctx, series, out.Shows[i], depth)
	}

	return out, nil
}

func walkSeries(ctx context.Context, series *catalogue.Series, out *Show, depth Depth) {
	seasons, err := series.Seasons(ctx)
	if err != nil {
		log.Warnf("skipping seasons of %s: %v", series.Path(), err)
		return
	}
	out.Seasons = lo.Map(seasons, func(s *catalogue.Season, _ int) *Season {
		return FromSeason(s)
	})

	if recent, err := series.RecentEpisodes(ctx); err != nil {
		log.Warnf("skipping recent episodes of %s: %v", series.Path(), err)
	} else {
		out.Recent = FromEpisodes(recent)
	}

	if depth < DepthEpisodes {
		return
	}

	for i, season := range seasons {
		episodes, err := season.Episodes(ctx)
		if err != nil {
			log.Warnf("skipping episodes of %s: %v", season.Path(), err)
			continue
		}
		out.Seasons[i].Episodes = FromEpisodes(episodes)
	}
}
