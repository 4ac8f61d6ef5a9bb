package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nrkcat/nrkcat/catalogue"
	"github.com/nrkcat/nrkcat/extract"
	"github.com/nrkcat/nrkcat/inline"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(seasonsCmd)
	seasonsCmd.SetOut(os.Stdout)

	rootCmd.AddCommand(recentCmd)
	recentCmd.SetOut(os.Stdout)

	rootCmd.AddCommand(episodesCmd)
	episodesCmd.SetOut(os.Stdout)
}

// seasonsCmd lists the seasons linked from a series landing page.
var seasonsCmd = &cobra.Command{
	Use:     "seasons <series>",
	Short:   "List the seasons of a series",
	Long:    "List the seasons of a series. The series is given by its path or full url.",
	Example: "  nrkcat seasons /serie/skam",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		series := openCatalogue(cmd).SeriesAt(args[0], "")

		seasons, err := series.Seasons(cmd.Context())
		handleErr(err)

		if wantsJSON(cmd) {
			printJSON(cmd, lo.Map(seasons, func(s *catalogue.Season, _ int) *inline.Season {
				return inline.FromSeason(s)
			}))
			return
		}

		for i, s := range seasons {
			printRow(cmd, seasonRow, fmt.Sprintf("%d. %s", i+1, s.Title()), s.Path())
		}
		printSummary(cmd, len(seasons), "season", "seasons")
	},
}

// recentCmd lists the episodes featured on a series landing page.
var recentCmd = &cobra.Command{
	Use:     "recent <series>",
	Short:   "List the most recent episodes of a series",
	Example: "  nrkcat recent /serie/skam",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		series := openCatalogue(cmd).SeriesAt(args[0], "")

		episodes, err := series.RecentEpisodes(cmd.Context())
		handleErr(err)

		printEpisodes(cmd, episodes)
	},
}

// episodesCmd lists the episodes of one season of a series.
var episodesCmd = &cobra.Command{
	Use:   "episodes <series> <season>",
	Short: "List the episodes of a season",
	Long: "List the episodes of a season.\n" +
		"The season is its number as shown by the seasons command, its title or its path.",
	Example: "  nrkcat episodes /serie/skam 2\n  nrkcat episodes /serie/skam /program/Episodes/skam/123",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cat := openCatalogue(cmd)
		series := cat.SeriesAt(args[0], "")

		season, err := resolveSeason(cmd, cat, series, args[1])
		handleErr(err)

		episodes, err := season.Episodes(cmd.Context())
		handleErr(err)

		printEpisodes(cmd, episodes)
	},
}

// resolveSeason interprets ref as a 1-based index, a season path or a fuzzy title.
// A path is used as is without consulting the series page.
func resolveSeason(cmd *cobra.Command, cat *catalogue.Catalogue, series *catalogue.Series, ref string) (*catalogue.Season, error) {
	if path := cat.RelativePath(ref); extract.IsSeasonPath(path) {
		return cat.SeasonAt(series, path, ""), nil
	}

	seasons, err := series.Seasons(cmd.Context())
	if err != nil {
		return nil, err
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(seasons) {
			return nil, fmt.Errorf("season %d out of range, %s has %d", n, series.Path(), len(seasons))
		}
		return seasons[n-1], nil
	}

	season, ok := lo.Find(seasons, func(s *catalogue.Season) bool {
		return fuzzy.MatchFold(ref, s.Title())
	})
	if !ok {
		return nil, fmt.Errorf("no season of %s matches %q", series.Path(), ref)
	}
	return season, nil
}
