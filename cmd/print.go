package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/nrkcat/nrkcat/catalogue"
	"github.com/nrkcat/nrkcat/color"
	"github.com/nrkcat/nrkcat/icon"
	"github.com/nrkcat/nrkcat/inline"
	"github.com/nrkcat/nrkcat/style"
	"github.com/nrkcat/nrkcat/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// wantsJSON reports whether the --json flag was given.
func wantsJSON(cmd *cobra.Command) bool {
	return lo.Must(cmd.Flags().GetBool("json"))
}

func printJSON(cmd *cobra.Command, v any) {
	handleErr(inline.WriteJSON(cmd.OutOrStdout(), v, lo.Must(cmd.Flags().GetBool("pretty"))))
}

// rowKind decides the icon and the colored badge leading a row.
type rowKind struct {
	icon  icon.Icon
	label string
	badge lipgloss.Color
}

var (
	categoryRow = rowKind{icon.Category, "category", style.CategoryBadge}
	seriesRow   = rowKind{icon.Series, "series", style.SeriesBadge}
	seasonRow   = rowKind{icon.Season, "season", style.SeasonBadge}
	episodeRow  = rowKind{icon.Episode, "episode", style.EpisodeBadge}
)

func showRow(s catalogue.Show) rowKind {
	if s.Kind() == catalogue.KindSeries {
		return seriesRow
	}
	return episodeRow
}

// renderRow joins icon, badge, title and a faint detail column.
func renderRow(kind rowKind, title, detail string) string {
	return fmt.Sprintf(
		"%s %s %s %s",
		style.Fg(color.Cyan)(icon.Get(kind.icon)),
		style.Tag(style.BadgeText, kind.badge)(kind.label),
		style.Bold(title),
		style.Faint(detail),
	)
}

// printRow prints a row truncated to the terminal width.
func printRow(cmd *cobra.Command, kind rowKind, title, detail string) {
	cmd.Println(util.Truncate(renderRow(kind, title, detail), util.TerminalWidth(80)))
}

func printShows(cmd *cobra.Command, shows []catalogue.Show) {
	if wantsJSON(cmd) {
		printJSON(cmd, lo.Map(shows, func(s catalogue.Show, _ int) *inline.Show {
			return inline.FromShow(s)
		}))
		return
	}

	for _, s := range shows {
		printRow(cmd, showRow(s), s.Title(), s.Path())
	}
	printSummary(cmd, len(shows), "show", "shows")
}

func printEpisodes(cmd *cobra.Command, episodes []*catalogue.Episode) {
	if wantsJSON(cmd) {
		printJSON(cmd, inline.FromEpisodes(episodes))
		return
	}

	for _, e := range episodes {
		detail := e.Path()
		if id, ok := e.UniqueID().Get(); ok {
			detail = id
		}
		printRow(cmd, episodeRow, e.Title(), detail)
	}
	printSummary(cmd, len(episodes), "episode", "episodes")
}

func printSummary(cmd *cobra.Command, count int, singular, plural string) {
	cmd.PrintErrln(style.Faint(util.Quantify(count, singular, plural)))
}
