package cmd

import (
	"errors"
	"fmt"
	"os"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/nrkcat/nrkcat/catalogue"
	"github.com/nrkcat/nrkcat/color"
	"github.com/nrkcat/nrkcat/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showsCmd)
	showsCmd.SetOut(os.Stdout)
}

// showsCmd lists every series and standalone episode of a category.
var showsCmd = &cobra.Command{
	Use:     "shows <category>",
	Short:   "List the series and episodes of a category",
	Example: "  nrkcat shows dokumentar\n  nrkcat shows humor --json",
	Args:    cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		categories, err := openCatalogue(cmd).Categories(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return lo.Map(categories, func(c *catalogue.Category, _ int) string {
			return c.ID
		}), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		category := findCategory(cmd, args[0])

		shows, err := category.Shows(cmd.Context())
		handleErr(err)

		printShows(cmd, shows)
	},
}

// findCategory resolves id, suggesting the closest known id when it does not exist.
func findCategory(cmd *cobra.Command, id string) *catalogue.Category {
	cat := openCatalogue(cmd)

	category, err := cat.Category(cmd.Context(), id)
	if errors.Is(err, catalogue.ErrNotFound) {
		categories, listErr := cat.Categories(cmd.Context())
		handleErr(listErr)
		handleErr(errUnknownCategory(id, categories))
	}
	handleErr(err)

	return category
}

func errUnknownCategory(id string, categories []*catalogue.Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("unknown category %s", style.Fg(color.Red)(id))
	}

	closest := lo.MinBy(categories, func(a, b *catalogue.Category) bool {
		return levenshtein.Distance(id, a.ID) < levenshtein.Distance(id, b.ID)
	})
	return fmt.Errorf(
		"unknown category %s, did you mean %s?",
		style.Fg(color.Red)(id),
		style.Fg(color.Yellow)(closest.ID),
	)
}
