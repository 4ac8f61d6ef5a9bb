package cmd

import (
	"os"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/nrkcat/nrkcat/catalogue"
	"github.com/nrkcat/nrkcat/inline"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.SetOut(os.Stdout)
}

// categoriesCmd lists the top-level categories, optionally narrowed by a fuzzy filter.
var categoriesCmd = &cobra.Command{
	Use:     "categories [filter]",
	Aliases: []string{"cats"},
	Short:   "List the catalogue categories",
	Example: "  nrkcat categories\n  nrkcat categories dok",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		categories, err := openCatalogue(cmd).Categories(cmd.Context())
		handleErr(err)

		if len(args) == 1 {
			categories = filterCategories(categories, args[0])
		}

		if wantsJSON(cmd) {
			printJSON(cmd, lo.Map(categories, func(c *catalogue.Category, _ int) *inline.Category {
				return inline.FromCategory(c)
			}))
			return
		}

		for _, c := range categories {
			printRow(cmd, categoryRow, c.Title, c.ID)
		}
		printSummary(cmd, len(categories), "category", "categories")
	},
}

// filterCategories keeps categories whose id or title fuzzily matches query.
func filterCategories(categories []*catalogue.Category, query string) []*catalogue.Category {
	return lo.Filter(categories, func(c *catalogue.Category, _ int) bool {
		return fuzzy.MatchFold(query, c.ID) || fuzzy.MatchFold(query, c.Title)
	})
}
