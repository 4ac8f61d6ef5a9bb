package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nrkcat/nrkcat/filesystem"
	"github.com/nrkcat/nrkcat/icon"
	"github.com/nrkcat/nrkcat/inline"
	"github.com/nrkcat/nrkcat/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("depth", "d", "seasons", "How deep to walk: "+strings.Join(inline.DepthNames(), ", "))
	lo.Must0(exportCmd.RegisterFlagCompletionFunc("depth", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return inline.DepthNames(), cobra.ShellCompDirectiveNoFileComp
	}))
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	exportCmd.SetOut(os.Stdout)
}

// exportCmd writes a category subtree as a single JSON document.
var exportCmd = &cobra.Command{
	Use:     "export <category>",
	Short:   "Export a category and everything below it as JSON",
	Example: "  nrkcat export humor --depth episodes -o humor.json",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		depth, err := inline.ParseDepth(lo.Must(cmd.Flags().GetString("depth")))
		handleErr(err)

		category := findCategory(cmd, args[0])

		var out io.Writer = cmd.OutOrStdout()
		output := lo.Must(cmd.Flags().GetString("output"))
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			out = file
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Exporting %s...", icon.Get(icon.Progress), category.Title))
		err = inline.Export(cmd.Context(), category, &inline.Options{
			Out:    out,
			Depth:  depth,
			Pretty: lo.Must(cmd.Flags().GetBool("pretty")) || output != "",
		})
		erase()
		handleErr(err)

		if output != "" {
			cmd.PrintErrf("%s %s exported to %s\n", icon.Get(icon.Success), category.Title, output)
		}
	},
}
