// Package cmd implements the nrkcat command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/nrkcat/nrkcat/color"
	"github.com/nrkcat/nrkcat/constant"
	"github.com/nrkcat/nrkcat/icon"
	"github.com/nrkcat/nrkcat/key"
	"github.com/nrkcat/nrkcat/log"
	"github.com/nrkcat/nrkcat/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (emoji, nerd, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the catalogue cache for this run")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Print results as JSON")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
}

// rootCmd is the entry point of nrkcat.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Browse the NRK TV catalogue from the terminal",
	Long: constant.Banner + "\n\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Browse the NRK TV catalogue from the terminal"),
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return shutdown()
	},
}

// Execute runs the command tree until it finishes or the process is interrupted.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		_ = shutdown()
		os.Exit(1)
	}
}

// handleErr reports err and exits. The cache is still flushed so that work done before
// the failure survives.
func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), strings.Trim(err.Error(), " \n"))
		if closeErr := shutdown(); closeErr != nil {
			log.Error(closeErr)
		}
		_ = log.Close()
		os.Exit(1)
	}
}
