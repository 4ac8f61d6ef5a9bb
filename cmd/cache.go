package cmd

import (
	"fmt"
	"os"

	"github.com/nrkcat/nrkcat/color"
	"github.com/nrkcat/nrkcat/icon"
	"github.com/nrkcat/nrkcat/style"
	"github.com/nrkcat/nrkcat/util"
	"github.com/nrkcat/nrkcat/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cacheCmd)
}

// cacheCmd groups commands inspecting the persisted catalogue cache.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the catalogue cache",
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheInfoCmd.Flags().BoolP("keys", "k", false, "List the live keys")
	cacheInfoCmd.SetOut(os.Stdout)
}

type cacheInfo struct {
	Path    string   `json:"path"`
	Entries int      `json:"entries"`
	Expired int      `json:"expired"`
	Keys    []string `json:"keys,omitempty"`
}

// cacheInfoCmd summarizes the cache file.
var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show where the cache lives and what it holds",
	Run: func(cmd *cobra.Command, args []string) {
		c := openCache(cmd)
		stats := c.Stats()

		info := cacheInfo{
			Path:    where.CacheFile(),
			Entries: stats.Entries,
			Expired: stats.Expired,
		}
		if lo.Must(cmd.Flags().GetBool("keys")) {
			info.Keys = c.Keys()
		}

		if wantsJSON(cmd) {
			printJSON(cmd, info)
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		cmd.Printf("%s %s\n", header("Path"), info.Path)
		if stats.Disabled {
			cmd.Printf("%s %s\n", header("State"), style.Fg(color.Red)("disabled"))
			return
		}
		cmd.Printf("%s %s\n", header("Live"), util.Quantify(info.Entries, "entry", "entries"))
		cmd.Printf("%s %s\n", header("Expired"), util.Quantify(info.Expired, "entry", "entries"))

		for _, k := range info.Keys {
			cmd.Println(style.Fg(color.Yellow)(k))
		}
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheClearCmd.Flags().StringSliceP("key", "k", nil, "Delete only these keys")
}

// cacheClearCmd removes the cache file or individual keys from it.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached catalogue data",
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Must(cmd.Flags().GetStringSlice("key"))

		if len(keys) > 0 {
			c := openCache(cmd)
			for _, k := range keys {
				c.Delete(k)
			}
			fmt.Printf("%s Deleted %s\n", icon.Get(icon.Success), util.Quantify(len(keys), "key", "keys"))
			return
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Clearing cache...", icon.Get(icon.Progress)))
		err := util.Delete(where.CacheFile())
		erase()
		if err != nil && !os.IsNotExist(err) {
			handleErr(err)
		}
		fmt.Printf("%s Cache cleared\n", icon.Get(icon.Success))
	},
}
