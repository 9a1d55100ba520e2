// launchdash serves an interactive dashboard over SpaceX launch records.
//
// Usage:
//
//	launchdash [serve] [--config=<path>]
//	launchdash sites [--config=<path>]
//	launchdash summary [--site=<site>] [--config=<path>]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "launchdash",
		Short: "Interactive dashboard for SpaceX launch records",
		Long: "launchdash loads a launch records dataset and serves a dashboard with a\n" +
			"success pie chart per site and a payload vs. outcome scatter chart.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.yaml", "Path to configuration file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newSitesCmd(opts))
	root.AddCommand(newSummaryCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
