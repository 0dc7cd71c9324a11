package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cf",
		Short: "ContentFlow: video-to-WordPress content automation",
		Long:  "ContentFlow turns videos into SEO articles and publishes them to WordPress through AI agents.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSourceCmd())
	cmd.AddCommand(newVideoCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newImageCmd())
	cmd.AddCommand(newReadyCmd())
	cmd.AddCommand(newPostCmd())
	cmd.AddCommand(newRetryCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newDaemonCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cf %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
