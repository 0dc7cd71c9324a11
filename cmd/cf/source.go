package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentflowhq/contentflow/internal/source"
)

func newSourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Video source commands",
	}

	cmd.AddCommand(newSourceFetchCmd())
	return cmd
}

func newSourceFetchCmd() *cobra.Command {
	var (
		configPath string
		sourceType string
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch videos from a source URL",
		Long:  "Ingests videos from a channel or RSS feed URL as NEW pipeline items.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourceFetch(cmd, configPath, args[0], sourceType)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	cmd.Flags().StringVarP(&sourceType, "type", "t", source.TypeChannel, "source type (channel, rss, manual)")
	return cmd
}

func runSourceFetch(cmd *cobra.Command, configPath, url, sourceType string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	videos, err := source.Fetch(gormDB, url, sourceType)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fetched %d videos from %s\n", len(videos), url)
	for _, v := range videos {
		fmt.Fprintf(out, "  %s  %s\n", v.ID, v.Title)
	}
	return nil
}
