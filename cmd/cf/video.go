package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentflowhq/contentflow/internal/store"
)

func newVideoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Video item management commands",
	}

	cmd.AddCommand(newVideoListCmd())
	cmd.AddCommand(newVideoShowCmd())
	cmd.AddCommand(newVideoRemoveCmd())
	cmd.AddCommand(newVideoErrorsCmd())
	cmd.AddCommand(newVideoActivityCmd())
	return cmd
}

func newVideoListCmd() *cobra.Command {
	var (
		configPath string
		stage      string
		sortField  string
		desc       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List video items",
		Long:  "Lists video items with optional stage filter. Output is formatted as a table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideoList(cmd, configPath, store.ListFilters{
				Stage:     stage,
				SortField: sortField,
				SortAsc:   !desc,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	cmd.Flags().StringVar(&stage, "stage", "", "filter by stage (NEW, TRANSCRIBED, WRITTEN, READY_TO_POST, POSTED, ERROR)")
	cmd.Flags().StringVar(&sortField, "sort", "", "sort field (title, published_at, views)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func runVideoList(cmd *cobra.Command, configPath string, filters store.ListFilters) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	videos, err := store.List(gormDB, filters)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos found.")
		return nil
	}

	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{
			v.ID,
			truncate(v.Title, 48),
			v.ChannelName,
			v.Stage,
			formatViews(v.Views),
			formatDate(v.PublishedAt),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "TITLE", "CHANNEL", "STAGE", "VIEWS", "PUBLISHED"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "%d video(s)\n", len(videos))
	return nil
}

func newVideoShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <video-id>",
		Short: "Show full detail for a video item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideoShow(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	return cmd
}

func runVideoShow(cmd *cobra.Command, configPath, id string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	v, err := store.Get(gormDB, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", v.ID)
	fmt.Fprintf(out, "Title:     %s\n", v.Title)
	fmt.Fprintf(out, "Channel:   %s\n", v.ChannelName)
	fmt.Fprintf(out, "Stage:     %s\n", v.Stage)
	fmt.Fprintf(out, "Video ID:  %s\n", v.VideoID)
	fmt.Fprintf(out, "Views:     %s\n", formatViews(v.Views))
	fmt.Fprintf(out, "Published: %s\n", formatDate(v.PublishedAt))

	if v.MetaTitle != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Meta title:   %s\n", v.MetaTitle)
		fmt.Fprintf(out, "Slug:         %s\n", v.Slug)
		fmt.Fprintf(out, "Words:        %d (%d min read)\n", v.WordCount, v.ReadingTimeMinutes)
	}
	if v.FeaturedImageURL != "" {
		fmt.Fprintf(out, "Image:        %s\n", v.FeaturedImageURL)
		fmt.Fprintf(out, "Alt text:     %s\n", v.ImageAltText)
	}
	if v.PostURL != "" {
		fmt.Fprintf(out, "WP post:      %s (%s)\n", v.WPPostID, v.PostURL)
	}
	if v.LastError != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Last error:   %s\n", v.LastError)
		fmt.Fprintf(out, "Failed step:  %s\n", v.LastStep)
		fmt.Fprintf(out, "Retries:      %d\n", v.RetryCount)
	}
	return nil
}

func newVideoRemoveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "remove <video-id>",
		Short: "Remove a video item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideoRemove(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	return cmd
}

func runVideoRemove(cmd *cobra.Command, configPath, id string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := store.Remove(gormDB, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
	return nil
}

func newVideoErrorsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "List items in the ERROR stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideoErrors(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	return cmd
}

func runVideoErrors(cmd *cobra.Command, configPath string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	videos, err := store.Errors(gormDB)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintln(out, "No errored items.")
		return nil
	}

	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{
			v.ID,
			truncate(v.Title, 40),
			v.LastStep,
			fmt.Sprintf("%d", v.RetryCount),
			truncate(v.LastError, 50),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "TITLE", "FAILED STEP", "RETRIES", "ERROR"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}

func newVideoActivityCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the recent activity log",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideoActivity(cmd, configPath, limit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func runVideoActivity(cmd *cobra.Command, configPath string, limit int) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	entries, err := store.RecentActivity(gormDB, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No activity recorded.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Format("01-02 15:04"),
			truncate(e.VideoTitle, 36),
			e.Action,
			e.Result,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"TIME", "VIDEO", "ACTION", "RESULT"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}
