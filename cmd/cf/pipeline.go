package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contentflowhq/contentflow/internal/models"
	"github.com/contentflowhq/contentflow/internal/pipeline"
	"github.com/contentflowhq/contentflow/internal/store"
)

func newGenerateCmd() *cobra.Command {
	return newPipelineCmd(pipelineAction{
		use:      "generate",
		short:    "Generate an SEO article from a video",
		long:     "Runs the content-generation agent for one or more video items. Items advance to WRITTEN on success.",
		allStage: models.StageNew,
		op: func(d *pipeline.Driver) pipeline.Op {
			return d.GenerateContent
		},
	})
}

func newImageCmd() *cobra.Command {
	return newPipelineCmd(pipelineAction{
		use:      "image",
		short:    "Generate a featured image for a written article",
		long:     "Runs the image-generation agent for one or more WRITTEN items. Items advance to READY_TO_POST on success.",
		allStage: models.StageWritten,
		op: func(d *pipeline.Driver) pipeline.Op {
			return d.GenerateImage
		},
	})
}

func newReadyCmd() *cobra.Command {
	return newPipelineCmd(pipelineAction{
		use:      "ready",
		short:    "Mark written articles as ready to post",
		long:     "Advances WRITTEN items to READY_TO_POST without generating an image.",
		allStage: models.StageWritten,
		op: func(d *pipeline.Driver) pipeline.Op {
			return func(_ context.Context, v *models.Video) error {
				return d.MarkReady(v)
			}
		},
	})
}

func newPostCmd() *cobra.Command {
	return newPipelineCmd(pipelineAction{
		use:      "post",
		short:    "Publish ready articles to WordPress",
		long:     "Runs the publisher agent for one or more READY_TO_POST items. Items advance to POSTED on success.",
		allStage: models.StageReadyToPost,
		op: func(d *pipeline.Driver) pipeline.Op {
			return d.Publish
		},
	})
}

func newRetryCmd() *cobra.Command {
	return newPipelineCmd(pipelineAction{
		use:      "retry",
		short:    "Retry failed items",
		long:     "Routes ERROR items back into the pipeline based on the step that failed.",
		allStage: models.StageError,
		op: func(d *pipeline.Driver) pipeline.Op {
			return d.Retry
		},
	})
}

// pipelineAction describes one pipeline verb shared by the command builders.
type pipelineAction struct {
	use      string
	short    string
	long     string
	allStage string // stage targeted by --all
	op       func(*pipeline.Driver) pipeline.Op
}

func newPipelineCmd(a pipelineAction) *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   a.use + " [video-id...]",
		Short: a.short,
		Long:  a.long,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("provide one or more video IDs, or --all")
			}
			return runPipelineAction(cmd, configPath, a, args, all)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	cmd.Flags().BoolVar(&all, "all", false, "run on every "+a.allStage+" item")
	return cmd
}

func runPipelineAction(cmd *cobra.Command, configPath string, a pipelineAction, ids []string, all bool) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	driver, err := buildDriver(cfg, gormDB)
	if err != nil {
		return err
	}

	var videos []*models.Video
	if all {
		list, err := store.List(gormDB, store.ListFilters{Stage: a.allStage})
		if err != nil {
			return err
		}
		for i := range list {
			videos = append(videos, &list[i])
		}
	} else {
		for _, id := range ids {
			v, err := store.Get(gormDB, id)
			if err != nil {
				return err
			}
			videos = append(videos, v)
		}
	}

	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintf(out, "No %s items to process.\n", a.allStage)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	op := a.op(driver)
	err = driver.BulkAdvance(ctx, videos, op, func(p pipeline.Progress) {
		fmt.Fprintf(out, "[%d/%d] %s...\n", p.Current, p.Total, videos[p.Current-1].Title)
	})
	if err != nil {
		return err
	}

	// Report per-item outcomes from the refreshed rows.
	var failed []string
	for _, v := range videos {
		got, err := store.Get(gormDB, v.ID)
		if err != nil {
			return err
		}
		if got.Stage == models.StageError {
			failed = append(failed, fmt.Sprintf("%s (%s)", got.ID, got.LastError))
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(out, "Done with %d failure(s):\n  %s\n", len(failed), strings.Join(failed, "\n  "))
		return nil
	}
	fmt.Fprintf(out, "Done: %d item(s) processed.\n", len(videos))
	return nil
}
