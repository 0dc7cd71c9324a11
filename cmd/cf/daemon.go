package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contentflowhq/contentflow/internal/autopost"
)

func newDaemonCmd() *cobra.Command {
	var (
		configPath string
		cronExpr   string
	)

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the local auto-post daemon",
		Long: `Publishes READY_TO_POST items on a cron schedule, honoring the configured
posting window and daily post limit. Use this when no external scheduler is
wired up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, configPath, cronExpr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	cmd.Flags().StringVar(&cronExpr, "cron", autopost.DefaultCron, "5-field cron expression for publish runs")
	return cmd
}

func runDaemon(cmd *cobra.Command, configPath, cronExpr string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	driver, err := buildDriver(cfg, gormDB)
	if err != nil {
		return err
	}

	daemon, err := autopost.New(autopost.Opts{
		DB:       gormDB,
		Driver:   driver,
		Pipeline: cfg.Pipeline,
		Cron:     cronExpr,
		Out:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx)
}
