package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contentflowhq/contentflow/internal/dashboard"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		Long:  "Serves the JSON API: pipeline stats, videos, activity, pipeline actions, and a live event stream.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	driver, err := buildDriver(cfg, gormDB)
	if err != nil {
		return err
	}
	sched, err := buildScheduler(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := dashboard.StartOpts{
		DB:         gormDB,
		Driver:     driver,
		ScheduleID: cfg.Scheduler.ScheduleID,
		Port:       port,
		Out:        cmd.OutOrStdout(),
	}
	if sched != nil {
		opts.Scheduler = sched
	}
	return dashboard.Start(ctx, opts)
}
