package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/contentflowhq/contentflow/internal/config"
	"github.com/contentflowhq/contentflow/internal/scheduler"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "External scheduler commands",
	}

	cmd.AddCommand(newScheduleShowCmd())
	cmd.AddCommand(newScheduleLogsCmd())
	cmd.AddCommand(newScheduleCommandCmd("pause", "Pause the auto-post schedule"))
	cmd.AddCommand(newScheduleCommandCmd("resume", "Resume the auto-post schedule"))
	cmd.AddCommand(newScheduleCommandCmd("trigger", "Trigger an auto-post run now"))
	return cmd
}

// schedulerFromConfig loads config and requires a configured scheduler.
func schedulerFromConfig(configPath string) (*config.Config, *scheduler.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	client, err := buildScheduler(cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, fmt.Errorf("no scheduler configured, set scheduler.base_url in %s", configPath)
	}
	return cfg, client, nil
}

func newScheduleShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the auto-post schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduleShow(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	return cmd
}

func runScheduleShow(cmd *cobra.Command, configPath string) error {
	cfg, client, err := schedulerFromConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sched, err := client.GetSchedule(ctx, cfg.Scheduler.ScheduleID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	status := "paused"
	if sched.IsActive {
		status = "active"
	}
	fmt.Fprintf(out, "Schedule:  %s (%s)\n", sched.Name, sched.ID)
	fmt.Fprintf(out, "Status:    %s\n", status)
	fmt.Fprintf(out, "Cadence:   %s\n", scheduler.CronToHuman(sched.CronExpression))
	if sched.NextRunTime != nil {
		fmt.Fprintf(out, "Next run:  %s\n", sched.NextRunTime.Format(time.RFC3339))
	}
	if sched.LastRunAt != nil {
		fmt.Fprintf(out, "Last run:  %s\n", sched.LastRunAt.Format(time.RFC3339))
	}
	return nil
}

func newScheduleLogsCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent schedule executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduleLogs(cmd, configPath, limit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of executions to show")
	return cmd
}

func runScheduleLogs(cmd *cobra.Command, configPath string, limit int) error {
	cfg, client, err := schedulerFromConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	execs, err := client.GetScheduleLogs(ctx, cfg.Scheduler.ScheduleID, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(execs) == 0 {
		fmt.Fprintln(out, "No executions recorded.")
		return nil
	}

	rows := make([][]string, 0, len(execs))
	for _, e := range execs {
		result := "ok"
		if !e.Success {
			result = "failed: " + truncate(e.ErrorMessage, 40)
		}
		rows = append(rows, []string{
			e.ExecutedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d/%d", e.Attempt, e.MaxAttempts),
			result,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"EXECUTED", "ATTEMPT", "RESULT"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
	return nil
}

func newScheduleCommandCmd(action, short string) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   action,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduleCommand(cmd, configPath, action)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	return cmd
}

func runScheduleCommand(cmd *cobra.Command, configPath, action string) error {
	cfg, client, err := schedulerFromConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var sched *scheduler.Schedule
	switch action {
	case "pause":
		sched, err = client.Pause(ctx, cfg.Scheduler.ScheduleID)
	case "resume":
		sched, err = client.Resume(ctx, cfg.Scheduler.ScheduleID)
	case "trigger":
		sched, err = client.TriggerNow(ctx, cfg.Scheduler.ScheduleID)
	}
	if err != nil {
		return err
	}

	status := "paused"
	if sched.IsActive {
		status = "active"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schedule %s is now %s\n", sched.ID, status)
	return nil
}
