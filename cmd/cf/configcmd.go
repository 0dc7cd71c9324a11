package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/contentflowhq/contentflow/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCredentialsCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  "Prints the loaded configuration with secrets masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	return cmd
}

func runConfigShow(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Brand:          %s\n", cfg.BrandName)
	fmt.Fprintf(out, "Database:       %s\n", cfg.Database.Driver)
	fmt.Fprintf(out, "Agent executor: %s\n", cfg.Agent.BaseURL)
	fmt.Fprintf(out, "Agent API key:  %s\n", mask(cfg.Agent.APIKey))
	fmt.Fprintf(out, "Content agent:  %s\n", cfg.Agent.ContentAgentID)
	fmt.Fprintf(out, "Image agent:    %s\n", cfg.Agent.ImageAgentID)
	fmt.Fprintf(out, "Publisher:      %s\n", cfg.Agent.PublisherAgentID)
	if cfg.Scheduler.BaseURL != "" {
		fmt.Fprintf(out, "Scheduler:      %s (schedule %s)\n", cfg.Scheduler.BaseURL, cfg.Scheduler.ScheduleID)
	}
	if cfg.WordPress.URL != "" {
		fmt.Fprintf(out, "WordPress:      %s (user %s, password %s)\n",
			cfg.WordPress.URL, cfg.WordPress.Username, mask(cfg.WordPress.Password))
	}
	fmt.Fprintf(out, "Posting window: %02d:00-%02d:00, max %d/run, %d/day\n",
		cfg.Pipeline.PostingStartHour, cfg.Pipeline.PostingEndHour,
		cfg.Pipeline.MaxProcessPerRun, cfg.Pipeline.DailyPostLimit)
	return nil
}

func mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}

func newConfigSetCredentialsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set-credentials",
		Short: "Set API keys and the WordPress password",
		Long: `Prompts for the agent API key, scheduler API key, and WordPress password
and writes them to the config file. Secrets are read without echo when run
from a terminal. Press Enter to keep the current value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSetCredentials(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to ContentFlow config file")
	return cmd
}

func runConfigSetCredentials(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	out := cmd.OutOrStdout()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Agent API key", &cfg.Agent.APIKey},
		{"Scheduler API key", &cfg.Scheduler.APIKey},
		{"WordPress password", &cfg.WordPress.Password},
	}
	for _, p := range prompts {
		value, err := promptSecret(cmd, scanner, p.label)
		if err != nil {
			return err
		}
		if value != "" {
			*p.dst = value
		}
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "Credentials written to %s\n", configPath)
	return nil
}

// promptSecret reads a secret without echo when stdin is a terminal, falling
// back to the shared line scanner otherwise (pipes, tests).
func promptSecret(cmd *cobra.Command, scanner *bufio.Scanner, label string) (string, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (Enter to keep current): ", label)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", label, err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", nil
}
