package main

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/contentflowhq/contentflow/internal/agent"
	"github.com/contentflowhq/contentflow/internal/config"
	"github.com/contentflowhq/contentflow/internal/db"
	"github.com/contentflowhq/contentflow/internal/notify"
	"github.com/contentflowhq/contentflow/internal/notify/discord"
	"github.com/contentflowhq/contentflow/internal/notify/slack"
	"github.com/contentflowhq/contentflow/internal/pipeline"
	"github.com/contentflowhq/contentflow/internal/scheduler"
)

const defaultConfigPath = "contentflow.yaml"

func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	return cfg, gormDB, nil
}

// buildNotifier assembles the configured chat notifiers. Returns nil when
// none are configured.
func buildNotifier(cfg *config.Config) (notify.Notifier, error) {
	var targets notify.Multi
	if cfg.Notify.SlackToken != "" {
		n, err := slack.New(slack.Opts{
			BotToken:  cfg.Notify.SlackToken,
			ChannelID: cfg.Notify.SlackChannel,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, n)
	}
	if cfg.Notify.DiscordToken != "" {
		n, err := discord.New(discord.Opts{
			BotToken:  cfg.Notify.DiscordToken,
			ChannelID: cfg.Notify.DiscordChannel,
		})
		if err != nil {
			return nil, err
		}
		targets = append(targets, n)
	}
	if len(targets) == 0 {
		return nil, nil
	}
	return targets, nil
}

// buildDriver wires the agent client and notifiers into a pipeline driver.
func buildDriver(cfg *config.Config, gormDB *gorm.DB) (*pipeline.Driver, error) {
	client, err := agent.New(agent.Opts{
		BaseURL: cfg.Agent.BaseURL,
		APIKey:  cfg.Agent.APIKey,
		Timeout: time.Duration(cfg.Agent.TimeoutSec) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Opts{
		DB:       gormDB,
		Agent:    client,
		Agents:   cfg.Agent,
		Notifier: notifier,
	})
}

// buildScheduler creates the external scheduler client, or nil when no
// scheduler base URL is configured.
func buildScheduler(cfg *config.Config) (*scheduler.Client, error) {
	if cfg.Scheduler.BaseURL == "" {
		return nil, nil
	}
	return scheduler.New(scheduler.Opts{
		BaseURL: cfg.Scheduler.BaseURL,
		APIKey:  cfg.Scheduler.APIKey,
	})
}
