// Package config provides YAML-based configuration loading for ContentFlow.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level ContentFlow configuration, loaded from
// contentflow.yaml.
type Config struct {
	BrandName string          `yaml:"brand_name"`
	Agent     AgentConfig     `yaml:"agent"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Database  DatabaseConfig  `yaml:"database"`
	WordPress WordPressConfig `yaml:"wordpress"`
	Sources   SourcesConfig   `yaml:"sources"`
	Content   ContentConfig   `yaml:"content"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Notify    NotifyConfig    `yaml:"notify"`
}

// AgentConfig holds connection settings for the AI agent executor and the
// three capability IDs invoked against it.
type AgentConfig struct {
	BaseURL          string `yaml:"base_url"`
	APIKey           string `yaml:"api_key"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	ContentAgentID   string `yaml:"content_agent_id"`
	ImageAgentID     string `yaml:"image_agent_id"`
	PublisherAgentID string `yaml:"publisher_agent_id"`
}

// SchedulerConfig holds connection settings for the external scheduler API.
type SchedulerConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	ScheduleID string `yaml:"schedule_id"`
}

// DatabaseConfig selects the storage backend. Driver "sqlite" (default) uses
// Path as the DSN; ":memory:" keeps the whole store in process memory.
// Driver "mysql" uses Host/Port/Database.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

// WordPressConfig holds destination site credentials. These are captured for
// display and for the publisher agent's own use; the pipeline driver does not
// read them.
type WordPressConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SourcesConfig holds API keys for the video source integrations.
type SourcesConfig struct {
	SupadataKey   string `yaml:"supadata_key"`
	YouTubeAPIKey string `yaml:"youtube_api_key"`
}

// ContentConfig holds content generation defaults.
type ContentConfig struct {
	ImageStyle string `yaml:"image_style"`
	DefaultCTA string `yaml:"default_cta"`
}

// PipelineConfig holds numeric policy knobs and feature flags. Only the
// auto-post daemon enforces these; single-item operations ignore them.
type PipelineConfig struct {
	MaxProcessPerRun    int  `yaml:"max_process_per_run"`
	RetryLimit          int  `yaml:"retry_limit"`
	DailyPostLimit      int  `yaml:"daily_post_limit"`
	PostingStartHour    int  `yaml:"posting_start_hour"`
	PostingEndHour      int  `yaml:"posting_end_hour"`
	EnableScheduling    bool `yaml:"enable_scheduling"`
	EnableFAQSchema     bool `yaml:"enable_faq_schema"`
	EnableInternalLinks bool `yaml:"enable_internal_links"`
}

// NotifyConfig holds optional chat notification settings. Notifications are
// disabled when no token is set.
type NotifyConfig struct {
	SlackToken     string `yaml:"slack_token"`
	SlackChannel   string `yaml:"slack_channel"`
	DiscordToken   string `yaml:"discord_token"`
	DiscordChannel string `yaml:"discord_channel"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Save writes the config back to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Agent.TimeoutSec == 0 {
		c.Agent.TimeoutSec = 300
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "contentflow.db"
	}
	if c.Database.Driver == "mysql" {
		if c.Database.Host == "" {
			c.Database.Host = "127.0.0.1"
		}
		if c.Database.Port == 0 {
			c.Database.Port = 3306
		}
		if c.Database.Database == "" {
			c.Database.Database = "contentflow"
		}
	}
	if c.Content.DefaultCTA == "" {
		c.Content.DefaultCTA = "Subscribe for more content like this!"
	}
	if c.Pipeline.MaxProcessPerRun == 0 {
		c.Pipeline.MaxProcessPerRun = 5
	}
	if c.Pipeline.RetryLimit == 0 {
		c.Pipeline.RetryLimit = 3
	}
	if c.Pipeline.DailyPostLimit == 0 {
		c.Pipeline.DailyPostLimit = 3
	}
	if c.Pipeline.PostingStartHour == 0 && c.Pipeline.PostingEndHour == 0 {
		c.Pipeline.PostingStartHour = 8
		c.Pipeline.PostingEndHour = 20
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Agent.BaseURL == "" {
		errs = append(errs, "agent.base_url is required")
	}
	if c.Agent.ContentAgentID == "" {
		errs = append(errs, "agent.content_agent_id is required")
	}
	if c.Agent.ImageAgentID == "" {
		errs = append(errs, "agent.image_agent_id is required")
	}
	if c.Agent.PublisherAgentID == "" {
		errs = append(errs, "agent.publisher_agent_id is required")
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("database.driver %q is not supported (sqlite or mysql)", c.Database.Driver))
	}
	if c.Pipeline.PostingStartHour < 0 || c.Pipeline.PostingStartHour > 23 {
		errs = append(errs, "pipeline.posting_start_hour must be 0-23")
	}
	if c.Pipeline.PostingEndHour < 0 || c.Pipeline.PostingEndHour > 23 {
		errs = append(errs, "pipeline.posting_end_hour must be 0-23")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
