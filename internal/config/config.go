// Package config defines and loads the aksi configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harits/aksi/internal/logger"
	"github.com/harits/aksi/pkg/model"
)

// Config represents the main aksi configuration
type Config struct {
	// Model provider selection and generation budgets
	Model model.Config `json:"model" mapstructure:"model"`

	// Tools configures the built-in tool catalog
	Tools ToolsConfig `json:"tools" mapstructure:"tools"`

	// Gateway configures the HTTP dispatch endpoint
	Gateway GatewayConfig `json:"gateway" mapstructure:"gateway"`

	// History configures the dispatch audit log
	History HistoryConfig `json:"history" mapstructure:"history"`

	// Schedules are cron-driven queries run through the dispatcher
	Schedules []ScheduleConfig `json:"schedules" mapstructure:"schedules"`

	// Logging
	Logging logger.Config `json:"logging" mapstructure:"logging"`
}

// ToolsConfig holds tool configuration
type ToolsConfig struct {
	// WorkspaceDir confines the file tools
	WorkspaceDir string `json:"workspace_dir" mapstructure:"workspace_dir"`

	// TimeoutSeconds bounds a single tool call
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`

	// WeatherBaseURL and SearchBaseURL override the external endpoints
	WeatherBaseURL string `json:"weather_base_url" mapstructure:"weather_base_url"`
	SearchBaseURL  string `json:"search_base_url" mapstructure:"search_base_url"`
}

// GatewayConfig holds the HTTP gateway configuration
type GatewayConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Addr    string `json:"addr" mapstructure:"addr"`
}

// HistoryConfig holds the audit log configuration
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// ScheduleConfig is one cron entry dispatching a fixed query
type ScheduleConfig struct {
	Cron  string `json:"cron" mapstructure:"cron"`
	Query string `json:"query" mapstructure:"query"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".aksi")

	return &Config{
		Model: model.DefaultConfig(),
		Tools: ToolsConfig{
			WorkspaceDir:   filepath.Join(dataDir, "workspace"),
			TimeoutSeconds: 10,
		},
		Gateway: GatewayConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8787",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir, "history.db"),
		},
		Logging: logger.DefaultConfig(),
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "", "local", "none":
	case "anthropic":
		if c.Model.APIKey == "" {
			return fmt.Errorf("model: anthropic provider requires api_key")
		}
	default:
		return fmt.Errorf("model: unsupported provider %q", c.Model.Provider)
	}

	if c.Model.Provider == "local" || c.Model.Provider == "" {
		if c.Model.BaseURL == "" {
			return fmt.Errorf("model: local provider requires base_url")
		}
	}

	if c.Tools.WorkspaceDir == "" {
		return fmt.Errorf("tools: workspace_dir is required")
	}
	if c.Tools.TimeoutSeconds < 0 {
		return fmt.Errorf("tools: timeout_seconds cannot be negative")
	}

	if c.Gateway.Enabled && c.Gateway.Addr == "" {
		return fmt.Errorf("gateway: addr is required when enabled")
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history: path is required when enabled")
	}

	for i, schedule := range c.Schedules {
		if schedule.Cron == "" {
			return fmt.Errorf("schedules[%d]: cron expression is required", i)
		}
		if schedule.Query == "" {
			return fmt.Errorf("schedules[%d]: query is required", i)
		}
	}

	return nil
}
