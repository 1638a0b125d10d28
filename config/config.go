package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var globalConfig *Config

// Load reads the configuration file
func Load(configPath string) (*Config, error) {
	// If path is empty, use default
	if configPath == "" {
		configPath = "config/workbench.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	globalConfig = &cfg
	return &cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		// Return default config if not loaded
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Audit.Enabled = true
		return cfg
	}
	return globalConfig
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace.Path == "" {
		cfg.Workspace.Path = getDefaultWorkspacePath()
	} else {
		cfg.Workspace.Path = expandHomePath(cfg.Workspace.Path)
	}

	if cfg.History.MaxTurns == 0 {
		cfg.History.MaxTurns = 50
	}

	if cfg.LLMs == nil {
		cfg.LLMs = map[string]LLMConfig{
			"chat": {Provider: "ollama", Model: "llama3:latest"},
		}
	}

	if cfg.Terminal.LineDelayMS == 0 {
		cfg.Terminal.LineDelayMS = 120
	}

	if cfg.Audit.LogPath == "" {
		cfg.Audit.LogPath = ".workbench/audit.log"
	}
	if cfg.Audit.LogLevel == "" {
		cfg.Audit.LogLevel = "info"
	}

	if cfg.MCP.Name == "" {
		cfg.MCP.Name = "workbench"
	}
}

// GetAuditLogPath returns the full path to the audit log
func GetAuditLogPath() string {
	cfg := Get()
	logPath := cfg.Audit.LogPath

	// If relative path, make it relative to workspace
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(cfg.Workspace.Path, logPath)
	}

	return logPath
}

// IsAuditEnabled checks if audit logging is enabled
func IsAuditEnabled() bool {
	return Get().Audit.Enabled
}

// getDefaultWorkspacePath returns the default workspace path.
// Priority: WORKBENCH_HOME env var > user home directory
func getDefaultWorkspacePath() string {
	if workspacePath := os.Getenv("WORKBENCH_HOME"); workspacePath != "" {
		return expandHomePath(workspacePath)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, err := os.Getwd()
		if err != nil {
			return "."
		}
		return cwd
	}

	return homeDir
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}
	}

	return path
}
