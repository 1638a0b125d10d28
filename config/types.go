package config

// Config represents the application configuration
type Config struct {
	Workspace WorkspaceConfig      `yaml:"workspace"`
	History   HistoryConfig        `yaml:"history"`
	LLMs      map[string]LLMConfig `yaml:"llms"`
	Terminal  TerminalConfig       `yaml:"terminal"`
	Audit     AuditConfig          `yaml:"audit"`
	MCP       MCPConfig            `yaml:"mcp"`
}

// WorkspaceConfig defines where session artifacts (audit log) live
type WorkspaceConfig struct {
	Path string `yaml:"path"`
}

// HistoryConfig bounds the in-memory chat transcript
type HistoryConfig struct {
	MaxTurns int `yaml:"max_turns"` // user+assistant exchanges to keep, 0 = unlimited
}

// LLMConfig defines settings for a specific LLM purpose (chat/intent/codegen)
type LLMConfig struct {
	Provider    string         `yaml:"provider"`
	Model       string         `yaml:"model"`
	Temperature float64        `yaml:"temperature"`
	BaseURL     string         `yaml:"base_url,omitempty"`
	Options     map[string]any `yaml:"options,omitempty"`
}

// TerminalConfig tunes the simulated terminal
type TerminalConfig struct {
	LineDelayMS int `yaml:"line_delay_ms"` // artificial delay between output lines
}

// AuditConfig defines audit logging settings
type AuditConfig struct {
	Enabled  bool   `yaml:"enabled"`
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"` // info, warning, error
}

// MCPConfig controls the directive-ingress MCP server
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
}
