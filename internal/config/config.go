package config

import (
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/llm"
)

// Config is the root configuration for the routing agent.
type Config struct {
	Core    CoreConfig    `mapstructure:"core" yaml:"core" validate:"required"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	LLM     LLMConfig     `mapstructure:"llm" yaml:"llm"`
	Policy  PolicyConfig  `mapstructure:"policy" yaml:"policy"`
	Store   StoreConfig   `mapstructure:"store" yaml:"store"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CoreConfig contains core application settings.
type CoreConfig struct {
	// DataDir holds the catalog files (requests, artists, presets, rules).
	DataDir string        `mapstructure:"data_dir" yaml:"data_dir" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1s"`
}

// ServerConfig configures the HTTP transport. Stdio needs no configuration.
type ServerConfig struct {
	// HTTPAddr enables the HTTP transport when non-empty, e.g. ":8765".
	HTTPAddr string `mapstructure:"http_addr" yaml:"http_addr"`

	// AuthToken is the bearer token required on HTTP requests.
	// Supports ${ENV_VAR} interpolation.
	AuthToken string `mapstructure:"auth_token" yaml:"auth_token,omitempty"`
}

// LLMConfig configures the optional model provider.
type LLMConfig struct {
	Provider string        `mapstructure:"provider" yaml:"provider" validate:"omitempty,oneof=openai ollama mock"`
	Model    string        `mapstructure:"model" yaml:"model"`
	APIKey   string        `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ProviderConfig converts the section into the provider factory's input.
func (c LLMConfig) ProviderConfig() llm.ProviderConfig {
	return llm.ProviderConfig{
		Type:    c.Provider,
		Model:   c.Model,
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
	}
}

// Enabled reports whether a model provider is configured.
func (c LLMConfig) Enabled() bool {
	return c.Provider != ""
}

// PolicyConfig selects the orchestration strategy.
type PolicyConfig struct {
	// Mode is "fixed" for the deterministic pipeline or "policy" for the
	// model-driven loop.
	Mode string `mapstructure:"mode" yaml:"mode" validate:"oneof=fixed policy"`

	// MaxSteps bounds the policy loop.
	MaxSteps int `mapstructure:"max_steps" yaml:"max_steps" validate:"min=1,max=16"`
}

// StoreConfig configures the optional durable decision store.
type StoreConfig struct {
	// Path enables the SQLite store when non-empty.
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=json text"`
}
