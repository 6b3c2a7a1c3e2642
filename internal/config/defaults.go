package config

import "time"

// DefaultConfig returns a Config with sensible default values: deterministic
// pipeline, no model provider, no durable store, catalog read from ./data.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			DataDir: "data",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			HTTPAddr:  "",
			AuthToken: "",
		},
		LLM: LLMConfig{
			Provider: "",
			Model:    "",
			Timeout:  10 * time.Second,
		},
		Policy: PolicyConfig{
			Mode:     "fixed",
			MaxSteps: 6,
		},
		Store: StoreConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
