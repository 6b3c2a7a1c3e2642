// Package llm provides a thin provider abstraction over langchaingo models.
// Two collaborators use it: the bounded policy loop asks a model to pick the
// next pipeline action, and the message enhancer rewrites customer-facing
// text for non-success decisions. Both are optional; everything they gate has
// a deterministic substitute.
package llm

import (
	"context"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one chat turn in a completion request.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest is a provider-agnostic completion call.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Completion is the response to a completion request.
type Completion struct {
	Content    string
	TokensUsed int
}

// Provider is the interface all model backends implement.
type Provider interface {
	// Name returns the provider name (e.g. "openai", "ollama", "mock").
	Name() string

	// Complete sends a completion request and blocks for the full response.
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// ProviderConfig selects and configures a backend.
type ProviderConfig struct {
	Type    string `mapstructure:"provider" yaml:"provider"`
	Model   string `mapstructure:"model" yaml:"model"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}
