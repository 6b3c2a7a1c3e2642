package llm

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// OpenAIProvider implements Provider for OpenAI-compatible endpoints.
type OpenAIProvider struct {
	client *openai.LLM
	config ProviderConfig
}

// NewOpenAIProvider creates an OpenAI provider. The API key falls back to
// OPENAI_API_KEY when not configured; BaseURL allows pointing at any
// OpenAI-compatible endpoint.
func NewOpenAIProvider(cfg ProviderConfig) (*OpenAIProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, types.NewError(types.LLM_UNAVAILABLE, "openai: no API key configured")
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
	}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.LLM_UNAVAILABLE, "openai: creating client", err)
	}

	return &OpenAIProvider{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete sends a completion request.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	resp, err := p.client.GenerateContent(ctx, toLangchainMessages(req.Messages), buildCallOptions(req)...)
	if err != nil {
		return nil, translateError("openai", err)
	}
	return fromLangchainResponse(resp)
}
