package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// OllamaProvider implements Provider for a local Ollama instance.
type OllamaProvider struct {
	client *ollama.LLM
	config ProviderConfig
}

// NewOllamaProvider creates an Ollama provider. BaseURL defaults to the
// local daemon when unset.
func NewOllamaProvider(cfg ProviderConfig) (*OllamaProvider, error) {
	opts := []ollama.Option{}
	if cfg.Model != "" {
		opts = append(opts, ollama.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.LLM_UNAVAILABLE, "ollama: creating client", err)
	}

	return &OllamaProvider{client: client, config: cfg}, nil
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete sends a completion request.
func (p *OllamaProvider) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	resp, err := p.client.GenerateContent(ctx, toLangchainMessages(req.Messages), buildCallOptions(req)...)
	if err != nil {
		return nil, translateError("ollama", err)
	}
	return fromLangchainResponse(resp)
}
