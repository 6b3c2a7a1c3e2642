package llm

import (
	"fmt"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// NewProvider constructs a provider from configuration. The provider type
// selects the backing implementation; unknown types are rejected rather than
// silently defaulted so a typo in config surfaces at startup.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, types.NewError(types.LLM_UNAVAILABLE,
			fmt.Sprintf("unknown provider type %q", cfg.Type))
	}
}
