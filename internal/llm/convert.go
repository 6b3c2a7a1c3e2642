package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

func toLangchainMessages(messages []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleSystem {
			role = llms.ChatMessageTypeSystem
		}
		out = append(out, llms.TextParts(role, m.Content))
	}
	return out
}

func buildCallOptions(req CompletionRequest) []llms.CallOption {
	var opts []llms.CallOption
	if req.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	return opts
}

func fromLangchainResponse(resp *llms.ContentResponse) (*Completion, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return nil, types.NewError(types.LLM_UNPARSABLE, "model returned no choices")
	}

	choice := resp.Choices[0]
	completion := &Completion{Content: choice.Content}

	if total, ok := choice.GenerationInfo["TotalTokens"]; ok {
		if n, ok := total.(int); ok {
			completion.TokensUsed = n
		}
	}
	return completion, nil
}

// translateError maps transport failures onto the structured error taxonomy
// so callers can distinguish a timeout (retryable, triggers the deterministic
// fallback) from a hard provider failure.
func translateError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &types.PipelineError{
			Code:      types.LLM_TIMEOUT,
			Message:   fmt.Sprintf("%s: call timed out", provider),
			Retryable: true,
			Cause:     err,
		}
	}
	return types.WrapError(types.LLM_UNAVAILABLE, fmt.Sprintf("%s: completion failed", provider), err)
}
