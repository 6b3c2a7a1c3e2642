package orchestrator

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/llm"
)

const enhancerSystemPrompt = "You help explain 3D asset processing decisions to customers clearly and kindly."

// Enhancer rewrites the customer message for failed decisions using a model.
// The taxonomy-derived message stays in the trace and remains the decision's
// message whenever the model is unavailable or errors.
type Enhancer struct {
	provider llm.Provider
	logger   *slog.Logger
	timeout  time.Duration
}

func NewEnhancer(provider llm.Provider, logger *slog.Logger, timeout time.Duration) *Enhancer {
	if timeout <= 0 {
		timeout = defaultPolicyTimeout
	}
	return &Enhancer{
		provider: provider,
		logger:   logger.With("component", "enhancer"),
		timeout:  timeout,
	}
}

// Enhance returns a rewritten customer message plus tokens consumed, or
// ok=false when the model could not produce one.
func (e *Enhancer) Enhance(ctx context.Context, requestID string, validation engine.ValidationResult) (message string, tokens int, ok bool) {
	raw, err := json.MarshalIndent(validation, "", "  ")
	if err != nil {
		return "", 0, false
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	completion, err := e.provider.Complete(callCtx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: enhancerSystemPrompt},
			{Role: llm.RoleUser, Content: "Explain this validation failure in a clear and concise way:\n" + string(raw)},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		e.logger.Warn("message enhancement failed",
			"request_id", requestID,
			"error", err,
		)
		return "", 0, false
	}
	if completion.Content == "" {
		return "", 0, false
	}
	return completion.Content, completion.TokensUsed, true
}
