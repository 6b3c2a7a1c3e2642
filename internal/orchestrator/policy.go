package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/llm"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

const policySystemPrompt = `You are a routing controller for 3D asset-creation requests.
At each turn pick exactly one next action from: validate, plan, assign, finish.
Pick "finish" once validation, planning and assignment have all been observed,
or once validation has failed. Respond with JSON only: {"action": "<name>"}`

const defaultPolicyTimeout = 10 * time.Second

// policyDirective is the JSON shape the model must reply with.
type policyDirective struct {
	Action string `json:"action"`
}

// PolicyStrategy asks a model for the next action. The first provider
// failure, timeout, or unparsable reply switches the strategy permanently to
// the fixed order for the remainder of the request, so one bad turn cannot
// stall the loop.
type PolicyStrategy struct {
	provider llm.Provider
	bus      events.Bus
	logger   *slog.Logger
	timeout  time.Duration

	fallback   *FixedStrategy
	degraded   bool
	TokensUsed int
}

func NewPolicyStrategy(provider llm.Provider, bus events.Bus, logger *slog.Logger, timeout time.Duration) *PolicyStrategy {
	if timeout <= 0 {
		timeout = defaultPolicyTimeout
	}
	return &PolicyStrategy{
		provider: provider,
		bus:      bus,
		logger:   logger.With("component", "policy"),
		timeout:  timeout,
		fallback: NewFixedStrategy(),
	}
}

func (s *PolicyStrategy) Name() string { return "policy" }

func (s *PolicyStrategy) Next(ctx context.Context, obs Observations) (Action, error) {
	if s.degraded {
		return s.fallback.Next(ctx, obs)
	}

	action, err := s.ask(ctx, obs)
	if err != nil {
		s.degrade(ctx, obs, err)
		return s.fallback.Next(ctx, obs)
	}

	s.emit(ctx, events.New(events.EventPolicyStep, obs.RequestID, map[string]any{
		"step":   obs.Step,
		"action": string(action),
	}))
	return action, nil
}

func (s *PolicyStrategy) ask(ctx context.Context, obs Observations) (Action, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	completion, err := s.provider.Complete(callCtx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: policySystemPrompt},
			{Role: llm.RoleUser, Content: renderObservations(obs)},
		},
		Temperature: 0,
		MaxTokens:   50,
	})
	if err != nil {
		return "", err
	}
	s.TokensUsed += completion.TokensUsed

	directive, err := llm.ExtractJSONAs[policyDirective](completion.Content)
	if err != nil {
		return "", err
	}

	switch Action(directive.Action) {
	case ActionValidate, ActionPlan, ActionAssign, ActionFinish:
		return Action(directive.Action), nil
	default:
		return "", types.NewError(types.LLM_UNPARSABLE,
			fmt.Sprintf("model proposed unknown action %q", directive.Action))
	}
}

func (s *PolicyStrategy) degrade(ctx context.Context, obs Observations, cause error) {
	s.degraded = true
	s.logger.Warn("policy unavailable, using fixed order",
		"request_id", obs.RequestID,
		"step", obs.Step,
		"error", cause,
	)
	s.emit(ctx, events.New(events.EventPolicyFallback, obs.RequestID, map[string]any{
		"step":  obs.Step,
		"error": cause.Error(),
		"code":  string(types.CodeOf(cause)),
	}))
}

func (s *PolicyStrategy) emit(ctx context.Context, ev events.Event) {
	if s.bus != nil {
		_ = s.bus.Publish(ctx, ev)
	}
}

// renderObservations summarizes loop state for the model. Full engine
// results are included so the model sees what the fixed pipeline would.
func renderObservations(obs Observations) string {
	summary := map[string]any{
		"request_id": obs.RequestID,
		"step":       obs.Step,
		"observed": map[string]bool{
			"validate": obs.Validation != nil,
			"plan":     obs.Plan != nil,
			"assign":   obs.Assignment != nil,
		},
	}
	if obs.Validation != nil {
		summary["validation"] = obs.Validation
	}
	if obs.Plan != nil {
		summary["plan"] = obs.Plan
	}
	if obs.Assignment != nil {
		summary["assignment"] = obs.Assignment
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Sprintf(`{"request_id": %q, "step": %d}`, obs.RequestID, obs.Step)
	}
	return string(raw)
}
