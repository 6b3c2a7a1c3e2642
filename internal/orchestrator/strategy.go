package orchestrator

import (
	"context"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
)

// Action is one step the control loop can take next.
type Action string

const (
	ActionValidate Action = "validate"
	ActionPlan     Action = "plan"
	ActionAssign   Action = "assign"
	ActionFinish   Action = "finish"
)

// Observations accumulates what the loop has seen so far for one request.
// Result pointers are nil until the corresponding action has executed.
type Observations struct {
	RequestID  string
	Account    string
	Step       int
	Validation *engine.ValidationResult
	Plan       *engine.PlanResult
	Assignment *engine.AssignmentResult
}

// Complete reports whether all three engine operations have been observed.
func (o Observations) Complete() bool {
	return o.Validation != nil && o.Plan != nil && o.Assignment != nil
}

// Strategy picks the next action given the observations so far. The loop
// owner enforces termination; a strategy only proposes.
type Strategy interface {
	Name() string
	Next(ctx context.Context, obs Observations) (Action, error)
}

// FixedStrategy walks validate, plan, assign, finish in order, skipping
// anything already observed.
type FixedStrategy struct{}

func NewFixedStrategy() *FixedStrategy {
	return &FixedStrategy{}
}

func (s *FixedStrategy) Name() string { return "fixed" }

func (s *FixedStrategy) Next(_ context.Context, obs Observations) (Action, error) {
	switch {
	case obs.Validation == nil:
		return ActionValidate, nil
	case obs.Plan == nil:
		return ActionPlan, nil
	case obs.Assignment == nil:
		return ActionAssign, nil
	default:
		return ActionFinish, nil
	}
}
