package engine

import (
	"fmt"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
)

// baseSteps is the fixed base sequence every plan starts from. The two-step
// tail [qa_check, delivery] is invariant: injected steps land ahead of
// qa_check and delivery stays terminal.
var baseSteps = []string{"initial_review", "modeling", "texturing", "qa_check", "delivery"}

// estimateHoursPerStep is a fixed heuristic multiplier, not a real estimator.
const estimateHoursPerStep = 2

// Planner derives an ordered processing-step sequence by applying the
// declarative rule set to a request.
type Planner struct{}

// NewPlanner creates a Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// PlanSteps builds the step plan for a request. An unknown id yields an
// empty plan carrying an error string. Identical request attributes and rule
// set always yield the same sequence and matched-rule list.
func (p *Planner) PlanSteps(snap *catalog.Snapshot, requestID string) PlanResult {
	req, ok := snap.Request(requestID)
	if !ok {
		return PlanResult{
			Steps:        []string{},
			MatchedRules: []RuleMatch{},
			Error:        fmt.Sprintf("Request %s not found", requestID),
		}
	}

	steps := make([]string, len(baseSteps))
	copy(steps, baseSteps)

	matches := MatchRules(snap.Rules, req)
	for _, match := range matches {
		for _, step := range match.Action.Steps {
			if !contains(steps, step) {
				steps = insertBeforeTail(steps, step)
			}
		}
	}

	matched := matches
	if matched == nil {
		matched = []RuleMatch{}
	}

	return PlanResult{
		Steps:          steps,
		MatchedRules:   matched,
		EstimatedHours: len(steps) * estimateHoursPerStep,
		PriorityQueue:  IsExpedited(matches),
	}
}

// insertBeforeTail places step immediately ahead of the sequence's
// second-to-last element, so qa_check and delivery keep closing the plan and
// steps injected by successive rules accumulate in rule order.
func insertBeforeTail(steps []string, step string) []string {
	at := len(steps) - 2
	steps = append(steps, "")
	copy(steps[at+1:], steps[at:])
	steps[at] = step
	return steps
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
