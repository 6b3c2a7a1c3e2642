package engine

import (
	"fmt"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
)

// MatchRules evaluates every rule, in stored order, against the request.
// A condition matches when all of its keys equal the corresponding request
// field exactly; a field absent on the request counts as a non-match. Both
// the planner and the assignment engine call this independently.
func MatchRules(rules []catalog.Rule, req catalog.Request) []RuleMatch {
	var matches []RuleMatch
	for i, rule := range rules {
		if conditionMatches(rule.If, req) {
			matches = append(matches, RuleMatch{
				RuleID:    fmt.Sprintf("rule_%d", i),
				Condition: rule.If,
				Action:    rule.Then,
			})
		}
	}
	return matches
}

// IsExpedited reports whether any matched rule's action carries the
// "expedite" queue marker.
func IsExpedited(matches []RuleMatch) bool {
	for _, m := range matches {
		if m.Action.Queue == "expedite" {
			return true
		}
	}
	return false
}

func conditionMatches(condition map[string]string, req catalog.Request) bool {
	for key, want := range condition {
		got, ok := req.Field(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}
