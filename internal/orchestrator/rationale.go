package orchestrator

import (
	"fmt"
	"strings"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/decision"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
)

// Rationale produces the plain-language explanation stored with every
// decision. It never requires a model.
func Rationale(req catalog.Request, validation engine.ValidationResult, plan engine.PlanResult, assignment engine.AssignmentResult, status decision.Status) string {
	switch status {
	case decision.StatusSuccess:
		version := "unknown"
		if validation.PresetVersion != nil {
			version = fmt.Sprintf("%d", *validation.PresetVersion)
		}
		return fmt.Sprintf(
			"Request %s from %s processed successfully. Validation passed (v%s), %d workflow steps planned, assigned to %s with score %d/20.",
			req.ID, req.Account, version, len(plan.Steps), assignment.ArtistName, assignment.MatchScore,
		)
	case decision.StatusValidationFailed:
		return fmt.Sprintf(
			"Request %s failed validation: %s. Customer preset must be fixed before processing.",
			req.ID, strings.Join(validation.Errors, ", "),
		)
	default:
		reason := assignment.Reason
		if reason == "" {
			reason = "No available artists"
		}
		return fmt.Sprintf(
			"Request %s validated but cannot be assigned: %s.",
			req.ID, reason,
		)
	}
}
