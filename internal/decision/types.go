// Package decision defines the immutable audit record produced for every
// processed request, the in-memory recorder that accumulates them, and the
// durable stores the orchestrator hands completed decisions to.
package decision

import (
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// Status is the terminal state of one routing decision.
type Status string

const (
	StatusSuccess          Status = "success"
	StatusValidationFailed Status = "validation_failed"
	StatusAssignmentFailed Status = "assignment_failed"

	// StatusUnknown is stored verbatim when a caller records a decision
	// without a status; the recorder performs no business validation.
	StatusUnknown Status = "unknown"
)

// Derive computes the status from the two gates. success requires both;
// validation_failed wins over assignment_failed whenever validation did not
// succeed.
func Derive(validationOk, assigned bool) Status {
	switch {
	case !validationOk:
		return StatusValidationFailed
	case !assigned:
		return StatusAssignmentFailed
	default:
		return StatusSuccess
	}
}

// TraceEntry is one step record in a decision's trace. Entries appear in
// strict invocation order and are never reordered.
type TraceEntry struct {
	Step      string    `json:"step"`
	Result    any       `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// Metrics carries per-decision processing measurements.
type Metrics struct {
	ProcessingTimeMS int    `json:"processing_time_ms"`
	AgentType        string `json:"agent_type,omitempty"`
	LLMEnhanced      bool   `json:"llm_enhanced,omitempty"`
	TokensUsed       int    `json:"tokens_used,omitempty"`
}

// Payload is everything a caller supplies when recording a decision. The
// recorder stores it verbatim.
type Payload struct {
	ValidationResult engine.ValidationResult `json:"validation_result"`
	Plan             engine.PlanResult       `json:"plan"`
	Assignment       engine.AssignmentResult `json:"assignment"`
	Rationale        string                  `json:"rationale"`
	CustomerMessage  *string                 `json:"customer_message,omitempty"`
	ClarifyingQ      *string                 `json:"clarifying_question,omitempty"`
	Trace            []TraceEntry            `json:"trace"`
	Metrics          Metrics                 `json:"metrics"`
	Status           Status                  `json:"status"`
}

// Decision is the immutable audit record for one processed request.
type Decision struct {
	ID               types.ID                `json:"id"`
	RequestID        string                  `json:"request_id"`
	Timestamp        time.Time               `json:"timestamp"`
	ValidationResult engine.ValidationResult `json:"validation_result"`
	Plan             engine.PlanResult       `json:"plan"`
	Assignment       engine.AssignmentResult `json:"assignment"`
	Rationale        string                  `json:"rationale"`
	CustomerMessage  *string                 `json:"customer_message,omitempty"`
	ClarifyingQ      *string                 `json:"clarifying_question,omitempty"`
	Trace            []TraceEntry            `json:"trace"`
	Metrics          Metrics                 `json:"metrics"`
	Status           Status                  `json:"status"`
}

// Receipt is the structural acknowledgement returned for every recorded
// decision.
type Receipt struct {
	DecisionID types.ID  `json:"decision_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Status     Status    `json:"status"`
}
