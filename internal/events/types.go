package events

import (
	"time"
)

// EventType identifies the category and nature of an observability event
// emitted while a request moves through the decision pipeline.
type EventType string

// Tool Surface Events
// These events track calls against the operation surface, whichever
// transport they arrive on.
const (
	EventToolCalled    EventType = "tool.called"
	EventToolCompleted EventType = "tool.completed"
	EventToolFailed    EventType = "tool.failed"
)

// Resource Events
const (
	EventResourceRead EventType = "resource.read"
)

// Engine Events
const (
	// EventValidationFailed is emitted only for an incomplete channel-packing
	// map, mirroring the narrower scope of the other validation errors which
	// accumulate silently.
	EventValidationFailed EventType = "validation.failed"
)

// Decision Events
const (
	EventDecisionRecorded EventType = "decision.recorded"
)

// Policy Events
// These events track the bounded control loop and its external policy.
const (
	EventPolicyStep     EventType = "policy.step"
	EventPolicyFallback EventType = "policy.fallback"
)

// LLM Events
const (
	EventLLMRequestCompleted EventType = "llm.request.completed"
	EventLLMRequestFailed    EventType = "llm.request.failed"
)

// Event is a single observability event with a typed category, a UTC
// timestamp, and free-form structured data.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"request_id,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// New creates an Event stamped with the current UTC time.
func New(eventType EventType, requestID string, data map[string]any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Data:      data,
	}
}
