package decision

import (
	"context"
	"sync"
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// Recorder packages decision payloads into immutable, uniquely identified
// audit records and appends them to a process-lifetime in-memory list. It
// performs no business validation: an unrecognized or missing status is
// stored verbatim, and recording always succeeds structurally.
type Recorder struct {
	bus events.Bus

	mu        sync.Mutex
	decisions []Decision
}

// NewRecorder creates a Recorder. The bus may be nil.
func NewRecorder(bus events.Bus) *Recorder {
	return &Recorder{bus: bus}
}

// Record allocates a decision id, stamps the current UTC time, appends the
// decision to the audit list, and emits a decision.recorded event.
func (r *Recorder) Record(ctx context.Context, requestID string, payload Payload) Receipt {
	status := payload.Status
	if status == "" {
		status = StatusUnknown
	}

	d := Decision{
		ID:               types.NewID(),
		RequestID:        requestID,
		Timestamp:        time.Now().UTC(),
		ValidationResult: payload.ValidationResult,
		Plan:             payload.Plan,
		Assignment:       payload.Assignment,
		Rationale:        payload.Rationale,
		CustomerMessage:  payload.CustomerMessage,
		ClarifyingQ:      payload.ClarifyingQ,
		Trace:            payload.Trace,
		Metrics:          payload.Metrics,
		Status:           status,
	}

	r.mu.Lock()
	r.decisions = append(r.decisions, d)
	r.mu.Unlock()

	if r.bus != nil {
		_ = r.bus.Publish(ctx, events.New(events.EventDecisionRecorded, requestID, map[string]any{
			"decision_id": d.ID.String(),
			"status":      string(d.Status),
		}))
	}

	return Receipt{
		DecisionID: d.ID,
		RecordedAt: d.Timestamp,
		Status:     d.Status,
	}
}

// All returns a copy of the audit list in recording order.
func (r *Recorder) All() []Decision {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Decision, len(r.decisions))
	copy(out, r.decisions)
	return out
}

// Len returns the number of recorded decisions.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.decisions)
}
