package decision

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
)

func samplePayload(status Status) Payload {
	id := "artist-1"
	return Payload{
		ValidationResult: engine.ValidationResult{Ok: true, Errors: []string{}},
		Plan:             engine.PlanResult{Steps: []string{"initial_review", "qa_check", "delivery"}},
		Assignment:       engine.AssignmentResult{ArtistID: &id, ArtistName: "Maya", MatchScore: 15},
		Rationale:        "all gates passed",
		Trace: []TraceEntry{
			{Step: "validate_preset", Timestamp: time.Now().UTC()},
		},
		Status: status,
	}
}

func TestRecorder_Record(t *testing.T) {
	r := NewRecorder(nil)

	receipt := r.Record(context.Background(), "req-001", samplePayload(StatusSuccess))

	require.NoError(t, receipt.DecisionID.Validate())
	assert.Equal(t, StatusSuccess, receipt.Status)
	assert.False(t, receipt.RecordedAt.IsZero())

	all := r.All()
	require.Len(t, all, 1)
	assert.Equal(t, "req-001", all[0].RequestID)
	assert.Equal(t, receipt.DecisionID, all[0].ID)
}

func TestRecorder_MissingStatusStoredAsUnknown(t *testing.T) {
	r := NewRecorder(nil)

	receipt := r.Record(context.Background(), "req-001", samplePayload(""))

	assert.Equal(t, StatusUnknown, receipt.Status)
	assert.Equal(t, StatusUnknown, r.All()[0].Status)
}

func TestRecorder_UnrecognizedStatusStoredVerbatim(t *testing.T) {
	r := NewRecorder(nil)

	receipt := r.Record(context.Background(), "req-001", samplePayload("half-done"))

	assert.Equal(t, Status("half-done"), receipt.Status)
}

func TestRecorder_AppendsInOrderWithUniqueIDs(t *testing.T) {
	r := NewRecorder(nil)

	first := r.Record(context.Background(), "req-001", samplePayload(StatusSuccess))
	second := r.Record(context.Background(), "req-002", samplePayload(StatusValidationFailed))

	assert.NotEqual(t, first.DecisionID, second.DecisionID)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "req-001", all[0].RequestID)
	assert.Equal(t, "req-002", all[1].RequestID)
}

func TestRecorder_EmitsDecisionRecordedEvent(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch, cancel := bus.Subscribe(context.Background(), []events.EventType{events.EventDecisionRecorded}, 4)
	defer cancel()

	r := NewRecorder(bus)
	receipt := r.Record(context.Background(), "req-001", samplePayload(StatusSuccess))

	select {
	case ev := <-ch:
		assert.Equal(t, "req-001", ev.RequestID)
		assert.Equal(t, receipt.DecisionID.String(), ev.Data["decision_id"])
		assert.Equal(t, "success", ev.Data["status"])
	case <-time.After(time.Second):
		t.Fatal("expected a decision.recorded event")
	}
}

func TestRecorder_AllReturnsCopy(t *testing.T) {
	r := NewRecorder(nil)
	r.Record(context.Background(), "req-001", samplePayload(StatusSuccess))

	all := r.All()
	all[0].RequestID = "mutated"

	assert.Equal(t, "req-001", r.All()[0].RequestID)
}

func TestDerive(t *testing.T) {
	assert.Equal(t, StatusSuccess, Derive(true, true))
	assert.Equal(t, StatusAssignmentFailed, Derive(true, false))
	assert.Equal(t, StatusValidationFailed, Derive(false, false))
	// validation_failed wins regardless of assignment outcome
	assert.Equal(t, StatusValidationFailed, Derive(false, true))
}
