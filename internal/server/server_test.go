package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/decision"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
)

func intPtr(n int) *int { return &n }

func testServer(t *testing.T) (*Server, *decision.Recorder, events.Bus) {
	t.Helper()
	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })

	snap := &catalog.Snapshot{
		Requests: []catalog.Request{
			{ID: "req-1", Account: "acme", Style: "lowpoly", Engine: "unity"},
		},
		Artists: []catalog.Artist{
			{ID: "artist-1", Name: "Mira", Skills: []string{"unity", "lowpoly"}, CapacityConcurrent: 2},
		},
		Presets: map[string]catalog.Preset{
			"acme": {
				Naming:  &catalog.Naming{Pattern: "{account}_{asset}"},
				Packing: map[string]string{"r": "m", "g": "r", "b": "ao", "a": "a"},
				Version: intPtr(1),
			},
		},
		Rules: []catalog.Rule{
			{If: map[string]string{"style": "lowpoly"}, Then: catalog.Action{Steps: []string{"retopology"}}},
		},
	}

	recorder := decision.NewRecorder(bus)
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	srv := New(snap, engine.NewValidator(bus), engine.NewPlanner(), engine.NewAssigner(), recorder, bus, logger)
	return srv, recorder, bus
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestValidatePresetTool(t *testing.T) {
	srv, _, _ := testServer(t)

	result, err := srv.handleValidatePreset(context.Background(),
		callRequest("validate_preset", map[string]any{"request_id": "req-1", "account_id": "acme"}))
	require.NoError(t, err)

	var parsed engine.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &parsed))
	assert.True(t, parsed.Ok)
	assert.Empty(t, parsed.Errors)
	require.NotNil(t, parsed.PresetVersion)
	assert.Equal(t, 1, *parsed.PresetVersion)
}

func TestValidatePresetTool_MissingArgument(t *testing.T) {
	srv, _, _ := testServer(t)

	result, err := srv.handleValidatePreset(context.Background(),
		callRequest("validate_preset", map[string]any{"request_id": "req-1"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestPlanStepsTool(t *testing.T) {
	srv, _, _ := testServer(t)

	result, err := srv.handlePlanSteps(context.Background(),
		callRequest("plan_steps", map[string]any{"request_id": "req-1"}))
	require.NoError(t, err)

	var parsed engine.PlanResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &parsed))
	assert.Contains(t, parsed.Steps, "retopology")
	assert.Equal(t, "delivery", parsed.Steps[len(parsed.Steps)-1])
}

func TestAssignArtistTool(t *testing.T) {
	srv, _, _ := testServer(t)

	result, err := srv.handleAssignArtist(context.Background(),
		callRequest("assign_artist", map[string]any{"request_id": "req-1"}))
	require.NoError(t, err)

	var parsed engine.AssignmentResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &parsed))
	require.NotNil(t, parsed.ArtistID)
	assert.Equal(t, "artist-1", *parsed.ArtistID)
}

func TestRecordDecisionTool(t *testing.T) {
	srv, recorder, _ := testServer(t)

	result, err := srv.handleRecordDecision(context.Background(),
		callRequest("record_decision", map[string]any{
			"request_id": "req-1",
			"decision": map[string]any{
				"status":    "success",
				"rationale": "all good",
			},
		}))
	require.NoError(t, err)

	var receipt decision.Receipt
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &receipt))
	assert.Equal(t, decision.StatusSuccess, receipt.Status)
	assert.False(t, receipt.DecisionID.IsZero())
	assert.Equal(t, 1, recorder.Len())
}

func TestRecordDecisionTool_MissingStatusStoredUnknown(t *testing.T) {
	srv, _, _ := testServer(t)

	result, err := srv.handleRecordDecision(context.Background(),
		callRequest("record_decision", map[string]any{
			"request_id": "req-1",
			"decision":   map[string]any{},
		}))
	require.NoError(t, err)

	var receipt decision.Receipt
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &receipt))
	assert.Equal(t, decision.StatusUnknown, receipt.Status)
}

func TestRecordDecisionTool_MissingDecision(t *testing.T) {
	srv, _, _ := testServer(t)

	result, err := srv.handleRecordDecision(context.Background(),
		callRequest("record_decision", map[string]any{"request_id": "req-1"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestInstrument_EmitsLifecycleEvents(t *testing.T) {
	srv, _, bus := testServer(t)

	got, cancel := bus.Subscribe(context.Background(),
		[]events.EventType{events.EventToolCalled, events.EventToolCompleted}, 8)
	defer cancel()

	handler := srv.instrument("plan_steps", srv.handlePlanSteps)
	_, err := handler(context.Background(),
		callRequest("plan_steps", map[string]any{"request_id": "req-1"}))
	require.NoError(t, err)

	var seen []events.EventType
	for len(seen) < 2 {
		select {
		case ev := <-got:
			seen = append(seen, ev.Type)
		default:
			t.Fatalf("expected 2 lifecycle events, saw %v", seen)
		}
	}
	assert.Equal(t, []events.EventType{events.EventToolCalled, events.EventToolCompleted}, seen)
}

func TestInstrument_EmitsFailureEvent(t *testing.T) {
	srv, _, bus := testServer(t)

	got, cancel := bus.Subscribe(context.Background(),
		[]events.EventType{events.EventToolFailed}, 4)
	defer cancel()

	handler := srv.instrument("plan_steps", srv.handlePlanSteps)
	result, err := handler(context.Background(),
		callRequest("plan_steps", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	select {
	case ev := <-got:
		assert.Equal(t, events.EventToolFailed, ev.Type)
	default:
		t.Fatal("expected a tool.failed event")
	}
}

func TestBearerAuth_MissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := bearerAuth("secret", next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := bearerAuth("secret", next)

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerAuth_ValidToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := bearerAuth("secret", next)

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestBearerAuth_HealthEndpointOpen(t *testing.T) {
	srv, _, _ := testServer(t)
	handler := srv.HTTPHandler("secret")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
