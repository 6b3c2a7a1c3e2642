package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/decision"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("validate_preset",
		mcp.WithDescription("Validate request against customer preset requirements"),
		mcp.WithString("request_id", mcp.Required(), mcp.Description("Request ID to validate")),
		mcp.WithString("account_id", mcp.Required(), mcp.Description("Customer account ID")),
	), s.instrument("validate_preset", s.handleValidatePreset))

	s.mcp.AddTool(mcp.NewTool("plan_steps",
		mcp.WithDescription("Generate processing steps based on request and rules"),
		mcp.WithString("request_id", mcp.Required(), mcp.Description("Request ID to plan")),
	), s.instrument("plan_steps", s.handlePlanSteps))

	s.mcp.AddTool(mcp.NewTool("assign_artist",
		mcp.WithDescription("Assign request to optimal artist based on skills and capacity"),
		mcp.WithString("request_id", mcp.Required(), mcp.Description("Request ID to assign")),
	), s.instrument("assign_artist", s.handleAssignArtist))

	s.mcp.AddTool(mcp.NewTool("record_decision",
		mcp.WithDescription("Record final routing decision with audit trail"),
		mcp.WithString("request_id", mcp.Required(), mcp.Description("Request ID")),
		mcp.WithObject("decision", mcp.Required(), mcp.Description("Decision details including validation, plan, and assignment")),
	), s.instrument("record_decision", s.handleRecordDecision))
}

type toolHandler func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// instrument wraps a handler with tool.called / tool.completed /
// tool.failed events and duration measurement.
func (s *Server) instrument(name string, handler toolHandler) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		s.emit(ctx, events.New(events.EventToolCalled, "", map[string]any{
			"tool":      name,
			"arguments": req.GetArguments(),
		}))

		result, err := handler(ctx, req)
		if err != nil || (result != nil && result.IsError) {
			detail := "tool returned error result"
			if err != nil {
				detail = err.Error()
			}
			s.emit(ctx, events.New(events.EventToolFailed, "", map[string]any{
				"tool":  name,
				"error": detail,
			}))
			return result, err
		}

		s.emit(ctx, events.New(events.EventToolCompleted, "", map[string]any{
			"tool":        name,
			"duration_ms": int(time.Since(start).Milliseconds()),
			"success":     true,
		}))
		return result, nil
	}
}

func (s *Server) handleValidatePreset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID, err := req.RequireString("request_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	accountID, err := req.RequireString("account_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.validator.ValidatePreset(ctx, s.snap, requestID, accountID)
	return jsonResult(result)
}

func (s *Server) handlePlanSteps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID, err := req.RequireString("request_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.planner.PlanSteps(s.snap, requestID)
	return jsonResult(result)
}

func (s *Server) handleAssignArtist(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID, err := req.RequireString("request_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := s.assigner.AssignArtist(s.snap, requestID)
	return jsonResult(result)
}

func (s *Server) handleRecordDecision(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID, err := req.RequireString("request_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, ok := req.GetArguments()["decision"]
	if !ok {
		return mcp.NewToolResultError("missing required argument: decision"), nil
	}

	// The payload arrives as loose JSON; unrecognized fields are dropped
	// and a missing status is stored as "unknown".
	encoded, err := json.Marshal(raw)
	if err != nil {
		return mcp.NewToolResultError("decision must be a JSON object"), nil
	}
	var payload decision.Payload
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return mcp.NewToolResultError("decision must be a JSON object"), nil
	}

	receipt := s.recorder.Record(ctx, requestID, payload)
	return jsonResult(receipt)
}

func (s *Server) emit(ctx context.Context, ev events.Event) {
	if s.bus != nil {
		_ = s.bus.Publish(ctx, ev)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(encoded)), nil
}
