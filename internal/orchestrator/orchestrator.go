// Package orchestrator drives the full decision flow for each request:
// validate, plan, assign, synthesize messaging, and record. The step order
// comes from a pluggable Strategy, either the deterministic pipeline or a
// bounded model-driven loop with a deterministic fallback.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/catalog"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/decision"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/engine"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

const defaultMaxSteps = 6

// StrategyFactory builds a fresh Strategy per request. Strategies carry
// per-request state (the policy strategy degrades permanently for one
// request after a provider fault), so they are never shared.
type StrategyFactory func() Strategy

// Orchestrator runs the decision flow over an immutable catalog snapshot.
type Orchestrator struct {
	snap      *catalog.Snapshot
	validator *engine.Validator
	planner   *engine.Planner
	assigner  *engine.Assigner
	recorder  *decision.Recorder
	bus       events.Bus
	logger    *slog.Logger

	newStrategy StrategyFactory
	enhancer    *Enhancer
	store       *decision.Store
	maxSteps    int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithMaxSteps bounds the control loop. Default: 6.
func WithMaxSteps(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxSteps = n
		}
	}
}

// WithStrategyFactory replaces the default fixed-pipeline strategy.
func WithStrategyFactory(f StrategyFactory) Option {
	return func(o *Orchestrator) {
		if f != nil {
			o.newStrategy = f
		}
	}
}

// WithEnhancer enables model-based rewriting of customer messages for
// non-success decisions.
func WithEnhancer(e *Enhancer) Option {
	return func(o *Orchestrator) { o.enhancer = e }
}

// WithStore enables durable decision hand-off after recording.
func WithStore(s *decision.Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

func New(snap *catalog.Snapshot, validator *engine.Validator, planner *engine.Planner, assigner *engine.Assigner, recorder *decision.Recorder, bus events.Bus, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		snap:      snap,
		validator: validator,
		planner:   planner,
		assigner:  assigner,
		recorder:  recorder,
		bus:       bus,
		logger:    logger.With("component", "orchestrator"),
		newStrategy: func() Strategy {
			return NewFixedStrategy()
		},
		maxSteps: defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessRequest runs the full decision flow for one request and records
// the outcome. The request id must resolve against the snapshot.
func (o *Orchestrator) ProcessRequest(ctx context.Context, requestID string) (decision.Decision, error) {
	start := time.Now()

	req, ok := o.snap.Request(requestID)
	if !ok {
		return decision.Decision{}, types.NewError(types.TOOL_BAD_ARGS,
			fmt.Sprintf("Request %s not found", requestID))
	}

	strategy := o.newStrategy()
	trace := o.snapshotTrace()
	obs := Observations{RequestID: requestID, Account: req.Account}

	for step := 1; step <= o.maxSteps; step++ {
		obs.Step = step

		action, err := strategy.Next(ctx, obs)
		if err != nil {
			action = ActionValidate
			if obs.Validation != nil {
				action = ActionFinish
			}
		}
		if action == ActionFinish {
			break
		}

		trace = append(trace, o.execute(ctx, action, requestID, req.Account, &obs))

		// Plan and assign are never run after a failed validation,
		// regardless of what the strategy asks for next.
		if obs.Validation != nil && !obs.Validation.Ok {
			break
		}
		if obs.Complete() {
			break
		}
	}

	d := o.finalize(ctx, req, strategy, obs, trace, start)

	o.logger.Info("request processed",
		"request_id", requestID,
		"status", string(d.Status),
		"steps", len(d.Trace),
		"duration_ms", d.Metrics.ProcessingTimeMS,
	)

	if o.store != nil {
		if err := o.store.Save(ctx, d); err != nil {
			o.logger.Error("durable decision save failed",
				"request_id", requestID,
				"decision_id", d.ID.String(),
				"error", err,
			)
		}
	}
	return d, nil
}

// ProcessAll processes every request in the snapshot sequentially, one
// decision at a time. A failed request is logged and skipped; the batch
// continues.
func (o *Orchestrator) ProcessAll(ctx context.Context) []decision.Decision {
	out := make([]decision.Decision, 0, len(o.snap.Requests))
	for _, req := range o.snap.Requests {
		d, err := o.ProcessRequest(ctx, req.ID)
		if err != nil {
			o.logger.Error("request processing failed",
				"request_id", req.ID,
				"error", err,
			)
			continue
		}
		out = append(out, d)
	}
	return out
}

func (o *Orchestrator) execute(ctx context.Context, action Action, requestID, account string, obs *Observations) decision.TraceEntry {
	switch action {
	case ActionPlan:
		res := o.planner.PlanSteps(o.snap, requestID)
		obs.Plan = &res
		return traceEntry("plan_steps", res)
	case ActionAssign:
		res := o.assigner.AssignArtist(o.snap, requestID)
		obs.Assignment = &res
		return traceEntry("assign_artist", res)
	default:
		res := o.validator.ValidatePreset(ctx, o.snap, requestID, account)
		obs.Validation = &res
		return traceEntry("validate_preset", res)
	}
}

// finalize derives status and messaging, records the decision, and returns
// the immutable record.
func (o *Orchestrator) finalize(ctx context.Context, req catalog.Request, strategy Strategy, obs Observations, trace []decision.TraceEntry, start time.Time) decision.Decision {
	validation := engine.ValidationResult{Errors: []string{}}
	if obs.Validation != nil {
		validation = *obs.Validation
	}
	plan := engine.PlanResult{}
	if obs.Plan != nil {
		plan = *obs.Plan
	}
	assignment := engine.AssignmentResult{}
	if obs.Assignment != nil {
		assignment = *obs.Assignment
	}

	status := decision.Derive(obs.Validation != nil && validation.Ok,
		obs.Assignment != nil && assignment.Assigned())

	var customerMessage, clarifying *string
	switch status {
	case decision.StatusValidationFailed:
		customerMessage = ptr(CustomerMessage(validation, req.Account))
		clarifying = ptr(ClarifyingQuestion(validation))
	case decision.StatusAssignmentFailed:
		customerMessage = ptr("Your request is queued and will be assigned soon.")
		clarifying = ptr("Would you like priority processing?")
	}

	if customerMessage != nil {
		trace = append(trace, traceEntry("synthesize_messaging", map[string]any{
			"customer_message":    *customerMessage,
			"clarifying_question": *clarifying,
		}))
	}

	metrics := decision.Metrics{
		AgentType: strategy.Name(),
	}
	if ps, ok := strategy.(*PolicyStrategy); ok {
		metrics.TokensUsed = ps.TokensUsed
	}

	if o.enhancer != nil && status != decision.StatusSuccess {
		if enhanced, tokens, ok := o.enhancer.Enhance(ctx, req.ID, validation); ok {
			customerMessage = &enhanced
			metrics.LLMEnhanced = true
			metrics.TokensUsed += tokens
		}
	}

	metrics.ProcessingTimeMS = int(time.Since(start).Milliseconds())

	payload := decision.Payload{
		ValidationResult: validation,
		Plan:             plan,
		Assignment:       assignment,
		Rationale:        Rationale(req, validation, plan, assignment, status),
		CustomerMessage:  customerMessage,
		ClarifyingQ:      clarifying,
		Trace:            trace,
		Metrics:          metrics,
		Status:           status,
	}

	receipt := o.recorder.Record(ctx, req.ID, payload)

	return decision.Decision{
		ID:               receipt.DecisionID,
		RequestID:        req.ID,
		Timestamp:        receipt.RecordedAt,
		ValidationResult: payload.ValidationResult,
		Plan:             payload.Plan,
		Assignment:       payload.Assignment,
		Rationale:        payload.Rationale,
		CustomerMessage:  payload.CustomerMessage,
		ClarifyingQ:      payload.ClarifyingQ,
		Trace:            payload.Trace,
		Metrics:          payload.Metrics,
		Status:           payload.Status,
	}
}

// snapshotTrace records what the flow observed about the catalog before any
// engine call, mirroring the resource reads a remote caller would perform.
func (o *Orchestrator) snapshotTrace() []decision.TraceEntry {
	return []decision.TraceEntry{
		traceEntry("read_resource", map[string]any{"uri": "resource://artists", "count": len(o.snap.Artists)}),
		traceEntry("read_resource", map[string]any{"uri": "resource://presets", "count": len(o.snap.Presets)}),
		traceEntry("read_resource", map[string]any{"uri": "resource://rules", "count": len(o.snap.Rules)}),
	}
}

func traceEntry(step string, result any) decision.TraceEntry {
	return decision.TraceEntry{
		Step:      step,
		Result:    result,
		Timestamp: time.Now().UTC(),
	}
}

func ptr(s string) *string { return &s }
