package llm

import (
	"context"
	"time"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/events"
)

// InstrumentedProvider decorates a Provider with llm.request.* events so
// every model call shows up on the bus regardless of which collaborator
// made it.
type InstrumentedProvider struct {
	inner Provider
	bus   events.Bus
}

func Instrument(p Provider, bus events.Bus) *InstrumentedProvider {
	return &InstrumentedProvider{inner: p, bus: bus}
}

func (p *InstrumentedProvider) Name() string { return p.inner.Name() }

func (p *InstrumentedProvider) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	start := time.Now()

	completion, err := p.inner.Complete(ctx, req)
	if err != nil {
		p.emit(ctx, events.New(events.EventLLMRequestFailed, "", map[string]any{
			"provider": p.inner.Name(),
			"error":    err.Error(),
		}))
		return nil, err
	}

	p.emit(ctx, events.New(events.EventLLMRequestCompleted, "", map[string]any{
		"provider":    p.inner.Name(),
		"duration_ms": int(time.Since(start).Milliseconds()),
		"tokens_used": completion.TokensUsed,
	}))
	return completion, nil
}

func (p *InstrumentedProvider) emit(ctx context.Context, ev events.Event) {
	if p.bus != nil {
		_ = p.bus.Publish(ctx, ev)
	}
}
