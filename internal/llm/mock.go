package llm

import (
	"context"
	"sync"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

// MockProvider returns scripted completions in order. Once the script is
// exhausted it repeats the final entry, which keeps long policy loops from
// failing in tests that only care about the first few turns.
type MockProvider struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int

	// Requests records every completion request, in order.
	Requests []CompletionRequest
}

func NewMockProvider(responses ...string) *MockProvider {
	return &MockProvider{responses: responses}
}

// FailWith queues an error to be returned instead of the response at the
// same position in the script.
func (m *MockProvider) FailWith(errs ...error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, errs...)
	return m
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, translateError("mock", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.calls
	m.calls++
	m.Requests = append(m.Requests, req)

	if idx < len(m.errs) && m.errs[idx] != nil {
		return nil, m.errs[idx]
	}
	if len(m.responses) == 0 {
		return nil, types.NewError(types.LLM_UNAVAILABLE, "mock: no responses scripted")
	}
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return &Completion{Content: m.responses[idx]}, nil
}

// Calls reports how many completions were requested.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
