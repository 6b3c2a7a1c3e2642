package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(ProviderConfig{Type: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.Name())
}

func TestNewProvider_UnknownType(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Type: "hal9000"})
	require.Error(t, err)
	assert.Equal(t, types.LLM_UNAVAILABLE, types.CodeOf(err))
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewProvider(ProviderConfig{Type: "openai", Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Equal(t, types.LLM_UNAVAILABLE, types.CodeOf(err))
}

func TestMockProvider_ScriptedResponses(t *testing.T) {
	p := NewMockProvider("first", "second")

	c1, err := p.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	c2, err := p.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)

	assert.Equal(t, "first", c1.Content)
	assert.Equal(t, "second", c2.Content)
	assert.Equal(t, 2, p.Calls())
}

func TestMockProvider_RepeatsFinalResponse(t *testing.T) {
	p := NewMockProvider("only")

	for i := 0; i < 3; i++ {
		c, err := p.Complete(context.Background(), CompletionRequest{})
		require.NoError(t, err)
		assert.Equal(t, "only", c.Content)
	}
}

func TestMockProvider_ScriptedErrors(t *testing.T) {
	boom := types.NewRetryableError(types.LLM_TIMEOUT, "timed out")
	p := NewMockProvider("recovered").FailWith(boom)

	_, err := p.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.True(t, types.IsRetryable(err))
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	p := NewMockProvider("ok")

	_, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "next action?"}},
	})
	require.NoError(t, err)

	require.Len(t, p.Requests, 1)
	assert.Equal(t, "next action?", p.Requests[0].Messages[0].Content)
}

func TestMockProvider_HonorsCancelledContext(t *testing.T) {
	p := NewMockProvider("never")

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := p.Complete(ctx, CompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, types.LLM_TIMEOUT, types.CodeOf(err))
	assert.True(t, types.IsRetryable(err))
}
