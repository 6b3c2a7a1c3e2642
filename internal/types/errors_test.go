package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineError_Error(t *testing.T) {
	err := NewError(CATALOG_LOAD_FAILED, "could not read requests file")
	assert.Equal(t, "[CATALOG_LOAD_FAILED] could not read requests file", err.Error())

	wrapped := WrapError(STORE_OPEN_FAILED, "opening decision store", errors.New("disk full"))
	assert.Equal(t, "[STORE_OPEN_FAILED] opening decision store: disk full", wrapped.Error())
}

func TestPipelineError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(LLM_UNAVAILABLE, "policy call failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestPipelineError_Is_MatchesByCode(t *testing.T) {
	a := NewError(TOOL_UNKNOWN, "no such tool: frobnicate")
	b := NewError(TOOL_UNKNOWN, "different message")
	c := NewError(RESOURCE_UNKNOWN, "no such resource")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestPipelineError_WrappedThroughFmt(t *testing.T) {
	inner := NewError(LLM_TIMEOUT, "deadline exceeded")
	outer := fmt.Errorf("processing req-001: %w", inner)

	assert.Equal(t, LLM_TIMEOUT, CodeOf(outer))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewRetryableError(LLM_TIMEOUT, "slow endpoint")))
	assert.False(t, IsRetryable(NewError(CONFIG_PARSE_FAILED, "bad yaml")))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestCodeOf_NonPipelineError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}
