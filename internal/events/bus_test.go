package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(context.Background(), nil, 4)
	defer cancel()

	ev := New(EventToolCalled, "req-001", map[string]any{"tool": "plan_steps"})
	require.NoError(t, bus.Publish(context.Background(), ev))

	select {
	case got := <-ch:
		assert.Equal(t, EventToolCalled, got.Type)
		assert.Equal(t, "req-001", got.RequestID)
		assert.Equal(t, "plan_steps", got.Data["tool"])
		assert.False(t, got.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_TypeFilter(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(context.Background(), []EventType{EventDecisionRecorded}, 4)
	defer cancel()

	require.NoError(t, bus.Publish(context.Background(), New(EventToolCalled, "req-001", nil)))
	require.NoError(t, bus.Publish(context.Background(), New(EventDecisionRecorded, "req-001", nil)))

	select {
	case got := <-ch:
		assert.Equal(t, EventDecisionRecorded, got.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for filtered event")
	}

	select {
	case got := <-ch:
		t.Fatalf("unexpected second event: %v", got.Type)
	default:
	}
}

func TestBus_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	// Buffer of one, never drained.
	_, cancel := bus.Subscribe(context.Background(), nil, 1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = bus.Publish(context.Background(), New(EventPolicyStep, "req-001", nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus()
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), New(EventToolCalled, "", nil))
	assert.Error(t, err)
}

func TestBus_CancelIsIdempotent(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	_, cancel := bus.Subscribe(context.Background(), nil, 1)
	cancel()
	cancel() // must not panic
}
