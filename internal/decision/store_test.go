package decision

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanTJJ99/Kaedim-MCP-Agent/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "decisions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndList(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(nil)

	r.Record(context.Background(), "req-001", samplePayload(StatusSuccess))
	r.Record(context.Background(), "req-001", samplePayload(StatusAssignmentFailed))
	r.Record(context.Background(), "req-002", samplePayload(StatusValidationFailed))

	for _, d := range r.All() {
		require.NoError(t, store.Save(context.Background(), d))
	}

	got, err := store.ListByRequest(context.Background(), "req-001")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, StatusSuccess, got[0].Status)
	assert.Equal(t, StatusAssignmentFailed, got[1].Status)
	assert.Equal(t, "all gates passed", got[0].Rationale)

	none, err := store.ListByRequest(context.Background(), "req-404")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(nil)
	r.Record(context.Background(), "req-001", samplePayload(StatusSuccess))
	d := r.All()[0]

	require.NoError(t, store.Save(context.Background(), d))
	err := store.Save(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, types.STORE_QUERY_FAILED, types.CodeOf(err))
}

func TestStore_RoundTripPreservesPayload(t *testing.T) {
	store := openTestStore(t)
	r := NewRecorder(nil)

	msg := "Your request is queued and will be assigned soon."
	payload := samplePayload(StatusAssignmentFailed)
	payload.CustomerMessage = &msg
	r.Record(context.Background(), "req-009", payload)
	d := r.All()[0]

	require.NoError(t, store.Save(context.Background(), d))

	got, err := store.ListByRequest(context.Background(), "req-009")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d.ID, got[0].ID)
	require.NotNil(t, got[0].CustomerMessage)
	assert.Equal(t, msg, *got[0].CustomerMessage)
	assert.Len(t, got[0].Trace, 1)
}
