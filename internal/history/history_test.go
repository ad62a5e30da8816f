package history

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDraftFillsRecord(t *testing.T) {
	r := FromDraft("b1", "Centro", "bar1", "2026-09-01", "10:00", "Ana", "ana@example.com", "1155550000")

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "b1", r.BranchID)
	assert.Equal(t, "Centro", r.BranchName)
	assert.Equal(t, "bar1", r.Barber)
	assert.Equal(t, "2026-09-01", r.Date)
	assert.Equal(t, "10:00", r.Slot)
	assert.Equal(t, "Ana", r.ClientName)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = Noop{}

	require.NoError(t, rec.Record(context.Background(), Record{}))
	got, err := rec.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
