package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func TestHistoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	h := NewHistory[record](kv)

	assert.Empty(t, h.Load(ctx))

	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	in := []record{{ID: "1", Content: "hi", Timestamp: ts}, {ID: "2", Content: "**hello**", Timestamp: ts.Add(time.Second)}}
	require.NoError(t, h.Save(ctx, in))

	raw, err := kv.Get(ctx, HistoryKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"timestamp":"2024-05-01T12:30:00Z"`)

	out := h.Load(ctx)
	require.Len(t, out, 2)
	assert.True(t, in[1].Timestamp.Equal(out[1].Timestamp))
	assert.Equal(t, in[1].Content, out[1].Content)

	require.NoError(t, h.Clear(ctx))
	assert.Empty(t, h.Load(ctx))
	assert.NoError(t, h.Clear(ctx))
}

func TestHistorySaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, NewHistory[record](kv).Save(ctx, nil))

	raw, err := kv.Get(ctx, HistoryKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestHistoryLoadCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, HistoryKey, []byte(`{"not":"an array"}`)))

	assert.Empty(t, NewHistory[record](kv).Load(ctx))
}
