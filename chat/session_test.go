package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chatterm/backend"
	"chatterm/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAsker struct {
	mu      sync.Mutex
	replies []string
	err     error
	queries []string
}

func (f *fakeAsker) Ask(_ context.Context, query string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "ok", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newTestSession(t *testing.T, asker backend.Asker) (*Session, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	return NewSession(context.Background(), asker, store.NewHistory[Message](kv), WithClock(fixedClock())), kv
}

func TestSendAppendsBothMessages(t *testing.T) {
	asker := &fakeAsker{replies: []string{"**hello**"}}
	s, _ := newTestSession(t, asker)

	require.NoError(t, s.Send(context.Background(), "  hi there \n"))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "hi there", msgs[0].Content)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "**hello**", msgs[1].Content)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
	assert.Equal(t, []string{"hi there"}, asker.queries)
	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())
	assert.Equal(t, 1, s.ExchangeCount())
}

func TestSendIgnoresBlank(t *testing.T) {
	asker := &fakeAsker{}
	s, _ := newTestSession(t, asker)

	require.NoError(t, s.Send(context.Background(), " \n\t"))
	assert.Empty(t, s.Messages())
	assert.Empty(t, asker.queries)
}

func TestSendRecordsError(t *testing.T) {
	failure := &backend.Error{Kind: backend.KindRateLimited, Status: 429}
	s, _ := newTestSession(t, &fakeAsker{err: failure})

	err := s.Send(context.Background(), "hi")
	assert.ErrorIs(t, err, failure)
	assert.ErrorIs(t, s.Err(), failure)
	assert.Len(t, s.Messages(), 1)
	assert.False(t, s.Loading())
}

func TestBeginMarksLoading(t *testing.T) {
	s, _ := newTestSession(t, &fakeAsker{})

	query, ok := s.Begin(context.Background(), "question")
	require.True(t, ok)
	assert.Equal(t, "question", query)
	assert.True(t, s.Loading())

	require.NoError(t, s.Reply(context.Background(), query))
	assert.False(t, s.Loading())
}

func TestSessionPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestSession(t, &fakeAsker{replies: []string{"answer"}})
	require.NoError(t, s.Send(ctx, "question"))

	restored := NewSession(ctx, &fakeAsker{}, store.NewHistory[Message](kv))
	msgs := restored.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "answer", msgs[1].Content)
	assert.True(t, msgs[1].Timestamp.Equal(fixedClock()()))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestSession(t, &fakeAsker{err: errors.New("down")})
	_ = s.Send(ctx, "question")

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Messages())
	assert.NoError(t, s.Err())
	_, err := kv.Get(ctx, store.HistoryKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRetryLast(t *testing.T) {
	ctx := context.Background()
	asker := &fakeAsker{err: &backend.Error{Kind: backend.KindUnavailable, Status: 503}}
	s, _ := newTestSession(t, asker)

	require.Error(t, s.Send(ctx, "first"))
	asker.err = nil
	asker.replies = []string{"recovered"}

	require.NoError(t, s.RetryLast(ctx))
	assert.NoError(t, s.Err())
	assert.Equal(t, []string{"first", "first"}, asker.queries)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "recovered", msgs[2].Content)
}

func TestRetryLastDropsErrorEchoes(t *testing.T) {
	ctx := context.Background()
	failure := &backend.Error{Kind: backend.KindTimeout}
	s, _ := newTestSession(t, &fakeAsker{})
	s.messages = []Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: failure.Message()},
	}
	s.err = failure

	query, ok := s.BeginRetry(ctx)
	require.True(t, ok)
	assert.Equal(t, "q", query)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[1].Role)
}

func TestRetryLastWithoutUserMessage(t *testing.T) {
	asker := &fakeAsker{}
	s, _ := newTestSession(t, asker)

	require.NoError(t, s.RetryLast(context.Background()))
	assert.Empty(t, asker.queries)
}

func TestSessionFilter(t *testing.T) {
	ctx := context.Background()
	asker := &fakeAsker{replies: []string{"Go is great", "Rust too"}}
	s, _ := newTestSession(t, asker)
	require.NoError(t, s.Send(ctx, "tell me about GO"))
	require.NoError(t, s.Send(ctx, "and rust?"))

	got := s.Filter("go")
	require.Len(t, got, 2)
	assert.Equal(t, "tell me about GO", got[0].Content)
	assert.Equal(t, "Go is great", got[1].Content)

	assert.Len(t, s.Filter(""), 4)
	assert.Empty(t, s.Filter("python"))
}

func TestSessionFuzzyFilter(t *testing.T) {
	ctx := context.Background()
	s := NewSession(ctx, &fakeAsker{replies: []string{"quantum computing basics"}}, nil, WithFuzzySearch(true))
	require.NoError(t, s.Send(ctx, "explain qubits"))

	got := s.Filter("qcb")
	require.Len(t, got, 1)
	assert.Equal(t, RoleAssistant, got[0].Role)
}
