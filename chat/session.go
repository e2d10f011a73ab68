package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"chatterm/backend"
	"chatterm/log"
	"chatterm/store"
)

// Session is the state of one conversation. It is safe for concurrent use:
// the UI reads snapshots while a request runs in the background.
type Session struct {
	mu       sync.RWMutex
	messages []Message
	loading  bool
	err      error

	asker   backend.Asker
	history *store.History[Message]
	match   Matcher
	now     func() time.Time
}

type Option func(*Session)

// WithFuzzySearch makes Filter use fuzzy matching.
func WithFuzzySearch(enabled bool) Option {
	return func(s *Session) {
		if enabled {
			s.match = FuzzyMatch
		} else {
			s.match = SubstringMatch
		}
	}
}

// WithClock replaces time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession restores the stored conversation from history, if any.
func NewSession(ctx context.Context, asker backend.Asker, history *store.History[Message], opts ...Option) *Session {
	s := &Session{
		asker:   asker,
		history: history,
		match:   SubstringMatch,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if history != nil {
		s.messages = history.Load(ctx)
	}
	return s
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Message(nil), s.messages...)
}

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the last request, cleared by the next one.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ExchangeCount is the number of question and answer pairs.
func (s *Session) ExchangeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages) / 2
}

// Filter returns the messages matching term in conversation order.
func (s *Session) Filter(term string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.messages, term, s.match)
}

// Send posts content and waits for the reply. Blank content is ignored. A
// failed request is recorded in Err and also returned.
func (s *Session) Send(ctx context.Context, content string) error {
	query, ok := s.Begin(ctx, content)
	if !ok {
		return nil
	}
	return s.Reply(ctx, query)
}

// Begin appends the user's message and marks the session as loading. It
// returns the query to pass to Reply, and false when content is blank.
func (s *Session) Begin(ctx context.Context, content string) (string, bool) {
	query := strings.TrimSpace(content)
	if query == "" {
		return "", false
	}
	s.mu.Lock()
	s.messages = append(s.messages, newMessage(RoleUser, query, s.now()))
	s.loading = true
	s.err = nil
	snapshot := append([]Message(nil), s.messages...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return query, true
}

// Reply asks the backend and appends its answer, or records the error.
func (s *Session) Reply(ctx context.Context, query string) error {
	answer, err := s.asker.Ask(ctx, query)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err
		s.mu.Unlock()
		log.ErrorLog.Printf("chat request failed: %v", err)
		return err
	}
	s.messages = append(s.messages, newMessage(RoleAssistant, answer, s.now()))
	snapshot := append([]Message(nil), s.messages...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return nil
}

// RetryLast sends the most recent user message again.
func (s *Session) RetryLast(ctx context.Context) error {
	query, ok := s.BeginRetry(ctx)
	if !ok {
		return nil
	}
	return s.Reply(ctx, query)
}

// BeginRetry drops assistant messages that only repeat the last error,
// clears the error and begins a new request with the last user message. It
// returns false when there is nothing to retry.
func (s *Session) BeginRetry(ctx context.Context) (string, bool) {
	s.mu.Lock()
	var last string
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleUser {
			last = s.messages[i].Content
			break
		}
	}
	if last == "" {
		s.mu.Unlock()
		return "", false
	}
	if s.err != nil {
		errText := backend.UserMessage(s.err)
		kept := s.messages[:0]
		for _, m := range s.messages {
			if m.Role == RoleAssistant && m.Content == errText {
				continue
			}
			kept = append(kept, m)
		}
		s.messages = kept
	}
	s.err = nil
	s.mu.Unlock()

	return s.Begin(ctx, last)
}

// Clear forgets the conversation and the stored history.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.messages = nil
	s.err = nil
	s.mu.Unlock()

	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx)
}

func (s *Session) persist(ctx context.Context, messages []Message) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, messages); err != nil {
		log.ErrorLog.Printf("failed to save messages: %v", err)
	}
}
