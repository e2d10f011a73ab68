package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chatterm/log"
)

// HistoryKey is the key the conversation is stored under.
const HistoryKey = "chatgpt-messages"

// History persists a list of records as a JSON array under one key.
type History[T any] struct {
	kv  KV
	key string
}

func NewHistory[T any](kv KV) *History[T] {
	return &History[T]{kv: kv, key: HistoryKey}
}

func (h *History[T]) Save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := h.kv.Set(ctx, h.key, data); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Load returns the stored records. A missing or unreadable history is
// logged and treated as empty.
func (h *History[T]) Load(ctx context.Context) []T {
	data, err := h.kv.Get(ctx, h.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WarningLog.Printf("failed to load history: %v", err)
		}
		return nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.WarningLog.Printf("failed to parse history: %v", err)
		return nil
	}
	return records
}

// Clear removes the stored history. Clearing an empty history is not an
// error.
func (h *History[T]) Clear(ctx context.Context) error {
	if err := h.kv.Delete(ctx, h.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
