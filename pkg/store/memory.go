package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// MemoryStore keeps payloads in process memory. Used for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	payloads []json.RawMessage
	closed   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Store(_ context.Context, payload json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.payloads = append(s.payloads, slices.Clone(payload))
	return nil
}

// Payloads returns a copy of the stored payloads in insertion order.
func (s *MemoryStore) Payloads() []json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]json.RawMessage, len(s.payloads))
	for i, p := range s.payloads {
		out[i] = slices.Clone(p)
	}
	return out
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payloads)
}

func (s *MemoryStore) Healthcheck(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
