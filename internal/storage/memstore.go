package storage

import (
	"context"
	"sync"

	"spendly/internal/core"
)

// MemStore is an in-memory backend for tests and ephemeral runs. It keeps
// the same whole-document semantics as the durable backends.
type MemStore struct {
	mu    sync.Mutex
	data  core.FinanceData
	saved bool

	// LoadErr and SaveErr, when set, are returned by the corresponding
	// operation. Tests use them to exercise failure paths.
	LoadErr error
	SaveErr error
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

// Seed installs a document as if it had been persisted earlier.
func (s *MemStore) Seed(data core.FinanceData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data.Clone()
	s.saved = true
}

func (s *MemStore) Load(_ context.Context) (core.FinanceData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return core.FinanceData{}, s.LoadErr
	}
	if !s.saved {
		return core.FinanceData{}, ErrNotFound
	}
	return s.data.Clone(), nil
}

func (s *MemStore) Save(_ context.Context, data core.FinanceData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.data = data.Clone()
	s.saved = true
	return nil
}

func (s *MemStore) Close() error {
	return nil
}
