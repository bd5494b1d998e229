package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure AreaStore implements the interface.
var _ driven.AreaRepository = (*AreaStore)(nil)

// AreaStore is an in-memory implementation of driven.AreaRepository.
type AreaStore struct {
	mu      sync.RWMutex
	areas   []domain.Area
	saved   bool
	saveErr error
	loadErr error
}

// NewAreaStore creates an empty in-memory area repository.
func NewAreaStore() *AreaStore {
	return &AreaStore{}
}

// FailSave makes subsequent Save calls return err. Pass nil to clear.
func (s *AreaStore) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailLoad makes subsequent Load calls return err. Pass nil to clear.
func (s *AreaStore) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Load returns a copy of the stored areas.
func (s *AreaStore) Load(_ context.Context) ([]domain.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if !s.saved {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(s.areas), nil
}

// Save replaces the stored areas.
func (s *AreaStore) Save(_ context.Context, areas []domain.Area) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.areas = slices.Clone(areas)
	s.saved = true
	return nil
}
