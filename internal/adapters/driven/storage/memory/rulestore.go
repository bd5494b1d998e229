package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleRepository = (*RuleStore)(nil)

// RuleStore is an in-memory implementation of driven.RuleRepository.
type RuleStore struct {
	mu      sync.RWMutex
	rules   []domain.Rule
	saved   bool
	saveErr error
	loadErr error
}

// NewRuleStore creates an empty in-memory rule repository.
func NewRuleStore() *RuleStore {
	return &RuleStore{}
}

// FailSave makes subsequent Save calls return err. Pass nil to clear.
func (s *RuleStore) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FailLoad makes subsequent Load calls return err. Pass nil to clear.
func (s *RuleStore) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// Load returns a copy of the stored rules.
func (s *RuleStore) Load(_ context.Context) ([]domain.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if !s.saved {
		return nil, domain.ErrNotFound
	}
	return copyRules(s.rules), nil
}

// Save replaces the stored rules.
func (s *RuleStore) Save(_ context.Context, rules []domain.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.rules = copyRules(rules)
	s.saved = true
	return nil
}

func copyRules(rules []domain.Rule) []domain.Rule {
	out := make([]domain.Rule, len(rules))
	for i := range rules {
		out[i] = rules[i]
		out[i].Keywords = slices.Clone(rules[i].Keywords)
	}
	return out
}
