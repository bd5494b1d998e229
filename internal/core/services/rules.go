package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/triage-cli/internal/logger"
)

// Ensure RuleStore implements the interface.
var _ driving.RuleService = (*RuleStore)(nil)

// Rule ID format: "R" followed by a two-digit (or wider) sequence number.
const (
	ruleIDPrefix = "R"
	ruleIDWidth  = 2
)

// RuleStore holds the custom rule collection in memory and persists the whole
// collection through a RuleRepository after every mutation. A mutation whose
// save fails is discarded, so memory always matches the last successful save.
//
// After a failed Load the store refuses to write until a Load succeeds, so a
// collection that could not be read is never overwritten.
type RuleStore struct {
	repo driven.RuleRepository
	now  func() time.Time

	mu      sync.RWMutex
	rules   []domain.Rule
	loadErr error
}

// NewRuleStore creates an empty rule store. Call Load to read the persisted rules.
func NewRuleStore(repo driven.RuleRepository) *RuleStore {
	return &RuleStore{
		repo: repo,
		now:  func() time.Time { return time.Now().Truncate(time.Second) },
	}
}

// SetClock replaces the time source used for creation and modification stamps.
func (s *RuleStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load replaces the in-memory collection with the persisted one.
// A missing collection is initialised empty and saved. On any other failure,
// including a persisted rule that fails validation, the in-memory collection
// is kept and mutations return domain.ErrPersistence until a Load succeeds.
func (s *RuleStore) Load(ctx context.Context) error {
	if s.repo == nil {
		return domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.repo.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Info("rule collection not found, creating an empty one")
		s.loadErr = nil
		return s.commit(ctx, []domain.Rule{})
	}
	if err == nil {
		err = validateRules(rules)
	}
	if err != nil {
		logger.Error("loading rules: %v", err)
		s.loadErr = err
		return fmt.Errorf("loading rules: %w", err)
	}

	s.rules = rules
	s.loadErr = nil
	logger.Debug("loaded %d rules", len(rules))
	return nil
}

// Save persists the in-memory collection.
func (s *RuleStore) Save(ctx context.Context) error {
	if s.repo == nil {
		return domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	return s.commit(ctx, cloneRules(s.rules))
}

// writable returns an error while the last Load failed (caller must hold lock).
func (s *RuleStore) writable() error {
	if s.loadErr != nil {
		return fmt.Errorf("%w: rule collection was not loaded (%v); fix the rule file and reload", domain.ErrPersistence, s.loadErr)
	}
	return nil
}

// commit saves next and, on success, makes it the in-memory collection
// (caller must hold lock).
func (s *RuleStore) commit(ctx context.Context, next []domain.Rule) error {
	if err := s.repo.Save(ctx, next); err != nil {
		logger.Error("saving rules: %v", err)
		return fmt.Errorf("saving rules: %w", err)
	}
	s.rules = next
	return nil
}

// Add creates a rule with the next sequential ID.
func (s *RuleStore) Add(ctx context.Context, input domain.RuleInput) (*domain.Rule, error) {
	if s.repo == nil {
		return nil, domain.ErrNotImplemented
	}

	keywords := domain.NormalizeKeywords(input.Keywords)
	name := strings.TrimSpace(input.Name)
	assignee := strings.TrimSpace(input.Assignee)
	if err := validateRuleFields(name, keywords, input.Category, input.Priority, assignee); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return nil, err
	}

	ids := make([]string, len(s.rules))
	for i := range s.rules {
		ids[i] = s.rules[i].ID
	}

	rule := domain.Rule{
		ID:        nextSequentialID(ruleIDPrefix, ruleIDWidth, ids),
		Name:      name,
		Keywords:  keywords,
		Category:  input.Category,
		Priority:  input.Priority,
		Assignee:  assignee,
		Active:    active,
		CreatedAt: s.now(),
	}

	next := append(cloneRules(s.rules), rule)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.Info("added rule %s (%s)", rule.ID, rule.Name)
	return cloneRule(rule), nil
}

// Update changes the provided fields of a rule and stamps the modification time.
func (s *RuleStore) Update(ctx context.Context, id string, update domain.RuleUpdate) (*domain.Rule, error) {
	if s.repo == nil {
		return nil, domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return nil, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}

	rule := *cloneRule(s.rules[i])
	if update.Name != nil {
		rule.Name = strings.TrimSpace(*update.Name)
	}
	if update.Keywords != nil {
		rule.Keywords = domain.NormalizeKeywords(update.Keywords)
	}
	if update.Category != nil {
		rule.Category = *update.Category
	}
	if update.Priority != nil {
		rule.Priority = *update.Priority
	}
	if update.Assignee != nil {
		rule.Assignee = strings.TrimSpace(*update.Assignee)
	}
	if update.Active != nil {
		rule.Active = *update.Active
	}
	if err := validateRuleFields(rule.Name, rule.Keywords, rule.Category, rule.Priority, rule.Assignee); err != nil {
		return nil, err
	}
	rule.ModifiedAt = s.now()

	next := cloneRules(s.rules)
	next[i] = rule
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.Info("updated rule %s", id)
	return cloneRule(rule), nil
}

// Delete removes a rule.
func (s *RuleStore) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}

	next := slices.Delete(cloneRules(s.rules), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	logger.Info("deleted rule %s", id)
	return nil
}

// Toggle flips the active flag of a rule.
func (s *RuleStore) Toggle(ctx context.Context, id string) (*domain.Rule, error) {
	if s.repo == nil {
		return nil, domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return nil, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}

	next := cloneRules(s.rules)
	next[i].Active = !next[i].Active
	next[i].ModifiedAt = s.now()
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.Info("rule %s active=%t", id, next[i].Active)
	return cloneRule(next[i]), nil
}

// Get retrieves a rule by ID.
func (s *RuleStore) Get(id string) (*domain.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("rule %s: %w", id, domain.ErrNotFound)
	}
	return cloneRule(s.rules[i]), nil
}

// List returns all rules in stored order.
func (s *RuleStore) List() []domain.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRules(s.rules)
}

// Active returns active rules in stored order.
// Order matters: classification stops at the first matching rule.
func (s *RuleStore) Active() []domain.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]domain.Rule, 0, len(s.rules))
	for i := range s.rules {
		if s.rules[i].Active {
			active = append(active, *cloneRule(s.rules[i]))
		}
	}
	return active
}

// Filter returns the rules matching f in stored order.
func (s *RuleStore) Filter(f domain.RuleFilter) []domain.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Rule, 0, len(s.rules))
	for i := range s.rules {
		if f.Matches(&s.rules[i]) {
			out = append(out, *cloneRule(s.rules[i]))
		}
	}
	return out
}

// Statistics counts rules by state, category and priority.
func (s *RuleStore) Statistics() domain.RuleStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.RuleStats{
		Total:      len(s.rules),
		ByCategory: make(map[domain.Category]int),
		ByPriority: make(map[domain.Priority]int),
	}
	for i := range s.rules {
		if s.rules[i].Active {
			stats.Active++
		}
		stats.ByCategory[s.rules[i].Category]++
		stats.ByPriority[s.rules[i].Priority]++
	}
	stats.Inactive = stats.Total - stats.Active
	return stats
}

// indexOf returns the position of the rule with id, or -1 (caller must hold lock).
func (s *RuleStore) indexOf(id string) int {
	return slices.IndexFunc(s.rules, func(r domain.Rule) bool { return r.ID == id })
}

func validateRuleFields(name string, keywords []string, category domain.Category, priority domain.Priority, assignee string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: rule name is required", domain.ErrInvalidInput)
	case len(keywords) == 0:
		return fmt.Errorf("%w: at least one keyword is required", domain.ErrInvalidInput)
	case !category.IsValid():
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, category)
	case !priority.IsValid():
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, priority)
	case assignee == "":
		return fmt.Errorf("%w: assignee is required", domain.ErrInvalidInput)
	}
	return nil
}

// validateRules checks a persisted collection the same way Add checks input,
// and rejects missing or duplicate ids.
func validateRules(rules []domain.Rule) error {
	seen := make(map[string]bool, len(rules))
	for i := range rules {
		r := &rules[i]
		if r.ID == "" {
			return fmt.Errorf("%w: rule %d: %w: id is required", domain.ErrPersistence, i+1, domain.ErrInvalidInput)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: rule %s: %w: duplicate id", domain.ErrPersistence, r.ID, domain.ErrInvalidInput)
		}
		seen[r.ID] = true
		if err := validateRuleFields(r.Name, r.Keywords, r.Category, r.Priority, r.Assignee); err != nil {
			return fmt.Errorf("%w: rule %s: %w", domain.ErrPersistence, r.ID, err)
		}
	}
	return nil
}

func cloneRule(r domain.Rule) *domain.Rule {
	r.Keywords = slices.Clone(r.Keywords)
	return &r
}

func cloneRules(rules []domain.Rule) []domain.Rule {
	out := make([]domain.Rule, len(rules))
	for i := range rules {
		out[i] = *cloneRule(rules[i])
	}
	return out
}
