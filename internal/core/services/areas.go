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

// Ensure AreaStore implements the interface.
var _ driving.AreaService = (*AreaStore)(nil)

const (
	areaIDPrefix = "A"
	areaIDWidth  = 3
)

// AreaStore manages the area reference list with the same persistence
// semantics as RuleStore: every mutation saves the whole list, a failed
// save leaves memory unchanged, and nothing is written after a failed Load.
type AreaStore struct {
	repo driven.AreaRepository
	now  func() time.Time

	mu      sync.RWMutex
	areas   []domain.Area
	loadErr error
}

// NewAreaStore creates an empty area store. Call Load to read the persisted areas.
func NewAreaStore(repo driven.AreaRepository) *AreaStore {
	return &AreaStore{
		repo: repo,
		now:  func() time.Time { return time.Now().Truncate(time.Second) },
	}
}

// SetClock replaces the time source used for creation and modification stamps.
func (s *AreaStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load replaces the in-memory list with the persisted one.
// A missing list is initialised empty and saved. A list that cannot be read
// or holds an invalid area blocks mutations until a Load succeeds.
func (s *AreaStore) Load(ctx context.Context) error {
	if s.repo == nil {
		return domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	areas, err := s.repo.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Info("area list not found, creating an empty one")
		s.loadErr = nil
		return s.commit(ctx, []domain.Area{})
	}
	if err == nil {
		err = validateAreas(areas)
	}
	if err != nil {
		logger.Error("loading areas: %v", err)
		s.loadErr = err
		return fmt.Errorf("loading areas: %w", err)
	}

	s.areas = areas
	s.loadErr = nil
	logger.Debug("loaded %d areas", len(areas))
	return nil
}

// Save persists the in-memory list.
func (s *AreaStore) Save(ctx context.Context) error {
	if s.repo == nil {
		return domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return err
	}
	return s.commit(ctx, slices.Clone(s.areas))
}

func (s *AreaStore) writable() error {
	if s.loadErr != nil {
		return fmt.Errorf("%w: area list was not loaded (%v); fix the area file and reload", domain.ErrPersistence, s.loadErr)
	}
	return nil
}

func (s *AreaStore) commit(ctx context.Context, next []domain.Area) error {
	if err := s.repo.Save(ctx, next); err != nil {
		logger.Error("saving areas: %v", err)
		return fmt.Errorf("saving areas: %w", err)
	}
	s.areas = next
	return nil
}

// Add creates an area with the next sequential ID.
func (s *AreaStore) Add(ctx context.Context, name, description string) (*domain.Area, error) {
	if s.repo == nil {
		return nil, domain.ErrNotImplemented
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: area name is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writable(); err != nil {
		return nil, err
	}

	if s.indexOfName(name) >= 0 {
		return nil, fmt.Errorf("area %q: %w", name, domain.ErrAlreadyExists)
	}

	ids := make([]string, len(s.areas))
	for i := range s.areas {
		ids[i] = s.areas[i].ID
	}

	area := domain.Area{
		ID:          nextSequentialID(areaIDPrefix, areaIDWidth, ids),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	}

	if err := s.commit(ctx, append(slices.Clone(s.areas), area)); err != nil {
		return nil, err
	}

	logger.Info("added area %s (%s)", area.ID, area.Name)
	return &area, nil
}

// Update changes the provided fields of an area.
// A new name must not collide with another area, ignoring case.
func (s *AreaStore) Update(ctx context.Context, id string, update domain.AreaUpdate) (*domain.Area, error) {
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
		return nil, fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
	}

	area := s.areas[i]
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: area name is required", domain.ErrInvalidInput)
		}
		if j := s.indexOfName(name); j >= 0 && j != i {
			return nil, fmt.Errorf("area %q: %w", name, domain.ErrAlreadyExists)
		}
		area.Name = name
	}
	if update.Description != nil {
		area.Description = strings.TrimSpace(*update.Description)
	}
	area.ModifiedAt = s.now()

	next := slices.Clone(s.areas)
	next[i] = area
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	logger.Info("updated area %s", id)
	return &area, nil
}

// Delete removes an area.
func (s *AreaStore) Delete(ctx context.Context, id string) error {
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
		return fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
	}

	if err := s.commit(ctx, slices.Delete(slices.Clone(s.areas), i, i+1)); err != nil {
		return err
	}

	logger.Info("deleted area %s", id)
	return nil
}

// GetByID retrieves an area by ID.
func (s *AreaStore) GetByID(id string) (*domain.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
	}
	area := s.areas[i]
	return &area, nil
}

// GetByName retrieves an area by name, ignoring case.
func (s *AreaStore) GetByName(name string) (*domain.Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfName(name)
	if i < 0 {
		return nil, fmt.Errorf("area %q: %w", name, domain.ErrNotFound)
	}
	area := s.areas[i]
	return &area, nil
}

// List returns all areas in stored order.
func (s *AreaStore) List() []domain.Area {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.areas)
}

// Names returns area names in stored order.
func (s *AreaStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.areas))
	for i := range s.areas {
		names[i] = s.areas[i].Name
	}
	return names
}

// Statistics returns the number of areas and their names.
func (s *AreaStore) Statistics() domain.AreaStats {
	names := s.Names()
	return domain.AreaStats{Total: len(names), Names: names}
}

// Validate returns nil if name is a known area.
func (s *AreaStore) Validate(name string) error {
	if _, err := s.GetByName(strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("%w: unknown area %q", domain.ErrInvalidInput, name)
	}
	return nil
}

func (s *AreaStore) indexOf(id string) int {
	return slices.IndexFunc(s.areas, func(a domain.Area) bool { return a.ID == id })
}

func (s *AreaStore) indexOfName(name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(s.areas, func(a domain.Area) bool { return strings.EqualFold(a.Name, name) })
}

// validateAreas rejects persisted lists with missing ids, duplicate ids,
// empty names or names that collide ignoring case.
func validateAreas(areas []domain.Area) error {
	ids := make(map[string]bool, len(areas))
	names := make(map[string]bool, len(areas))
	for i := range areas {
		a := &areas[i]
		name := strings.ToLower(strings.TrimSpace(a.Name))
		switch {
		case a.ID == "":
			return fmt.Errorf("%w: area %d: %w: id is required", domain.ErrPersistence, i+1, domain.ErrInvalidInput)
		case ids[a.ID]:
			return fmt.Errorf("%w: area %s: %w: duplicate id", domain.ErrPersistence, a.ID, domain.ErrInvalidInput)
		case name == "":
			return fmt.Errorf("%w: area %s: %w: name is required", domain.ErrPersistence, a.ID, domain.ErrInvalidInput)
		case names[name]:
			return fmt.Errorf("%w: area %s: %w: duplicate name %q", domain.ErrPersistence, a.ID, domain.ErrInvalidInput, a.Name)
		}
		ids[a.ID] = true
		names[name] = true
	}
	return nil
}
