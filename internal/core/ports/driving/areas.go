package driving

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// AreaService manages the area reference list.
type AreaService interface {
	// Load replaces the in-memory list with the persisted one.
	// A missing list is initialised empty and saved.
	Load(ctx context.Context) error

	// Save persists the in-memory list.
	Save(ctx context.Context) error

	// Add creates an area. Names must be unique, ignoring case.
	Add(ctx context.Context, name, description string) (*domain.Area, error)

	// Update changes the provided fields of an area.
	Update(ctx context.Context, id string, update domain.AreaUpdate) (*domain.Area, error)

	// Delete removes an area.
	Delete(ctx context.Context, id string) error

	// GetByID retrieves an area by ID.
	GetByID(id string) (*domain.Area, error)

	// GetByName retrieves an area by name, ignoring case.
	GetByName(name string) (*domain.Area, error)

	// List returns all areas in stored order.
	List() []domain.Area

	// Names returns the names of all areas in stored order.
	Names() []string

	// Statistics summarises the list.
	Statistics() domain.AreaStats

	// Validate returns nil if name is a known area.
	Validate(name string) error
}
