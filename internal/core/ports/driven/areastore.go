package driven

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// AreaRepository persists the area list as a whole.
type AreaRepository interface {
	// Load reads the full list.
	// Returns domain.ErrNotFound if the list has never been saved.
	Load(ctx context.Context) ([]domain.Area, error)

	// Save replaces the persisted list.
	Save(ctx context.Context, areas []domain.Area) error
}
