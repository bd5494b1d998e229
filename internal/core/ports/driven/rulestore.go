package driven

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// RuleRepository persists the custom rule collection as a whole.
// Order is significant and must be preserved.
type RuleRepository interface {
	// Load reads the full collection.
	// Returns domain.ErrNotFound if the collection has never been saved.
	Load(ctx context.Context) ([]domain.Rule, error)

	// Save replaces the persisted collection.
	Save(ctx context.Context, rules []domain.Rule) error
}
