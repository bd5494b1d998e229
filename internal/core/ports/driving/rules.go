package driving

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// RuleService manages the custom rule collection.
// Every mutation is persisted immediately; a failed save leaves the collection unchanged.
type RuleService interface {
	// Load replaces the in-memory collection with the persisted one.
	// A missing collection is initialised empty and saved.
	Load(ctx context.Context) error

	// Save persists the in-memory collection.
	Save(ctx context.Context) error

	// Add creates a rule with the next sequential ID.
	Add(ctx context.Context, input domain.RuleInput) (*domain.Rule, error)

	// Update changes the provided fields of a rule.
	Update(ctx context.Context, id string, update domain.RuleUpdate) (*domain.Rule, error)

	// Delete removes a rule.
	Delete(ctx context.Context, id string) error

	// Toggle flips the active flag of a rule.
	Toggle(ctx context.Context, id string) (*domain.Rule, error)

	// Get retrieves a rule by ID.
	Get(id string) (*domain.Rule, error)

	// List returns all rules in stored order.
	List() []domain.Rule

	// Active returns active rules in stored order.
	Active() []domain.Rule

	// Filter returns the rules matching f in stored order.
	Filter(f domain.RuleFilter) []domain.Rule

	// Statistics summarises the collection.
	Statistics() domain.RuleStats
}
