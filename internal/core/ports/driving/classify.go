package driving

import "github.com/custodia-labs/triage-cli/internal/core/domain"

// ClassifierService applies custom rules and the built-in ladder to ticket text.
type ClassifierService interface {
	// Classify returns the outcome of the first matching rule.
	// It never fails: empty and unmatched text are outcomes too.
	Classify(text string, rules []domain.Rule) domain.ClassificationResult

	// Ladder returns the built-in rules in evaluation order.
	Ladder() []domain.BuiltinRule
}

// ScorerService classifies text by counting keyword hits per category.
type ScorerService interface {
	// Score returns category, request type, priority and recommended action.
	Score(text string) domain.ScoreResult
}
