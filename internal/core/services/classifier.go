package services

import (
	"slices"
	"strings"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
	"github.com/custodia-labs/triage-cli/internal/logger"
)

// Ensure Classifier implements the interface.
var _ driving.ClassifierService = (*Classifier)(nil)

// Classifier is the first-match-wins keyword classifier.
//
// Evaluation order:
//  1. Empty or whitespace-only text yields the empty-content outcome.
//  2. Custom rules, in the order given.
//  3. The built-in ladder, top to bottom.
//  4. The unclassified outcome.
//
// A rule matches when any of its keywords is a substring of the lowercased
// text. There is no scoring: list position is the only tie-break.
type Classifier struct {
	ladder []domain.BuiltinRule
}

// NewClassifier creates a classifier with the built-in ladder.
func NewClassifier() *Classifier {
	return &Classifier{ladder: builtinLadder}
}

// NewClassifierWithLadder creates a classifier with a replacement ladder.
// A nil ladder disables the fallback pass.
func NewClassifierWithLadder(ladder []domain.BuiltinRule) *Classifier {
	return &Classifier{ladder: ladder}
}

// Classify returns the outcome of the first rule matching text.
func (c *Classifier) Classify(text string, rules []domain.Rule) domain.ClassificationResult {
	content := strings.ToLower(text)
	if strings.TrimSpace(content) == "" {
		logger.Debug("classify: empty content")
		return domain.EmptyContentResult()
	}

	for i := range rules {
		if !rules[i].Active {
			continue
		}
		if rules[i].Matches(content) {
			logger.Debug("classify: custom rule %s matched", rules[i].ID)
			return domain.ClassificationResult{
				RuleApplied: rules[i].Label(),
				Category:    rules[i].Category,
				Priority:    rules[i].Priority,
				Assignee:    rules[i].Assignee,
			}
		}
	}

	for i := range c.ladder {
		if domain.ContainsAny(content, c.ladder[i].Keywords) {
			logger.Debug("classify: built-in rule %q matched", c.ladder[i].Label)
			return c.ladder[i].Result()
		}
	}

	logger.Debug("classify: no rule matched")
	return domain.UnclassifiedResult()
}

// Ladder returns a copy of the built-in rules in evaluation order.
func (c *Classifier) Ladder() []domain.BuiltinRule {
	out := make([]domain.BuiltinRule, len(c.ladder))
	for i := range c.ladder {
		out[i] = c.ladder[i]
		out[i].Keywords = slices.Clone(c.ladder[i].Keywords)
	}
	return out
}
