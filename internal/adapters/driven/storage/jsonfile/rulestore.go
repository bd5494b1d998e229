package jsonfile

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleRepository = (*RuleStore)(nil)

type ruleDocument struct {
	CustomRules []ruleRecord `json:"custom_rules"`
}

type ruleRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Keywords   []string `json:"keywords"`
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	Assignee   string   `json:"assignee"`
	Active     *bool    `json:"active,omitempty"`
	CreatedAt  string   `json:"created_at"`
	ModifiedAt string   `json:"modified_at,omitempty"`
}

// RuleStore keeps the custom rule collection in a JSON file.
type RuleStore struct {
	path string
}

// NewRuleStore creates a rule repository backed by the file at path.
func NewRuleStore(path string) *RuleStore {
	return &RuleStore{path: path}
}

// Path returns the backing file path.
func (s *RuleStore) Path() string {
	return s.path
}

// Load reads the rule collection. Rules without an "active" field are active.
func (s *RuleStore) Load(_ context.Context) ([]domain.Rule, error) {
	var doc ruleDocument
	if err := readDocument(s.path, &doc); err != nil {
		return nil, err
	}

	rules := make([]domain.Rule, 0, len(doc.CustomRules))
	for _, r := range doc.CustomRules {
		active := true
		if r.Active != nil {
			active = *r.Active
		}
		rules = append(rules, domain.Rule{
			ID:         r.ID,
			Name:       r.Name,
			Keywords:   domain.NormalizeKeywords(r.Keywords),
			Category:   domain.Category(r.Category),
			Priority:   domain.Priority(r.Priority),
			Assignee:   r.Assignee,
			Active:     active,
			CreatedAt:  parseStamp(r.CreatedAt),
			ModifiedAt: parseStamp(r.ModifiedAt),
		})
	}
	return rules, nil
}

// Save writes the rule collection, replacing the file.
func (s *RuleStore) Save(_ context.Context, rules []domain.Rule) error {
	doc := ruleDocument{CustomRules: make([]ruleRecord, 0, len(rules))}
	for i := range rules {
		r := &rules[i]
		active := r.Active
		doc.CustomRules = append(doc.CustomRules, ruleRecord{
			ID:         r.ID,
			Name:       r.Name,
			Keywords:   r.Keywords,
			Category:   string(r.Category),
			Priority:   string(r.Priority),
			Assignee:   r.Assignee,
			Active:     &active,
			CreatedAt:  formatStamp(r.CreatedAt),
			ModifiedAt: formatStamp(r.ModifiedAt),
		})
	}
	return writeDocument(s.path, doc)
}
