package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category is the top-level classification bucket of a ticket.
type Category string

// Categories a custom rule may assign.
const (
	CategoryHardware  Category = "HARDWARE"
	CategorySoftware  Category = "SOFTWARE"
	CategoryNetwork   Category = "NETWORK"
	CategorySecurity  Category = "SECURITY"
	CategoryPrintScan Category = "PRINT_SCAN"
)

// Outcome-only categories. The classifier produces them; rules cannot assign them.
const (
	// CategoryError marks a ticket that could not be classified because it had no content.
	CategoryError Category = "ERROR"

	// CategoryGeneral marks a ticket no rule matched.
	CategoryGeneral Category = "GENERAL"
)

// RuleCategories lists the categories assignable by custom rules, in display order.
func RuleCategories() []Category {
	return []Category{CategoryHardware, CategorySoftware, CategoryNetwork, CategorySecurity, CategoryPrintScan}
}

// IsValid returns true if the category may be assigned by a custom rule.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryNetwork, CategorySecurity, CategoryPrintScan:
		return true
	default:
		return false
	}
}

// IsOutcome returns true if the classifier can report the category.
func (c Category) IsOutcome() bool {
	return c.IsValid() || c == CategoryError || c == CategoryGeneral
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Description returns a human-readable description of the category.
func (c Category) Description() string {
	switch c {
	case CategoryHardware:
		return "Hardware"
	case CategorySoftware:
		return "Software"
	case CategoryNetwork:
		return "Network"
	case CategorySecurity:
		return "Security"
	case CategoryPrintScan:
		return "Printing / scanning equipment"
	case CategoryError:
		return "Error"
	case CategoryGeneral:
		return "General"
	default:
		return unknownDescription
	}
}

// ParseCategory parses a category name case-insensitively.
// Only categories assignable by rules are accepted.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// ParseOutcomeCategory parses any category the classifier can report,
// including ERROR and GENERAL.
func ParseOutcomeCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsOutcome() {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// Priority is the urgency tier attached to a classification outcome.
type Priority string

// Available priorities.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists all priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	for _, p := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, s)
}

// Rule is a user-authored keyword-to-classification mapping.
// Rules are evaluated in stored order before the built-in ladder.
type Rule struct {
	// ID is the store-assigned identifier ("R" + zero-padded sequence).
	ID string

	// Name is the human-readable rule name.
	Name string

	// Keywords are lowercase phrases; any one occurring in the ticket text fires the rule.
	Keywords []string

	// Category is assigned to matching tickets.
	Category Category

	// Priority is assigned to matching tickets.
	Priority Priority

	// Assignee is the team or role that receives matching tickets.
	Assignee string

	// Active rules take part in classification.
	Active bool

	// CreatedAt is when the rule was added.
	CreatedAt time.Time

	// ModifiedAt is when the rule was last changed. Zero if never modified.
	ModifiedAt time.Time
}

// Label returns the name of the rule as reported in classification results.
func (r *Rule) Label() string {
	return fmt.Sprintf("Custom rule: %s (%s)", r.Name, r.ID)
}

// Matches reports whether any keyword is a substring of the lowercased text.
func (r *Rule) Matches(text string) bool {
	return ContainsAny(text, r.Keywords)
}

// RuleInput carries the fields of a new rule.
type RuleInput struct {
	Name     string
	Keywords []string
	Category Category
	Priority Priority
	Assignee string

	// Active defaults to true when nil.
	Active *bool
}

// RuleUpdate carries a partial rule update. Nil fields are left unchanged.
type RuleUpdate struct {
	Name     *string
	Keywords []string
	Category *Category
	Priority *Priority
	Assignee *string
	Active   *bool
}

// IsEmpty returns true if the update changes nothing.
func (u RuleUpdate) IsEmpty() bool {
	return u.Name == nil && u.Keywords == nil && u.Category == nil &&
		u.Priority == nil && u.Assignee == nil && u.Active == nil
}

// RuleStats summarises a rule collection.
type RuleStats struct {
	Total      int
	Active     int
	Inactive   int
	ByCategory map[Category]int
	ByPriority map[Priority]int
}

// RuleFilter selects rules by state, category and priority. Zero fields match everything.
type RuleFilter struct {
	// Active, when set, keeps only rules whose active flag equals it.
	Active *bool

	Category Category
	Priority Priority
}

// Matches reports whether r passes every set criterion.
func (f RuleFilter) Matches(r *Rule) bool {
	switch {
	case f.Active != nil && r.Active != *f.Active:
		return false
	case f.Category != "" && r.Category != f.Category:
		return false
	case f.Priority != "" && r.Priority != f.Priority:
		return false
	}
	return true
}

// NormalizeKeywords trims and lowercases keywords, dropping empty entries.
// Order is preserved.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// SplitKeywords splits a comma-separated keyword list and normalises it.
func SplitKeywords(s string) []string {
	return NormalizeKeywords(strings.Split(s, ","))
}

// ContainsAny reports whether any keyword is a substring of text.
// text is expected to be lowercased already.
func ContainsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// BuiltinRule is an entry of the fixed fallback ladder evaluated after custom rules.
type BuiltinRule struct {
	Label    string
	Keywords []string
	Category Category
	Priority Priority
	Assignee string
}

// Result builds the classification result this rule produces.
func (b *BuiltinRule) Result() ClassificationResult {
	return ClassificationResult{
		RuleApplied: "Built-in rule: " + b.Label,
		Category:    b.Category,
		Priority:    b.Priority,
		Assignee:    b.Assignee,
	}
}
