package domain

import (
	"strings"
	"time"
)

// TimestampLayout is the on-disk format of creation, modification and
// processing stamps. Stamps carry no zone and are read back as local time.
const TimestampLayout = "2006-01-02 15:04:05"

// Rule labels reported for outcomes that are not produced by a rule.
const (
	LabelEmptyContent = "empty content error"
	LabelUnclassified = "unclassified"
)

// Assignees reported for outcomes that are not produced by a rule.
const (
	AssigneeUnassigned   = "unassigned"
	AssigneeManualReview = "manual review"
)

// Ticket is a support request as received at the boundary.
// Absent fields are empty strings.
type Ticket struct {
	ID        string `json:"id" yaml:"id"`
	Content   string `json:"content" yaml:"content"`
	Requester string `json:"requester" yaml:"requester"`
	Area      string `json:"area" yaml:"area"`
	Date      string `json:"date" yaml:"date"`
}

// Normalized returns a copy with surrounding whitespace removed from every field.
func (t Ticket) Normalized() Ticket {
	return Ticket{
		ID:        strings.TrimSpace(t.ID),
		Content:   strings.TrimSpace(t.Content),
		Requester: strings.TrimSpace(t.Requester),
		Area:      strings.TrimSpace(t.Area),
		Date:      strings.TrimSpace(t.Date),
	}
}

// ClassificationResult is the outcome of classifying one ticket.
// It is a value: once produced it is never modified.
type ClassificationResult struct {
	// RuleApplied names the rule that fired, or LabelEmptyContent / LabelUnclassified.
	RuleApplied string `json:"rule_applied"`

	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Assignee string   `json:"assignee"`
}

// EmptyContentResult is returned for tickets with no content.
func EmptyContentResult() ClassificationResult {
	return ClassificationResult{
		RuleApplied: LabelEmptyContent,
		Category:    CategoryError,
		Priority:    PriorityLow,
		Assignee:    AssigneeUnassigned,
	}
}

// UnclassifiedResult is returned when no rule matches.
func UnclassifiedResult() ClassificationResult {
	return ClassificationResult{
		RuleApplied: LabelUnclassified,
		Category:    CategoryGeneral,
		Priority:    PriorityLow,
		Assignee:    AssigneeManualReview,
	}
}

// IsError returns true if the ticket had no content to classify.
func (r ClassificationResult) IsError() bool {
	return r.Category == CategoryError
}

// IsUnclassified returns true if no rule matched and the ticket needs human routing.
func (r ClassificationResult) IsUnclassified() bool {
	return r.RuleApplied == LabelUnclassified
}

// ProcessedTicket is an entry of the append-only processed-ticket log.
type ProcessedTicket struct {
	// EntryID uniquely identifies the log entry.
	EntryID string

	Ticket Ticket
	Result ClassificationResult

	// ProcessedAt is when the ticket was classified.
	ProcessedAt time.Time
}

// TicketFailure records a ticket of a batch that was rejected.
type TicketFailure struct {
	Ticket Ticket
	Err    error
}

// BatchResult is the outcome of processing a batch of tickets.
type BatchResult struct {
	Processed []ProcessedTicket
	Failed    []TicketFailure
}
