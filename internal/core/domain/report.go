package domain

import (
	"strings"
	"time"
)

// TicketReport summarises the processed-ticket log.
type TicketReport struct {
	Total int

	// HighPriority is the number of High priority tickets.
	HighPriority int

	// HighPriorityPercent is HighPriority as a percentage of Total (0 when Total is 0).
	HighPriorityPercent float64

	ByCategory  map[Category]int
	ByPriority  map[Priority]int
	ByAssignee  map[string]int
	ByArea      map[string]int
	ByRequester map[string]int
}

// DateLayout is the day format accepted for ticket dates and report bounds.
const DateLayout = "2006-01-02"

// ReportFilter narrows the log entries a report covers. Zero fields match everything.
type ReportFilter struct {
	// Since and Until are inclusive day bounds on the ticket date.
	Since time.Time
	Until time.Time

	Category  Category
	Priority  Priority
	Area      string
	Assignee  string
	Requester string
}

// IsEmpty returns true if the filter matches every entry.
func (f ReportFilter) IsEmpty() bool {
	return f == ReportFilter{}
}

// Matches reports whether the entry passes every set criterion.
// Text criteria compare case-insensitively.
func (f ReportFilter) Matches(e ProcessedTicket) bool {
	switch {
	case f.Category != "" && e.Result.Category != f.Category:
		return false
	case f.Priority != "" && e.Result.Priority != f.Priority:
		return false
	case !sameText(f.Area, e.Ticket.Area):
		return false
	case !sameText(f.Assignee, e.Result.Assignee):
		return false
	case !sameText(f.Requester, e.Ticket.Requester):
		return false
	}

	if f.Since.IsZero() && f.Until.IsZero() {
		return true
	}
	day := dayOf(e.TicketDate())
	if !f.Since.IsZero() && day.Before(dayOf(f.Since)) {
		return false
	}
	if !f.Until.IsZero() && day.After(dayOf(f.Until)) {
		return false
	}
	return true
}

// TicketDate returns the date the ticket was raised. Entries whose ticket
// date is missing or unreadable fall back to when they were processed.
func (e ProcessedTicket) TicketDate() time.Time {
	raw := strings.TrimSpace(e.Ticket.Date)
	for _, layout := range []string{TimestampLayout, DateLayout} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return e.ProcessedAt
}

func sameText(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, strings.TrimSpace(got))
}

func dayOf(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
