package jsonfile

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure TicketLog implements the interface.
var _ driven.TicketLog = (*TicketLog)(nil)

type ticketDocument struct {
	ProcessedTickets []ticketRecord `json:"processed_tickets"`
}

type ticketRecord struct {
	EntryID     string `json:"entry_id"`
	ID          string `json:"id"`
	Content     string `json:"content"`
	Requester   string `json:"requester"`
	Area        string `json:"area"`
	Date        string `json:"date"`
	RuleApplied string `json:"rule_applied"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	ProcessedAt string `json:"processed_at"`
}

// TicketLogFile is the default name of the processed-ticket log.
const TicketLogFile = "processed_tickets.json"

// TicketLog keeps the processed-ticket log in a JSON file.
// Append rewrites the whole document.
type TicketLog struct {
	path string
	mu   sync.Mutex
}

// NewTicketLog creates a ticket log backed by the file at path.
func NewTicketLog(path string) *TicketLog {
	return &TicketLog{path: path}
}

// Path returns the backing file path.
func (l *TicketLog) Path() string {
	return l.path
}

// Append adds an entry to the end of the log, creating the file if needed.
func (l *TicketLog) Append(_ context.Context, entry domain.ProcessedTicket) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var doc ticketDocument
	if err := readDocument(l.path, &doc); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	doc.ProcessedTickets = append(doc.ProcessedTickets, ticketRecord{
		EntryID:     entry.EntryID,
		ID:          entry.Ticket.ID,
		Content:     entry.Ticket.Content,
		Requester:   entry.Ticket.Requester,
		Area:        entry.Ticket.Area,
		Date:        entry.Ticket.Date,
		RuleApplied: entry.Result.RuleApplied,
		Category:    string(entry.Result.Category),
		Priority:    string(entry.Result.Priority),
		Assignee:    entry.Result.Assignee,
		ProcessedAt: formatStamp(entry.ProcessedAt),
	})
	return writeDocument(l.path, doc)
}

// List returns every entry in append order. A missing file is an empty log.
func (l *TicketLog) List(_ context.Context) ([]domain.ProcessedTicket, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var doc ticketDocument
	if err := readDocument(l.path, &doc); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	entries := make([]domain.ProcessedTicket, 0, len(doc.ProcessedTickets))
	for _, r := range doc.ProcessedTickets {
		entries = append(entries, domain.ProcessedTicket{
			EntryID: r.EntryID,
			Ticket: domain.Ticket{
				ID:        r.ID,
				Content:   r.Content,
				Requester: r.Requester,
				Area:      r.Area,
				Date:      r.Date,
			},
			Result: domain.ClassificationResult{
				RuleApplied: r.RuleApplied,
				Category:    domain.Category(r.Category),
				Priority:    domain.Priority(r.Priority),
				Assignee:    r.Assignee,
			},
			ProcessedAt: parseStamp(r.ProcessedAt),
		})
	}
	return entries, nil
}
