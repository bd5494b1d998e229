package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure TicketLog implements the interface.
var _ driven.TicketLog = (*TicketLog)(nil)

// TicketLog is an in-memory implementation of driven.TicketLog.
type TicketLog struct {
	mu        sync.RWMutex
	entries   []domain.ProcessedTicket
	appendErr error
}

// NewTicketLog creates an empty in-memory ticket log.
func NewTicketLog() *TicketLog {
	return &TicketLog{}
}

// FailAppend makes subsequent Append calls return err. Pass nil to clear.
func (l *TicketLog) FailAppend(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.appendErr = err
}

// Append adds an entry to the log.
func (l *TicketLog) Append(_ context.Context, entry domain.ProcessedTicket) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.appendErr != nil {
		return l.appendErr
	}
	l.entries = append(l.entries, entry)
	return nil
}

// List returns a copy of all entries in append order.
func (l *TicketLog) List(_ context.Context) ([]domain.ProcessedTicket, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries), nil
}
