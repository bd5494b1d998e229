package driven

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// TicketLog records processed tickets for reporting.
// Entries are never modified once appended.
type TicketLog interface {
	// Append adds an entry to the end of the log.
	Append(ctx context.Context, entry domain.ProcessedTicket) error

	// List returns all entries in the order they were appended.
	List(ctx context.Context) ([]domain.ProcessedTicket, error)
}
