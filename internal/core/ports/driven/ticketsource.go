package driven

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// TicketSource reads a batch of incoming tickets.
type TicketSource interface {
	// ReadTickets returns the tickets stored at path, in file order.
	ReadTickets(ctx context.Context, path string) ([]domain.Ticket, error)
}
