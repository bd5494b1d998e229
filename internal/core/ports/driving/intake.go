package driving

import (
	"context"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// IntakeService accepts tickets, classifies them and records the results.
type IntakeService interface {
	// Process validates, classifies and logs a single ticket. A ticket without
	// an ID is logged under a generated "TK"+timestamp one.
	Process(ctx context.Context, ticket domain.Ticket) (*domain.ProcessedTicket, error)

	// ProcessBatch processes tickets in order. Rejected tickets do not stop the batch.
	ProcessBatch(ctx context.Context, tickets []domain.Ticket) (*domain.BatchResult, error)
}
