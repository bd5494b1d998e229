package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// ReportExporter renders the processed-ticket log and its summary to a document.
type ReportExporter interface {
	// Export writes the document to w.
	Export(ctx context.Context, w io.Writer, tickets []domain.ProcessedTicket, summary domain.TicketReport) error
}
