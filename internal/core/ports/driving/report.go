package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// ReportService summarises the processed-ticket log.
type ReportService interface {
	// Summary computes aggregate counts over the log entries matching filter.
	Summary(ctx context.Context, filter domain.ReportFilter) (*domain.TicketReport, error)

	// Export writes the matching log entries and their summary to w.
	Export(ctx context.Context, w io.Writer, filter domain.ReportFilter) error
}
