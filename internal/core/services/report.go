package services

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driving"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService summarises the processed-ticket log.
type ReportService struct {
	log      driven.TicketLog
	exporter driven.ReportExporter
}

// NewReportService creates a report service. exporter may be nil.
func NewReportService(log driven.TicketLog, exporter driven.ReportExporter) *ReportService {
	return &ReportService{log: log, exporter: exporter}
}

// Summary counts the matching logged tickets.
func (s *ReportService) Summary(ctx context.Context, filter domain.ReportFilter) (*domain.TicketReport, error) {
	if s.log == nil {
		return nil, domain.ErrNotImplemented
	}

	entries, err := s.entries(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Summarize(entries), nil
}

// Export writes the matching log entries and their summary through the
// configured exporter.
func (s *ReportService) Export(ctx context.Context, w io.Writer, filter domain.ReportFilter) error {
	if s.log == nil || s.exporter == nil {
		return domain.ErrNotImplemented
	}

	entries, err := s.entries(ctx, filter)
	if err != nil {
		return err
	}
	if err := s.exporter.Export(ctx, w, entries, *Summarize(entries)); err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}
	return nil
}

func (s *ReportService) entries(ctx context.Context, filter domain.ReportFilter) ([]domain.ProcessedTicket, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	entries, err := s.log.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading ticket log: %w", err)
	}
	return Filter(entries, filter), nil
}

func validateFilter(f domain.ReportFilter) error {
	switch {
	case f.Category != "" && !f.Category.IsOutcome():
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, f.Category)
	case f.Priority != "" && !f.Priority.IsValid():
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, f.Priority)
	case !f.Since.IsZero() && !f.Until.IsZero() && f.Since.After(f.Until):
		return fmt.Errorf("%w: start date %s is after end date %s", domain.ErrInvalidInput,
			f.Since.Format(domain.DateLayout), f.Until.Format(domain.DateLayout))
	}
	return nil
}

// Filter returns the entries matching f, in log order.
func Filter(entries []domain.ProcessedTicket, f domain.ReportFilter) []domain.ProcessedTicket {
	if f.IsEmpty() {
		return entries
	}
	out := make([]domain.ProcessedTicket, 0, len(entries))
	for i := range entries {
		if f.Matches(entries[i]) {
			out = append(out, entries[i])
		}
	}
	return out
}

// Summarize computes a report over log entries.
func Summarize(entries []domain.ProcessedTicket) *domain.TicketReport {
	report := &domain.TicketReport{
		Total:       len(entries),
		ByCategory:  make(map[domain.Category]int),
		ByPriority:  make(map[domain.Priority]int),
		ByAssignee:  make(map[string]int),
		ByArea:      make(map[string]int),
		ByRequester: make(map[string]int),
	}
	for i := range entries {
		r := entries[i].Result
		report.ByCategory[r.Category]++
		report.ByPriority[r.Priority]++
		report.ByAssignee[r.Assignee]++
		// Tickets without an area or requester are left out of those breakdowns.
		if area := entries[i].Ticket.Area; area != "" {
			report.ByArea[area]++
		}
		if requester := entries[i].Ticket.Requester; requester != "" {
			report.ByRequester[requester]++
		}
	}
	report.HighPriority = report.ByPriority[domain.PriorityHigh]
	if report.Total > 0 {
		report.HighPriorityPercent = float64(report.HighPriority) / float64(report.Total) * 100
	}
	return report
}
