package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

var (
	reportExport    string
	reportSince     string
	reportUntil     string
	reportCategory  string
	reportPriority  string
	reportArea      string
	reportAssignee  string
	reportRequester string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise processed tickets",
	Long: `Summarise the processed-ticket log: totals, the share of high-priority
tickets, and counts by category, priority, assignee, area and requester.

Filters narrow the tickets covered. Dates are YYYY-MM-DD and inclusive; a
ticket without a readable date is placed on the day it was processed.

With --export the matching tickets and the summary are also written to an
Excel workbook.`,
	Example: `  triage report --since 2025-06-01 --until 2025-06-30
  triage report --area Finance --priority High -o finance.xlsx`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportExport, "export", "o", "", "write an .xlsx report to this path")
	reportCmd.Flags().StringVar(&reportSince, "since", "", "only tickets dated on or after this day (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportUntil, "until", "", "only tickets dated on or before this day (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportCategory, "category", "", "only tickets classified in this category")
	reportCmd.Flags().StringVar(&reportPriority, "priority", "", "only tickets with this priority")
	reportCmd.Flags().StringVar(&reportArea, "area", "", "only tickets from this area")
	reportCmd.Flags().StringVar(&reportAssignee, "assignee", "", "only tickets routed to this assignee")
	reportCmd.Flags().StringVar(&reportRequester, "requester", "", "only tickets raised by this requester")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	filter, err := reportFilter()
	if err != nil {
		return err
	}

	report, err := reportService.Summary(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Println(st.header.Render("Processed tickets"))
	if !filter.IsEmpty() {
		cmd.Println(st.muted.Render("  (filtered)"))
	}
	cmd.Printf("  Total:         %d\n", report.Total)
	cmd.Printf("  High priority: %d (%.1f%%)\n", report.HighPriority, report.HighPriorityPercent)
	printCounts(cmd, "By category", stringCounts(report.ByCategory))
	printCounts(cmd, "By priority", stringCounts(report.ByPriority))
	printCounts(cmd, "By assignee", report.ByAssignee)
	printCounts(cmd, "By area", report.ByArea)
	printCounts(cmd, "By requester", report.ByRequester)

	if reportExport == "" {
		return nil
	}

	f, err := os.Create(reportExport)
	if err != nil {
		return fmt.Errorf("creating %s: %w", reportExport, err)
	}
	if err := reportService.Export(cmd.Context(), f, filter); err != nil {
		f.Close()
		os.Remove(reportExport)
		return fmt.Errorf("failed to export report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", reportExport, err)
	}

	cmd.Printf("\nReport written to %s\n", reportExport)
	return nil
}

func reportFilter() (domain.ReportFilter, error) {
	filter := domain.ReportFilter{
		Area:      reportArea,
		Assignee:  reportAssignee,
		Requester: reportRequester,
	}

	var err error
	if filter.Since, err = parseDay("since", reportSince); err != nil {
		return filter, err
	}
	if filter.Until, err = parseDay("until", reportUntil); err != nil {
		return filter, err
	}
	if reportCategory != "" {
		if filter.Category, err = domain.ParseOutcomeCategory(reportCategory); err != nil {
			return filter, err
		}
	}
	if reportPriority != "" {
		if filter.Priority, err = domain.ParsePriority(reportPriority); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func parseDay(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s must be YYYY-MM-DD, got %q", domain.ErrInvalidInput, flag, value)
	}
	return t, nil
}
