// Package xlsx exports the processed-ticket log and its summary as an
// Excel workbook using github.com/xuri/excelize/v2.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.ReportExporter = (*Exporter)(nil)

// Sheet names of the exported workbook.
const (
	TicketsSheet = "Tickets"
	SummarySheet = "Summary"
)

// TicketsHeader is the header row of the Tickets sheet.
var TicketsHeader = []string{
	"Entry ID",
	"Ticket ID",
	"Processed At",
	"Requester",
	"Area",
	"Date",
	"Content",
	"Rule Applied",
	"Category",
	"Priority",
	"Assignee",
}

var ticketsColumnWidths = []float64{38, 14, 20, 18, 18, 12, 60, 40, 14, 10, 26}

// Exporter writes XLSX reports.
type Exporter struct{}

// NewExporter creates an XLSX exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes a workbook with one row per ticket and a summary sheet.
func (e *Exporter) Export(ctx context.Context, w io.Writer, tickets []domain.ProcessedTicket, summary domain.TicketReport) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, name := range []string{TicketsSheet, SummarySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet: %w", err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	// Indexes shift once the default sheet is gone.
	index, err := f.GetSheetIndex(TicketsSheet)
	if err != nil {
		return fmt.Errorf("locating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeRow(f, TicketsSheet, 1, toCells(TicketsHeader)); err != nil {
		return err
	}
	if err := styleRow(f, TicketsSheet, 1, len(TicketsHeader), headerStyle); err != nil {
		return err
	}
	for i, width := range ticketsColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("converting column number: %w", err)
		}
		if err := f.SetColWidth(TicketsSheet, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	for i := range tickets {
		if err := ctx.Err(); err != nil {
			return err
		}
		t := &tickets[i]
		row := []any{
			t.EntryID,
			t.Ticket.ID,
			t.ProcessedAt.Format(domain.TimestampLayout),
			t.Ticket.Requester,
			t.Ticket.Area,
			t.Ticket.Date,
			t.Ticket.Content,
			t.Result.RuleApplied,
			string(t.Result.Category),
			string(t.Result.Priority),
			t.Result.Assignee,
		}
		if err := writeRow(f, TicketsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeSummary(f, summary, headerStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, summary domain.TicketReport, headerStyle int) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"Total processed", summary.Total},
		{"High priority", summary.HighPriority},
		{"High priority %", fmt.Sprintf("%.1f", summary.HighPriorityPercent)},
	}
	headers := []int{1}

	section := func(title string, counts map[string]int) {
		rows = append(rows, []any{}, []any{title, "Count"})
		headers = append(headers, len(rows))
		for _, key := range sortedKeys(counts) {
			rows = append(rows, []any{key, counts[key]})
		}
	}
	section("By category", stringKeys(summary.ByCategory))
	section("By priority", stringKeys(summary.ByPriority))
	section("By assignee", summary.ByAssignee)
	section("By area", summary.ByArea)
	section("By requester", summary.ByRequester)

	for i, row := range rows {
		if err := writeRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	for _, r := range headers {
		if err := styleRow(f, SummarySheet, r, 2, headerStyle); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 30); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("setting cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("converting coordinates: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return fmt.Errorf("converting coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("styling %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func stringKeys[K ~string](m map[K]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
