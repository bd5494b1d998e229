package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/triage-cli/internal/adapters/driven/report/xlsx"
	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

func TestReportCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, _, err := execute(t, "", "report")

	require.NoError(t, err)
	assert.Contains(t, out, "Total:         0")
	assert.Contains(t, out, "High priority: 0 (0.0%)")
}

func TestReportCmd_SummaryAndExport(t *testing.T) {
	setupTestServices(t)
	path := writeTickets(t, "batch.json", `{"tickets": [
  {"id": "T1", "content": "tengo un virus"},
  {"id": "T2", "content": "el mouse no responde"},
  {"id": "T3", "content": "la vpn no conecta"},
  {"id": "T4", "content": "hola"}
]}`)
	_, _, err := execute(t, "", "process", path)
	require.NoError(t, err)

	export := filepath.Join(t.TempDir(), "report.xlsx")
	out, _, err := execute(t, "", "report", "--export", export)

	require.NoError(t, err)
	assert.Contains(t, out, "Total:         4")
	assert.Contains(t, out, "High priority: 2 (50.0%)")
	assert.Contains(t, out, "Security Team")
	assert.Contains(t, out, "Report written to "+export)

	f, err := excelize.OpenFile(export)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsx.TicketsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, xlsx.TicketsHeader, rows[0])
	assert.Equal(t, "T1", rows[1][1])
}

func processDatedBatch(t *testing.T) {
	t.Helper()
	path := writeTickets(t, "dated.json", `{"tickets": [
  {"id": "T1", "content": "la vpn no conecta", "area": "Finance", "requester": "Ana", "date": "2025-05-30"},
  {"id": "T2", "content": "tengo un virus", "area": "Finance", "requester": "Luis", "date": "2025-06-02 09:00:00"},
  {"id": "T3", "content": "mi impresora no funciona", "area": "Legal", "requester": "Ana", "date": "2025-06-02"},
  {"id": "T4", "content": "hola", "area": "Legal", "requester": "Marta", "date": "2025-06-20"}
]}`)
	_, _, err := execute(t, "", "process", path)
	require.NoError(t, err)
}

func TestReportCmd_AreaAndRequesterCounts(t *testing.T) {
	setupTestServices(t)
	processDatedBatch(t)

	out, _, err := execute(t, "", "report")

	require.NoError(t, err)
	assert.Contains(t, out, "By area:")
	assert.Regexp(t, `Finance\s+2`, out)
	assert.Contains(t, out, "By requester:")
	assert.Regexp(t, `Ana\s+2`, out)
	assert.NotContains(t, out, "(filtered)")
}

func TestReportCmd_Filters(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		total string
	}{
		{"date range", []string{"--since", "2025-06-01", "--until", "2025-06-02"}, "Total:         2"},
		{"since only", []string{"--since", "2025-06-03"}, "Total:         1"},
		{"area and priority", []string{"--area", "finance", "--priority", "high"}, "Total:         2"},
		{"area priority and dates", []string{"--area", "Finance", "--priority", "High", "--since", "2025-06-01"}, "Total:         1"},
		{"requester", []string{"--requester", "Ana"}, "Total:         2"},
		{"assignee", []string{"--assignee", domain.AssigneeManualReview}, "Total:         1"},
		{"outcome category", []string{"--category", "general"}, "Total:         1"},
		{"no match", []string{"--area", "Sales"}, "Total:         0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)
			processDatedBatch(t)

			out, _, err := execute(t, "", append([]string{"report"}, tt.args...)...)

			require.NoError(t, err)
			assert.Contains(t, out, "(filtered)")
			assert.Contains(t, out, tt.total)
		})
	}
}

func TestReportCmd_FilteredExport(t *testing.T) {
	setupTestServices(t)
	processDatedBatch(t)
	export := filepath.Join(t.TempDir(), "finance.xlsx")

	_, _, err := execute(t, "", "report", "--area", "Finance", "--priority", "High", "-o", export)
	require.NoError(t, err)

	f, err := excelize.OpenFile(export)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsx.TicketsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "T1", rows[1][1])
	assert.Equal(t, "T2", rows[2][1])
}

func TestReportCmd_InvalidFilters(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"malformed date", []string{"--since", "02/06/2025"}},
		{"reversed range", []string{"--since", "2025-06-03", "--until", "2025-06-01"}},
		{"unknown category", []string{"--category", "REDES"}},
		{"unknown priority", []string{"--priority", "Alta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, _, err := execute(t, "", append([]string{"report"}, tt.args...)...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
