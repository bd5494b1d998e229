package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

func writeTickets(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestProcessCmd_JSONFile(t *testing.T) {
	svc := setupTestServices(t)
	path := writeTickets(t, "batch.json", `{
  // morning batch
  "tickets": [
    {"id": "T1", "content": "Mi impresora no imprime"},
    {"id": "T2", "content": "Tengo un virus en el correo"},
  ]
}`)

	out, _, err := execute(t, "", "process", path)

	require.NoError(t, err)
	assert.Contains(t, out, "T1")
	assert.Contains(t, out, "PRINT_SCAN")
	assert.Contains(t, out, "Built-in rule: Security incident")
	assert.Contains(t, out, "Processed 2, rejected 0")

	entries, err := svc.log.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "T1", entries[0].Ticket.ID)
	assert.Equal(t, domain.CategorySecurity, entries[1].Result.Category)
}

func TestProcessCmd_YAMLFileWithJSONOutput(t *testing.T) {
	setupTestServices(t)
	path := writeTickets(t, "batch.yaml", `tickets:
  - id: T9
    content: "   "
    requester: ana
`)

	out, _, err := execute(t, "", "process", "--json", path)

	require.NoError(t, err)
	var processed []processedOutput
	require.NoError(t, json.Unmarshal([]byte(out), &processed))
	require.Len(t, processed, 1)
	assert.Equal(t, "T9", processed[0].Ticket.ID)
	assert.Empty(t, processed[0].Ticket.Content)
	assert.Equal(t, domain.EmptyContentResult(), processed[0].Result)
	assert.NotEmpty(t, processed[0].EntryID)
	assert.NotEmpty(t, processed[0].ProcessedAt)
}

func TestProcessCmd_RejectsUnknownArea(t *testing.T) {
	svc := setupTestServices(t)
	_, err := svc.areas.Add(context.Background(), "Finanzas", "")
	require.NoError(t, err)

	path := writeTickets(t, "batch.json", `{"tickets": [
  {"id": "T1", "content": "no hay internet", "area": "Finanzas"},
  {"id": "T2", "content": "no hay internet", "area": "Marketing"}
]}`)

	out, errOut, err := execute(t, "", "process", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 tickets rejected")
	assert.Contains(t, out, "Processed 1, rejected 1")
	assert.Contains(t, errOut, "rejected T2")

	entries, err := svc.log.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "T1", entries[0].Ticket.ID)
}

func TestProcessCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "", "process", filepath.Join(t.TempDir(), "nope.json"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketLabel(t *testing.T) {
	assert.Equal(t, "T1", ticketLabel(domain.Ticket{ID: "T1"}, 4))
	assert.Equal(t, "#5", ticketLabel(domain.Ticket{}, 4))
	assert.Equal(t, "(no id)", ticketLabel(domain.Ticket{}, -1))
}
