package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

func addPrinterRule(t *testing.T, extra ...string) {
	t.Helper()
	args := append([]string{"rule", "add",
		"--name", "Printers",
		"--keywords", "Impresora, toner",
		"--category", "print_scan",
		"--priority", "medium",
		"--assignee", "Printer Team",
	}, extra...)
	_, _, err := execute(t, "", args...)
	require.NoError(t, err)
}

func TestRuleCmd_AddAndList(t *testing.T) {
	svc := setupTestServices(t)

	out, _, err := execute(t, "", "rule", "add",
		"--name", "Printers",
		"--keywords", "Impresora, toner",
		"--category", "print_scan",
		"--priority", "medium",
		"--assignee", "Printer Team")
	require.NoError(t, err)
	assert.Contains(t, out, "Added rule R01 (Printers)")

	rule, err := svc.rules.Get("R01")
	require.NoError(t, err)
	assert.Equal(t, []string{"impresora", "toner"}, rule.Keywords)
	assert.Equal(t, domain.CategoryPrintScan, rule.Category)
	assert.Equal(t, domain.PriorityMedium, rule.Priority)
	assert.True(t, rule.Active)

	out, _, err = execute(t, "", "rule", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "R01  Printers (active)")
	assert.Contains(t, out, "PRINT_SCAN / Medium -> Printer Team")
	assert.Contains(t, out, "keywords: impresora, toner")
}

func TestRuleCmd_AddInactive(t *testing.T) {
	setupTestServices(t)
	addPrinterRule(t, "--inactive")

	out, _, err := execute(t, "", "rule", "list", "--active")
	require.NoError(t, err)
	assert.Contains(t, out, "No rules match the filter.")

	out, _, err = execute(t, "", "rule", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "(inactive)")
}

func TestRuleCmd_ListFilters(t *testing.T) {
	setupTestServices(t)
	addPrinterRule(t)
	addPrinterRule(t, "--inactive")
	_, _, err := execute(t, "", "rule", "add",
		"--name", "VPN",
		"--keywords", "vpn",
		"--category", "network",
		"--priority", "high",
		"--assignee", "Network Team")
	require.NoError(t, err)

	tests := []struct {
		name     string
		args     []string
		expected []string
		missing  []string
	}{
		{"all", nil, []string{"R01", "R02", "R03"}, nil},
		{"active", []string{"--active"}, []string{"R01", "R03"}, []string{"R02"}},
		{"inactive", []string{"--inactive"}, []string{"R02"}, []string{"R01", "R03"}},
		{"category", []string{"--category", "NETWORK"}, []string{"R03"}, []string{"R01", "R02"}},
		{"priority", []string{"--priority", "medium"}, []string{"R01", "R02"}, []string{"R03"}},
		{"inactive and priority", []string{"--inactive", "--priority", "Medium"}, []string{"R02"}, []string{"R01", "R03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", append([]string{"rule", "list"}, tt.args...)...)
			require.NoError(t, err)
			for _, id := range tt.expected {
				assert.Contains(t, out, id+"  ")
			}
			for _, id := range tt.missing {
				assert.NotContains(t, out, id+"  ")
			}
		})
	}

	out, _, err := execute(t, "", "rule", "list", "--category", "security")
	require.NoError(t, err)
	assert.Contains(t, out, "No rules match the filter.")
}

func TestRuleCmd_ListRejectsInvalidFilters(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "", "rule", "list", "--category", "REDES")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = execute(t, "", "rule", "list", "--priority", "Alta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = execute(t, "", "rule", "list", "--active", "--inactive")
	assert.Error(t, err)
}

func TestRuleCmd_AddRejectsInvalidInput(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad category", []string{"--name", "X", "--keywords", "x", "--category", "ERROR", "--priority", "Low", "--assignee", "A"}},
		{"bad priority", []string{"--name", "X", "--keywords", "x", "--category", "NETWORK", "--priority", "urgent", "--assignee", "A"}},
		{"no keywords", []string{"--name", "X", "--keywords", " , ", "--category", "NETWORK", "--priority", "Low", "--assignee", "A"}},
		{"no name", []string{"--keywords", "x", "--category", "NETWORK", "--priority", "Low", "--assignee", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", append([]string{"rule", "add"}, tt.args...)...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRuleCmd_Update(t *testing.T) {
	svc := setupTestServices(t)
	addPrinterRule(t)

	out, _, err := execute(t, "", "rule", "update", "R01", "--priority", "High", "--keywords", "escaner")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated rule R01")

	rule, err := svc.rules.Get("R01")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, rule.Priority)
	assert.Equal(t, []string{"escaner"}, rule.Keywords)
	assert.Equal(t, "Printers", rule.Name)
	assert.True(t, rule.Active)
	assert.False(t, rule.ModifiedAt.IsZero())
}

func TestRuleCmd_UpdateActiveFlag(t *testing.T) {
	svc := setupTestServices(t)
	addPrinterRule(t)

	_, _, err := execute(t, "", "rule", "update", "R01", "--active=false")
	require.NoError(t, err)

	rule, err := svc.rules.Get("R01")
	require.NoError(t, err)
	assert.False(t, rule.Active)
}

func TestRuleCmd_UpdateNothing(t *testing.T) {
	setupTestServices(t)
	addPrinterRule(t)

	_, _, err := execute(t, "", "rule", "update", "R01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRuleCmd_UpdateUnknown(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "", "rule", "update", "R99", "--name", "X")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRuleCmd_ToggleAndDelete(t *testing.T) {
	svc := setupTestServices(t)
	addPrinterRule(t)

	out, _, err := execute(t, "", "rule", "toggle", "R01")
	require.NoError(t, err)
	assert.Contains(t, out, "Rule R01 deactivated")

	out, _, err = execute(t, "", "rule", "toggle", "R01")
	require.NoError(t, err)
	assert.Contains(t, out, "Rule R01 activated")

	out, _, err = execute(t, "", "rule", "delete", "R01")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted rule R01")
	assert.Empty(t, svc.rules.List())

	_, _, err = execute(t, "", "rule", "delete", "R01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRuleCmd_Stats(t *testing.T) {
	setupTestServices(t)
	addPrinterRule(t)
	addPrinterRule(t, "--inactive")

	out, _, err := execute(t, "", "rule", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Rules: 2 (1 active, 1 inactive)")
	assert.Contains(t, out, "By category:")
	assert.Contains(t, out, "PRINT_SCAN")
}

func TestRuleCmd_Ladder(t *testing.T) {
	setupTestServices(t)

	out, _, err := execute(t, "", "rule", "ladder")

	require.NoError(t, err)
	assert.Contains(t, out, " 1. Security incident")
	assert.Contains(t, out, "SECURITY / High -> Security Team")
	assert.Contains(t, out, "Software installation")
}
