package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/triage-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

type intakeFixture struct {
	intake *IntakeService
	rules  *RuleStore
	areas  *AreaStore
	log    *memory.TicketLog
}

func newIntakeFixture(t *testing.T, areaNames ...string) *intakeFixture {
	t.Helper()
	rules, _ := newTestRuleStore(t)
	areas, _ := newTestAreaStore(t, areaNames...)
	log := memory.NewTicketLog()
	intake := NewIntakeService(rules, areas, NewClassifier(), log)
	intake.SetClock(func() time.Time { return fixedNow })
	return &intakeFixture{intake: intake, rules: rules, areas: areas, log: log}
}

func TestIntakeService_ProcessLogsResult(t *testing.T) {
	f := newIntakeFixture(t)
	ctx := context.Background()

	entry, err := f.intake.Process(ctx, domain.Ticket{
		ID:        " T-1 ",
		Content:   "mi impresora no funciona",
		Requester: "ana",
	})

	require.NoError(t, err)
	_, parseErr := uuid.Parse(entry.EntryID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "T-1", entry.Ticket.ID)
	assert.Equal(t, domain.CategoryPrintScan, entry.Result.Category)
	assert.Equal(t, fixedNow, entry.ProcessedAt)

	logged, err := f.log.List(ctx)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, *entry, logged[0])
}

func TestIntakeService_UsesActiveCustomRules(t *testing.T) {
	f := newIntakeFixture(t)
	ctx := context.Background()
	_, err := f.rules.Add(ctx, domain.RuleInput{
		Name:     "Printers",
		Keywords: []string{"impresora"},
		Category: domain.CategoryHardware,
		Priority: domain.PriorityHigh,
		Assignee: "Floor support",
	})
	require.NoError(t, err)

	entry, err := f.intake.Process(ctx, domain.Ticket{Content: "mi impresora no funciona"})
	require.NoError(t, err)
	assert.Equal(t, "Custom rule: Printers (R01)", entry.Result.RuleApplied)

	_, err = f.rules.Toggle(ctx, "R01")
	require.NoError(t, err)

	entry, err = f.intake.Process(ctx, domain.Ticket{Content: "mi impresora no funciona"})
	require.NoError(t, err)
	assert.Equal(t, "Built-in rule: Printer problem", entry.Result.RuleApplied)
}

func TestIntakeService_EmptyContentIsLogged(t *testing.T) {
	f := newIntakeFixture(t)

	entry, err := f.intake.Process(context.Background(), domain.Ticket{ID: "T-2"})

	require.NoError(t, err)
	assert.True(t, entry.Result.IsError())
	logged, _ := f.log.List(context.Background())
	assert.Len(t, logged, 1)
}

func TestIntakeService_GeneratesMissingTicketID(t *testing.T) {
	f := newIntakeFixture(t)
	ctx := context.Background()

	first, err := f.intake.Process(ctx, domain.Ticket{ID: "  ", Content: "la vpn no conecta"})
	require.NoError(t, err)
	second, err := f.intake.Process(ctx, domain.Ticket{Content: "tengo un virus"})
	require.NoError(t, err)

	assert.Regexp(t, `^TK20250602101530-[0-9a-f]{8}$`, first.Ticket.ID)
	assert.Regexp(t, `^TK20250602101530-[0-9a-f]{8}$`, second.Ticket.ID)
	assert.NotEqual(t, first.Ticket.ID, second.Ticket.ID)

	logged, err := f.log.List(ctx)
	require.NoError(t, err)
	require.Len(t, logged, 2)
	assert.Equal(t, first.Ticket.ID, logged[0].Ticket.ID)
}

func TestIntakeService_AreaValidation(t *testing.T) {
	f := newIntakeFixture(t, "Finance")
	ctx := context.Background()

	_, err := f.intake.Process(ctx, domain.Ticket{Content: "vpn", Area: "finance"})
	assert.NoError(t, err)

	_, err = f.intake.Process(ctx, domain.Ticket{Content: "vpn"})
	assert.NoError(t, err)

	_, err = f.intake.Process(ctx, domain.Ticket{Content: "vpn", Area: "Marketing"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	logged, _ := f.log.List(ctx)
	assert.Len(t, logged, 2)
}

func TestIntakeService_AnyAreaWithoutAreaList(t *testing.T) {
	f := newIntakeFixture(t)

	_, err := f.intake.Process(context.Background(), domain.Ticket{Content: "vpn", Area: "Marketing"})

	assert.NoError(t, err)
}

func TestIntakeService_LogFailure(t *testing.T) {
	f := newIntakeFixture(t)
	f.log.FailAppend(domain.ErrPersistence)

	_, err := f.intake.Process(context.Background(), domain.Ticket{Content: "vpn"})

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestIntakeService_ProcessBatch(t *testing.T) {
	f := newIntakeFixture(t, "Finance")
	tickets := []domain.Ticket{
		{ID: "1", Content: "tengo un virus", Area: "Finance"},
		{ID: "2", Content: "la vpn no conecta", Area: "Nowhere"},
		{ID: "3", Content: ""},
	}

	result, err := f.intake.ProcessBatch(context.Background(), tickets)

	require.NoError(t, err)
	require.Len(t, result.Processed, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "1", result.Processed[0].Ticket.ID)
	assert.Equal(t, "3", result.Processed[1].Ticket.ID)
	assert.Equal(t, "2", result.Failed[0].Ticket.ID)
	assert.ErrorIs(t, result.Failed[0].Err, domain.ErrInvalidInput)
	assert.NotEqual(t, result.Processed[0].EntryID, result.Processed[1].EntryID)
}

func TestIntakeService_ProcessBatchCancelled(t *testing.T) {
	f := newIntakeFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.intake.ProcessBatch(ctx, []domain.Ticket{{Content: "vpn"}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Processed)
}

func TestIntakeService_NotConfigured(t *testing.T) {
	intake := NewIntakeService(nil, nil, nil, nil)
	_, err := intake.Process(context.Background(), domain.Ticket{Content: "vpn"})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}
