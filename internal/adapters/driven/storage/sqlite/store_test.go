package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/triage-cli/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func testEntry(id string, result domain.ClassificationResult) domain.ProcessedTicket {
	return domain.ProcessedTicket{
		EntryID: id,
		Ticket: domain.Ticket{
			ID:        "T-" + id,
			Content:   "la vpn no conecta",
			Requester: "ana",
			Area:      "Finance",
			Date:      "2025-06-01",
		},
		Result:      result,
		ProcessedAt: time.Date(2025, 6, 2, 10, 15, 30, 0, time.Local),
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_RecordsSchemaVersion(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.SchemaVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.TicketLog().Append(ctx, testEntry("e1", domain.UnclassifiedResult())))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	version, err := second.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	entries, err := second.TicketLog().List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTicketLog_EmptyList(t *testing.T) {
	store := setupTestStore(t)

	entries, err := store.TicketLog().List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTicketLog_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	log := store.TicketLog()
	ctx := context.Background()

	want := testEntry("e1", domain.ClassificationResult{
		RuleApplied: "Built-in rule: Remote access / VPN",
		Category:    domain.CategoryNetwork,
		Priority:    domain.PriorityHigh,
		Assignee:    "Network Team",
	})
	require.NoError(t, log.Append(ctx, want))

	entries, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, want.EntryID, got.EntryID)
	assert.Equal(t, want.Ticket, got.Ticket)
	assert.Equal(t, want.Result, got.Result)
	assert.True(t, want.ProcessedAt.Equal(got.ProcessedAt))
}

func TestTicketLog_PreservesOrder(t *testing.T) {
	store := setupTestStore(t)
	log := store.TicketLog()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, log.Append(ctx, testEntry(id, domain.UnclassifiedResult())))
	}

	entries, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c", entries[0].EntryID)
	assert.Equal(t, "a", entries[1].EntryID)
	assert.Equal(t, "b", entries[2].EntryID)
}

func TestTicketLog_DuplicateEntryID(t *testing.T) {
	store := setupTestStore(t)
	log := store.TicketLog()
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, testEntry("e1", domain.UnclassifiedResult())))
	err := log.Append(ctx, testEntry("e1", domain.UnclassifiedResult()))

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestTicketLog_ConcurrentAppend(t *testing.T) {
	store := setupTestStore(t)
	log := store.TicketLog()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, log.Append(ctx, testEntry(string(rune('a'+i)), domain.EmptyContentResult())))
		}(i)
	}
	wg.Wait()

	entries, err := log.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}
