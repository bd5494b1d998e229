package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/triage-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/triage-cli/internal/core/domain"
	"github.com/custodia-labs/triage-cli/internal/core/ports/driven"
)

// DatabaseFile is the name of the database inside the data directory.
const DatabaseFile = "tickets.db"

// Store is a SQLite-based storage for the processed-ticket log.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.triage/tickets.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".triage")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets report readers run alongside an intake writer
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TicketLog returns a TicketLog interface backed by this store.
func (s *Store) TicketLog() driven.TicketLog {
	return &ticketLog{store: s}
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_processed_tickets.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Ticket Log ====================

// ticketLog implements driven.TicketLog.
type ticketLog struct {
	store *Store
}

var _ driven.TicketLog = (*ticketLog)(nil)

// Append inserts a processed ticket at the end of the log.
func (l *ticketLog) Append(ctx context.Context, entry domain.ProcessedTicket) error {
	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO processed_tickets (
			entry_id, ticket_id, content, requester, area, ticket_date,
			rule_applied, category, priority, assignee, processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.EntryID,
		entry.Ticket.ID,
		entry.Ticket.Content,
		entry.Ticket.Requester,
		entry.Ticket.Area,
		entry.Ticket.Date,
		entry.Result.RuleApplied,
		string(entry.Result.Category),
		string(entry.Result.Priority),
		entry.Result.Assignee,
		entry.ProcessedAt.Format(domain.TimestampLayout),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("entry %s: %w", entry.EntryID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("%w: appending ticket: %v", domain.ErrPersistence, err)
	}
	return nil
}

// List returns every processed ticket in insertion order.
func (l *ticketLog) List(ctx context.Context) ([]domain.ProcessedTicket, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT entry_id, ticket_id, content, requester, area, ticket_date,
			rule_applied, category, priority, assignee, processed_at
		FROM processed_tickets
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing tickets: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	var entries []domain.ProcessedTicket
	for rows.Next() {
		entry, err := scanProcessedTicket(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing tickets: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func scanProcessedTicket(rows *sql.Rows) (*domain.ProcessedTicket, error) {
	var (
		entry       domain.ProcessedTicket
		category    string
		priority    string
		processedAt string
	)
	err := rows.Scan(
		&entry.EntryID,
		&entry.Ticket.ID,
		&entry.Ticket.Content,
		&entry.Ticket.Requester,
		&entry.Ticket.Area,
		&entry.Ticket.Date,
		&entry.Result.RuleApplied,
		&category,
		&priority,
		&entry.Result.Assignee,
		&processedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanning ticket: %v", domain.ErrPersistence, err)
	}

	entry.Result.Category = domain.Category(category)
	entry.Result.Priority = domain.Priority(priority)
	entry.ProcessedAt, err = time.ParseInLocation(domain.TimestampLayout, processedAt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: entry %s: bad processed_at %q", domain.ErrPersistence, entry.EntryID, processedAt)
	}
	return &entry, nil
}
