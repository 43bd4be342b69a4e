package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/kbchat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/kbchat/internal/core/domain"
	"github.com/custodia-labs/kbchat/internal/core/ports/driven"
)

// DefaultFileName is the database file inside the data directory.
const DefaultFileName = "memory.db"

var _ driven.MemoryStore = (*Store)(nil)

// Store is a SQLite-backed memory store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to the configured memory directory default.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = domain.DefaultMemoryDir
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DefaultFileName)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// Load reads the stored memory. An empty database yields an empty state
// with LoadStatusDefaultedMissing. Rows that cannot be decoded yield an
// empty state with LoadStatusDefaultedCorrupt.
func (s *Store) Load(ctx context.Context) (domain.MemoryState, domain.LoadStatus, error) {
	var selfName sql.NullString
	var aliasJSON string
	row := s.db.QueryRowContext(ctx, "SELECT self_name, company_alias FROM memory WHERE id = 1")
	if err := row.Scan(&selfName, &aliasJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EmptyMemory(), domain.LoadStatusDefaultedMissing, nil
		}
		return domain.EmptyMemory(), domain.LoadStatusDefaultedCorrupt, fmt.Errorf("%w: scanning memory: %w", domain.ErrCorruptState, err)
	}

	state := domain.EmptyMemory()
	state.SelfName = selfName.String
	if err := json.Unmarshal([]byte(aliasJSON), &state.CompanyAlias); err != nil {
		return domain.EmptyMemory(), domain.LoadStatusDefaultedCorrupt, fmt.Errorf("%w: unmarshaling company alias: %w", domain.ErrCorruptState, err)
	}
	if state.CompanyAlias == nil {
		state.CompanyAlias = map[string]string{}
	}

	rows, err := s.db.QueryContext(ctx, "SELECT text FROM facts ORDER BY position")
	if err != nil {
		return domain.EmptyMemory(), domain.LoadStatusDefaultedCorrupt, fmt.Errorf("%w: querying facts: %w", domain.ErrCorruptState, err)
	}
	defer rows.Close()

	for rows.Next() {
		var fact string
		if err := rows.Scan(&fact); err != nil {
			return domain.EmptyMemory(), domain.LoadStatusDefaultedCorrupt, fmt.Errorf("%w: scanning fact: %w", domain.ErrCorruptState, err)
		}
		state.AddFact(fact)
	}
	if err := rows.Err(); err != nil {
		return domain.EmptyMemory(), domain.LoadStatusDefaultedCorrupt, fmt.Errorf("%w: iterating facts: %w", domain.ErrCorruptState, err)
	}

	return state, domain.LoadStatusLoaded, nil
}

// Save replaces the stored memory with state.
func (s *Store) Save(ctx context.Context, state domain.MemoryState) error {
	alias := state.CompanyAlias
	if alias == nil {
		alias = map[string]string{}
	}
	aliasJSON, err := json.Marshal(alias)
	if err != nil {
		return fmt.Errorf("marshalling company alias: %w", err)
	}

	var selfName sql.NullString
	if state.SelfName != "" {
		selfName = sql.NullString{String: state.SelfName, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memory (id, self_name, company_alias, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			self_name = excluded.self_name,
			company_alias = excluded.company_alias,
			updated_at = CURRENT_TIMESTAMP
	`, selfName, string(aliasJSON))
	if err != nil {
		return fmt.Errorf("saving memory: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM facts"); err != nil {
		return fmt.Errorf("clearing facts: %w", err)
	}
	for i, fact := range state.Facts {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO facts (position, text) VALUES (?, ?)", i, fact); err != nil {
			return fmt.Errorf("saving fact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing memory: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
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
		// "001_memory.up.sql" -> 1
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
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
