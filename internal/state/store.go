// Package state persists the vault collection in a SQLite database.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/AntoineGS/tidypass/internal/vault"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// busyTimeoutMS is how long a connection waits for another writer's lock.
const busyTimeoutMS = 5000

// Store manages the SQLite database holding services and accounts.
type Store struct {
	db   *sql.DB
	path string
	// mu serializes writers; SQLite allows one write transaction at a time
	mu sync.Mutex
}

// Open opens or creates the SQLite database at the given path and runs migrations.
func Open(dbPath string) (*Store, error) {
	s, err := open(dbPath)
	if err != nil {
		return nil, NewDBError("open", dbPath, err)
	}

	return s, nil
}

func open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Create the file up front so it never exists with wider permissions
	f, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, 0600) //nolint:gosec // path comes from user config
	if err != nil {
		return nil, fmt.Errorf("creating database file: %w", err)
	}
	_ = f.Close() //nolint:errcheck // only needed the file to exist

	// Pragmas in the DSN apply to every pooled connection
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", dbPath, busyTimeoutMS))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close() //nolint:errcheck,gosec // best-effort cleanup on error path
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored collection in display order.
func (s *Store) Load(ctx context.Context) (vault.Collection, error) {
	coll, err := s.load(ctx)
	if err != nil {
		return vault.Collection{}, NewDBError("load", s.path, err)
	}

	return coll, nil
}

func (s *Store) load(ctx context.Context) (vault.Collection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.label, a.name, a.secret
		FROM services s
		LEFT JOIN accounts a ON a.service_id = s.id
		ORDER BY s.position, a.position
	`)
	if err != nil {
		return vault.Collection{}, fmt.Errorf("querying services: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck,gosec // defer close is best-effort

	var (
		coll   vault.Collection
		lastID int64 = -1
	)

	for rows.Next() {
		var (
			id           int64
			label        string
			name, secret sql.NullString
		)

		if err := rows.Scan(&id, &label, &name, &secret); err != nil {
			return vault.Collection{}, fmt.Errorf("scanning service row: %w", err)
		}

		if id != lastID {
			coll.AddGroup(label, nil)
			lastID = id
		}

		if name.Valid {
			gi := coll.Len() - 1
			if err := coll.AddChild(gi, vault.Credential{Name: name.String, Secret: secret.String}); err != nil {
				return vault.Collection{}, err
			}
		}
	}

	if err := rows.Err(); err != nil {
		return vault.Collection{}, fmt.Errorf("reading service rows: %w", err)
	}

	return coll, nil
}

// Save replaces the stored collection with coll in a single transaction.
func (s *Store) Save(ctx context.Context, coll vault.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewDBError("save", s.path, fmt.Errorf("beginning save: %w", err))
	}

	if err := saveTx(ctx, tx, coll); err != nil {
		_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
		return NewDBError("save", s.path, err)
	}

	if err := tx.Commit(); err != nil {
		return NewDBError("save", s.path, fmt.Errorf("committing save: %w", err))
	}

	return nil
}

func saveTx(ctx context.Context, tx *sql.Tx, coll vault.Collection) error {
	// foreign_keys is per connection, so don't rely on the cascade here
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("clearing accounts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM services`); err != nil {
		return fmt.Errorf("clearing services: %w", err)
	}

	for pos, g := range coll.Groups {
		res, err := tx.ExecContext(ctx, `INSERT INTO services (position, label) VALUES (?, ?)`, pos, g.Label())
		if err != nil {
			return fmt.Errorf("saving service %q: %w", g.Label(), err)
		}

		serviceID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading id of service %q: %w", g.Label(), err)
		}

		for apos, c := range g.Children {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO accounts (service_id, position, name, secret) VALUES (?, ?, ?, ?)
			`, serviceID, apos, c.Name, c.Secret); err != nil {
				return fmt.Errorf("saving account %q of %q: %w", c.Name, g.Label(), err)
			}
		}
	}

	return nil
}

// migrate runs schema migrations.
func (s *Store) migrate() error {
	currentVersion := s.getSchemaVersion()

	migrations := []func(*sql.Tx) error{
		migrateV1,
	}

	if currentVersion > len(migrations) {
		return fmt.Errorf("version %d: %w", currentVersion, ErrNewerSchema)
	}

	ctx := context.Background()
	for i := currentVersion; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", i+1, err)
		}

		if err := migrations[i](tx); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort on migration failure
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("updating schema version: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			_ = tx.Rollback() //nolint:errcheck,gosec // rollback best-effort
			return fmt.Errorf("inserting schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version, or 0 if the schema_version table doesn't exist.
func (s *Store) getSchemaVersion() int {
	ctx := context.Background()

	var tableName string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&tableName)
	if err != nil {
		return 0
	}

	var version int
	if err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version); err != nil {
		return 0
	}

	return version
}

// migrateV1 creates the initial schema.
func migrateV1(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			label    TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			service_id INTEGER NOT NULL REFERENCES services(id) ON DELETE CASCADE,
			position   INTEGER NOT NULL,
			name       TEXT NOT NULL,
			secret     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_service
			ON accounts(service_id, position)`,
	}

	ctx := context.Background()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:30], err)
		}
	}

	return nil
}
