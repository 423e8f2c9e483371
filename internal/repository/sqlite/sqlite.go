// Package sqlite implements the repository interfaces on an embedded SQLite
// file, storing each entity as a JSON document.
//
// It exists for local development and tests: point MONGODB_URI at
// "sqlite://data/scrapbook.db" (or "sqlite::memory:") and the site runs
// without a MongoDB server. Documents are the same JSON projection the API
// serves, so filters and sort keys are read with SQLite's JSON functions.
//
// modernc.org/sqlite is a pure Go translation of SQLite, so no C toolchain is
// needed to build or test this package.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/sakif/scrapbook/internal/repository"
)

// Collection tables. The names follow the MongoDB collections.
const (
	tableTimeline = "timelineevents"
	tableLetters  = "loveletters"
	tableMemories = "memories"
	tableVideos   = "videomemories"
	tableSettings = "sitesettings"
)

var tables = []string{tableTimeline, tableLetters, tableMemories, tableVideos, tableSettings}

// DB is a SQLite-backed repository.Store.
type DB struct {
	conn *sql.DB
}

var _ repository.Store = (*DB)(nil)

// IsURI reports whether uri selects this backend.
func IsURI(uri string) bool {
	return strings.HasPrefix(uri, "sqlite:") || strings.HasPrefix(uri, "file:")
}

// DSNFromURI turns a connection URI into a driver DSN:
//
//	sqlite://data/site.db  → data/site.db
//	sqlite::memory:        → :memory:
//	file:site.db?mode=rwc  → unchanged
func DSNFromURI(uri string) string {
	switch {
	case strings.HasPrefix(uri, "sqlite://"):
		return strings.TrimPrefix(uri, "sqlite://")
	case strings.HasPrefix(uri, "sqlite:"):
		return strings.TrimPrefix(uri, "sqlite:")
	default:
		return uri
	}
}

// New opens (or creates) the database at dsn and ensures the tables exist.
func New(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Each connection to ":memory:" is a separate database; pin the pool to
	// one so every query sees the same tables.
	if strings.Contains(dsn, ":memory:") {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

func (db *DB) Letters() repository.LetterRepository { return letterRepo{db} }
func (db *DB) Memories() repository.MemoryRepository { return memoryRepo{db} }
func (db *DB) Videos() repository.VideoRepository { return videoRepo{db} }
func (db *DB) Timeline() repository.TimelineRepository { return timelineRepo{db} }
func (db *DB) Settings() repository.SettingsRepository { return settingsRepo{db} }

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

func (db *DB) Close(_ context.Context) error {
	return db.conn.Close()
}

// migrate creates one document table per collection. created_at is kept
// outside the JSON so the newest-first listings can use an index.
func (db *DB) migrate() error {
	for _, table := range tables {
		_, err := db.conn.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id         TEXT PRIMARY KEY,
				doc        TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_%[1]s_created_at ON %[1]s(created_at);
		`, table))
		if err != nil {
			return fmt.Errorf("creating %s table: %w", table, err)
		}
	}

	_, err := db.conn.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timelineevents_order
		ON timelineevents(json_extract(doc, '$.order'));
	`)
	if err != nil {
		return fmt.Errorf("creating timeline order index: %w", err)
	}

	return nil
}
