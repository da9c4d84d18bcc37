package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Register driver
)

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Init opens the database and runs migrations.
func Init(path string) (*DB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// Enable WAL mode for better concurrency and set busy timeout
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	d := &DB{db}
	// Enforce single connection to avoid SQLITE_BUSY errors during concurrent writes
	db.SetMaxOpenConns(1)

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	if err := d.seedBooks(); err != nil {
		db.Close()
		return nil, fmt.Errorf("book seed failed: %w", err)
	}

	return d, nil
}

func (d *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT,
			play_count INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS song_slides (
			id TEXT PRIMARY KEY,
			song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			label TEXT,
			text TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_song_slides_song ON song_slides(song_id, position);`,
		`CREATE TABLE IF NOT EXISTS queue_items (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			position INTEGER NOT NULL,
			song_id TEXT,
			title TEXT,
			text TEXT,
			translation TEXT,
			book TEXT,
			chapter INTEGER,
			verse_ids TEXT,
			group_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS bible_books (
			translation TEXT NOT NULL,
			name TEXT NOT NULL,
			book_order INTEGER NOT NULL,
			chapters INTEGER NOT NULL,
			PRIMARY KEY (translation, name)
		);`,
		`CREATE TABLE IF NOT EXISTS bible_verses (
			id TEXT PRIMARY KEY,
			translation TEXT NOT NULL,
			book TEXT NOT NULL,
			chapter INTEGER NOT NULL,
			number INTEGER NOT NULL,
			text TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_bible_verses_chapter
			ON bible_verses(translation, book, chapter, number);`,
		`CREATE TABLE IF NOT EXISTS versete_tineri_groups (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS versete_tineri_entries (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES versete_tineri_groups(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			reference TEXT NOT NULL,
			text TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS persistent_state (
			key TEXT PRIMARY KEY,
			value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, q := range queries {
		if _, err := d.Exec(q); err != nil {
			return fmt.Errorf("exec error: %w query: %s", err, q)
		}
	}

	return nil
}
