// Package db owns the SQLite file that holds saved drafts.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/scribe/internal/config"
	_ "modernc.org/sqlite"
)

// FileName is the database file created under the base directory.
const FileName = "scribe.db"

// migrations[i] moves the schema from version i to i+1.
var migrations = []string{
	// 1: drafts keyed by ULID, addressable by (workspace, name) while active.
	`
	CREATE TABLE IF NOT EXISTS drafts (
	  id              TEXT PRIMARY KEY,
	  workspace_raw   TEXT NOT NULL,
	  workspace_norm  TEXT NOT NULL,
	  name_raw        TEXT,
	  name_norm       TEXT,
	  title           TEXT,
	  source          TEXT NOT NULL,
	  payload_json    TEXT NOT NULL,
	  block_count     INTEGER NOT NULL,
	  created_at      INTEGER NOT NULL,
	  updated_at      INTEGER NOT NULL,
	  deleted_at      INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_drafts_workspace_updated
	ON drafts(workspace_norm, updated_at DESC)
	WHERE deleted_at IS NULL;

	CREATE UNIQUE INDEX IF NOT EXISTS idx_drafts_workspace_name_norm
	ON drafts(workspace_norm, name_norm)
	WHERE name_norm IS NOT NULL AND deleted_at IS NULL;
	`,
}

// CurrentSchemaVersion is the user_version Init leaves the file at.
var CurrentSchemaVersion = len(migrations)

// Init opens (creating if needed) baseDir/scribe.db and brings its schema
// up to date. Tests pass t.TempDir(); the binary passes ~/.scribe.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700) // ignored where the filesystem has no modes

	// DSN pragmas reach every connection the pool opens.
	dbPath := filepath.Join(baseDir, FileName)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := requireWAL(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)
	return db, nil
}

// ConfigurePool applies the db_max_open_conns and db_max_idle_conns
// settings. Zero leaves the database/sql default in place.
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate runs every migration past the file's user_version, bumping the
// version after each one so a failure resumes where it stopped.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}
	for v := version; v < len(migrations); v++ {
		if _, err := db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("migration %d failed: %w", v+1, err)
		}
		if err := SetUserVersion(db, v+1); err != nil {
			return err
		}
	}
	return nil
}

// requireWAL fails unless the DSN pragma actually switched on WAL; drafts
// are read by the MCP server while the CLI writes.
func requireWAL(db *sql.DB) error {
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if mode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", mode)
	}
	return nil
}

// GetUserVersion reads the schema version stored in the file header.
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion records the schema version in the file header.
func SetUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
