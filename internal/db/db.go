package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// Open opens (creating if needed) the SQLite database at path and brings its
// schema up to date.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := EnsureEntryColumns(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

// ------------------------------
// Columns (idempotent upgrader)
// ------------------------------

// EnsureEntryColumns adds the note and icon columns to databases created
// before entries carried them.
func EnsureEntryColumns(db *sql.DB) error {
	logCols, err := columns(db, "log_entries")
	if err != nil {
		return err
	}
	queueCols, err := columns(db, "queue_entries")
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if !logCols["note"] {
		if _, err := tx.Exec(`ALTER TABLE log_entries ADD COLUMN note TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add log_entries.note: %w", err)
		}
	}
	if !queueCols["note"] {
		if _, err := tx.Exec(`ALTER TABLE queue_entries ADD COLUMN note TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add queue_entries.note: %w", err)
		}
	}
	if !queueCols["icon"] {
		if _, err := tx.Exec(`ALTER TABLE queue_entries ADD COLUMN icon TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("add queue_entries.icon: %w", err)
		}
	}
	return tx.Commit()
}

func columns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(context.Background(), `PRAGMA table_info(`+table+`)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[strings.ToLower(name)] = true
	}
	return cols, rows.Err()
}
