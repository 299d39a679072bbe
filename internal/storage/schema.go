package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go.
func InitSchema(db *sql.DB) error {
	if err := createIntentsTable(db); err != nil {
		return err
	}

	return createResolutionsTable(db)
}

func createIntentsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS intents (
		phrase TEXT PRIMARY KEY,
		record TEXT NOT NULL,
		cached_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_intents_cached_at ON intents(cached_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create intents table: %w", err)
	}

	return nil
}

func createResolutionsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS resolutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		query TEXT NOT NULL,
		outcome TEXT CHECK(outcome IN ('resolved', 'candidates', 'unresolved')) NOT NULL,
		method TEXT,
		place TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_resolutions_session ON resolutions(session_id);
	CREATE INDEX IF NOT EXISTS idx_resolutions_created_at ON resolutions(created_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create resolutions table: %w", err)
	}

	return nil
}
