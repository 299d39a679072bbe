package storage

import (
	"context"
	"fmt"
	"time"
)

// SaveIntent upserts one extracted intent record, stored as a JSON string
// keyed by normalized phrase.
func (db *DB) SaveIntent(ctx context.Context, phrase, record string) error {
	query := `
	INSERT INTO intents (phrase, record, cached_at)
	VALUES (?, ?, ?)
	ON CONFLICT(phrase) DO UPDATE SET record = excluded.record, cached_at = excluded.cached_at
	`

	if _, err := db.conn.ExecContext(ctx, query, phrase, record, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save intent: %w", err)
	}
	return nil
}

// LoadIntents returns all persisted intent records keyed by phrase.
func (db *DB) LoadIntents(ctx context.Context) (map[string]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT phrase, record FROM intents`)
	if err != nil {
		return nil, fmt.Errorf("failed to load intents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string]string)
	for rows.Next() {
		var phrase, record string
		if err := rows.Scan(&phrase, &record); err != nil {
			return nil, fmt.Errorf("failed to scan intent row: %w", err)
		}
		out[phrase] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate intent rows: %w", err)
	}
	return out, nil
}

// CountIntents returns the number of persisted intent records.
func (db *DB) CountIntents(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM intents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count intents: %w", err)
	}
	return count, nil
}
