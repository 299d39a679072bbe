package storage

import (
	"context"
	"fmt"
	"time"
)

// Resolution is one audit log entry for a resolution turn.
type Resolution struct {
	SessionID string
	Query     string
	Outcome   string // resolved, candidates, unresolved
	Method    string
	Place     string
	CreatedAt time.Time
}

// LogResolution appends one entry to the resolution audit log.
func (db *DB) LogResolution(ctx context.Context, r Resolution) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO resolutions (session_id, query, outcome, method, place, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := db.conn.ExecContext(ctx, query,
		r.SessionID, r.Query, r.Outcome, r.Method, r.Place, r.CreatedAt.Unix()); err != nil {
		return fmt.Errorf("failed to log resolution: %w", err)
	}
	return nil
}

// RecentResolutions returns the latest entries for a session, newest first.
func (db *DB) RecentResolutions(ctx context.Context, sessionID string, limit int) ([]Resolution, error) {
	query := `
	SELECT session_id, query, outcome, method, place, created_at
	FROM resolutions
	WHERE session_id = ?
	ORDER BY created_at DESC, id DESC
	LIMIT ?
	`

	rows, err := db.conn.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolutions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Resolution
	for rows.Next() {
		var r Resolution
		var createdAt int64
		if err := rows.Scan(&r.SessionID, &r.Query, &r.Outcome, &r.Method, &r.Place, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan resolution row: %w", err)
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resolution rows: %w", err)
	}
	return out, nil
}
