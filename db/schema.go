// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Portable between sqlite and postgres: no SERIAL, no JSONB, no NOW().
const schema = `
-- Session events (append-only journal)
CREATE TABLE IF NOT EXISTS session_event (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    kind TEXT NOT NULL,
    topic TEXT NOT NULL,
    voter_address TEXT,
    proposal_id INTEGER,
    previous_status TEXT,
    new_status TEXT,
    caller_hash TEXT,
    recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (session_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_session_event_session_id ON session_event(session_id);
CREATE INDEX IF NOT EXISTS idx_session_event_kind ON session_event(kind);
`
