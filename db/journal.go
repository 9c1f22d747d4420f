// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/voting-session/voting"
)

// Entry is one recorded event. Optional columns are empty or nil when the
// event kind does not carry them.
type Entry struct {
	ID             string
	SessionID      string
	Seq            int64
	Kind           string
	Topic          string
	VoterAddress   string
	ProposalID     *int
	PreviousStatus string
	NewStatus      string
	CallerHash     string
	RecordedAt     time.Time
}

// Journal appends session events to the session_event table.
type Journal struct {
	db       *sql.DB
	postgres bool
	now      func() time.Time
}

// NewJournal wraps an open database. databaseType selects the placeholder
// style ("postgres" uses $n, anything else uses ?).
func NewJournal(db *sql.DB, databaseType string) *Journal {
	return &Journal{
		db:       db,
		postgres: databaseType == "postgres",
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Record appends events for a session in one transaction, continuing the
// session's sequence.
func (j *Journal) Record(ctx context.Context, sessionID, callerHash string, events []voting.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx,
		j.rebind(`SELECT COALESCE(MAX(seq), 0) FROM session_event WHERE session_id = ?`),
		sessionID,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to read journal sequence: %w", err)
	}

	insert := j.rebind(`
		INSERT INTO session_event
			(id, session_id, seq, kind, topic, voter_address, proposal_id, previous_status, new_status, caller_hash, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	recordedAt := j.now()
	for _, e := range events {
		seq++
		var (
			voter      sql.NullString
			proposalID sql.NullInt64
			prev, next sql.NullString
		)
		switch e.Kind {
		case voting.VoterRegistered:
			voter = sql.NullString{String: e.Voter.Hex(), Valid: true}
		case voting.ProposalRegistered:
			proposalID = sql.NullInt64{Int64: int64(e.ProposalID), Valid: true}
		case voting.Voted:
			voter = sql.NullString{String: e.Voter.Hex(), Valid: true}
			proposalID = sql.NullInt64{Int64: int64(e.ProposalID), Valid: true}
		case voting.WorkflowStatusChange:
			prev = sql.NullString{String: e.PreviousStatus.String(), Valid: true}
			next = sql.NullString{String: e.NewStatus.String(), Valid: true}
		}

		_, err := tx.ExecContext(ctx, insert,
			uuid.NewString(), sessionID, seq, e.Kind.String(), e.Kind.Topic().Hex(),
			voter, proposalID, prev, next, nullIfEmpty(callerHash), recordedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to record %s event: %w", e.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal: %w", err)
	}
	return nil
}

// List returns every recorded event of a session in sequence order.
func (j *Journal) List(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, j.rebind(`
		SELECT id, session_id, seq, kind, topic, voter_address, proposal_id,
		       previous_status, new_status, caller_hash, recorded_at
		FROM session_event
		WHERE session_id = ?
		ORDER BY seq
	`), sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e                       Entry
			voter, prev, next, hash sql.NullString
			proposalID              sql.NullInt64
		)
		err := rows.Scan(&e.ID, &e.SessionID, &e.Seq, &e.Kind, &e.Topic, &voter, &proposalID,
			&prev, &next, &hash, &e.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.VoterAddress = voter.String
		e.PreviousStatus = prev.String
		e.NewStatus = next.String
		e.CallerHash = hash.String
		if proposalID.Valid {
			id := int(proposalID.Int64)
			e.ProposalID = &id
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	return entries, nil
}

// rebind rewrites ? placeholders to $n for postgres
func (j *Journal) rebind(query string) string {
	if !j.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
