// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db holds the schema and the append-only event journal.

Session state lives in memory (see package registry). The database only keeps
an audit trail of the events each session emitted; it is never read back to
rebuild a session.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and indexes.
The DDL runs unchanged on sqlite (modernc.org/sqlite) and postgres (lib/pq).

# Tables

  - session_event: one row per emitted event, ordered by (session_id, seq)

Optional columns are NULL when the event kind does not carry them:
voter_address for VoterRegistered and Voted, proposal_id for
ProposalRegistered and Voted, previous_status/new_status for
WorkflowStatusChange. topic is the keccak-256 hash of the event signature.

# Journal

	j := db.NewJournal(conn, cfg.DatabaseType)
	err := j.Record(ctx, sessionID, callerHash, events)
	entries, err := j.List(ctx, sessionID)

Record assigns the next per-session sequence numbers inside one transaction.
Callers must not record for the same session concurrently; the HTTP handlers
record while holding the session lock.
*/
package db
