// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the voting-session API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Sessions:

	POST /sessions      - Create session (returns admin_key)
	GET  /sessions/{id} - Session status and counters

Voters (registration is admin only):

	POST /sessions/{id}/voters           - Register voter (returns voter_key)
	GET  /sessions/{id}/voters           - List voters
	GET  /sessions/{id}/voters/{address} - Voter record

Proposals:

	POST /sessions/{id}/proposals/start - Open registration (admin)
	POST /sessions/{id}/proposals       - Add proposal (voter)
	GET  /sessions/{id}/proposals       - List proposals
	GET  /sessions/{id}/proposals/{pid} - One proposal
	POST /sessions/{id}/proposals/end   - Close registration (admin)

Voting:

	POST /sessions/{id}/voting/start - Open voting (admin)
	POST /sessions/{id}/votes        - Cast vote (voter)
	POST /sessions/{id}/voting/end   - Close voting (admin)

Results:

	POST /sessions/{id}/tally   - Tally votes (admin)
	GET  /sessions/{id}/results - Result (tallied only)
	GET  /sessions/{id}/events  - Event journal

Mutating routes identify the caller with X-Caller-Address and X-Caller-Key.

# Handler Initialization

The router owns the session registry and the journal, and hands both to
every handler:

	sessionHandler := handlers.NewSessionHandler(reg, journal, cfg)
*/
package router
