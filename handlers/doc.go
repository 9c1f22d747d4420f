// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voting-session API.

# Handler Types

Each handler shares the session registry, the journal and the config:

  - SessionHandler: Session creation and status
  - VoterHandler: Voter whitelist
  - ProposalHandler: Proposal registration phase
  - VotingHandler: Voting phase and ballots
  - ResultsHandler: Tally, sealed results and the event journal

	voterHandler := handlers.NewVoterHandler(reg, journal, cfg)

# Caller Identity

Mutating requests carry X-Caller-Address and X-Caller-Key. The key is
handed out once: to the admin on session creation, and to each voter on
registration. A missing or mismatched key is a 401; a valid caller without
the right role gets a 403.

# Error Mapping

	unknown session or proposal -> 404
	not admin / not a voter     -> 403
	wrong phase, double vote    -> 409
	malformed input             -> 400

Events produced by a successful call are returned in the response and
appended to the journal under the session lock.
*/
package handlers
