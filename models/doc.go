// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateSessionRequest: admin_address
  - AddVoterRequest: address
  - AddProposalRequest: description
  - SetVoteRequest: proposal_id

# Response Types

  - CreateSessionResponse: session_id, admin_key, status
  - AddVoterResponse: voter_key, events
  - AddProposalResponse: proposal_id, events
  - TransitionResponse: status, events
  - TallyResponse: result, events
  - ErrorResponse: error, message

# Domain Types

  - Session, Voter, Proposal: read views of a session
  - Event: an emitted state change
  - Result, Standing: sealed tally with rankings
  - JournalEntry: a persisted event

Addresses are always rendered in EIP-55 checksum form.
*/
package models
