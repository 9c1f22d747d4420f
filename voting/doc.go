// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements a single voting round as a phase-gated state
machine.

# Workflow

A Session moves forward one phase at a time, driven by its administrator:

	RegisteringVoters
	  → ProposalsRegistrationStarted   (StartProposalsRegistering)
	  → ProposalsRegistrationEnded     (EndProposalsRegistering)
	  → VotingSessionStarted           (StartVotingSession)
	  → VotingSessionEnded             (EndVotingSession)
	  → VotesTallied                   (TallyVotes)

Opening proposal registration seeds a "GENESIS" proposal at index 0, so the
first proposal a voter submits gets id 1.

# Callers

Every operation takes the caller address explicitly:

	s := voting.NewSession(admin)
	s.AddVoter(admin, alice)
	s.StartProposalsRegistering(admin)
	s.AddProposal(alice, "plant more trees")

Phase transitions and AddVoter require the administrator. AddProposal and
SetVote require a registered voter.

# Errors

Rejected calls change nothing. Errors fall into four categories that can be
tested with errors.Is: ErrAuthorization, ErrPhase (returned as *PhaseError),
ErrState and ErrValidation.

# Events

Each successful operation emits exactly one Event (VoterRegistered,
ProposalRegistered, Voted or WorkflowStatusChange). Events are returned to
the caller and passed to every Observer after the state change is applied.

# Concurrency

A Session is not safe for concurrent use. The registry package serializes
access when sessions are shared between goroutines.
*/
package voting
