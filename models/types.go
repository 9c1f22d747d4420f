// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreateSessionRequest struct {
	AdminAddress string `json:"admin_address"`
}

type AddVoterRequest struct {
	Address string `json:"address"`
}

type AddProposalRequest struct {
	Description string `json:"description"`
}

// ProposalID is a pointer so a missing field is not read as GENESIS
type SetVoteRequest struct {
	ProposalID *int `json:"proposal_id"`
}

// Response types

type CreateSessionResponse struct {
	SessionID    string `json:"session_id"`
	AdminAddress string `json:"admin_address"`
	AdminKey     string `json:"admin_key"`
	Status       string `json:"status"`
}

type AddVoterResponse struct {
	Address  string  `json:"address"`
	VoterKey string  `json:"voter_key"`
	Events   []Event `json:"events"`
}

type AddProposalResponse struct {
	ProposalID int     `json:"proposal_id"`
	Events     []Event `json:"events"`
}

// TransitionResponse is returned by phase changes and votes
type TransitionResponse struct {
	Status string  `json:"status"`
	Events []Event `json:"events"`
}

type TallyResponse struct {
	Result Result  `json:"result"`
	Events []Event `json:"events"`
}

// Domain types

type Session struct {
	ID                string `json:"id"`
	AdminAddress      string `json:"admin_address"`
	Status            string `json:"status"`
	VoterCount        int    `json:"voter_count"`
	ProposalCount     int    `json:"proposal_count"`
	WinningProposalID *int   `json:"winning_proposal_id,omitempty"`
}

type Voter struct {
	Address         string `json:"address"`
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID int    `json:"voted_proposal_id"`
}

type Proposal struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

// Event mirrors voting.Event; only the fields of its kind are set
type Event struct {
	Kind           string `json:"kind"`
	Topic          string `json:"topic"`
	Voter          string `json:"voter,omitempty"`
	ProposalID     *int   `json:"proposal_id,omitempty"`
	PreviousStatus string `json:"previous_status,omitempty"`
	NewStatus      string `json:"new_status,omitempty"`
}

// Tally Result Types

type Standing struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
	Rank        int    `json:"rank"` // 1-indexed ranking
}

type Result struct {
	SessionID         string     `json:"session_id"`
	WinningProposalID int        `json:"winning_proposal_id"`
	Winners           []int      `json:"winners"`
	Draw              bool       `json:"draw"`
	TotalVotes        int        `json:"total_votes"`
	Rankings          []Standing `json:"rankings"`
	InputsHash        string     `json:"inputs_hash"` // SHA-256 of the ordered ballots
	TalliedAt         time.Time  `json:"tallied_at"`
}

// Journal

type JournalEntry struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"seq"`
	Kind           string    `json:"kind"`
	Topic          string    `json:"topic"`
	VoterAddress   string    `json:"voter_address,omitempty"`
	ProposalID     *int      `json:"proposal_id,omitempty"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status,omitempty"`
	CallerHash     string    `json:"caller_hash,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
