// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// GenesisDescription is the description of the proposal seeded at index 0
// when proposal registration opens.
const GenesisDescription = "GENESIS"

type Voter struct {
	Address         common.Address
	IsRegistered    bool
	HasVoted        bool
	VotedProposalID int
}

type Proposal struct {
	ID          int
	Description string
	VoteCount   int
}

// Session is one voting round. It is not safe for concurrent use; callers
// must serialize operations on the same session.
type Session struct {
	admin     common.Address
	status    WorkflowStatus
	voters    map[common.Address]*Voter
	order     []common.Address // registration order
	proposals []Proposal
	result    *Result
	observers []Observer
	now       func() time.Time
}

type Option func(*Session)

// WithObserver registers an observer at construction time.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

// WithClock overrides the clock used to stamp the tally.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session in the RegisteringVoters phase administered by
// admin.
func NewSession(admin common.Address, opts ...Option) *Session {
	s := &Session{
		admin:  admin,
		status: RegisteringVoters,
		voters: make(map[common.Address]*Voter),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe adds an observer. Observers are called in registration order.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Session) Admin() common.Address  { return s.admin }
func (s *Session) Status() WorkflowStatus { return s.status }

// GetVoter returns the voter record for addr. Unknown addresses yield an
// unregistered record.
func (s *Session) GetVoter(addr common.Address) Voter {
	if v, ok := s.voters[addr]; ok {
		return *v
	}
	return Voter{Address: addr}
}

// Voters lists registered voters in registration order.
func (s *Session) Voters() []Voter {
	out := make([]Voter, 0, len(s.order))
	for _, addr := range s.order {
		out = append(out, *s.voters[addr])
	}
	return out
}

func (s *Session) GetOneProposal(id int) (Proposal, error) {
	if id < 0 || id >= len(s.proposals) {
		return Proposal{}, ErrProposalNotFound
	}
	return s.proposals[id], nil
}

func (s *Session) Proposals() []Proposal {
	out := make([]Proposal, len(s.proposals))
	copy(out, s.proposals)
	return out
}

// WinningProposalID is only available once votes have been tallied.
func (s *Session) WinningProposalID() (int, error) {
	if s.result == nil {
		return 0, &PhaseError{Op: "winningProposalId", Required: VotesTallied, Current: s.status}
	}
	return s.result.WinningProposalID, nil
}

// Result returns a copy of the tally result once votes have been tallied.
func (s *Session) Result() (Result, error) {
	if s.result == nil {
		return Result{}, &PhaseError{Op: "result", Required: VotesTallied, Current: s.status}
	}
	return s.result.clone(), nil
}

func (s *Session) AddVoter(caller, addr common.Address) ([]Event, error) {
	if caller != s.admin {
		return nil, ErrNotAdmin
	}
	if err := s.requirePhase("addVoter", RegisteringVoters); err != nil {
		return nil, err
	}
	if addr == (common.Address{}) {
		return nil, ErrInvalidAddress
	}
	if v, ok := s.voters[addr]; ok && v.IsRegistered {
		return nil, ErrAlreadyRegistered
	}

	s.voters[addr] = &Voter{Address: addr, IsRegistered: true}
	s.order = append(s.order, addr)

	return s.emit(Event{Kind: VoterRegistered, Voter: addr}), nil
}

func (s *Session) StartProposalsRegistering(caller common.Address) ([]Event, error) {
	return s.advance(caller, "startProposalsRegistering", RegisteringVoters, func() {
		s.proposals = append(s.proposals, Proposal{ID: 0, Description: GenesisDescription})
	})
}

func (s *Session) AddProposal(caller common.Address, description string) ([]Event, error) {
	if !s.isVoter(caller) {
		return nil, ErrNotVoter
	}
	if err := s.requirePhase("addProposal", ProposalsRegistrationStarted); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	id := len(s.proposals)
	s.proposals = append(s.proposals, Proposal{ID: id, Description: description})

	return s.emit(Event{Kind: ProposalRegistered, ProposalID: id}), nil
}

func (s *Session) EndProposalsRegistering(caller common.Address) ([]Event, error) {
	return s.advance(caller, "endProposalsRegistering", ProposalsRegistrationStarted, nil)
}

func (s *Session) StartVotingSession(caller common.Address) ([]Event, error) {
	return s.advance(caller, "startVotingSession", ProposalsRegistrationEnded, nil)
}

func (s *Session) SetVote(caller common.Address, proposalID int) ([]Event, error) {
	if !s.isVoter(caller) {
		return nil, ErrNotVoter
	}
	if err := s.requirePhase("setVote", VotingSessionStarted); err != nil {
		return nil, err
	}
	v := s.voters[caller]
	if v.HasVoted {
		return nil, ErrAlreadyVoted
	}
	if proposalID < 0 || proposalID >= len(s.proposals) {
		return nil, ErrProposalNotFound
	}

	v.HasVoted = true
	v.VotedProposalID = proposalID
	s.proposals[proposalID].VoteCount++

	return s.emit(Event{Kind: Voted, Voter: caller, ProposalID: proposalID}), nil
}

func (s *Session) EndVotingSession(caller common.Address) ([]Event, error) {
	return s.advance(caller, "endVotingSession", VotingSessionStarted, nil)
}

// TallyVotes computes the result and closes the session.
func (s *Session) TallyVotes(caller common.Address) ([]Event, error) {
	return s.advance(caller, "tallyVotes", VotingSessionEnded, func() {
		r := tally(s.proposals, s.ballots())
		r.TalliedAt = s.now()
		s.result = &r
	})
}

// advance performs an admin-only phase transition out of from. apply runs
// after all checks have passed and before the phase moves.
func (s *Session) advance(caller common.Address, op string, from WorkflowStatus, apply func()) ([]Event, error) {
	if caller != s.admin {
		return nil, ErrNotAdmin
	}
	if err := s.requirePhase(op, from); err != nil {
		return nil, err
	}
	to, ok := from.Next()
	if !ok {
		return nil, &PhaseError{Op: op, Required: from, Current: s.status}
	}

	if apply != nil {
		apply()
	}
	s.status = to

	return s.emit(Event{Kind: WorkflowStatusChange, PreviousStatus: from, NewStatus: to}), nil
}

func (s *Session) requirePhase(op string, required WorkflowStatus) error {
	if s.status != required {
		return &PhaseError{Op: op, Required: required, Current: s.status}
	}
	return nil
}

func (s *Session) isVoter(addr common.Address) bool {
	v, ok := s.voters[addr]
	return ok && v.IsRegistered
}

// ballots returns the cast votes in voter registration order.
func (s *Session) ballots() []ballot {
	out := make([]ballot, 0, len(s.order))
	for _, addr := range s.order {
		v := s.voters[addr]
		if v.HasVoted {
			out = append(out, ballot{voter: addr, proposalID: v.VotedProposalID})
		}
	}
	return out
}

func (s *Session) emit(e Event) []Event {
	for _, o := range s.observers {
		o(e)
	}
	return []Event{e}
}
