// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "fmt"

// WorkflowStatus is the phase a session is in. Phases only ever advance by
// one step.
type WorkflowStatus uint8

const (
	RegisteringVoters WorkflowStatus = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var statusNames = [...]string{
	RegisteringVoters:            "RegisteringVoters",
	ProposalsRegistrationStarted: "ProposalsRegistrationStarted",
	ProposalsRegistrationEnded:   "ProposalsRegistrationEnded",
	VotingSessionStarted:         "VotingSessionStarted",
	VotingSessionEnded:           "VotingSessionEnded",
	VotesTallied:                 "VotesTallied",
}

func (s WorkflowStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("WorkflowStatus(%d)", uint8(s))
}

// Valid reports whether s is one of the six known phases.
func (s WorkflowStatus) Valid() bool {
	return int(s) < len(statusNames)
}

// Next returns the phase that follows s. VotesTallied has no successor.
func (s WorkflowStatus) Next() (WorkflowStatus, bool) {
	if s >= VotesTallied {
		return s, false
	}
	return s + 1, true
}

func (s WorkflowStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid workflow status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *WorkflowStatus) UnmarshalText(text []byte) error {
	status, err := ParseWorkflowStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// ParseWorkflowStatus maps a phase name back to its value.
func ParseWorkflowStatus(name string) (WorkflowStatus, error) {
	for i, n := range statusNames {
		if n == name {
			return WorkflowStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown workflow status %q", name)
}
