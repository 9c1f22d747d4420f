// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// EventKind identifies one of the four notifications a session emits.
type EventKind uint8

const (
	VoterRegistered EventKind = iota + 1
	ProposalRegistered
	Voted
	WorkflowStatusChange
)

// Canonical signatures, hashed into the event topic the same way contract
// log topics are derived.
var eventSignatures = map[EventKind]string{
	VoterRegistered:      "VoterRegistered(address)",
	ProposalRegistered:   "ProposalRegistered(uint256)",
	Voted:                "Voted(address,uint256)",
	WorkflowStatusChange: "WorkflowStatusChange(uint8,uint8)",
}

var eventNames = map[EventKind]string{
	VoterRegistered:      "VoterRegistered",
	ProposalRegistered:   "ProposalRegistered",
	Voted:                "Voted",
	WorkflowStatusChange: "WorkflowStatusChange",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Signature returns the canonical event signature, e.g. "Voted(address,uint256)".
func (k EventKind) Signature() string {
	return eventSignatures[k]
}

// Topic returns the keccak-256 hash of the event signature.
func (k EventKind) Topic() common.Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(k.Signature()))
	return common.BytesToHash(h.Sum(nil))
}

// Event is a single notification. Only the fields relevant to Kind are set:
// Voter for VoterRegistered and Voted, ProposalID for ProposalRegistered and
// Voted, PreviousStatus and NewStatus for WorkflowStatusChange.
type Event struct {
	Kind           EventKind
	Voter          common.Address
	ProposalID     int
	PreviousStatus WorkflowStatus
	NewStatus      WorkflowStatus
}

func (e Event) String() string {
	switch e.Kind {
	case VoterRegistered:
		return fmt.Sprintf("VoterRegistered(%s)", e.Voter.Hex())
	case ProposalRegistered:
		return fmt.Sprintf("ProposalRegistered(%d)", e.ProposalID)
	case Voted:
		return fmt.Sprintf("Voted(%s, %d)", e.Voter.Hex(), e.ProposalID)
	case WorkflowStatusChange:
		return fmt.Sprintf("WorkflowStatusChange(%s, %s)", e.PreviousStatus, e.NewStatus)
	}
	return e.Kind.String()
}

// Observer receives events after the state change that produced them has
// been applied.
type Observer func(Event)
