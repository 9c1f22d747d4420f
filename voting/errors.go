// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by a Session matches exactly one of
// them under errors.Is.
var (
	ErrAuthorization = errors.New("caller is not authorized")
	ErrPhase         = errors.New("operation not allowed in current phase")
	ErrState         = errors.New("invalid session state")
	ErrValidation    = errors.New("invalid input")
)

var (
	ErrNotAdmin          = fmt.Errorf("%w: caller is not the administrator", ErrAuthorization)
	ErrNotVoter          = fmt.Errorf("%w: caller is not a registered voter", ErrAuthorization)
	ErrAlreadyRegistered = fmt.Errorf("%w: voter already registered", ErrState)
	ErrAlreadyVoted      = fmt.Errorf("%w: voter has already voted", ErrState)
	ErrProposalNotFound  = fmt.Errorf("%w: proposal not found", ErrState)
	ErrEmptyDescription  = fmt.Errorf("%w: proposal description is empty", ErrValidation)
	ErrInvalidAddress    = fmt.Errorf("%w: invalid address", ErrValidation)
)

// PhaseError is returned when an operation is called outside the phase it
// requires.
type PhaseError struct {
	Op       string
	Required WorkflowStatus
	Current  WorkflowStatus
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: requires %s, session is %s", e.Op, e.Required, e.Current)
}

func (e *PhaseError) Unwrap() error {
	return ErrPhase
}
