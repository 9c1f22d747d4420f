// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/voting-session/auth"
	"github.com/danielhkuo/voting-session/voting"
)

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	mu      sync.Mutex
	session *voting.Session
}

// Registry holds live sessions in memory, keyed by a random hex id.
// Operations on one session are serialized; different sessions proceed in
// parallel.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	logger   *slog.Logger
	opts     []voting.Option
}

// New creates an empty registry. A nil logger falls back to slog.Default.
// opts are applied to every session the registry creates.
func New(logger *slog.Logger, opts ...voting.Option) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*entry),
		logger:   logger,
		opts:     opts,
	}
}

// Create starts a session administered by admin and returns its id.
func (r *Registry) Create(admin common.Address) (string, error) {
	if admin == (common.Address{}) {
		return "", voting.ErrInvalidAddress
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	opts := append([]voting.Option{voting.WithObserver(r.logEvent(id))}, r.opts...)
	e := &entry{session: voting.NewSession(admin, opts...)}

	r.mu.Lock()
	r.sessions[id] = e
	r.mu.Unlock()

	r.logger.Info("session created", "session_id", id, "admin", admin.Hex())
	return id, nil
}

// Do runs fn with exclusive access to the session. The error from fn is
// returned unchanged.
func (r *Registry) Do(id string, fn func(*voting.Session) error) error {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) logEvent(id string) voting.Observer {
	return func(e voting.Event) {
		attrs := []any{"session_id", id, "event", e.Kind.String(), "topic", e.Kind.Topic().Hex()}
		switch e.Kind {
		case voting.VoterRegistered:
			attrs = append(attrs, "voter", e.Voter.Hex())
		case voting.ProposalRegistered:
			attrs = append(attrs, "proposal_id", e.ProposalID)
		case voting.Voted:
			attrs = append(attrs, "voter", e.Voter.Hex(), "proposal_id", e.ProposalID)
		case voting.WorkflowStatusChange:
			attrs = append(attrs, "from", e.PreviousStatus.String(), "to", e.NewStatus.String())
		}
		r.logger.Info("session event", attrs...)
	}
}
