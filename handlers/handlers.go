// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/voting-session/auth"
	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/middleware"
	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/registry"
	"github.com/danielhkuo/voting-session/voting"
)

// Caller identity headers
const (
	HeaderCallerAddress = "X-Caller-Address"
	HeaderCallerKey     = "X-Caller-Key"
)

// sessionOps holds what every session handler needs
type sessionOps struct {
	reg     *registry.Registry
	journal *db.Journal
	cfg     cliparse.Config
}

// caller authenticates the request against the session in the path.
// On failure it writes the response and returns ok == false.
func (o sessionOps) caller(w http.ResponseWriter, r *http.Request) (sessionID string, addr common.Address, ok bool) {
	sessionID = r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return "", common.Address{}, false
	}

	rawAddr := r.Header.Get(HeaderCallerAddress)
	key := r.Header.Get(HeaderCallerKey)
	if rawAddr == "" || key == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing caller credentials")
		return "", common.Address{}, false
	}

	addr, err := auth.ParseAddress(rawAddr)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid caller address")
		return "", common.Address{}, false
	}

	if err := auth.ValidateCallerKey(sessionID, addr, key, o.cfg.CallerKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid caller key")
		return "", common.Address{}, false
	}

	return sessionID, addr, true
}

// record journals events. Failures are logged only: the session has already
// changed by the time this runs.
func (o sessionOps) record(r *http.Request, sessionID string, events []voting.Event) {
	callerHash := auth.HashIP(middleware.GetClientIP(r), o.cfg.CallerKeySalt)
	if err := o.journal.Record(r.Context(), sessionID, callerHash, events); err != nil {
		slog.Error("failed to journal session events",
			"session_id", sessionID,
			"events", len(events),
			"error", err,
		)
	}
}

// writeSessionError maps session and registry errors to HTTP status codes
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrSessionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, voting.ErrProposalNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, voting.ErrAuthorization):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, voting.ErrPhase), errors.Is(err, voting.ErrState):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, voting.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("unexpected session error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

func toEvents(events []voting.Event) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		m := models.Event{Kind: e.Kind.String(), Topic: e.Kind.Topic().Hex()}
		switch e.Kind {
		case voting.VoterRegistered:
			m.Voter = e.Voter.Hex()
		case voting.ProposalRegistered:
			m.ProposalID = intPtr(e.ProposalID)
		case voting.Voted:
			m.Voter = e.Voter.Hex()
			m.ProposalID = intPtr(e.ProposalID)
		case voting.WorkflowStatusChange:
			m.PreviousStatus = e.PreviousStatus.String()
			m.NewStatus = e.NewStatus.String()
		}
		out = append(out, m)
	}
	return out
}

func toVoter(v voting.Voter) models.Voter {
	return models.Voter{
		Address:         v.Address.Hex(),
		IsRegistered:    v.IsRegistered,
		HasVoted:        v.HasVoted,
		VotedProposalID: v.VotedProposalID,
	}
}

func toProposal(p voting.Proposal) models.Proposal {
	return models.Proposal{ID: p.ID, Description: p.Description, VoteCount: p.VoteCount}
}

func toResult(sessionID string, r voting.Result) models.Result {
	rankings := make([]models.Standing, 0, len(r.Rankings))
	for _, s := range r.Rankings {
		rankings = append(rankings, models.Standing{
			ProposalID:  s.ProposalID,
			Description: s.Description,
			VoteCount:   s.VoteCount,
			Rank:        s.Rank,
		})
	}
	winners := r.Winners
	if winners == nil {
		winners = []int{}
	}
	return models.Result{
		SessionID:         sessionID,
		WinningProposalID: r.WinningProposalID,
		Winners:           winners,
		Draw:              r.Draw(),
		TotalVotes:        r.TotalVotes,
		Rankings:          rankings,
		InputsHash:        r.InputsHash,
		TalliedAt:         r.TalliedAt,
	}
}

// transition runs an admin phase change and journals its event
func (o sessionOps) transition(w http.ResponseWriter, r *http.Request, op func(*voting.Session, common.Address) ([]voting.Event, error)) {
	sessionID, caller, ok := o.caller(w, r)
	if !ok {
		return
	}

	var (
		events []voting.Event
		status voting.WorkflowStatus
	)
	err := o.reg.Do(sessionID, func(s *voting.Session) error {
		var err error
		events, err = op(s, caller)
		if err != nil {
			return err
		}
		status = s.Status()
		o.record(r, sessionID, events)
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{
		Status: status.String(),
		Events: toEvents(events),
	})
}

func intPtr(v int) *int { return &v }
