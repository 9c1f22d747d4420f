// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/middleware"
	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/registry"
	"github.com/danielhkuo/voting-session/voting"
)

type VotingHandler struct {
	sessionOps
}

func NewVotingHandler(reg *registry.Registry, journal *db.Journal, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{sessionOps{reg: reg, journal: journal, cfg: cfg}}
}

// StartVoting handles POST /sessions/{id}/voting/start
func (h *VotingHandler) StartVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*voting.Session).StartVotingSession)
}

// EndVoting handles POST /sessions/{id}/voting/end
func (h *VotingHandler) EndVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*voting.Session).EndVotingSession)
}

// SetVote handles POST /sessions/{id}/votes
// One vote per registered voter; votes cannot be changed.
func (h *VotingHandler) SetVote(w http.ResponseWriter, r *http.Request) {
	sessionID, caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.SetVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	var (
		events []voting.Event
		status voting.WorkflowStatus
	)
	err := h.reg.Do(sessionID, func(s *voting.Session) error {
		var err error
		events, err = s.SetVote(caller, *req.ProposalID)
		if err != nil {
			return err
		}
		status = s.Status()
		h.record(r, sessionID, events)
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
