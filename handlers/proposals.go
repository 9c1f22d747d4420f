// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/middleware"
	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/registry"
	"github.com/danielhkuo/voting-session/voting"
)

type ProposalHandler struct {
	sessionOps
}

func NewProposalHandler(reg *registry.Registry, journal *db.Journal, cfg cliparse.Config) *ProposalHandler {
	return &ProposalHandler{sessionOps{reg: reg, journal: journal, cfg: cfg}}
}

// StartRegistering handles POST /sessions/{id}/proposals/start
func (h *ProposalHandler) StartRegistering(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*voting.Session).StartProposalsRegistering)
}

// EndRegistering handles POST /sessions/{id}/proposals/end
func (h *ProposalHandler) EndRegistering(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*voting.Session).EndProposalsRegistering)
}

// AddProposal handles POST /sessions/{id}/proposals
// Registered voters only, while proposal registration is open.
func (h *ProposalHandler) AddProposal(w http.ResponseWriter, r *http.Request) {
	sessionID, caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.AddProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var events []voting.Event
	err := h.reg.Do(sessionID, func(s *voting.Session) error {
		var err error
		events, err = s.AddProposal(caller, req.Description)
		if err != nil {
			return err
		}
		h.record(r, sessionID, events)
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AddProposalResponse{
		ProposalID: events[0].ProposalID,
		Events:     toEvents(events),
	})
}

// ListProposals handles GET /sessions/{id}/proposals
func (h *ProposalHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	proposals := []models.Proposal{}
	err := h.reg.Do(r.PathValue("id"), func(s *voting.Session) error {
		for _, p := range s.Proposals() {
			proposals = append(proposals, toProposal(p))
		}
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposals)
}

// GetProposal handles GET /sessions/{id}/proposals/{pid}
func (h *ProposalHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	pid, err := strconv.Atoi(r.PathValue("pid"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be an integer")
		return
	}

	var proposal models.Proposal
	err = h.reg.Do(r.PathValue("id"), func(s *voting.Session) error {
		p, err := s.GetOneProposal(pid)
		if err != nil {
			return err
		}
		proposal = toProposal(p)
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposal)
}
