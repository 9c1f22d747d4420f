// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/voting-session/auth"
	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/middleware"
	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/registry"
	"github.com/danielhkuo/voting-session/voting"
)

type VoterHandler struct {
	sessionOps
}

func NewVoterHandler(reg *registry.Registry, journal *db.Journal, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{sessionOps{reg: reg, journal: journal, cfg: cfg}}
}

// AddVoter handles POST /sessions/{id}/voters
// Admin only. Returns the new voter's caller key.
func (h *VoterHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	sessionID, caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.AddVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address is required")
		return
	}
	addr, err := auth.ParseAddress(req.Address)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var events []voting.Event
	err = h.reg.Do(sessionID, func(s *voting.Session) error {
		var err error
		events, err = s.AddVoter(caller, addr)
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

	middleware.JSONResponse(w, http.StatusCreated, models.AddVoterResponse{
		Address:  addr.Hex(),
		VoterKey: auth.GenerateCallerKey(sessionID, addr, h.cfg.CallerKeySalt),
		Events:   toEvents(events),
	})
}

// ListVoters handles GET /sessions/{id}/voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters := []models.Voter{}
	err := h.reg.Do(r.PathValue("id"), func(s *voting.Session) error {
		for _, v := range s.Voters() {
			voters = append(voters, toVoter(v))
		}
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// GetVoter handles GET /sessions/{id}/voters/{address}
// Unknown addresses come back as an unregistered record, not 404.
func (h *VoterHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	addr, err := auth.ParseAddress(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var voter models.Voter
	err = h.reg.Do(r.PathValue("id"), func(s *voting.Session) error {
		voter = toVoter(s.GetVoter(addr))
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}
