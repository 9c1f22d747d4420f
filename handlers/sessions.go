// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voting-session/auth"
	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/middleware"
	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/registry"
	"github.com/danielhkuo/voting-session/voting"
)

type SessionHandler struct {
	sessionOps
}

func NewSessionHandler(reg *registry.Registry, journal *db.Journal, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{sessionOps{reg: reg, journal: journal, cfg: cfg}}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.AdminAddress == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "admin_address is required")
		return
	}
	admin, err := auth.ParseAddress(req.AdminAddress)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID, err := h.reg.Create(admin)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	slog.Info("session opened", "session_id", sessionID, "admin", admin.Hex())

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:    sessionID,
		AdminAddress: admin.Hex(),
		AdminKey:     auth.GenerateCallerKey(sessionID, admin, h.cfg.CallerKeySalt),
		Status:       voting.RegisteringVoters.String(),
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var resp models.Session
	err := h.reg.Do(sessionID, func(s *voting.Session) error {
		resp = models.Session{
			ID:            sessionID,
			AdminAddress:  s.Admin().Hex(),
			Status:        s.Status().String(),
			VoterCount:    len(s.Voters()),
			ProposalCount: len(s.Proposals()),
		}
		if id, err := s.WinningProposalID(); err == nil {
			resp.WinningProposalID = intPtr(id)
		}
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
