// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/middleware"
	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/registry"
	"github.com/danielhkuo/voting-session/voting"
)

type ResultsHandler struct {
	sessionOps
}

func NewResultsHandler(reg *registry.Registry, journal *db.Journal, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{sessionOps{reg: reg, journal: journal, cfg: cfg}}
}

// Tally handles POST /sessions/{id}/tally
// Admin only, after voting has ended. Returns the sealed result.
func (h *ResultsHandler) Tally(w http.ResponseWriter, r *http.Request) {
	sessionID, caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var (
		events []voting.Event
		result voting.Result
	)
	err := h.reg.Do(sessionID, func(s *voting.Session) error {
		var err error
		events, err = s.TallyVotes(caller)
		if err != nil {
			return err
		}
		h.record(r, sessionID, events)
		result, err = s.Result()
		return err
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	slog.Info("votes tallied",
		"session_id", sessionID,
		"winning_proposal_id", result.WinningProposalID,
		"total_votes", result.TotalVotes,
		"draw", result.Draw(),
	)

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Result: toResult(sessionID, result),
		Events: toEvents(events),
	})
}

// GetResults handles GET /sessions/{id}/results
// Returns 403 until the votes have been tallied (results are sealed)
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var result voting.Result
	err := h.reg.Do(sessionID, func(s *voting.Session) error {
		var err error
		result, err = s.Result()
		return err
	})
	if errors.Is(err, voting.ErrPhase) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are sealed until votes are tallied")
		return
	}
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, toResult(sessionID, result))
}

// GetEvents handles GET /sessions/{id}/events
// Lists the journal in emission order.
func (h *ResultsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var entries []db.Entry
	err := h.reg.Do(sessionID, func(*voting.Session) error {
		var err error
		entries, err = h.journal.List(r.Context(), sessionID)
		return err
	})
	if errors.Is(err, registry.ErrSessionNotFound) {
		writeSessionError(w, err)
		return
	}
	if err != nil {
		slog.Error("failed to list journal", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.JournalEntry{
			ID:             e.ID,
			Seq:            e.Seq,
			Kind:           e.Kind,
			Topic:          e.Topic,
			VoterAddress:   e.VoterAddress,
			ProposalID:     e.ProposalID,
			PreviousStatus: e.PreviousStatus,
			NewStatus:      e.NewStatus,
			CallerHash:     e.CallerHash,
			RecordedAt:     e.RecordedAt,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, out)
}
