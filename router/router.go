// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/handlers"
	"github.com/danielhkuo/voting-session/middleware"
	"github.com/danielhkuo/voting-session/registry"
)

func NewRouter(conn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Sessions live in memory; the database only keeps the journal
	reg := registry.New(nil)
	journal := db.NewJournal(conn, cfg.DatabaseType)

	sessionHandler := handlers.NewSessionHandler(reg, journal, cfg)
	voterHandler := handlers.NewVoterHandler(reg, journal, cfg)
	proposalHandler := handlers.NewProposalHandler(reg, journal, cfg)
	votingHandler := handlers.NewVotingHandler(reg, journal, cfg)
	resultsHandler := handlers.NewResultsHandler(reg, journal, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))

	// Voter registration (admin)
	mux.HandleFunc("POST /sessions/{id}/voters", middleware.WithLogging(voterHandler.AddVoter))
	mux.HandleFunc("GET /sessions/{id}/voters", middleware.WithLogging(voterHandler.ListVoters))
	mux.HandleFunc("GET /sessions/{id}/voters/{address}", middleware.WithLogging(voterHandler.GetVoter))

	// Proposals
	mux.HandleFunc("POST /sessions/{id}/proposals/start", middleware.WithLogging(proposalHandler.StartRegistering))
	mux.HandleFunc("POST /sessions/{id}/proposals", middleware.WithLogging(proposalHandler.AddProposal))
	mux.HandleFunc("GET /sessions/{id}/proposals", middleware.WithLogging(proposalHandler.ListProposals))
	mux.HandleFunc("GET /sessions/{id}/proposals/{pid}", middleware.WithLogging(proposalHandler.GetProposal))
	mux.HandleFunc("POST /sessions/{id}/proposals/end", middleware.WithLogging(proposalHandler.EndRegistering))

	// Voting
	mux.HandleFunc("POST /sessions/{id}/voting/start", middleware.WithLogging(votingHandler.StartVoting))
	mux.HandleFunc("POST /sessions/{id}/votes", middleware.WithLogging(votingHandler.SetVote))
	mux.HandleFunc("POST /sessions/{id}/voting/end", middleware.WithLogging(votingHandler.EndVoting))

	// Tally and results (sealed until tallied)
	mux.HandleFunc("POST /sessions/{id}/tally", middleware.WithLogging(resultsHandler.Tally))
	mux.HandleFunc("GET /sessions/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /sessions/{id}/events", middleware.WithLogging(resultsHandler.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voting-session API v1"))
	})

	return mux
}
