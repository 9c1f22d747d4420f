// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/voting-session/cliparse"
	"github.com/danielhkuo/voting-session/db"
	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/registry"
	"github.com/danielhkuo/voting-session/testutil"
)

// testEnv wires every handler to one registry and an in-memory journal
type testEnv struct {
	t         *testing.T
	conn      *sql.DB
	cfg       cliparse.Config
	reg       *registry.Registry
	journal   *db.Journal
	sessions  *SessionHandler
	voters    *VoterHandler
	proposals *ProposalHandler
	voting    *VotingHandler
	results   *ResultsHandler
}

var (
	admin    = testutil.Address(0xAD)
	voter1   = testutil.Address(1)
	voter2   = testutil.Address(2)
	outsider = testutil.Address(99)
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	reg := registry.New(nil)
	journal := db.NewJournal(conn, cfg.DatabaseType)

	return &testEnv{
		t:         t,
		conn:      conn,
		cfg:       cfg,
		reg:       reg,
		journal:   journal,
		sessions:  NewSessionHandler(reg, journal, cfg),
		voters:    NewVoterHandler(reg, journal, cfg),
		proposals: NewProposalHandler(reg, journal, cfg),
		voting:    NewVotingHandler(reg, journal, cfg),
		results:   NewResultsHandler(reg, journal, cfg),
	}
}

// call invokes h directly with the {id} path value set to sessionID
func (e *testEnv) call(h http.HandlerFunc, method, path, sessionID string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()

	req := testutil.MakeRequest(method, path, body, headers)
	if sessionID != "" {
		req.SetPathValue("id", sessionID)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// as returns the identity headers for addr in sessionID
func (e *testEnv) as(sessionID string, addr common.Address) map[string]string {
	return testutil.CallerHeaders(e.cfg, sessionID, addr)
}

// newSession creates a session administered by admin through the handler
func (e *testEnv) newSession() string {
	e.t.Helper()

	w := e.call(e.sessions.CreateSession, "POST", "/sessions", "",
		models.CreateSessionRequest{AdminAddress: admin.Hex()}, nil)
	if w.Code != http.StatusCreated {
		e.t.Fatalf("CreateSession failed: %d - %s", w.Code, w.Body.String())
	}

	var resp models.CreateSessionResponse
	testutil.AssertJSON(e.t, w, &resp)
	return resp.SessionID
}

// mustOK fails the test unless w carries one of the success codes
func (e *testEnv) mustOK(step string, w *httptest.ResponseRecorder) {
	e.t.Helper()
	if w.Code != http.StatusOK && w.Code != http.StatusCreated {
		e.t.Fatalf("%s failed: %d - %s", step, w.Code, w.Body.String())
	}
}

// sessionInVoting returns a session with voter1 and voter2 registered,
// "proposition1" added by voter1 and the voting session open.
func (e *testEnv) sessionInVoting() string {
	e.t.Helper()

	id := e.newSession()
	for _, v := range []common.Address{voter1, voter2} {
		e.mustOK("AddVoter", e.call(e.voters.AddVoter, "POST", "/sessions/"+id+"/voters", id,
			models.AddVoterRequest{Address: v.Hex()}, e.as(id, admin)))
	}
	e.mustOK("StartRegistering", e.call(e.proposals.StartRegistering, "POST", "/sessions/"+id+"/proposals/start", id, nil, e.as(id, admin)))
	e.mustOK("AddProposal", e.call(e.proposals.AddProposal, "POST", "/sessions/"+id+"/proposals", id,
		models.AddProposalRequest{Description: "proposition1"}, e.as(id, voter1)))
	e.mustOK("EndRegistering", e.call(e.proposals.EndRegistering, "POST", "/sessions/"+id+"/proposals/end", id, nil, e.as(id, admin)))
	e.mustOK("StartVoting", e.call(e.voting.StartVoting, "POST", "/sessions/"+id+"/voting/start", id, nil, e.as(id, admin)))
	return id
}
