// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	return NewRouter(testutil.SetupTestDB(t), testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "voting-session API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// 400, 401, 403, 404 are all valid handler responses here
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/sessions"},
		{"GET", "/sessions/test-id"},

		{"POST", "/sessions/test-id/voters"},
		{"GET", "/sessions/test-id/voters"},
		{"GET", "/sessions/test-id/voters/0x0000000000000000000000000000000000000001"},

		{"POST", "/sessions/test-id/proposals/start"},
		{"POST", "/sessions/test-id/proposals"},
		{"GET", "/sessions/test-id/proposals"},
		{"GET", "/sessions/test-id/proposals/0"},
		{"POST", "/sessions/test-id/proposals/end"},

		{"POST", "/sessions/test-id/voting/start"},
		{"POST", "/sessions/test-id/votes"},
		{"POST", "/sessions/test-id/voting/end"},

		{"POST", "/sessions/test-id/tally"},
		{"GET", "/sessions/test-id/results"},
		{"GET", "/sessions/test-id/events"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"DELETE a session", "DELETE", "/sessions/test-id", http.StatusMethodNotAllowed},
		{"PUT a vote", "PUT", "/sessions/test-id/votes", http.StatusMethodNotAllowed},
		{"GET the tally endpoint", "GET", "/sessions/test-id/tally", http.StatusOK}, // falls through to GET /
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

// TestRoutedWorkflow drives a short session through the mux so path values
// are extracted by the router rather than set by hand
func TestRoutedWorkflow(t *testing.T) {
	mux := newTestRouter(t)
	cfg := testutil.GetTestConfig()
	admin := testutil.Address(0xAD)
	voter := testutil.Address(1)

	serve := func(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
		return w
	}

	w := serve("POST", "/sessions", models.CreateSessionRequest{AdminAddress: admin.Hex()}, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.CreateSessionResponse
	testutil.AssertJSON(t, w, &created)
	id := created.SessionID
	base := "/sessions/" + id
	asAdmin := testutil.CallerHeaders(cfg, id, admin)
	asVoter := testutil.CallerHeaders(cfg, id, voter)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID on routed responses")
	}

	steps := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		headers    map[string]string
		wantStatus int
	}{
		{"add voter", "POST", base + "/voters", models.AddVoterRequest{Address: voter.Hex()}, asAdmin, http.StatusCreated},
		{"get voter", "GET", base + "/voters/" + voter.Hex(), nil, nil, http.StatusOK},
		{"start proposals", "POST", base + "/proposals/start", nil, asAdmin, http.StatusOK},
		{"add proposal", "POST", base + "/proposals", models.AddProposalRequest{Description: "proposition1"}, asVoter, http.StatusCreated},
		{"get proposal", "GET", base + "/proposals/1", nil, nil, http.StatusOK},
		{"missing proposal", "GET", base + "/proposals/7", nil, nil, http.StatusNotFound},
		{"end proposals", "POST", base + "/proposals/end", nil, asAdmin, http.StatusOK},
		{"start voting", "POST", base + "/voting/start", nil, asAdmin, http.StatusOK},
		{"vote", "POST", base + "/votes", map[string]int{"proposal_id": 1}, asVoter, http.StatusOK},
		{"end voting", "POST", base + "/voting/end", nil, asAdmin, http.StatusOK},
		{"sealed results", "GET", base + "/results", nil, nil, http.StatusForbidden},
		{"tally by voter", "POST", base + "/tally", nil, asVoter, http.StatusForbidden},
		{"tally", "POST", base + "/tally", nil, asAdmin, http.StatusOK},
		{"results", "GET", base + "/results", nil, nil, http.StatusOK},
		{"events", "GET", base + "/events", nil, nil, http.StatusOK},
	}

	for _, s := range steps {
		w := serve(s.method, s.path, s.body, s.headers)
		if w.Code != s.wantStatus {
			t.Fatalf("%s: expected %d, got %d. Body: %s", s.name, s.wantStatus, w.Code, w.Body.String())
		}
	}

	w = serve("GET", base+"/results", nil, nil)
	var result models.Result
	testutil.AssertJSON(t, w, &result)
	if result.WinningProposalID != 1 {
		t.Errorf("Expected proposal 1 to win, got %d", result.WinningProposalID)
	}
}
