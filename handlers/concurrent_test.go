// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes from different voters
// are all counted exactly once
func TestConcurrentVotes(t *testing.T) {
	e := newTestEnv(t)
	id := e.newSession()

	numVoters := 20
	addrs := make([]common.Address, numVoters)
	for i := range addrs {
		addrs[i] = testutil.Address(int64(100 + i))
		e.mustOK("AddVoter", e.call(e.voters.AddVoter, "POST", "/sessions/"+id+"/voters", id,
			models.AddVoterRequest{Address: addrs[i].Hex()}, e.as(id, admin)))
	}
	e.mustOK("StartRegistering", e.call(e.proposals.StartRegistering, "POST", "/", id, nil, e.as(id, admin)))
	e.mustOK("AddProposal", e.call(e.proposals.AddProposal, "POST", "/", id,
		models.AddProposalRequest{Description: "Option A"}, e.as(id, addrs[0])))
	e.mustOK("EndRegistering", e.call(e.proposals.EndRegistering, "POST", "/", id, nil, e.as(id, admin)))
	e.mustOK("StartVoting", e.call(e.voting.StartVoting, "POST", "/", id, nil, e.as(id, admin)))

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()
			w := e.call(e.voting.SetVote, "POST", "/", id, vote(voterIdx%2), e.as(id, addrs[voterIdx]))
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	w := e.call(e.proposals.ListProposals, "GET", "/", id, nil, nil)
	var proposals []models.Proposal
	testutil.AssertJSON(t, w, &proposals)
	if proposals[0].VoteCount+proposals[1].VoteCount != numVoters {
		t.Errorf("Expected %d votes in total, got %+v", numVoters, proposals)
	}

	entries, err := e.journal.List(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to list journal: %v", err)
	}
	for i, entry := range entries {
		if entry.Seq != int64(i+1) {
			t.Fatalf("Journal sequence has a gap at %d: %d", i, entry.Seq)
		}
	}
}

// TestConcurrentDoubleVote verifies that a voter racing against themselves
// only gets one vote in
func TestConcurrentDoubleVote(t *testing.T) {
	e := newTestEnv(t)
	id := e.sessionInVoting()

	attempts := 10
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := e.call(e.voting.SetVote, "POST", "/", id, vote(1), e.as(id, voter1))
			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if int(conflictCount.Load()) != attempts-1 {
		t.Errorf("Expected %d conflicts, got %d", attempts-1, conflictCount.Load())
	}
}

// TestConcurrentTally verifies that only one of several racing tallies wins
func TestConcurrentTally(t *testing.T) {
	e := newTestEnv(t)
	id := endedSession(e)

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := e.call(e.results.Tally, "POST", "/", id, nil, e.as(id, admin))
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful tally, got %d", successCount.Load())
	}
}

// TestParallelSessions verifies that sessions are isolated from each other
func TestParallelSessions(t *testing.T) {
	e := newTestEnv(t)

	numSessions := 5
	ids := make([]string, numSessions)
	for i := range ids {
		ids[i] = e.sessionInVoting()
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			e.call(e.voting.SetVote, "POST", "/", id, vote(i%2), e.as(id, voter1))
			e.call(e.voting.EndVoting, "POST", "/", id, nil, e.as(id, admin))
			e.call(e.results.Tally, "POST", "/", id, nil, e.as(id, admin))
		}(i, id)
	}
	wg.Wait()

	for i, id := range ids {
		w := e.call(e.results.GetResults, "GET", "/", id, nil, nil)
		testutil.AssertStatus(t, w, http.StatusOK)

		var r models.Result
		testutil.AssertJSON(t, w, &r)
		if r.SessionID != id {
			t.Errorf("session %d: result belongs to %s", i, r.SessionID)
		}
		if r.WinningProposalID != i%2 || r.TotalVotes != 1 {
			t.Errorf("session %d: expected single vote for %d, got %+v", i, i%2, r)
		}
	}

	// A key for one session is useless in another
	w := e.call(e.voting.SetVote, "POST", "/", ids[0], vote(0), e.as(ids[1], voter2))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
