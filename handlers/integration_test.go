// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/danielhkuo/voting-session/models"
	"github.com/danielhkuo/voting-session/testutil"
)

// TestFullVotingWorkflow tests the complete end-to-end workflow:
// 1. Create session
// 2. Register voters
// 3. Open proposal registration
// 4. Voters submit proposals
// 5. Close proposals, open voting
// 6. Voters vote
// 7. Close voting and tally
// 8. Verify results
func TestFullVotingWorkflow(t *testing.T) {
	e := newTestEnv(t)

	// Step 1: Create a session
	w := e.call(e.sessions.CreateSession, "POST", "/sessions", "",
		models.CreateSessionRequest{AdminAddress: admin.Hex()}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create session failed: %d - %s", w.Code, w.Body.String())
	}
	var created models.CreateSessionResponse
	testutil.AssertJSON(t, w, &created)
	id := created.SessionID
	adminHeaders := map[string]string{
		testutil.HeaderCallerAddress: admin.Hex(),
		testutil.HeaderCallerKey:     created.AdminKey,
	}
	t.Logf("Step 1 - Created session: %s", id)

	// Step 2: Register 4 voters, keeping the keys the server hands out
	addrs := []common.Address{testutil.Address(11), testutil.Address(12), testutil.Address(13), testutil.Address(14)}
	voterHeaders := make([]map[string]string, len(addrs))
	for i, addr := range addrs {
		w := e.call(e.voters.AddVoter, "POST", "/sessions/"+id+"/voters", id,
			models.AddVoterRequest{Address: addr.Hex()}, adminHeaders)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Add voter %d failed: %d - %s", i, w.Code, w.Body.String())
		}
		var resp models.AddVoterResponse
		testutil.AssertJSON(t, w, &resp)
		voterHeaders[i] = map[string]string{
			testutil.HeaderCallerAddress: resp.Address,
			testutil.HeaderCallerKey:     resp.VoterKey,
		}
	}

	// Step 3: Open proposals
	e.mustOK("Step 3", e.call(e.proposals.StartRegistering, "POST", "/sessions/"+id+"/proposals/start", id, nil, adminHeaders))

	// Step 4: Proposals
	for i, desc := range []string{"Pizza", "Sushi", "Tacos"} {
		w := e.call(e.proposals.AddProposal, "POST", "/sessions/"+id+"/proposals", id,
			models.AddProposalRequest{Description: desc}, voterHeaders[i])
		e.mustOK("Step 4", w)
		var resp models.AddProposalResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ProposalID != i+1 {
			t.Errorf("Step 4 - Expected proposal id %d, got %d", i+1, resp.ProposalID)
		}
	}

	// Step 5
	e.mustOK("Step 5 - end proposals", e.call(e.proposals.EndRegistering, "POST", "/sessions/"+id+"/proposals/end", id, nil, adminHeaders))
	e.mustOK("Step 5 - start voting", e.call(e.voting.StartVoting, "POST", "/sessions/"+id+"/voting/start", id, nil, adminHeaders))

	// Step 6: Sushi 2, Pizza 1, Tacos 1
	for i, pid := range []int{2, 2, 1, 3} {
		e.mustOK("Step 6", e.call(e.voting.SetVote, "POST", "/sessions/"+id+"/votes", id, vote(pid), voterHeaders[i]))
	}

	// Step 7
	e.mustOK("Step 7 - end voting", e.call(e.voting.EndVoting, "POST", "/sessions/"+id+"/voting/end", id, nil, adminHeaders))
	e.mustOK("Step 7 - tally", e.call(e.results.Tally, "POST", "/sessions/"+id+"/tally", id, nil, adminHeaders))

	// Step 8: Results
	w = e.call(e.results.GetResults, "GET", "/sessions/"+id+"/results", id, nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.Result
	testutil.AssertJSON(t, w, &result)

	if result.WinningProposalID != 2 {
		t.Errorf("Step 8 - Expected Sushi (2) to win, got %d", result.WinningProposalID)
	}
	if result.Draw {
		t.Error("Step 8 - Expected no draw")
	}
	if result.TotalVotes != 4 {
		t.Errorf("Step 8 - Expected 4 votes, got %d", result.TotalVotes)
	}
	if len(result.Rankings) != 4 {
		t.Fatalf("Step 8 - Expected 4 rankings, got %d", len(result.Rankings))
	}
	if result.Rankings[0].Description != "Sushi" || result.Rankings[0].Rank != 1 {
		t.Errorf("Step 8 - Unexpected first place %+v", result.Rankings[0])
	}
	// Pizza and Tacos tie for second
	if result.Rankings[1].Rank != 2 || result.Rankings[2].Rank != 2 {
		t.Errorf("Step 8 - Expected shared rank 2, got %+v", result.Rankings[1:3])
	}
	if result.Rankings[3].Description != "GENESIS" || result.Rankings[3].Rank != 4 {
		t.Errorf("Step 8 - Expected GENESIS last, got %+v", result.Rankings[3])
	}

	// Nothing moves after the tally
	w = e.call(e.voting.SetVote, "POST", "/sessions/"+id+"/votes", id, vote(1), voterHeaders[3])
	testutil.AssertStatus(t, w, http.StatusConflict)

	t.Logf("Workflow complete: winner=%d inputs_hash=%s", result.WinningProposalID, result.InputsHash)
}
