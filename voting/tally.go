// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Standing is one proposal's place in the final ranking.
type Standing struct {
	ProposalID  int
	Description string
	VoteCount   int
	Rank        int // 1-indexed, equal counts share a rank
}

// Result is the outcome of TallyVotes.
type Result struct {
	// WinningProposalID is the proposal with the most votes. When several
	// proposals share the top count the lowest index wins.
	WinningProposalID int
	// Winners holds every proposal with the top count, ascending.
	Winners    []int
	Rankings   []Standing
	TotalVotes int
	// InputsHash is the hex SHA-256 of the ordered ballots, so the tally can
	// be checked against the Voted events.
	InputsHash string
	TalliedAt  time.Time
}

// Draw reports whether more than one proposal shares the top count.
func (r Result) Draw() bool {
	return len(r.Winners) > 1
}

func (r Result) clone() Result {
	out := r
	out.Winners = append([]int(nil), r.Winners...)
	out.Rankings = append([]Standing(nil), r.Rankings...)
	return out
}

type ballot struct {
	voter      common.Address
	proposalID int
}

func tally(proposals []Proposal, ballots []ballot) Result {
	var r Result

	best := -1
	for _, p := range proposals {
		r.TotalVotes += p.VoteCount
		if best < 0 || p.VoteCount > proposals[best].VoteCount {
			best = p.ID
		}
	}
	if best >= 0 {
		r.WinningProposalID = best
		for _, p := range proposals {
			if p.VoteCount == proposals[best].VoteCount {
				r.Winners = append(r.Winners, p.ID)
			}
		}
	}

	r.Rankings = make([]Standing, len(proposals))
	for i, p := range proposals {
		r.Rankings[i] = Standing{ProposalID: p.ID, Description: p.Description, VoteCount: p.VoteCount}
	}
	sort.SliceStable(r.Rankings, func(i, j int) bool {
		a, b := r.Rankings[i], r.Rankings[j]
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}
		return a.ProposalID < b.ProposalID
	})
	for i := range r.Rankings {
		if i > 0 && r.Rankings[i].VoteCount == r.Rankings[i-1].VoteCount {
			r.Rankings[i].Rank = r.Rankings[i-1].Rank
		} else {
			r.Rankings[i].Rank = i + 1
		}
	}

	r.InputsHash = inputsHash(ballots)
	return r
}

func inputsHash(ballots []ballot) string {
	h := sha256.New()
	for _, b := range ballots {
		fmt.Fprintf(h, "%s:%d\n", b.voter.Hex(), b.proposalID)
	}
	return hex.EncodeToString(h.Sum(nil))
}
