package core

import (
	"github.com/google/uuid"
)

// VCGResult is the outcome of a Vickrey-Clarke-Groves auction: winners,
// allocation intents, the externality payment charged to each winner, and
// post-settlement bidder records.
type VCGResult struct {
	AuctionID   uuid.UUID              `json:"auction_id"`
	WinningBids []Bid                  `json:"winning_bids"`
	Allocation  map[uint64][]AssetInfo `json:"allocation"`
	Payments    map[uint64]float64     `json:"payments"`
	Bidders     map[uint64]User        `json:"bidders"`
}

// computePayments charges each winner the marginal externality their
// presence imposes: welfare of the others without them, minus welfare of the
// others with them, floored at zero so no winner is ever subsidized.
func computePayments(ledger *Ledger, bids []Bid, basket *Basket, winningBids []Bid, totalWelfare float64) map[uint64]float64 {
	payments := make(map[uint64]float64, len(winningBids))

	for _, winner := range winningBids {
		remaining := make([]Bid, 0, len(bids))
		for _, bid := range bids {
			if bid.BidderID != winner.BidderID {
				remaining = append(remaining, bid)
			}
		}
		_, welfareWithout := NaiveWelfare(ledger, remaining, basket)

		payment := welfareWithout - (totalWelfare - winner.Price)
		if payment < 0 {
			payment = 0
		}
		payments[winner.BidderID] = payment
	}

	return payments
}

// RunVCGAuction computes a welfare-maximizing allocation with the naive
// accept-all welfare oracle, charges per-winner externality payments,
// allocates proportionally, and settles through the clearing engine.
//
// The oracle ignores basket capacity by design: a capacity-aware VCG would
// re-solve an NP-hard winner-determination problem per winner. Callers that
// need capacity-respecting selection should run SolveGreedy or
// SolveExhaustive before settlement instead.
func RunVCGAuction(ledger *Ledger, bids []Bid, basket *Basket) (*VCGResult, error) {
	winningBids, totalWelfare := NaiveWelfare(ledger, bids, basket)
	payments := computePayments(ledger, bids, basket, winningBids, totalWelfare)
	allocation := AllocateBasket(winningBids, basket)

	settled, err := NewClearingEngine(ledger).Clear(winningBids, allocation)
	if err != nil {
		return nil, err
	}

	return &VCGResult{
		AuctionID:   uuid.New(),
		WinningBids: winningBids,
		Allocation:  allocation,
		Payments:    payments,
		Bidders:     settled,
	}, nil
}
