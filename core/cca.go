package core

import (
	"github.com/google/uuid"
)

// ClockConfig parameterizes a combinatorial clock auction run.
type ClockConfig struct {
	// InitialPrices seeds the side price table; assets missing here start at
	// their basket price.
	InitialPrices map[string]float64
	// PriceIncrement is the base rate of the multiplicative price step.
	PriceIncrement float64
	// MaxRounds bounds the round loop.
	MaxRounds int
}

// RoundReport captures one clock round for callers that audit convergence.
type RoundReport struct {
	Round           int                `json:"round"`
	Prices          PriceTable         `json:"prices"`
	ExcessDemand    map[string]float64 `json:"excess_demand"`
	EligibleBidders int                `json:"eligible_bidders"`
	ValidBids       int                `json:"valid_bids"`
}

// ClockResult is the outcome of a clock auction: the winning bids, their
// allocation intents, post-settlement bidder records, and the per-round
// trail.
type ClockResult struct {
	AuctionID   uuid.UUID             `json:"auction_id"`
	WinningBids []Bid                 `json:"winning_bids"`
	Allocation  map[uint64][]AssetInfo `json:"allocation"`
	Bidders     map[uint64]User       `json:"bidders"`
	Rounds      []RoundReport         `json:"rounds"`
	Converged   bool                  `json:"converged"`
}

// evaluateRound re-validates bids for the eligible set and computes
// per-asset excess demand at current prices. A bid's demand for an asset is
// min(requested fraction, price-affordable fraction), where the affordable
// fraction is bid price over the asset's clock price.
func evaluateRound(ledger *Ledger, bids []Bid, basket *Basket, prices PriceTable, eligible map[uint64]bool) ([]Bid, map[string]float64) {
	valid := make([]Bid, 0, len(bids))
	totalDemand := make(map[string]float64, len(basket.Assets))

	for _, bid := range bids {
		if !eligible[bid.BidderID] {
			continue
		}
		if bid.BasketID != basket.ID || !IsValidBid(ledger, bid) {
			continue
		}
		valid = append(valid, bid)

		for _, ai := range basket.Assets {
			price := prices.PriceOf(ai.Asset.Base, ai.Price)
			affordable := bid.Price / price
			demand := bid.Fraction()
			if affordable < demand {
				demand = affordable
			}
			totalDemand[ai.Asset.Base] += demand
		}
	}

	excess := make(map[string]float64)
	for _, ai := range basket.Assets {
		if over := totalDemand[ai.Asset.Base] - ai.Quantity; over > 0 {
			excess[ai.Asset.Base] = over
		}
	}

	return valid, excess
}

// RunClockAuction drives the iterative ascending-price protocol: evaluate
// demand, raise prices on over-demanded assets, shrink bidder eligibility
// (the activity rule), and repeat until no asset is over-demanded or the
// round budget runs out. The terminal round solves the greedy
// capacity-respecting WDP over the surviving bids, allocates at discovered
// prices, and settles through the clearing engine.
//
// Per-asset clock prices never decrease across rounds, and the eligible set
// never grows.
func RunClockAuction(ledger *Ledger, bids []Bid, basket *Basket, cfg ClockConfig) (*ClockResult, error) {
	prices := InitialPrices(basket)
	for base, price := range cfg.InitialPrices {
		prices[base] = price
	}

	eligible := make(map[uint64]bool)
	for _, bid := range bids {
		eligible[bid.BidderID] = true
	}

	result := &ClockResult{AuctionID: uuid.New()}
	engine := NewClearingEngine(ledger)

	var fallbackBids []Bid

	settle := func(valid []Bid, table PriceTable, converged bool) (*ClockResult, error) {
		winners, _ := greedySelect(valid, basket)
		allocation := AllocateAtPrices(winners, basket, table)
		settled, err := engine.Clear(winners, allocation)
		if err != nil {
			return nil, err
		}
		result.WinningBids = winners
		result.Allocation = allocation
		result.Bidders = settled
		result.Converged = converged
		return result, nil
	}

	for round := 0; round < cfg.MaxRounds; round++ {
		valid, excess := evaluateRound(ledger, bids, basket, prices, eligible)

		result.Rounds = append(result.Rounds, RoundReport{
			Round:           round,
			Prices:          prices.Clone(),
			ExcessDemand:    excess,
			EligibleBidders: len(eligible),
			ValidBids:       len(valid),
		})

		// Market clears: no asset is over-demanded at current prices.
		if len(excess) == 0 {
			return settle(valid, prices, true)
		}

		prices = AdjustPrices(prices, excess, cfg.PriceIncrement)

		// Activity rule: bid this round or lose eligibility.
		inRound := make(map[uint64]bool, len(valid))
		for _, bid := range valid {
			inRound[bid.BidderID] = true
		}
		for id := range eligible {
			if !inRound[id] {
				delete(eligible, id)
			}
		}

		fallbackBids = valid

		// Round budget exhausted with excess demand left: settle the final
		// round's bids at the final prices.
		if round == cfg.MaxRounds-1 {
			return settle(valid, prices, false)
		}
	}

	// Defensive exit (MaxRounds <= 0): settle whatever was last recorded.
	return settle(fallbackBids, prices, false)
}
