package core

import (
	"math"
)

// Winner-determination solvers. Each variant operates on the validated bid
// set for one basket and trades optimality against cost differently; none is
// a general combinatorial optimizer.

// DefaultSearchBudget bounds the exhaustive search when the caller passes no
// explicit budget. The search is exponential in bid count, so production
// callers with more than ~20 bids should pass their own limit.
const DefaultSearchBudget = 1 << 20

// SolveXOR returns the highest-priced valid bid. Ties are broken by input
// order, which is unspecified to callers.
func SolveXOR(ledger *Ledger, bids []Bid, basket *Basket) (Bid, bool) {
	valid := FilterValidBids(ledger, bids, basket)
	if len(valid) == 0 {
		return Bid{}, false
	}
	best := valid[0]
	for _, bid := range valid[1:] {
		if bid.Price > best.Price {
			best = bid
		}
	}
	return best, true
}

// SolveOR accepts every valid bid and allocates proportionally with no
// supply check.
func SolveOR(ledger *Ledger, bids []Bid, basket *Basket) ([]Bid, map[uint64][]AssetInfo) {
	valid := FilterValidBids(ledger, bids, basket)
	return valid, AllocateBasket(valid, basket)
}

// NaiveWelfare treats every valid bid as accepted and sums bid prices as
// total welfare. It ignores basket capacity; the VCG mechanism uses it as
// its welfare oracle, which is a documented simplification.
func NaiveWelfare(ledger *Ledger, bids []Bid, basket *Basket) ([]Bid, float64) {
	valid := FilterValidBids(ledger, bids, basket)
	total := 0.0
	for _, bid := range valid {
		total += bid.Price
	}
	return valid, total
}

// SolveGreedy walks valid bids in input order, accepting at most one bid per
// bidder when the bid's requested fraction of every asset fits within the
// remaining supply, and deducting supply on acceptance. Greedy, not globally
// optimal.
func SolveGreedy(ledger *Ledger, bids []Bid, basket *Basket) ([]Bid, float64) {
	valid := FilterValidBids(ledger, bids, basket)
	return greedySelect(valid, basket)
}

// greedySelect is the capacity-respecting core over already-validated bids;
// the clock auction calls it directly on each round's surviving set.
func greedySelect(valid []Bid, basket *Basket) ([]Bid, float64) {
	remaining := make(map[string]float64, len(basket.Assets))
	for _, ai := range basket.Assets {
		remaining[ai.Asset.Base] = ai.Quantity
	}

	selected := make([]Bid, 0, len(valid))
	selectedBidders := make(map[uint64]bool, len(valid))
	total := 0.0

	for _, bid := range valid {
		if selectedBidders[bid.BidderID] {
			continue
		}

		demand := bid.Fraction()
		fits := true
		for _, ai := range basket.Assets {
			if demand > remaining[ai.Asset.Base] {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}

		selected = append(selected, bid)
		selectedBidders[bid.BidderID] = true
		total += bid.Price
		for _, ai := range basket.Assets {
			remaining[ai.Asset.Base] -= demand
		}
	}

	return selected, total
}

type searchNode struct {
	level    int
	included []Bid
	value    float64
}

// SolveExhaustive runs an explicit include/exclude search over all valid
// bids, keeping the best feasible leaf. Feasibility is checked with
// CanFulfill only at leaves, so dominated partial states are explored; the
// node budget (<= 0 means DefaultSearchBudget) caps the walk. An empty
// result is a legitimate zero-welfare outcome, not an error.
func SolveExhaustive(ledger *Ledger, bids []Bid, basket *Basket, nodeBudget int) ([]Bid, float64) {
	valid := FilterValidBids(ledger, bids, basket)
	if nodeBudget <= 0 {
		nodeBudget = DefaultSearchBudget
	}

	best := []Bid{}
	bestValue := 0.0
	nodes := 0

	stack := []searchNode{{level: 0}}
	for len(stack) > 0 && nodes < nodeBudget {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		if node.level == len(valid) {
			if node.value > bestValue && CanFulfill(node.included, basket) {
				best = node.included
				bestValue = node.value
			}
			continue
		}

		// Exclude branch reuses the node's set; the include branch clones it
		// so siblings never share backing arrays.
		stack = append(stack, searchNode{
			level:    node.level + 1,
			included: node.included,
			value:    node.value,
		})

		included := make([]Bid, len(node.included), len(node.included)+1)
		copy(included, node.included)
		included = append(included, valid[node.level])
		stack = append(stack, searchNode{
			level:    node.level + 1,
			included: included,
			value:    node.value + valid[node.level].Price,
		})
	}

	return best, bestValue
}

// knapsackStep discretizes capacity at 1/100 of a supply unit.
const knapsackStep = 0.01

// SolveKnapsack solves a capacity-discretized 0/1 knapsack over the scarcest
// asset: item weight is the bid's requested fraction, capacity is the
// minimum per-asset supply, and each bidder contributes only their
// highest-priced bid. Single-constraint, so it approximates the multi-asset
// problem by its binding dimension.
func SolveKnapsack(ledger *Ledger, bids []Bid, basket *Basket) ([]Bid, float64) {
	valid := FilterValidBids(ledger, bids, basket)
	if len(valid) == 0 {
		return []Bid{}, 0
	}
	if len(basket.Assets) == 0 {
		total := 0.0
		for _, bid := range valid {
			total += bid.Price
		}
		return valid, total
	}

	// Highest bid per bidder, preserving first-occurrence order.
	byBidder := make(map[uint64]int, len(valid))
	items := make([]Bid, 0, len(valid))
	for _, bid := range valid {
		if idx, seen := byBidder[bid.BidderID]; seen {
			if bid.Price > items[idx].Price {
				items[idx] = bid
			}
			continue
		}
		byBidder[bid.BidderID] = len(items)
		items = append(items, bid)
	}

	capacity := basket.Assets[0].Quantity
	for _, ai := range basket.Assets[1:] {
		if ai.Quantity < capacity {
			capacity = ai.Quantity
		}
	}
	width := int(math.Floor(capacity/knapsackStep + 1e-6))
	if width <= 0 {
		return []Bid{}, 0
	}

	weights := make([]int, len(items))
	for i, bid := range items {
		weights[i] = int(math.Ceil(bid.Fraction()/knapsackStep - 1e-6))
	}

	// dp[i][w]: best value using the first i items within weight w.
	dp := make([][]float64, len(items)+1)
	keep := make([][]bool, len(items)+1)
	for i := range dp {
		dp[i] = make([]float64, width+1)
		keep[i] = make([]bool, width+1)
	}

	for i := 1; i <= len(items); i++ {
		w := weights[i-1]
		price := items[i-1].Price
		for c := 0; c <= width; c++ {
			dp[i][c] = dp[i-1][c]
			if w <= c && dp[i-1][c-w]+price > dp[i][c] {
				dp[i][c] = dp[i-1][c-w] + price
				keep[i][c] = true
			}
		}
	}

	selected := make([]Bid, 0, len(items))
	for i, c := len(items), width; i > 0; i-- {
		if keep[i][c] {
			selected = append(selected, items[i-1])
			c -= weights[i-1]
		}
	}
	// Reconstruction walks backwards; restore input order.
	for i, j := 0, len(selected)-1; i < j; i, j = i+1, j-1 {
		selected[i], selected[j] = selected[j], selected[i]
	}

	return selected, dp[len(items)][width]
}
