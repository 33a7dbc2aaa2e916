package core

// Single-shot auction evaluation over one basket, without price discovery.

// EvaluateXOR returns the single winning bid of an XOR auction: the
// highest-priced valid bid, if any.
func EvaluateXOR(ledger *Ledger, bids []Bid, basket *Basket) (Bid, bool) {
	return SolveXOR(ledger, bids, basket)
}

// EvaluateXORPartial additionally allocates the winner's requested fraction
// of the basket.
func EvaluateXORPartial(ledger *Ledger, bids []Bid, basket *Basket) (Bid, map[uint64][]AssetInfo, bool) {
	winner, ok := SolveXOR(ledger, bids, basket)
	if !ok {
		return Bid{}, nil, false
	}
	return winner, AllocateBasket([]Bid{winner}, basket), true
}

// EvaluateOR returns every valid bid of an OR auction together with the
// proportional allocation.
func EvaluateOR(ledger *Ledger, bids []Bid, basket *Basket) ([]Bid, map[uint64][]AssetInfo) {
	return SolveOR(ledger, bids, basket)
}
