package core

// AllocateBasket converts winning bids into per-bidder bundles: each bid
// receives its requested fraction of every basket asset, valued at basket
// prices. When a bidder appears more than once the later bid's bundle wins;
// capacity-aware solvers never emit duplicate bidders.
func AllocateBasket(bids []Bid, basket *Basket) map[uint64][]AssetInfo {
	allocation := make(map[uint64][]AssetInfo, len(bids))
	for _, bid := range bids {
		fraction := bid.Fraction()
		bundle := make([]AssetInfo, 0, len(basket.Assets))
		for _, ai := range basket.Assets {
			quantity := ai.Quantity * fraction
			bundle = append(bundle, NewAssetInfo(ai.Asset, quantity, ai.Price))
		}
		allocation[bid.BidderID] = bundle
	}
	return allocation
}

// AllocateAtPrices is AllocateBasket valued at a side price table instead of
// the basket's stored prices. Assets missing from the table keep their
// basket price. Used by the clock auction to report bundles at discovered
// prices.
func AllocateAtPrices(bids []Bid, basket *Basket, prices PriceTable) map[uint64][]AssetInfo {
	allocation := make(map[uint64][]AssetInfo, len(bids))
	for _, bid := range bids {
		fraction := bid.Fraction()
		bundle := make([]AssetInfo, 0, len(basket.Assets))
		for _, ai := range basket.Assets {
			quantity := ai.Quantity * fraction
			price := prices.PriceOf(ai.Asset.Base, ai.Price)
			bundle = append(bundle, NewAssetInfo(ai.Asset, quantity, price))
		}
		allocation[bid.BidderID] = bundle
	}
	return allocation
}
