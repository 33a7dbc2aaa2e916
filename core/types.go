package core

import (
	"fmt"
	"strings"
)

// User represents a bidder account. Balance is the only mutable field and is
// mutated exclusively through a Ledger during settlement; everything else in
// the engine passes User by value.
type User struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Asset is a base/quote symbol pair. Assets compare and hash by value, so
// they can key maps directly.
type Asset struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

func NewAsset(base, quote string) Asset {
	return Asset{Base: base, Quote: quote}
}

// ParseAsset parses a "BASE/QUOTE" symbol pair.
func ParseAsset(s string) (Asset, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Asset{}, fmt.Errorf("invalid asset symbol %q (want BASE/QUOTE)", s)
	}
	return Asset{Base: parts[0], Quote: parts[1]}, nil
}

// Symbol returns the canonical "BASE/QUOTE" form.
func (a Asset) Symbol() string {
	return a.Base + "/" + a.Quote
}

// AssetInfo is an asset position: a quantity priced per unit.
type AssetInfo struct {
	Asset    Asset   `json:"asset"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

func NewAssetInfo(asset Asset, quantity, price float64) AssetInfo {
	return AssetInfo{Asset: asset, Quantity: quantity, Price: price}
}

// TotalValue is quantity × unit price.
func (ai AssetInfo) TotalValue() float64 {
	return ai.Quantity * ai.Price
}

// Basket is the fixed supply being auctioned: an ordered collection of asset
// positions. Basket prices are the starting valuation only; price discovery
// runs on a side PriceTable and never writes back here.
type Basket struct {
	ID     uint64      `json:"id"`
	Assets []AssetInfo `json:"assets"`
}

// TotalValue sums the constituent position values.
func (b *Basket) TotalValue() float64 {
	total := 0.0
	for _, ai := range b.Assets {
		total += ai.TotalValue()
	}
	return total
}

// Supply returns the basket's quantity of the asset with the given base
// symbol, or zero if the basket does not carry it.
func (b *Basket) Supply(base string) float64 {
	for _, ai := range b.Assets {
		if ai.Asset.Base == base {
			return ai.Quantity
		}
	}
	return 0
}

// HasAsset reports whether the basket carries the asset.
func (b *Basket) HasAsset(asset Asset) bool {
	for _, ai := range b.Assets {
		if ai.Asset == asset {
			return true
		}
	}
	return false
}

// BidType distinguishes all-or-nothing exclusive bids from independently
// acceptable ones.
type BidType int

const (
	// BidXOR bids are mutually exclusive: at most one bundle per bidder wins.
	BidXOR BidType = iota
	// BidOR bids can coexist with other winning bids.
	BidOR
)

func (t BidType) String() string {
	switch t {
	case BidXOR:
		return "XOR"
	case BidOR:
		return "OR"
	default:
		return fmt.Sprintf("BidType(%d)", int(t))
	}
}

// Bid is an immutable offer from a bidder for a fraction of a basket. Bids
// reference their bidder by id; the Ledger owns the account record.
type Bid struct {
	BidderID uint64   `json:"bidder_id"`
	BasketID uint64   `json:"basket_id"`
	Type     BidType  `json:"bid_type"`
	Price    float64  `json:"price"`
	Quantity *float64 `json:"quantity,omitempty"` // fraction in (0, 1]; nil means the whole basket
}

// NewBid creates a bid for the whole basket.
func NewBid(bidderID, basketID uint64, bidType BidType, price float64) Bid {
	return Bid{BidderID: bidderID, BasketID: basketID, Type: bidType, Price: price}
}

// NewPartialBid creates a bid for a fraction of the basket.
func NewPartialBid(bidderID, basketID uint64, bidType BidType, price, quantity float64) Bid {
	return Bid{BidderID: bidderID, BasketID: basketID, Type: bidType, Price: price, Quantity: &quantity}
}

// Fraction returns the requested share of the basket, defaulting to the
// whole basket when no quantity was given.
func (b Bid) Fraction() float64 {
	if b.Quantity == nil {
		return 1.0
	}
	return *b.Quantity
}

// EstimateValue prices the requested fraction at the basket's stored
// valuation.
func (b Bid) EstimateValue(basket *Basket) float64 {
	return b.Fraction() * basket.TotalValue()
}
