package core

import (
	"github.com/shopspring/decimal"
)

const monetaryPrecision int32 = 4 // 4 decimal places for monetary values (0.0001 precision)

// moneyGTE compares two monetary amounts at monetaryPrecision, avoiding
// float accumulation artifacts in affordability checks.
func moneyGTE(a, b float64) bool {
	da := decimal.NewFromFloat(a).Round(monetaryPrecision)
	db := decimal.NewFromFloat(b).Round(monetaryPrecision)
	return da.GreaterThanOrEqual(db)
}

func moneyAdd(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Float64()
	return v
}

func moneySub(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return v
}

// IsValidBid reports whether a bid passes the validity predicate: positive
// price, requested fraction (if any) in (0, 1], and a ledger balance that
// covers the price. Invalid bids are filtered silently and never surface as
// errors.
func IsValidBid(ledger *Ledger, bid Bid) bool {
	if bid.Price <= 0 {
		return false
	}
	if bid.Quantity != nil && (*bid.Quantity <= 0 || *bid.Quantity > 1) {
		return false
	}
	return ledger.CanAfford(bid.BidderID, bid.Price)
}

// FilterValidBids keeps bids that target the basket and pass the validity
// predicate, preserving input order.
func FilterValidBids(ledger *Ledger, bids []Bid, basket *Basket) []Bid {
	valid := make([]Bid, 0, len(bids))
	for _, bid := range bids {
		if bid.BasketID != basket.ID {
			continue
		}
		if IsValidBid(ledger, bid) {
			valid = append(valid, bid)
		}
	}
	return valid
}

// CanFulfill reports whether the candidate bid set's aggregate per-asset
// demand stays within basket supply. Demand for an asset is the bid's
// requested fraction; supply is the basket's quantity of that asset.
func CanFulfill(bids []Bid, basket *Basket) bool {
	for _, ai := range basket.Assets {
		demand := 0.0
		for _, bid := range bids {
			demand += bid.Fraction()
		}
		if demand > ai.Quantity {
			return false
		}
	}
	return true
}
