package core

import (
	"github.com/shopspring/decimal"
)

// PriceTable is the side price table the clock auction iterates on, keyed by
// base symbol. Basket prices are never mutated; they only seed the table.
type PriceTable map[string]float64

// InitialPrices seeds a table from the basket's stored valuation.
func InitialPrices(basket *Basket) PriceTable {
	prices := make(PriceTable, len(basket.Assets))
	for _, ai := range basket.Assets {
		prices[ai.Asset.Base] = ai.Price
	}
	return prices
}

// PriceOf returns the table price for a base symbol, or the fallback when
// the symbol is absent.
func (p PriceTable) PriceOf(base string, fallback float64) float64 {
	if price, ok := p[base]; ok {
		return price
	}
	return fallback
}

// Clone returns an independent copy.
func (p PriceTable) Clone() PriceTable {
	out := make(PriceTable, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// AdjustPrices raises the price of every over-demanded asset by a
// multiplicative step proportional to relative excess demand:
//
//	increment = baseIncrement × (1 + 10 × excess/price)
//	new price = price × (1 + increment)
//
// The 10× weighting accelerates convergence under large imbalances. Uses
// decimal arithmetic so repeated steps stay reproducible.
func AdjustPrices(current PriceTable, excessDemand map[string]float64, baseIncrement float64) PriceTable {
	next := current.Clone()

	one := decimal.NewFromInt(1)
	ten := decimal.NewFromInt(10)
	base := decimal.NewFromFloat(baseIncrement)

	for asset, excess := range excessDemand {
		if excess <= 0 {
			continue
		}
		price, ok := current[asset]
		if !ok || price <= 0 {
			continue
		}
		priceDec := decimal.NewFromFloat(price)
		relative := decimal.NewFromFloat(excess).Div(priceDec)
		increment := base.Mul(one.Add(relative.Mul(ten)))
		updated, _ := priceDec.Mul(one.Add(increment)).Float64()
		next[asset] = updated
	}

	return next
}
