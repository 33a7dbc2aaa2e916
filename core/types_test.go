package core

import (
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func sampleBasket() *Basket {
	return &Basket{
		ID: 1,
		Assets: []AssetInfo{
			NewAssetInfo(NewAsset("BTC", "USD"), 2.0, 30000.0),
			NewAssetInfo(NewAsset("ETH", "USD"), 5.0, 2000.0),
		},
	}
}

func sampleLedger() *Ledger {
	ledger := NewLedger()
	ledger.Add(User{ID: 1, Name: "Alice", Balance: 1000000.0})
	ledger.Add(User{ID: 2, Name: "Bob", Balance: 2000000.0})
	ledger.Add(User{ID: 3, Name: "Charlie", Balance: 3000000.0})
	return ledger
}

func TestParseAsset(t *testing.T) {
	asset, err := ParseAsset("BTC/USD")
	assert.NoError(t, err)
	check.Equal(t, "BTC", asset.Base)
	check.Equal(t, "USD", asset.Quote)
	check.Equal(t, "BTC/USD", asset.Symbol())

	_, err = ParseAsset("BTCUSD")
	check.Error(t, err)
	_, err = ParseAsset("BTC/")
	check.Error(t, err)
}

func TestAssetInfoTotalValue(t *testing.T) {
	ai := NewAssetInfo(NewAsset("BTC", "USD"), 2.0, 30000.0)
	check.Equal(t, 60000.0, ai.TotalValue())
}

func TestBasketTotalValueAndSupply(t *testing.T) {
	basket := sampleBasket()
	check.Equal(t, 70000.0, basket.TotalValue())
	check.Equal(t, 2.0, basket.Supply("BTC"))
	check.Equal(t, 5.0, basket.Supply("ETH"))
	check.Equal(t, 0.0, basket.Supply("SOL"))
	check.True(t, basket.HasAsset(NewAsset("BTC", "USD")))
	check.False(t, basket.HasAsset(NewAsset("SOL", "USD")))
}

func TestBidFractionDefaultsToWholeBasket(t *testing.T) {
	full := NewBid(1, 1, BidXOR, 500.0)
	check.Equal(t, 1.0, full.Fraction())

	half := NewPartialBid(1, 1, BidXOR, 500.0, 0.5)
	check.Equal(t, 0.5, half.Fraction())
}

func TestBidEstimateValue(t *testing.T) {
	basket := sampleBasket()

	half := NewPartialBid(1, 1, BidXOR, 500.0, 0.5)
	check.Equal(t, 35000.0, half.EstimateValue(basket))

	full := NewBid(1, 1, BidXOR, 1000.0)
	check.Equal(t, 70000.0, full.EstimateValue(basket))
}

func TestBidTypeString(t *testing.T) {
	check.Equal(t, "XOR", BidXOR.String())
	check.Equal(t, "OR", BidOR.String())
}
