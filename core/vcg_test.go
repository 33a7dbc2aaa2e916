package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
)

func TestRunVCGAuctionSettlesAllWinners(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(User{ID: 1, Name: "Alice", Balance: 100000.0})
	ledger.Add(User{ID: 2, Name: "Bob", Balance: 200000.0})
	ledger.Add(User{ID: 3, Name: "Charlie", Balance: 300000.0})
	basket := sampleBasket()
	bids := []Bid{
		NewBid(1, 1, BidOR, 60000.0),
		NewBid(2, 1, BidOR, 70000.0),
		NewBid(3, 1, BidOR, 80000.0),
	}

	result, err := RunVCGAuction(ledger, bids, basket)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(result.WinningBids))

	check.Equal(t, 40000.0, result.Bidders[1].Balance)
	check.Equal(t, 130000.0, result.Bidders[2].Balance)
	check.Equal(t, 220000.0, result.Bidders[3].Balance)
	check.Equal(t, 40000.0, ledger.Balance(1))

	// Each full-basket winner receives a full-basket bundle.
	for _, id := range []uint64{1, 2, 3} {
		bundle := result.Allocation[id]
		assert.Equal(t, 2, len(bundle))
		checkApprox(t, 2.0, bundle[0].Quantity, 1e-9)
		checkApprox(t, 5.0, bundle[1].Quantity, 1e-9)
	}
}

func TestRunVCGAuctionPaymentsNonNegative(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(User{ID: 1, Name: "Alice", Balance: 100000.0})
	ledger.Add(User{ID: 2, Name: "Bob", Balance: 200000.0})
	ledger.Add(User{ID: 3, Name: "Charlie", Balance: 300000.0})
	basket := sampleBasket()
	bids := []Bid{
		NewBid(1, 1, BidOR, 60000.0),
		NewBid(2, 1, BidOR, 70000.0),
		NewBid(3, 1, BidOR, 80000.0),
	}

	result, err := RunVCGAuction(ledger, bids, basket)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(result.Payments))

	// With the accept-all welfare oracle no winner imposes an externality,
	// so every payment collapses to zero.
	for _, payment := range result.Payments {
		check.True(t, payment >= 0)
		check.Equal(t, 0.0, payment)
	}
}

func TestRunVCGAuctionAtomicOnClearingFailure(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(User{ID: 1, Name: "Alice", Balance: 100000.0})
	basket := sampleBasket()

	// Each bid is affordable in isolation but not cumulatively.
	bids := []Bid{
		NewBid(1, 1, BidOR, 60000.0),
		NewBid(1, 1, BidOR, 60000.0),
	}

	result, err := RunVCGAuction(ledger, bids, basket)
	assert.Error(t, err)
	check.Nil(t, result)

	var ife *InsufficientFundsError
	assert.True(t, errors.As(err, &ife))
	check.Equal(t, uint64(1), ife.BidderID)
	check.Equal(t, 60000.0, ife.Price)
	check.Equal(t, 40000.0, ife.Balance)

	check.Equal(t, 100000.0, ledger.Balance(1))
}
