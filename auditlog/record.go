package auditlog

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Record is the durable outcome of one settled auction. Records are
// append-only: a settled auction is never rewritten, and the settlement hash
// lets an auditor recompute and verify the balance set independently.
type Record struct {
	AuctionID       string             `cbor:"auction_id"`
	Mechanism       string             `cbor:"mechanism"`
	BasketID        uint64             `cbor:"basket_id"`
	WinningBidders  []uint64           `cbor:"winning_bidders"`
	Payments        map[uint64]float64 `cbor:"payments,omitempty"`
	SettledBalances map[uint64]float64 `cbor:"settled_balances"`
	SettlementHash  string             `cbor:"settlement_hash"`
	CreatedAt       time.Time          `cbor:"created_at"`
}

func (r *Record) encode() ([]byte, error) {
	return cbor.Marshal(r)
}

func decodeRecord(data []byte) (*Record, error) {
	var r Record
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
