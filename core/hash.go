package core

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// SettlementHash computes a deterministic hash over an auction's settled
// balances, suitable for audit records.
//
// Formula: SHA256(auction_id + "|" + sorted "bidder:balance" pairs), with
// balances formatted to exactly 6 decimal places so the hash is independent
// of in-memory float representation and map iteration order.
func SettlementHash(auctionID string, balances map[uint64]float64) string {
	ids := make([]uint64, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	data := auctionID
	for _, id := range ids {
		data += fmt.Sprintf("|%d:%.6f", id, balances[id])
	}
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
