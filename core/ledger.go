package core

import (
	"fmt"
	"sync"
)

// Ledger is the single authoritative owner of User records. Bids carry
// bidder ids; every balance read or mutation goes through the ledger, and
// the mutex serializes settlement when the same bidder appears in
// concurrent auctions.
type Ledger struct {
	mu    sync.Mutex
	users map[uint64]*User
}

func NewLedger() *Ledger {
	return &Ledger{users: make(map[uint64]*User)}
}

// Add registers or replaces an account.
func (l *Ledger) Add(u User) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := u
	l.users[u.ID] = &cp
}

// User returns a copy of the account record.
func (l *Ledger) User(id uint64) (User, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, ok := l.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// Balance returns the tracked balance, zero for unknown accounts.
func (l *Ledger) Balance(id uint64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if u, ok := l.users[id]; ok {
		return u.Balance
	}
	return 0
}

// CanAfford reports whether the account's balance covers the amount, using
// monetary-precision comparison.
func (l *Ledger) CanAfford(id uint64, amount float64) bool {
	return moneyGTE(l.Balance(id), amount)
}

// Deposit credits the account.
func (l *Ledger) Deposit(id uint64, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, ok := l.users[id]
	if !ok {
		return fmt.Errorf("ledger: unknown account %d", id)
	}
	u.Balance = moneyAdd(u.Balance, amount)
	return nil
}

// Withdraw debits the account, failing on insufficient funds.
func (l *Ledger) Withdraw(id uint64, amount float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, ok := l.users[id]
	if !ok {
		return fmt.Errorf("ledger: unknown account %d", id)
	}
	if !moneyGTE(u.Balance, amount) {
		return &InsufficientFundsError{BidderID: id, Price: amount, Balance: u.Balance}
	}
	u.Balance = moneySub(u.Balance, amount)
	return nil
}

// Snapshot returns copies of every account.
func (l *Ledger) Snapshot() map[uint64]User {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[uint64]User, len(l.users))
	for id, u := range l.users {
		out[id] = *u
	}
	return out
}
