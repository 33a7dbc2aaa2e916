package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestSettlementHashDeterministic(t *testing.T) {
	balances := map[uint64]float64{1: 940000.0, 2: 1930000.0}

	first := SettlementHash("auction-1", balances)
	second := SettlementHash("auction-1", balances)
	check.Equal(t, first, second)
	check.Equal(t, 64, len(first))
}

func TestSettlementHashOrderIndependent(t *testing.T) {
	a := map[uint64]float64{1: 10.0, 2: 20.0, 3: 30.0}
	b := map[uint64]float64{3: 30.0, 1: 10.0, 2: 20.0}

	check.Equal(t, SettlementHash("auction-1", a), SettlementHash("auction-1", b))
}

func TestSettlementHashSensitiveToInputs(t *testing.T) {
	balances := map[uint64]float64{1: 10.0}

	base := SettlementHash("auction-1", balances)
	check.NotEqual(t, base, SettlementHash("auction-2", balances))
	check.NotEqual(t, base, SettlementHash("auction-1", map[uint64]float64{1: 10.5}))
	check.NotEqual(t, base, SettlementHash("auction-1", map[uint64]float64{2: 10.0}))
}
