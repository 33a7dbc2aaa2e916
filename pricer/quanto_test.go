package pricer

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/peterldowns/testy/check"
)

func europeanOption() *QuantoOption {
	// Zero correlation and FX volatility collapse the quanto drift to the
	// plain risk-neutral one.
	return &QuantoOption{
		Spot:           100.0,
		Strike:         100.0,
		DomesticRate:   0.05,
		ForeignRate:    0.0,
		Volatility:     0.2,
		FXVolatility:   0.0,
		TimeToMaturity: 1.0,
		Correlation:    0.0,
	}
}

func quantoOption() *QuantoOption {
	return &QuantoOption{
		Spot:           30000.0,
		Strike:         35000.0,
		DomesticRate:   0.01,
		ForeignRate:    0.0,
		Volatility:     0.6,
		FXVolatility:   0.2,
		TimeToMaturity: 0.5,
		Correlation:    0.5,
	}
}

func TestCharacteristicFunctionEuropean(t *testing.T) {
	// exp(i·(ln 100 + 0.03) - 0.02), evaluated in closed form.
	got := europeanOption().CharacteristicFunction(1.0)
	checkComplexApprox(t, complex(-0.0756145624902409, -0.977277789112048), got, 1e-9)
}

func TestCharacteristicFunctionModulusDecay(t *testing.T) {
	q := europeanOption()
	for _, u := range []float64{0.5, 1.0, 2.0, 4.0} {
		want := math.Exp(-0.5 * q.Volatility * q.Volatility * u * u * q.TimeToMaturity)
		check.True(t, math.Abs(cmplx.Abs(q.CharacteristicFunction(u))-want) < 1e-12)
	}
}

func TestCharacteristicFunctionQuantoDriftCorrection(t *testing.T) {
	q := quantoOption()
	flat := *q
	flat.Correlation = 0.0
	flat.FXVolatility = 0.0

	// The correlation term shifts the phase but never the modulus.
	corr := q.CharacteristicFunction(1.0)
	plain := flat.CharacteristicFunction(1.0)
	check.True(t, cmplx.Abs(corr-plain) > 1e-6)
	check.True(t, math.Abs(cmplx.Abs(corr)-cmplx.Abs(plain)) < 1e-12)
}

func TestPriceFFTSatisfiesParity(t *testing.T) {
	for _, q := range []*QuantoOption{europeanOption(), quantoOption()} {
		price := q.PriceFFT()
		check.False(t, math.IsNaN(price.Call) || math.IsInf(price.Call, 0))
		check.False(t, math.IsNaN(price.Put) || math.IsInf(price.Put, 0))

		parity := q.Strike*math.Exp(-q.DomesticRate*q.TimeToMaturity) -
			q.Spot*math.Exp(-q.ForeignRate*q.TimeToMaturity)
		check.True(t, math.Abs((price.Put-price.Call)-parity) < 1e-9)
	}
}

func TestPriceFFTDeterministic(t *testing.T) {
	q := quantoOption()
	first := q.PriceFFT()
	second := q.PriceFFT()
	check.Equal(t, first.Call, second.Call)
	check.Equal(t, first.Put, second.Put)
}
