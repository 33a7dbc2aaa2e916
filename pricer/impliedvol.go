package pricer

import (
	"errors"
	"math"
)

// Root-find bracket and tolerance for implied volatility. The upper bound of
// 300% annualized covers even stressed crypto vol surfaces.
const (
	volLower = 0.001
	volUpper = 3.0
	volTol   = 1e-6
)

// ImpliedVolatility inverts the Black-Scholes formula for one observed
// option price.
type ImpliedVolatility struct {
	Spot           float64
	Strike         float64
	Rate           float64
	TimeToMaturity float64
	MarketPrice    float64
	IsCall         bool
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// BlackScholesPrice prices the option at the given volatility.
func (iv *ImpliedVolatility) BlackScholesPrice(sigma float64) float64 {
	sqrtT := math.Sqrt(iv.TimeToMaturity)
	d1 := (math.Log(iv.Spot/iv.Strike) + (iv.Rate+0.5*sigma*sigma)*iv.TimeToMaturity) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	discountedStrike := iv.Strike * math.Exp(-iv.Rate*iv.TimeToMaturity)
	call := iv.Spot*normCDF(d1) - discountedStrike*normCDF(d2)
	if iv.IsCall {
		return call
	}
	return call + discountedStrike - iv.Spot
}

// Solve returns the volatility at which Black-Scholes reproduces the market
// price. Brent's method runs first; if the bracket does not straddle a root
// it falls back to the secant method, and to zero when that diverges too.
func (iv *ImpliedVolatility) Solve() float64 {
	f := func(sigma float64) float64 {
		return iv.BlackScholesPrice(sigma) - iv.MarketPrice
	}

	if root, err := brent(f, volLower, volUpper, volTol); err == nil {
		return root
	}
	if root, err := secant(f, volLower, volUpper, volTol); err == nil {
		return root
	}
	return 0
}

// brent is Brent's bracketing root finder: bisection safeguarding inverse
// quadratic interpolation.
func brent(f func(float64) float64, a, b, tol float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa*fb > 0 {
		return 0, errors.New("pricer: root not bracketed")
	}
	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}

	c, fc := a, fa
	d := b - a
	bisected := true

	for i := 0; i < 100; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, nil
		}

		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			s = b - fb*(b-a)/(fb-fa)
		}

		lo, hi := (3*a+b)/4, b
		if lo > hi {
			lo, hi = hi, lo
		}
		if s < lo || s > hi ||
			(bisected && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!bisected && math.Abs(s-b) >= math.Abs(c-d)/2) {
			s = (a + b) / 2
			bisected = true
		} else {
			bisected = false
		}

		fs := f(s)
		d, c, fc = c, b, fb
		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}
	return b, nil
}

func secant(f func(float64) float64, x0, x1, tol float64) (float64, error) {
	f0, f1 := f(x0), f(x1)
	for i := 0; i < 100; i++ {
		if f1 == f0 {
			return 0, errors.New("pricer: secant stalled")
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if math.IsNaN(x2) || math.IsInf(x2, 0) {
			return 0, errors.New("pricer: secant diverged")
		}
		if math.Abs(x2-x1) < tol {
			return x2, nil
		}
		x0, f0 = x1, f1
		x1, f1 = x2, f(x2)
	}
	return 0, errors.New("pricer: secant did not converge")
}
