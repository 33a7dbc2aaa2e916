package pricer

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/peterldowns/testy/check"
)

func checkComplexApprox(t *testing.T, want, got complex128, tolerance float64) {
	t.Helper()
	check.True(t, cmplx.Abs(want-got) < tolerance)
}

func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			angle := -2 * math.Pi * float64(j) * float64(k) / float64(n)
			out[k] += x[j] * complex(math.Cos(angle), math.Sin(angle))
		}
	}
	return out
}

func TestFFTImpulse(t *testing.T) {
	x := []complex128{1, 0, 0, 0}
	fft(x)
	for _, v := range x {
		checkComplexApprox(t, 1, v, 1e-12)
	}
}

func TestFFTConstant(t *testing.T) {
	x := []complex128{1, 1, 1, 1}
	fft(x)
	checkComplexApprox(t, 4, x[0], 1e-12)
	for _, v := range x[1:] {
		checkComplexApprox(t, 0, v, 1e-12)
	}
}

func TestFFTMatchesNaiveDFT(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := make([]complex128, 64)
	for i := range x {
		x[i] = complex(rng.Float64(), rng.Float64())
	}

	want := naiveDFT(x)
	fft(x)
	for i := range x {
		checkComplexApprox(t, want[i], x[i], 1e-9)
	}
}
