package pricer

import (
	"math"
	"math/bits"
)

// fft computes the unnormalized forward discrete Fourier transform in place.
// The input length must be a power of two; the transform convention is
// X[k] = sum_j x[j]·exp(-2πi·jk/n).
func fft(x []complex128) {
	n := len(x)
	if n <= 1 {
		return
	}

	shift := 64 - uint(bits.Len(uint(n-1)))
	for i := 0; i < n; i++ {
		j := int(bits.Reverse64(uint64(i)) >> shift)
		if j > i {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := -2 * math.Pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				angle := step * float64(k)
				w := complex(math.Cos(angle), math.Sin(angle))
				even := x[start+k]
				odd := x[start+k+half] * w
				x[start+k] = even + odd
				x[start+k+half] = even - odd
			}
		}
	}
}
