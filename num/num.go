// Package num implements various utility functions regarding word-sized integers.
package num

import (
	"math/bits"
)

// ModInverse returns the modular inverse of x modulo m, in [0, m).
// Works for every m > 0, including m >= 2^63.
// Panics if x and m are not coprime.
func ModInverse(x, m uint64) uint64 {
	// a = u0 * x and b = u1 * x modulo m throughout.
	a, b := m, x%m
	u0, u1 := uint64(0), uint64(1)%m
	for b != 0 {
		q := a / b
		a, b = b, a-q*b
		u0, u1 = u1, ModSub(u0, ModMul(q, u1, m), m)
	}

	if a != 1 {
		panic("modular inverse does not exist")
	}
	return u0
}

// ModSub returns x - y mod q for x, y in [0, q).
func ModSub(x, y, q uint64) uint64 {
	if x >= y {
		return x - y
	}
	return x + (q - y)
}

// ModMul returns x * y mod q without overflow.
func ModMul(x, y, q uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	_, r := bits.Div64(hi%q, lo, q)
	return r
}

// ModExp returns x^y mod q.
func ModExp(x, y, q uint64) uint64 {
	r := uint64(1) % q
	x %= q
	for y > 0 {
		if y&1 == 1 {
			r = ModMul(r, x, q)
		}
		x = ModMul(x, x, q)
		y >>= 1
	}
	return r
}

// GCD returns the greatest common divisor of x and y.
func GCD(x, y uint64) uint64 {
	for y != 0 {
		x, y = y, x%y
	}
	return x
}

// Divisors returns all positive divisors of n in ascending order.
// Returns nil for n = 0.
func Divisors(n uint64) []uint64 {
	if n == 0 {
		return nil
	}

	var lo, hi []uint64
	for d := uint64(1); d*d <= n; d++ {
		if n%d == 0 {
			lo = append(lo, d)
			if d != n/d {
				hi = append(hi, n/d)
			}
		}
	}
	for i := len(hi) - 1; i >= 0; i-- {
		lo = append(lo, hi[i])
	}
	return lo
}

// Mobius returns the Möbius function of n > 0.
func Mobius(n uint64) int {
	if n == 0 {
		panic("mobius of zero")
	}

	mu := 1
	for p := uint64(2); p*p <= n; p++ {
		if n%p != 0 {
			continue
		}
		n /= p
		if n%p == 0 {
			return 0
		}
		mu = -mu
	}
	if n > 1 {
		mu = -mu
	}
	return mu
}

// BitReverseInPlace reorders v into bit-reversal order in-place.
func BitReverseInPlace[T any](v []T) {
	var bit, j int
	for i := 1; i < len(v); i++ {
		bit = len(v) >> 1
		for j >= bit {
			j -= bit
			bit >>= 1
		}
		j += bit
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
