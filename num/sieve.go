package num

import (
	"github.com/bits-and-blooms/bitset"
)

// Sieve is a sieve of Eratosthenes over [0, limit].
type Sieve struct {
	limit     uint
	composite *bitset.BitSet
}

// NewSieve creates a new Sieve marking every composite up to limit.
func NewSieve(limit uint) *Sieve {
	composite := bitset.New(limit + 1)
	composite.Set(0)
	if limit >= 1 {
		composite.Set(1)
	}

	for p := uint(2); p*p <= limit; p++ {
		if composite.Test(p) {
			continue
		}
		for q := p * p; q <= limit; q += p {
			composite.Set(q)
		}
	}

	return &Sieve{
		limit:     limit,
		composite: composite,
	}
}

// Limit returns the largest integer covered by the Sieve.
func (s *Sieve) Limit() uint {
	return s.limit
}

// IsPrime reports whether n is prime.
// Panics if n is above the limit of the Sieve.
func (s *Sieve) IsPrime(n uint) bool {
	if n > s.limit {
		panic("n is out of sieve range")
	}
	return !s.composite.Test(n)
}

// Primes returns all primes up to the limit in ascending order.
func (s *Sieve) Primes() []uint64 {
	primes := make([]uint64, 0, s.limit/8+1)
	for p := uint(2); p <= s.limit; p++ {
		if !s.composite.Test(p) {
			primes = append(primes, uint64(p))
		}
	}
	return primes
}
