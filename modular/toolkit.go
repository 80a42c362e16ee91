// Package modular implements arithmetic and number-theoretic algorithms over ℤ/mℤ.
package modular

import (
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/csprng"
	"github.com/MouseCreator/Long-arithmetic-system/num"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
)

// Toolkit bundles the modulus-independent algorithms:
// primality testing, factorization and the arithmetic functions.
//
// Toolkit is not safe for concurrent use.
// Use [*Toolkit.ShallowCopy] to get a copy for another goroutine.
type Toolkit struct {
	Parameters Parameters

	sampler *csprng.UniformSampler
	sieve   *num.Sieve
	primes  []*big.Int
}

// NewToolkit creates a new Toolkit.
func NewToolkit(params Parameters) *Toolkit {
	var sampler *csprng.UniformSampler
	if seed := params.Seed(); seed != nil {
		sampler = csprng.NewUniformSamplerWithSeed(seed)
	} else {
		sampler = csprng.NewUniformSampler()
	}

	sieve := num.NewSieve(uint(params.SmallFactorBound()))
	smallPrimes := sieve.Primes()
	primes := make([]*big.Int, len(smallPrimes))
	for i, p := range smallPrimes {
		primes[i] = big.NewInt(0).SetUint64(p)
	}

	return &Toolkit{
		Parameters: params,

		sampler: sampler,
		sieve:   sieve,
		primes:  primes,
	}
}

// ShallowCopy creates a copy of Toolkit that is thread-safe.
// The copy samples from an independently seeded stream.
func (t *Toolkit) ShallowCopy() *Toolkit {
	return &Toolkit{
		Parameters: t.Parameters,

		sampler: t.sampler.Fork(),
		sieve:   t.sieve,
		primes:  t.primes,
	}
}

// NewZn creates a new modular context over ℤ/mℤ sharing this Toolkit.
func (t *Toolkit) NewZn(m *big.Int) (*Zn, error) {
	return newZn(m, t)
}
