package modular

import (
	"context"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/tuneinsight/lattigo/v6/ring"
)

// IsPrime runs the Miller-Rabin test on n with the given number of rounds.
// The false positive probability is at most 4^-iterations.
// Word-size candidates that pass are certified by a deterministic test.
func (t *Toolkit) IsPrime(n *big.Int, iterations int) (bool, error) {
	if iterations < 1 {
		return false, errs.New(errs.InvalidArgument, "iteration count must be positive, got %d", iterations)
	}
	return t.isPrime(n, iterations), nil
}

func (t *Toolkit) isPrime(n *big.Int, rounds int) bool {
	if n.Cmp(bigTwo) < 0 {
		return false
	}

	if n.IsUint64() {
		switch {
		case n.Uint64() <= uint64(t.sieve.Limit()):
			return t.sieve.IsPrime(uint(n.Uint64()))
		case n.Uint64() < 5:
			return n.Uint64() != 4
		}
	}

	r := big.NewInt(0)
	for _, p := range t.primes {
		if r.Mod(n, p).Sign() == 0 {
			return false
		}
	}

	if !t.millerRabin(n, rounds) {
		return false
	}

	if n.IsUint64() {
		return ring.IsPrime(n.Uint64())
	}
	return true
}

// millerRabin assumes n is odd and greater than 4.
func (t *Toolkit) millerRabin(n *big.Int, rounds int) bool {
	nMinusOne := big.NewInt(0).Sub(n, bigOne)
	nMinusTwo := big.NewInt(0).Sub(n, bigTwo)

	s := nMinusOne.TrailingZeroBits()
	d := big.NewInt(0).Rsh(nMinusOne, s)

	red := NewReducer(n)
	x := big.NewInt(0)

witness:
	for i := 0; i < rounds; i++ {
		a := t.sampler.SampleRange(bigTwo, nMinusTwo)

		x.Exp(a, d, n)
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		for j := uint(1); j < s; j++ {
			red.MulAssign(x, x, x)
			if x.Cmp(nMinusOne) == 0 {
				continue witness
			}
			if x.Cmp(bigOne) == 0 {
				return false
			}
		}
		return false
	}
	return true
}

// RandomPrime returns a prime in [lo, hi].
// The search starts at a uniformly sampled point and walks upwards,
// wrapping around to lo once hi is passed.
func (t *Toolkit) RandomPrime(ctx context.Context, lo, hi *big.Int) (*big.Int, error) {
	if lo.Cmp(hi) > 0 {
		return nil, errs.New(errs.InvalidArgument, "empty range [%v, %v]", lo, hi)
	}

	from := big.NewInt(0).Set(lo)
	if from.Cmp(bigTwo) < 0 {
		from.Set(bigTwo)
	}
	if from.Cmp(hi) > 0 {
		return nil, errs.New(errs.NoSolution, "no prime in [%v, %v]", lo, hi)
	}

	start := t.sampler.SampleRange(from, hi)

	p, err := t.nextPrime(ctx, start, hi)
	if err != nil || p != nil {
		return p, err
	}

	p, err = t.nextPrime(ctx, from, start)
	if err != nil || p != nil {
		return p, err
	}
	return nil, errs.New(errs.NoSolution, "no prime in [%v, %v]", lo, hi)
}

// nextPrime returns the smallest prime in [from, to], or nil if there is none.
func (t *Toolkit) nextPrime(ctx context.Context, from, to *big.Int) (*big.Int, error) {
	c := big.NewInt(0).Set(from)
	for i := 0; c.Cmp(to) <= 0; i++ {
		if i&0xff == 0 {
			if err := errs.Check(ctx); err != nil {
				return nil, err
			}
		}

		if t.isPrime(c, t.Parameters.PrimalityRounds()) {
			return c, nil
		}
		c.Add(c, bigOne)
	}
	return nil, nil
}
