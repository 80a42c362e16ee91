package modular

import (
	"context"
	"math/big"
	"slices"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	log "github.com/sirupsen/logrus"
)

// Factorizer decomposes a positive integer into primes.
type Factorizer interface {
	// Factorize returns the prime factors of n in ascending order, with multiplicity.
	// n = 1 has no factors; n <= 0 is an InvalidArgumentError.
	Factorize(ctx context.Context, n *big.Int) ([]*big.Int, error)
}

// NaiveFactorizer factors by trial division by 2 and then odd candidates.
type NaiveFactorizer struct{}

// NewNaiveFactorizer creates a new NaiveFactorizer.
func NewNaiveFactorizer() NaiveFactorizer {
	return NaiveFactorizer{}
}

// Factorize implements [Factorizer].
func (NaiveFactorizer) Factorize(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, errs.New(errs.InvalidArgument, "cannot factorize non-positive %v", n)
	}
	return trialDivision(ctx, big.NewInt(0).Set(n), nil)
}

// trialDivision appends the factors of n to factors.
// n is consumed.
func trialDivision(ctx context.Context, n *big.Int, factors []*big.Int) ([]*big.Int, error) {
	for n.Bit(0) == 0 && n.Sign() > 0 {
		factors = append(factors, big.NewInt(2))
		n.Rsh(n, 1)
	}

	d := big.NewInt(3)
	dSq := big.NewInt(9)
	q, r := big.NewInt(0), big.NewInt(0)
	for i := 0; dSq.Cmp(n) <= 0; i++ {
		if i&0xfff == 0 {
			if err := errs.Check(ctx); err != nil {
				return nil, err
			}
		}

		q.QuoRem(n, d, r)
		if r.Sign() == 0 {
			factors = append(factors, big.NewInt(0).Set(d))
			n.Set(q)
			continue
		}

		// (d+2)^2 = d^2 + 4d + 4
		dSq.Add(dSq, r.Lsh(d, 2))
		dSq.Add(dSq, big.NewInt(4))
		d.Add(d, bigTwo)
	}

	if n.Cmp(bigOne) > 0 {
		factors = append(factors, big.NewInt(0).Set(n))
	}
	return factors, nil
}

// PollardFactorizer factors by Pollard's rho with Brent's cycle detection.
// Small primes are stripped by trial division first.
// Cofactors on which every seed stalls are finished by trial division.
type PollardFactorizer struct {
	*Toolkit
}

// NewPollardFactorizer creates a new PollardFactorizer.
func NewPollardFactorizer(t *Toolkit) PollardFactorizer {
	return PollardFactorizer{Toolkit: t}
}

// Factorize implements [Factorizer].
func (f PollardFactorizer) Factorize(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, errs.New(errs.InvalidArgument, "cannot factorize non-positive %v", n)
	}

	var factors []*big.Int
	rest := big.NewInt(0).Set(n)
	r := big.NewInt(0)
	for _, p := range f.primes {
		for r.Mod(rest, p).Sign() == 0 {
			factors = append(factors, p)
			rest.Quo(rest, p)
		}
	}

	stack := []*big.Int{}
	if rest.Cmp(bigOne) > 0 {
		stack = append(stack, rest)
	}

	for len(stack) > 0 {
		if err := errs.Check(ctx); err != nil {
			return nil, err
		}

		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.isPrime(c, f.Parameters.PrimalityRounds()) {
			factors = append(factors, c)
			continue
		}

		d, err := f.split(ctx, c)
		if err != nil {
			return nil, err
		}

		if d == nil {
			log.Debugf("pollard rho stalled on %v after %d restarts, falling back to trial division", c, f.Parameters.PollardRestarts())
			factors, err = trialDivision(ctx, c, factors)
			if err != nil {
				return nil, err
			}
			continue
		}

		stack = append(stack, d, big.NewInt(0).Quo(c, d))
	}

	// Small primes are shared, so the result is copied before it leaves.
	out := make([]*big.Int, len(factors))
	for i, p := range factors {
		out[i] = big.NewInt(0).Set(p)
	}
	slices.SortFunc(out, func(a, b *big.Int) int { return a.Cmp(b) })
	return out, nil
}

// split returns a nontrivial divisor of composite n, or nil if every seed stalled.
func (f PollardFactorizer) split(ctx context.Context, n *big.Int) (*big.Int, error) {
	if n.Bit(0) == 0 {
		return big.NewInt(2), nil
	}

	if s := big.NewInt(0).Sqrt(n); big.NewInt(0).Mul(s, s).Cmp(n) == 0 {
		return s, nil
	}

	red := NewReducer(n)
	nMinusOne := big.NewInt(0).Sub(n, bigOne)

	for restart := 0; restart < f.Parameters.PollardRestarts(); restart++ {
		y := f.sampler.SampleRange(bigOne, nMinusOne)
		c := f.sampler.SampleRange(bigOne, nMinusOne)

		d, err := brent(ctx, n, y, c, red, f.Parameters.PollardIterations())
		if err != nil {
			return nil, err
		}
		if d != nil {
			return d, nil
		}
		log.Debugf("pollard rho seed %d stalled on %v", restart, n)
	}
	return nil, nil
}

// brentBatch is the number of differences multiplied together before each gcd.
const brentBatch = 128

// brent runs Brent's variant of the rho iteration y -> y^2 + c mod n.
// Returns nil when the iteration budget runs out or the cycle closes without a factor.
func brent(ctx context.Context, n, y, c *big.Int, red *Reducer, budget int) (*big.Int, error) {
	step := func(v *big.Int) {
		red.MulAssign(v, v, v)
		v.Add(v, c)
		if v.Cmp(n) >= 0 {
			v.Sub(v, n)
		}
	}

	x := big.NewInt(0)
	ys := big.NewInt(0)
	q := big.NewInt(1)
	g := big.NewInt(1)
	diff := big.NewInt(0)

	steps := 0
	for r := 1; g.Cmp(bigOne) == 0; r <<= 1 {
		if err := errs.Check(ctx); err != nil {
			return nil, err
		}

		x.Set(y)
		for i := 0; i < r; i++ {
			step(y)
		}

		for k := 0; k < r && g.Cmp(bigOne) == 0; k += brentBatch {
			ys.Set(y)
			for i := 0; i < min(brentBatch, r-k); i++ {
				step(y)
				diff.Sub(x, y)
				diff.Abs(diff)
				red.MulAssign(q, diff, q)
			}
			g.GCD(nil, nil, q, n)
		}

		steps += 2 * r
		if steps > budget && g.Cmp(bigOne) == 0 {
			return nil, nil
		}
	}

	if g.Cmp(n) == 0 {
		// The batch overshot; replay it one step at a time.
		for {
			step(ys)
			diff.Sub(x, ys)
			diff.Abs(diff)
			g.GCD(nil, nil, diff, n)
			if g.Cmp(bigOne) != 0 {
				break
			}
		}
	}

	if g.Cmp(n) == 0 {
		return nil, nil
	}
	return g, nil
}

// Factorize returns the prime factors of n using [PollardFactorizer].
func (t *Toolkit) Factorize(ctx context.Context, n *big.Int) ([]*big.Int, error) {
	return NewPollardFactorizer(t).Factorize(ctx, n)
}

// primePowers groups an ascending factor list into distinct primes and exponents.
func primePowers(factors []*big.Int) ([]*big.Int, []int) {
	var primes []*big.Int
	var exps []int
	for _, p := range factors {
		if len(primes) > 0 && primes[len(primes)-1].Cmp(p) == 0 {
			exps[len(exps)-1]++
			continue
		}
		primes = append(primes, p)
		exps = append(exps, 1)
	}
	return primes, exps
}
