package field

import (
	"context"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/poly"
	log "github.com/sirupsen/logrus"
)

// IsIrreducible runs Rabin's test on f: f is irreducible over GF(p) iff
// f divides x^(p^n) - x and gcd(x^(p^(n/q)) - x, f) = 1 for every prime q | n.
func (F *Field) IsIrreducible(ctx context.Context) (bool, error) {
	n := F.Degree()
	p := F.ring.Modulus()

	checks := make(map[int]bool)
	for _, q := range primeDivisors(n) {
		checks[n/q] = true
	}

	// h = x^(p^k) mod f
	h := F.Reduce(F.x)
	for k := 1; k <= n; k++ {
		if err := errs.Check(ctx); err != nil {
			return false, err
		}

		h = F.pow(h, p)
		if !checks[k] {
			continue
		}

		g, err := F.ring.GCD(F.ring.Sub(h, F.x), F.f)
		if err != nil {
			return false, errs.Note(err, "irreducibility test of %v failed", F.f)
		}
		if g.Degree() > 0 {
			log.Debugf("%v has a factor of degree dividing %d", F.f, k)
			return false, nil
		}
	}
	return F.Reduce(F.ring.Sub(h, F.x)).IsZero(), nil
}

// primeDivisors returns the distinct prime divisors of n in ascending order.
func primeDivisors(n int) []int {
	var ps []int
	for d := 2; d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		ps = append(ps, d)
		for n%d == 0 {
			n /= d
		}
	}
	if n > 1 {
		ps = append(ps, n)
	}
	return ps
}

// groupOrder returns p^n - 1 and its distinct prime divisors.
func (F *Field) groupOrder(ctx context.Context) (*big.Int, []*big.Int, error) {
	N := F.Size()
	N.Sub(N, big.NewInt(1))

	factors, err := F.ring.Zn().Factorize(ctx, N)
	if err != nil {
		return nil, nil, errs.Note(err, "cannot factor the group order %v", N)
	}

	var primes []*big.Int
	for _, q := range factors {
		if len(primes) == 0 || primes[len(primes)-1].Cmp(q) != 0 {
			primes = append(primes, q)
		}
	}
	return N, primes, nil
}

// checkUnitGroup verifies a^N = 1, which holds for every nonzero a when f is irreducible.
func (F *Field) checkUnitGroup(a poly.Poly, N *big.Int) error {
	if !F.pow(a, N).Equal(F.one) {
		return errs.New(errs.InvalidModulus, "%v^%v is not 1, the modulus %v is reducible", a, N, F.f)
	}
	return nil
}

// Order returns the multiplicative order of a in the group of size p^n - 1.
// Returns NotInvertibleError for a = 0.
func (F *Field) Order(ctx context.Context, a poly.Poly) (*big.Int, error) {
	ar := F.Reduce(a)
	if ar.IsZero() {
		return nil, errs.New(errs.NotInvertible, "0 has no multiplicative order")
	}

	N, primes, err := F.groupOrder(ctx)
	if err != nil {
		return nil, err
	}
	if err := F.checkUnitGroup(ar, N); err != nil {
		return nil, err
	}

	order := big.NewInt(0).Set(N)
	next := big.NewInt(0)
	rem := big.NewInt(0)
	for _, q := range primes {
		for {
			next.QuoRem(order, q, rem)
			if rem.Sign() != 0 || !F.pow(ar, next).Equal(F.one) {
				break
			}
			order.Set(next)
		}
	}
	return order, nil
}

// IsGenerator reports whether a generates the multiplicative group of the field.
func (F *Field) IsGenerator(ctx context.Context, a poly.Poly) (bool, error) {
	ar := F.Reduce(a)
	if ar.IsZero() {
		return false, nil
	}

	N, primes, err := F.groupOrder(ctx)
	if err != nil {
		return false, err
	}
	if err := F.checkUnitGroup(ar, N); err != nil {
		return false, err
	}

	e := big.NewInt(0)
	for _, q := range primes {
		if F.pow(ar, e.Quo(N, q)).Equal(F.one) {
			return false, nil
		}
	}
	return true, nil
}
