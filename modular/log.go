package modular

import (
	"context"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	log "github.com/sirupsen/logrus"
)

// groupExponent returns an exponent of the unit group together with its factorization:
// m-1 for prime m, and λ(m) otherwise.
func (z *Zn) groupExponent(ctx context.Context) (*big.Int, []*big.Int, error) {
	e := big.NewInt(0).Sub(z.m, bigOne)
	if !z.IsPrimeModulus() {
		var err error
		if e, err = z.Carmichael(ctx, z.m); err != nil {
			return nil, nil, err
		}
	}

	factors, err := z.Factorize(ctx, e)
	if err != nil {
		return nil, nil, err
	}
	return e, factors, nil
}

// Order returns the multiplicative order of x modulo m.
// Returns NotInvertibleError if x is not a unit.
func (z *Zn) Order(ctx context.Context, x *big.Int) (*big.Int, error) {
	if !z.IsUnit(x) {
		return nil, errs.New(errs.NotInvertible, "%v is not a unit modulo %v", x, z.m)
	}

	e, factors, err := z.groupExponent(ctx)
	if err != nil {
		return nil, errs.Note(err, "cannot compute order of %v", x)
	}
	return z.orderFrom(z.Reduce(x), e, factors), nil
}

// orderFrom strips every prime of factors from e while x^e stays 1.
func (z *Zn) orderFrom(x, e *big.Int, factors []*big.Int) *big.Int {
	order := big.NewInt(0).Set(e)
	primes, exps := primePowers(factors)
	next := big.NewInt(0)
	for i, p := range primes {
		for j := 0; j < exps[i]; j++ {
			next.Quo(order, p)
			if z.exp(x, next).Cmp(bigOne) != 0 {
				break
			}
			order.Set(next)
		}
	}
	return order
}

// IsGenerator reports whether g generates the multiplicative group modulo a prime m.
func (z *Zn) IsGenerator(ctx context.Context, g *big.Int) (bool, error) {
	if err := z.requirePrime("generator test"); err != nil {
		return false, err
	}

	x := z.Reduce(g)
	if x.Sign() == 0 {
		return false, nil
	}

	e := big.NewInt(0).Sub(z.m, bigOne)
	factors, err := z.Factorize(ctx, e)
	if err != nil {
		return false, errs.Note(err, "cannot test generator %v", g)
	}

	primes, _ := primePowers(factors)
	d := big.NewInt(0)
	for _, q := range primes {
		if z.exp(x, d.Quo(e, q)).Cmp(bigOne) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// Log returns the smallest x >= 0 with base^x = n mod m.
// For prime m it uses Pohlig-Hellman over the order of base,
// otherwise baby-step giant-step over [0, m).
func (z *Zn) Log(ctx context.Context, n, base *big.Int) (*big.Int, error) {
	b := z.Reduce(base)
	if !z.IsUnit(b) {
		return nil, errs.New(errs.NotInvertible, "base %v is not a unit modulo %v", base, z.m)
	}

	t := z.Reduce(n)
	if !z.IsUnit(t) {
		return nil, errs.New(errs.NoSolution, "%v is not a power of %v modulo %v", n, base, z.m)
	}

	var x *big.Int
	var err error
	if z.IsPrimeModulus() {
		x, err = z.pohligHellman(ctx, t, b)
	} else {
		x, err = z.bsgs(ctx, t, b, z.m)
	}
	if err != nil {
		return nil, errs.Note(err, "cannot compute discrete log of %v to base %v modulo %v", n, base, z.m)
	}
	return x, nil
}

func (z *Zn) pohligHellman(ctx context.Context, t, b *big.Int) (*big.Int, error) {
	e := big.NewInt(0).Sub(z.m, bigOne)
	factors, err := z.Factorize(ctx, e)
	if err != nil {
		return nil, err
	}

	order := z.orderFrom(b, e, factors)
	if factors, err = z.Factorize(ctx, order); err != nil {
		return nil, err
	}
	primes, exps := primePowers(factors)
	log.Debugf("pohlig-hellman: order %v splits into %d prime powers", order, len(primes))

	residues := make([]*big.Int, len(primes))
	moduli := make([]*big.Int, len(primes))
	for i, q := range primes {
		qe := big.NewInt(0).Exp(q, big.NewInt(int64(exps[i])), nil)
		cofactor := big.NewInt(0).Quo(order, qe)

		bi := z.exp(b, cofactor)
		ti := z.exp(t, cofactor)

		xi, err := z.primePowerLog(ctx, ti, bi, q, exps[i])
		if err != nil {
			return nil, err
		}
		residues[i] = xi
		moduli[i] = qe
	}

	x := crt(residues, moduli)
	if z.exp(b, x).Cmp(t) != 0 {
		return nil, errs.New(errs.NoSolution, "%v is not in the subgroup generated by %v", t, b)
	}
	return x, nil
}

// primePowerLog solves b^x = t in a subgroup of order q^k, one base-q digit at a time.
func (z *Zn) primePowerLog(ctx context.Context, t, b, q *big.Int, k int) (*big.Int, error) {
	qk1 := big.NewInt(0).Exp(q, big.NewInt(int64(k-1)), nil)
	gamma := z.exp(b, qk1)

	bInv, err := z.Inverse(b)
	if err != nil {
		return nil, err
	}

	x := big.NewInt(0)
	qj := big.NewInt(1)
	h := big.NewInt(0)
	for j := 0; j < k; j++ {
		// h = (b^-x * t)^(q^(k-1-j))
		z.MulAssign(z.exp(bInv, x), t, h)
		h = z.exp(h, big.NewInt(0).Quo(qk1, qj))

		d, err := z.bsgs(ctx, h, gamma, q)
		if err != nil {
			return nil, err
		}
		x.Add(x, d.Mul(d, qj))
		qj.Mul(qj, q)
	}
	return x, nil
}

// bsgs returns the smallest x in [0, bound) with b^x = t.
func (z *Zn) bsgs(ctx context.Context, t, b, bound *big.Int) (*big.Int, error) {
	size := big.NewInt(0).Sqrt(bound)
	if big.NewInt(0).Mul(size, size).Cmp(bound) < 0 {
		size.Add(size, bigOne)
	}
	if !size.IsInt64() || size.Int64() > int64(z.Parameters.BSGSLimit()) {
		return nil, errs.New(errs.InvalidArgument, "baby-step table of size %v exceeds limit %d", size, z.Parameters.BSGSLimit())
	}
	n := int(size.Int64())
	log.Debugf("baby-step giant-step: table size %d", n)

	table := make(map[string]int, n)
	cur := big.NewInt(1)
	buf := big.NewInt(0)
	for j := 0; j < n; j++ {
		key := string(cur.Bytes())
		if _, ok := table[key]; !ok {
			table[key] = j
		}
		z.MulAssign(cur, b, buf)
		cur, buf = buf, cur
	}

	// cur = b^n, giant step multiplies by b^-n.
	giant, err := z.Inverse(cur)
	if err != nil {
		return nil, err
	}

	gamma := big.NewInt(0).Set(t)
	for i := 0; i < n; i++ {
		if i&0x3ff == 0 {
			if err := errs.Check(ctx); err != nil {
				return nil, err
			}
		}

		if j, ok := table[string(gamma.Bytes())]; ok {
			x := big.NewInt(int64(i))
			x.Mul(x, size)
			x.Add(x, big.NewInt(int64(j)))
			if x.Cmp(bound) < 0 {
				return x, nil
			}
		}
		z.MulAssign(gamma, giant, buf)
		gamma, buf = buf, gamma
	}
	return nil, errs.New(errs.NoSolution, "%v is not a power of %v below %v", t, b, bound)
}

// crt combines x = r_i mod m_i for pairwise coprime m_i.
func crt(residues, moduli []*big.Int) *big.Int {
	x := big.NewInt(0)
	m := big.NewInt(1)
	for i := range residues {
		// x' = x + m * ((r_i - x) * m^-1 mod m_i)
		inv := big.NewInt(0).ModInverse(big.NewInt(0).Mod(m, moduli[i]), moduli[i])
		if inv == nil {
			inv = big.NewInt(0)
		}
		d := big.NewInt(0).Sub(residues[i], x)
		d.Mul(d, inv)
		d.Mod(d, moduli[i])
		x.Add(x, d.Mul(d, m))
		m.Mul(m, moduli[i])
	}
	return x
}
