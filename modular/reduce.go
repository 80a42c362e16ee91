package modular

import (
	"math/big"
)

// Reducer reduces integers modulo a fixed q > 0.
// Products of two residues are reduced with the Barrett method,
// which replaces the division by q with two multiplications and a shift.
//
// Reducer keeps scratch space, so it is not safe for concurrent use.
// Use [*Reducer.ShallowCopy] to get a copy for another goroutine.
type Reducer struct {
	q *big.Int

	// Inputs of magnitude below 2q^2 take the Barrett path.
	bound *big.Int
	// mu = floor(2^shift / q) with shift = 2*bitlen(q) + 1.
	mu    *big.Int
	shift uint

	t *big.Int
}

// NewReducer creates a new Reducer for the given modulus q.
// Panics if q is not positive.
func NewReducer(q *big.Int) *Reducer {
	if q.Sign() <= 0 {
		panic("modulus must be positive")
	}

	shift := 2*uint(q.BitLen()) + 1
	mu := big.NewInt(1)
	mu.Lsh(mu, shift).Quo(mu, q)

	bound := big.NewInt(0).Mul(q, q)
	bound.Lsh(bound, 1)

	return &Reducer{
		q:     q,
		bound: bound,
		mu:    mu,
		shift: shift,
		t:     big.NewInt(0),
	}
}

// ShallowCopy creates a copy of Reducer that is thread-safe.
func (r *Reducer) ShallowCopy() *Reducer {
	rr := *r
	rr.t = big.NewInt(0)
	return &rr
}

// Modulus returns q.
func (r *Reducer) Modulus() *big.Int {
	return r.q
}

// barrett reduces x in [0, 2q^2) into [0, q).
func (r *Reducer) barrett(x *big.Int) {
	r.t.Mul(x, r.mu)
	r.t.Rsh(r.t, r.shift)
	r.t.Mul(r.t, r.q)
	x.Sub(x, r.t)
	for x.Cmp(r.q) >= 0 {
		x.Sub(x, r.q)
	}
}

// ReduceAny reduces x of any sign and magnitude into [0, q) in place.
func (r *Reducer) ReduceAny(x *big.Int) {
	switch {
	case x.Sign() >= 0 && x.Cmp(r.bound) < 0:
		r.barrett(x)
	case x.Sign() < 0 && x.CmpAbs(r.bound) < 0:
		x.Add(x, r.bound)
		r.barrett(x)
	default:
		x.Mod(x, r.q)
	}
}

// MulAssign computes xOut = x * y mod q for x, y in [0, q).
// xOut may alias x or y.
func (r *Reducer) MulAssign(x, y, xOut *big.Int) {
	xOut.Mul(x, y)
	r.barrett(xOut)
}
