// Package bigring implements polynomial arithmetic over Z_m[x].
package bigring

import (
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
	"github.com/MouseCreator/Long-arithmetic-system/num"
	"github.com/MouseCreator/Long-arithmetic-system/poly"
	log "github.com/sirupsen/logrus"
)

type nttKey struct {
	degree int
	wrap   Wrap
}

// Ring is the polynomial ring Z_m[x].
// Every polynomial it returns has coefficients reduced into [0, m).
//
// Ring is not safe for concurrent use.
// Use [*Ring.ShallowCopy] to get a copy for another goroutine.
type Ring struct {
	zn      *modular.Zn
	modulus *big.Int
	reducer *modular.Reducer

	ntt map[nttKey]*NTTRing
}

// NewRing creates a new Ring over Z_m for m > 1.
func NewRing(m *big.Int, params modular.Parameters) (*Ring, error) {
	z, err := modular.NewZn(m, params)
	if err != nil {
		return nil, err
	}
	return NewRingFromZn(z), nil
}

// NewRingFromZn creates a new Ring over the given coefficient ring.
func NewRingFromZn(z *modular.Zn) *Ring {
	m := z.Modulus()
	return &Ring{
		zn:      z,
		modulus: m,
		reducer: modular.NewReducer(m),

		ntt: make(map[nttKey]*NTTRing),
	}
}

// ShallowCopy creates a copy of Ring that is thread-safe.
func (r *Ring) ShallowCopy() *Ring {
	return &Ring{
		zn:      r.zn.ShallowCopy(),
		modulus: r.modulus,
		reducer: r.reducer.ShallowCopy(),

		ntt: make(map[nttKey]*NTTRing),
	}
}

// Modulus returns the coefficient modulus m.
func (r *Ring) Modulus() *big.Int {
	return big.NewInt(0).Set(r.modulus)
}

// Zn returns the coefficient ring.
func (r *Ring) Zn() *modular.Zn {
	return r.zn
}

// ToBigPoly converts p to its dense form with coefficients reduced into [0, m).
func (r *Ring) ToBigPoly(p poly.Poly) BigPoly {
	pOut := BigPoly{Coeffs: p.Coeffs()}
	for _, c := range pOut.Coeffs {
		r.reducer.ReduceAny(c)
	}
	pOut.trim()
	return pOut
}

// FromBigPoly converts a dense polynomial back to a [poly.Poly].
func (r *Ring) FromBigPoly(p BigPoly) poly.Poly {
	return poly.FromCoeffs(p.Coeffs)
}

// Reduce reduces the coefficients of p into [0, m).
func (r *Ring) Reduce(p poly.Poly) poly.Poly {
	return r.FromBigPoly(r.ToBigPoly(p))
}

// Add returns p0 + p1.
func (r *Ring) Add(p0, p1 poly.Poly) poly.Poly {
	return r.FromBigPoly(r.addDense(r.ToBigPoly(p0), r.ToBigPoly(p1)))
}

// Sub returns p0 - p1.
func (r *Ring) Sub(p0, p1 poly.Poly) poly.Poly {
	return r.FromBigPoly(r.subDense(r.ToBigPoly(p0), r.ToBigPoly(p1)))
}

// Neg returns -p.
func (r *Ring) Neg(p poly.Poly) poly.Poly {
	return r.FromBigPoly(r.subDense(BigPoly{}, r.ToBigPoly(p)))
}

// Mul returns p0 * p1.
func (r *Ring) Mul(p0, p1 poly.Poly) poly.Poly {
	return r.FromBigPoly(r.mulDense(r.ToBigPoly(p0), r.ToBigPoly(p1)))
}

// ScalarMul returns c * p.
func (r *Ring) ScalarMul(p poly.Poly, c *big.Int) poly.Poly {
	return r.FromBigPoly(r.scalarMulDense(r.ToBigPoly(p), r.zn.Reduce(c)))
}

// DivMod returns the quotient and remainder of p0 / p1, with deg(rem) < deg(p1).
// The leading coefficient of p1 must be a unit modulo m.
func (r *Ring) DivMod(p0, p1 poly.Poly) (quo, rem poly.Poly, err error) {
	q, rm, err := r.divModDense(r.ToBigPoly(p0), r.ToBigPoly(p1))
	if err != nil {
		return poly.Poly{}, poly.Poly{}, err
	}
	return r.FromBigPoly(q), r.FromBigPoly(rm), nil
}

// Quo returns the quotient of p0 / p1.
func (r *Ring) Quo(p0, p1 poly.Poly) (poly.Poly, error) {
	q, _, err := r.DivMod(p0, p1)
	return q, err
}

// Rem returns the remainder of p0 / p1.
func (r *Ring) Rem(p0, p1 poly.Poly) (poly.Poly, error) {
	_, rm, err := r.DivMod(p0, p1)
	return rm, err
}

// Derivative returns the formal derivative of p.
func (r *Ring) Derivative(p poly.Poly) poly.Poly {
	pd := r.ToBigPoly(p)
	if len(pd.Coeffs) <= 1 {
		return poly.Poly{}
	}

	pOut := NewBigPoly(len(pd.Coeffs) - 1)
	for i := 1; i < len(pd.Coeffs); i++ {
		pOut.Coeffs[i-1].Mul(pd.Coeffs[i], big.NewInt(int64(i)))
		r.reducer.ReduceAny(pOut.Coeffs[i-1])
	}
	return r.FromBigPoly(pOut)
}

// Monic scales p so that its leading coefficient is 1.
// The zero polynomial is returned as is.
func (r *Ring) Monic(p poly.Poly) (poly.Poly, error) {
	pd, err := r.monicDense(r.ToBigPoly(p))
	if err != nil {
		return poly.Poly{}, err
	}
	return r.FromBigPoly(pd), nil
}

// GCD returns the greatest common divisor of p0 and p1 by the Euclidean algorithm.
// The result is monic when its leading coefficient is a unit.
// gcd(0, 0) = 0.
func (r *Ring) GCD(p0, p1 poly.Poly) (poly.Poly, error) {
	g, err := r.gcdDense(r.ToBigPoly(p0), r.ToBigPoly(p1))
	if err != nil {
		return poly.Poly{}, err
	}
	return r.FromBigPoly(g), nil
}

// Evaluate returns p(x) mod m by Horner's rule.
func (r *Ring) Evaluate(p poly.Poly, x *big.Int) *big.Int {
	pd := r.ToBigPoly(p)
	xr := r.zn.Reduce(x)

	acc := big.NewInt(0)
	for i := len(pd.Coeffs) - 1; i >= 0; i-- {
		r.reducer.MulAssign(acc, xr, acc)
		acc.Add(acc, pd.Coeffs[i])
		if acc.Cmp(r.modulus) >= 0 {
			acc.Sub(acc, r.modulus)
		}
	}
	return acc
}

// Cyclotomic returns the n-th cyclotomic polynomial reduced modulo m,
// computed as the product of (x^d - 1)^μ(n/d) over the divisors d of n.
func (r *Ring) Cyclotomic(n int) (poly.Poly, error) {
	if n < 1 || n > poly.MaxDegree {
		return poly.Poly{}, errs.New(errs.InvalidArgument, "cyclotomic order must be in [1, %d], got %d", poly.MaxDegree, n)
	}

	var mulBy, divBy []int
	for _, d := range num.Divisors(uint64(n)) {
		switch num.Mobius(uint64(n) / d) {
		case 1:
			mulBy = append(mulBy, int(d))
		case -1:
			divBy = append(divBy, int(d))
		}
	}

	// Every division is exact, so multiplying first keeps the work in Z_m.
	f := NewBigPoly(1)
	f.Coeffs[0].SetInt64(1)
	for _, d := range mulBy {
		f = r.mulXdMinusOne(f, d)
	}
	for _, d := range divBy {
		f = r.quoXdMinusOne(f, d)
	}
	f.trim()
	return r.FromBigPoly(f), nil
}

// MulMod returns p0 * p1 mod f.
// When f is x^N + 1 or x^N - 1 with N a power of two and m an NTT-friendly prime,
// the product is computed through the NTT.
func (r *Ring) MulMod(p0, p1, f poly.Poly) (poly.Poly, error) {
	fd := r.ToBigPoly(f)
	fLeadInv, err := r.leadInverse(fd)
	if err != nil {
		return poly.Poly{}, err
	}

	p0d := r.remDense(r.ToBigPoly(p0), fd, fLeadInv)
	p1d := r.remDense(r.ToBigPoly(p1), fd, fLeadInv)
	return r.FromBigPoly(r.mulModDense(p0d, p1d, fd, fLeadInv)), nil
}

// PowMod returns p^e mod f for e >= 0 by square-and-multiply.
func (r *Ring) PowMod(p poly.Poly, e *big.Int, f poly.Poly) (poly.Poly, error) {
	if e.Sign() < 0 {
		return poly.Poly{}, errs.New(errs.InvalidArgument, "exponent must be non-negative, got %v", e)
	}

	fd := r.ToBigPoly(f)
	fLeadInv, err := r.leadInverse(fd)
	if err != nil {
		return poly.Poly{}, err
	}
	return r.FromBigPoly(r.powModDense(r.ToBigPoly(p), e, fd, fLeadInv)), nil
}

// nttRingFor returns the NTT ring multiplying modulo f, or nil if f has no such shape.
func (r *Ring) nttRingFor(f BigPoly) *NTTRing {
	N := f.Degree()
	if N < 2 || !num.IsPowerOfTwo(N) {
		return nil
	}
	for i := 1; i < N; i++ {
		if f.Coeffs[i].Sign() != 0 {
			return nil
		}
	}
	if f.Coeffs[N].Cmp(bigOne) != 0 {
		return nil
	}

	key := nttKey{degree: N}
	switch {
	case f.Coeffs[0].Cmp(bigOne) == 0:
		key.wrap = Negacyclic
	case big.NewInt(0).Add(f.Coeffs[0], bigOne).Cmp(r.modulus) == 0:
		key.wrap = Cyclic
	default:
		return nil
	}

	if rg, ok := r.ntt[key]; ok {
		return rg
	}

	order := int64(N)
	if key.wrap == Negacyclic {
		order *= 2
	}
	if big.NewInt(0).Mod(big.NewInt(0).Sub(r.modulus, bigOne), big.NewInt(order)).Sign() != 0 || !r.zn.IsPrimeModulus() {
		r.ntt[key] = nil
		return nil
	}

	log.Debugf("using %d-point NTT for multiplication modulo %v", N, key.wrap)
	rg := NewNTTRing(N, r.modulus, key.wrap)
	r.ntt[key] = rg
	return rg
}
