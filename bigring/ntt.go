package bigring

import (
	"fmt"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/modular"
	"github.com/MouseCreator/Long-arithmetic-system/num"
)

// Wrap selects the quotient an NTTRing multiplies modulo.
type Wrap int

const (
	// Cyclic is the quotient x^N - 1.
	Cyclic Wrap = iota
	// Negacyclic is the quotient x^N + 1.
	Negacyclic
)

func (w Wrap) String() string {
	if w == Negacyclic {
		return "x^N+1"
	}
	return "x^N-1"
}

// NTTRing multiplies polynomials of degree below N modulo x^N - 1 or x^N + 1
// over a prime field Z_Q, in O(N log N) through the number theoretic transform.
//
// The negacyclic product is reduced to a cyclic one by twisting the
// coefficients with the powers of a primitive 2Nth root of unity psi:
// a(x) mod x^N + 1 is evaluated as a(psi*x) mod x^N - 1.
type NTTRing struct {
	reducer *modular.Reducer

	degree  int
	wrap    Wrap
	modulus *big.Int
	root    *big.Int

	// omega^i and omega^-i for i < N/2, omega = root (cyclic) or root^2 (negacyclic).
	tw    []*big.Int
	twInv []*big.Int
	// psi^i, only for Negacyclic.
	twist []*big.Int
	// N^-1 * psi^-i, or N^-1 for Cyclic.
	scale []*big.Int

	u *big.Int
	v *big.Int
}

// NewNTTRing creates a new NTTRing of degree N over Z_Q.
// Panics if N is not a power of two of at least 2, or Q - 1 is not divisible by
// N (Cyclic) or 2N (Negacyclic). Q is assumed to be prime.
func NewNTTRing(N int, Q *big.Int, wrap Wrap) *NTTRing {
	if N < 2 || !num.IsPowerOfTwo(N) {
		panic("degree must be a power of two of at least 2")
	}

	order := int64(N)
	if wrap == Negacyclic {
		order *= 2
	}
	return NewNTTRingFromRoot(N, Q, wrap, primitiveRoot(order, Q))
}

// NewNTTRingFromRoot creates a new NTTRing from a given root of unity,
// which must be a primitive Nth root (Cyclic) or 2Nth root (Negacyclic).
func NewNTTRingFromRoot(N int, Q *big.Int, wrap Wrap, root *big.Int) *NTTRing {
	order := int64(N)
	if wrap == Negacyclic {
		order *= 2
	}
	if !isPrimitiveRoot(root, order, Q) {
		panic(fmt.Sprintf("%v is not a primitive root of unity of order %d", root, order))
	}

	r := &NTTRing{
		reducer: modular.NewReducer(Q),
		degree:  N,
		wrap:    wrap,
		modulus: Q,
		root:    root,

		u: big.NewInt(0),
		v: big.NewInt(0),
	}

	omega := root
	if wrap == Negacyclic {
		omega = big.NewInt(0).Mul(root, root)
		omega.Mod(omega, Q)
	}
	omegaInv := big.NewInt(0).ModInverse(omega, Q)
	r.tw = powers(omega, N/2, Q)
	r.twInv = powers(omegaInv, N/2, Q)

	NInv := big.NewInt(0).ModInverse(big.NewInt(int64(N)), Q)
	if wrap == Negacyclic {
		r.twist = powers(root, N, Q)
		r.scale = powers(big.NewInt(0).ModInverse(root, Q), N, Q)
		for _, s := range r.scale {
			r.reducer.MulAssign(s, NInv, s)
		}
	} else {
		r.scale = make([]*big.Int, N)
		for i := range r.scale {
			r.scale[i] = NInv
		}
	}

	return r
}

// primitiveRoot finds a primitive root of unity of the given even order modulo a prime Q.
func primitiveRoot(order int64, Q *big.Int) *big.Int {
	QSubOne := big.NewInt(0).Sub(Q, bigOne)
	e, rem := big.NewInt(0).QuoRem(QSubOne, big.NewInt(order), big.NewInt(0))
	if rem.Sign() != 0 {
		panic(fmt.Sprintf("%v has no root of unity of order %d", Q, order))
	}

	g := big.NewInt(0)
	for x := big.NewInt(2); x.Cmp(Q) < 0; x.Add(x, bigOne) {
		g.Exp(x, e, Q)
		if isPrimitiveRoot(g, order, Q) {
			return g
		}
	}
	panic(fmt.Sprintf("no root of unity of order %d modulo %v", order, Q))
}

// isPrimitiveRoot reports whether g has exactly the given power-of-two order modulo Q.
func isPrimitiveRoot(g *big.Int, order int64, Q *big.Int) bool {
	half := big.NewInt(0).Exp(g, big.NewInt(order/2), Q)
	if half.Cmp(bigOne) == 0 {
		return false
	}
	return half.Mul(half, half).Mod(half, Q).Cmp(bigOne) == 0
}

// powers returns g^0, ..., g^(n-1) modulo Q.
func powers(g *big.Int, n int, Q *big.Int) []*big.Int {
	out := make([]*big.Int, n)
	acc := big.NewInt(1)
	for i := range out {
		out[i] = big.NewInt(0).Set(acc)
		acc.Mul(acc, g)
		acc.Mod(acc, Q)
	}
	return out
}

// ShallowCopy creates a shallow copy of NTTRing that is thread-safe.
func (r *NTTRing) ShallowCopy() *NTTRing {
	rr := *r
	rr.reducer = r.reducer.ShallowCopy()
	rr.u = big.NewInt(0)
	rr.v = big.NewInt(0)
	return &rr
}

// Degree returns N.
func (r *NTTRing) Degree() int {
	return r.degree
}

// Wrap returns the quotient r multiplies modulo.
func (r *NTTRing) Wrap() Wrap {
	return r.wrap
}

// Root returns the root of unity r was built from.
func (r *NTTRing) Root() *big.Int {
	return r.root
}

// Transform computes the NTT of p.
// Coefficients of p beyond N are ignored.
func (r *NTTRing) Transform(p BigPoly) BigNTTPoly {
	pOut := NewBigNTTPoly(r.degree)
	r.TransformAssign(p, pOut)
	return pOut
}

// TransformAssign computes the NTT of p and assigns it to pOut.
func (r *NTTRing) TransformAssign(p BigPoly, pOut BigNTTPoly) {
	for i := 0; i < r.degree; i++ {
		if i >= len(p.Coeffs) {
			pOut.Coeffs[i].SetInt64(0)
			continue
		}
		if r.wrap == Negacyclic {
			r.reducer.MulAssign(p.Coeffs[i], r.twist[i], pOut.Coeffs[i])
		} else {
			pOut.Coeffs[i].Set(p.Coeffs[i])
		}
	}
	r.butterfly(pOut.Coeffs, r.tw)
}

// InvTransform computes the inverse NTT of p.
func (r *NTTRing) InvTransform(p BigNTTPoly) BigPoly {
	pOut := NewBigPoly(r.degree)
	r.InvTransformAssign(p, pOut)
	return pOut
}

// InvTransformAssign computes the inverse NTT of p and assigns it to pOut.
// p is left unchanged.
func (r *NTTRing) InvTransformAssign(p BigNTTPoly, pOut BigPoly) {
	for i := 0; i < r.degree; i++ {
		pOut.Coeffs[i].Set(p.Coeffs[i])
	}
	r.butterfly(pOut.Coeffs, r.twInv)
	for i := 0; i < r.degree; i++ {
		r.reducer.MulAssign(pOut.Coeffs[i], r.scale[i], pOut.Coeffs[i])
	}
}

// MulAssign assigns pOut = p0 * p1 modulo x^N -/+ 1.
// p0 and p1 must have coefficients in [0, Q), and pOut must have N coefficients.
func (r *NTTRing) MulAssign(p0, p1, pOut BigPoly) {
	n0 := r.Transform(p0)
	n1 := r.Transform(p1)
	for i := range n0.Coeffs {
		r.reducer.MulAssign(n0.Coeffs[i], n1.Coeffs[i], n0.Coeffs[i])
	}
	r.InvTransformAssign(n0, pOut)
}

// butterfly is the iterative radix-2 decimation-in-time transform,
// with input permuted into bit-reversal order and output in natural order.
// tw holds w^i for i < N/2.
func (r *NTTRing) butterfly(coeffs []*big.Int, tw []*big.Int) {
	num.BitReverseInPlace(coeffs)

	for size := 2; size <= r.degree; size <<= 1 {
		half := size >> 1
		step := r.degree / size
		for start := 0; start < r.degree; start += size {
			for k := 0; k < half; k++ {
				lo, hi := coeffs[start+k], coeffs[start+k+half]

				r.u.Set(lo)
				r.reducer.MulAssign(hi, tw[k*step], r.v)

				lo.Add(r.u, r.v)
				if lo.Cmp(r.modulus) >= 0 {
					lo.Sub(lo, r.modulus)
				}

				hi.Sub(r.u, r.v)
				if hi.Sign() < 0 {
					hi.Add(hi, r.modulus)
				}
			}
		}
	}
}
