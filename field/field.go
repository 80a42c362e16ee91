// Package field implements arithmetic in the extension field GF(p)[x]/(f).
package field

import (
	"context"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/bigring"
	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
	"github.com/MouseCreator/Long-arithmetic-system/poly"
)

type options struct {
	checkIrreducible bool
	ctx              context.Context
}

// Option configures [NewField].
type Option func(*options)

// WithIrreducibilityCheck makes [NewField] reject reducible moduli.
// By default irreducibility is only noticed when an inverse fails to exist.
func WithIrreducibilityCheck() Option {
	return func(o *options) {
		o.checkIrreducible = true
	}
}

// WithContext sets the context observed by the eager irreducibility check.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// Field is the quotient ring GF(p)[x]/(f) for a prime p and a monic f.
// It is a field exactly when f is irreducible.
//
// Field is not safe for concurrent use.
// Use [*Field.ShallowCopy] to get a copy for another goroutine.
type Field struct {
	ring *bigring.Ring
	f    poly.Poly
	x    poly.Poly
	one  poly.Poly
}

// NewField creates a new Field over GF(p) with polynomial modulus f.
// Returns InvalidModulusError if p is not prime or deg(f) < 1.
func NewField(p *big.Int, f poly.Poly, params modular.Parameters, opts ...Option) (*Field, error) {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	r, err := bigring.NewRing(p, params)
	if err != nil {
		return nil, err
	}
	if !r.Zn().IsPrimeModulus() {
		return nil, errs.New(errs.InvalidModulus, "field characteristic must be prime, got %v", p)
	}

	fr := r.Reduce(f)
	if fr.IsZero() || fr.Degree() < 1 {
		return nil, errs.New(errs.InvalidModulus, "polynomial modulus must have degree at least 1, got %v", fr)
	}
	fm, err := r.Monic(fr)
	if err != nil {
		return nil, err
	}

	F := &Field{
		ring: r,
		f:    fm,
		x:    poly.Monomial(1, 1),
		one:  poly.Monomial(1, 0),
	}

	if o.checkIrreducible {
		ok, err := F.IsIrreducible(o.ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errs.New(errs.InvalidModulus, "polynomial modulus %v is reducible over GF(%v)", fm, p)
		}
	}
	return F, nil
}

// ShallowCopy creates a copy of Field that is thread-safe.
func (F *Field) ShallowCopy() *Field {
	return &Field{
		ring: F.ring.ShallowCopy(),
		f:    F.f,
		x:    F.x,
		one:  F.one,
	}
}

// Characteristic returns p.
func (F *Field) Characteristic() *big.Int {
	return F.ring.Modulus()
}

// Modulus returns the monic polynomial modulus f.
func (F *Field) Modulus() poly.Poly {
	return F.f
}

// Degree returns deg(f).
func (F *Field) Degree() int {
	return F.f.Degree()
}

// Size returns p^deg(f).
func (F *Field) Size() *big.Int {
	return big.NewInt(0).Exp(F.ring.Modulus(), big.NewInt(int64(F.Degree())), nil)
}

// Ring returns the underlying polynomial ring over GF(p).
func (F *Field) Ring() *bigring.Ring {
	return F.ring
}

// Reduce returns a mod f.
func (F *Field) Reduce(a poly.Poly) poly.Poly {
	// f is monic, so the division cannot fail.
	rem, err := F.ring.Rem(a, F.f)
	if err != nil {
		panic(err)
	}
	return rem
}

// Add returns a + b.
func (F *Field) Add(a, b poly.Poly) poly.Poly {
	return F.Reduce(F.ring.Add(a, b))
}

// Sub returns a - b.
func (F *Field) Sub(a, b poly.Poly) poly.Poly {
	return F.Reduce(F.ring.Sub(a, b))
}

// Neg returns -a.
func (F *Field) Neg(a poly.Poly) poly.Poly {
	return F.Reduce(F.ring.Neg(a))
}

// Mul returns a * b.
func (F *Field) Mul(a, b poly.Poly) poly.Poly {
	pOut, err := F.ring.MulMod(a, b, F.f)
	if err != nil {
		panic(err)
	}
	return pOut
}

// Inverse returns a^-1 by the extended Euclidean algorithm against f.
// Returns NotInvertibleError if gcd(a, f) is not a nonzero constant.
func (F *Field) Inverse(a poly.Poly) (poly.Poly, error) {
	r0, r1 := F.f, F.Reduce(a)
	if r1.IsZero() {
		return poly.Poly{}, errs.New(errs.NotInvertible, "0 has no inverse modulo %v", F.f)
	}

	s0, s1 := poly.Poly{}, F.one
	for !r1.IsZero() {
		q, r, err := F.ring.DivMod(r0, r1)
		if err != nil {
			return poly.Poly{}, errs.Note(err, "cannot invert %v", a)
		}
		r0, r1 = r1, r
		s0, s1 = s1, F.ring.Sub(s0, F.ring.Mul(q, s1))
	}

	if r0.Degree() > 0 {
		return poly.Poly{}, errs.New(errs.NotInvertible, "%v is not invertible: gcd with %v is %v, the modulus may be reducible", a, F.f, r0)
	}

	c, err := F.ring.Zn().Inverse(r0.Lead().Big())
	if err != nil {
		return poly.Poly{}, errs.Note(err, "cannot invert %v", a)
	}
	return F.Reduce(F.ring.ScalarMul(s0, c)), nil
}

// Div returns a * b^-1.
func (F *Field) Div(a, b poly.Poly) (poly.Poly, error) {
	bInv, err := F.Inverse(b)
	if err != nil {
		return poly.Poly{}, errs.Note(err, "cannot divide by %v", b)
	}
	return F.Mul(a, bInv), nil
}

// Pow returns a^e. Negative exponents invert a first.
func (F *Field) Pow(a poly.Poly, e *big.Int) (poly.Poly, error) {
	if e.Sign() < 0 {
		aInv, err := F.Inverse(a)
		if err != nil {
			return poly.Poly{}, err
		}
		return F.pow(aInv, big.NewInt(0).Neg(e)), nil
	}
	return F.pow(a, e), nil
}

func (F *Field) pow(a poly.Poly, e *big.Int) poly.Poly {
	pOut, err := F.ring.PowMod(a, e, F.f)
	if err != nil {
		panic(err)
	}
	return pOut
}

// Equal reports whether a and b are the same element.
func (F *Field) Equal(a, b poly.Poly) bool {
	return F.Reduce(a).Equal(F.Reduce(b))
}
