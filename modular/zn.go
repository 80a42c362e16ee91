package modular

import (
	"math/big"
	"math/bits"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/num"
	"github.com/tuneinsight/lattigo/v6/ring"
)

// wordBits is the largest modulus bit length served by the lattigo Barrett kernels.
const wordBits = 61

// Zn is the ring of integers modulo m.
// All outputs are reduced into [0, m).
//
// Zn is not safe for concurrent use.
// Use [*Zn.ShallowCopy] to get a copy for another goroutine.
type Zn struct {
	*Toolkit

	m       *big.Int
	reducer *Reducer

	prime     bool
	primeDone bool
}

// NewZn creates a new Zn for m > 1 with the given parameters.
func NewZn(m *big.Int, params Parameters) (*Zn, error) {
	return newZn(m, NewToolkit(params))
}

func newZn(m *big.Int, t *Toolkit) (*Zn, error) {
	if m.Cmp(bigOne) <= 0 {
		return nil, errs.New(errs.InvalidModulus, "modulus must be greater than 1, got %v", m)
	}

	q := big.NewInt(0).Set(m)
	return &Zn{
		Toolkit: t,

		m:       q,
		reducer: NewReducer(q),
	}, nil
}

// ShallowCopy creates a copy of Zn that is thread-safe.
func (z *Zn) ShallowCopy() *Zn {
	return &Zn{
		Toolkit: z.Toolkit.ShallowCopy(),

		m:       z.m,
		reducer: z.reducer.ShallowCopy(),

		prime:     z.prime,
		primeDone: z.primeDone,
	}
}

// Modulus returns the modulus m.
func (z *Zn) Modulus() *big.Int {
	return big.NewInt(0).Set(z.m)
}

// IsPrimeModulus reports whether m is prime.
// The result is cached.
func (z *Zn) IsPrimeModulus() bool {
	if !z.primeDone {
		z.prime = z.isPrime(z.m, z.Parameters.PrimalityRounds())
		z.primeDone = true
	}
	return z.prime
}

func (z *Zn) requirePrime(op string) error {
	if !z.IsPrimeModulus() {
		return errs.New(errs.InvalidModulus, "%s requires a prime modulus, got %v", op, z.m)
	}
	return nil
}

// Reduce returns x mod m in [0, m).
func (z *Zn) Reduce(x *big.Int) *big.Int {
	xOut := big.NewInt(0).Set(x)
	z.reducer.ReduceAny(xOut)
	return xOut
}

// Add returns x + y mod m.
func (z *Zn) Add(x, y *big.Int) *big.Int {
	xOut := big.NewInt(0).Add(x, y)
	z.reducer.ReduceAny(xOut)
	return xOut
}

// Sub returns x - y mod m.
func (z *Zn) Sub(x, y *big.Int) *big.Int {
	xOut := big.NewInt(0).Sub(x, y)
	z.reducer.ReduceAny(xOut)
	return xOut
}

// Neg returns -x mod m.
func (z *Zn) Neg(x *big.Int) *big.Int {
	xOut := big.NewInt(0).Neg(x)
	z.reducer.ReduceAny(xOut)
	return xOut
}

// Mul returns x * y mod m.
func (z *Zn) Mul(x, y *big.Int) *big.Int {
	xOut := big.NewInt(0)
	z.MulAssign(z.Reduce(x), z.Reduce(y), xOut)
	return xOut
}

// MulAssign computes xOut = x * y mod m for x, y already in [0, m).
func (z *Zn) MulAssign(x, y, xOut *big.Int) {
	z.reducer.MulAssign(x, y, xOut)
}

// Inverse returns the inverse of x mod m.
// Returns NotInvertibleError if gcd(x, m) != 1.
func (z *Zn) Inverse(x *big.Int) (*big.Int, error) {
	xr := z.Reduce(x)
	if z.m.IsUint64() {
		xw, mw := xr.Uint64(), z.m.Uint64()
		if g := num.GCD(xw, mw); g != 1 {
			return nil, errs.New(errs.NotInvertible, "%v is not invertible modulo %v: gcd is %d", x, z.m, g)
		}
		return big.NewInt(0).SetUint64(num.ModInverse(xw, mw)), nil
	}

	xOut := big.NewInt(0)
	if xOut.ModInverse(xr, z.m) == nil {
		g := big.NewInt(0).GCD(nil, nil, xr, z.m)
		return nil, errs.New(errs.NotInvertible, "%v is not invertible modulo %v: gcd is %v", x, z.m, g)
	}
	return xOut, nil
}

// Div returns x * y^-1 mod m.
// Returns NotInvertibleError if gcd(y, m) != 1.
func (z *Zn) Div(x, y *big.Int) (*big.Int, error) {
	yInv, err := z.Inverse(y)
	if err != nil {
		return nil, errs.Note(err, "cannot divide %v by %v", x, y)
	}
	return z.Mul(x, yInv), nil
}

// Exp returns x^e mod m by square-and-multiply.
// A negative e raises the inverse of x, so x must be a unit.
func (z *Zn) Exp(x, e *big.Int) (*big.Int, error) {
	base := z.Reduce(x)
	if e.Sign() < 0 {
		inv, err := z.Inverse(base)
		if err != nil {
			return nil, errs.Note(err, "cannot raise %v to negative power %v", x, e)
		}
		return z.exp(inv, big.NewInt(0).Neg(e)), nil
	}
	return z.exp(base, e), nil
}

// exp assumes x in [0, m) and e >= 0.
func (z *Zn) exp(x, e *big.Int) *big.Int {
	if z.m.IsUint64() && e.IsUint64() {
		return big.NewInt(0).SetUint64(expWord(x.Uint64(), e.Uint64(), z.m.Uint64()))
	}

	xOut := big.NewInt(1)
	xOut.Mod(xOut, z.m)
	buf := big.NewInt(0)
	for i := e.BitLen() - 1; i >= 0; i-- {
		z.MulAssign(xOut, xOut, buf)
		xOut, buf = buf, xOut
		if e.Bit(i) == 1 {
			z.MulAssign(xOut, x, buf)
			xOut, buf = buf, xOut
		}
	}
	return xOut
}

// expWord returns x^e mod m for word-size inputs with x < m.
func expWord(x, e, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	if bits.Len64(m) <= wordBits {
		return ring.ModExp(x, e, m)
	}
	return num.ModExp(x, e, m)
}

// IsUnit reports whether gcd(x, m) = 1.
func (z *Zn) IsUnit(x *big.Int) bool {
	g := big.NewInt(0).GCD(nil, nil, z.Reduce(x), z.m)
	return g.Cmp(bigOne) == 0
}
