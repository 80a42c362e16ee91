package modular

import (
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
)

// Jacobi returns the Jacobi symbol (a/n) for odd n > 0.
func Jacobi(a, n *big.Int) (int, error) {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		return 0, errs.New(errs.InvalidArgument, "jacobi symbol needs an odd positive modulus, got %v", n)
	}
	return big.Jacobi(big.NewInt(0).Mod(a, n), n), nil
}

// legendre returns the Legendre symbol (a/p) for the odd prime modulus p.
func (z *Zn) legendre(a *big.Int) int {
	j, err := Jacobi(a, z.m)
	if err != nil {
		panic(err)
	}
	return j
}

// Sqrt returns every x in [0, p) with x^2 = n mod p, in ascending order.
// The modulus must be prime.
// There is a single root when n = 0 mod p or p = 2.
func (z *Zn) Sqrt(n *big.Int) ([]*big.Int, error) {
	if err := z.requirePrime("square root"); err != nil {
		return nil, err
	}

	a := z.Reduce(n)
	if a.Sign() == 0 || z.m.Cmp(bigTwo) == 0 {
		return []*big.Int{a}, nil
	}

	if z.legendre(a) != 1 {
		return nil, errs.New(errs.NoSolution, "%v is a quadratic non-residue modulo %v", n, z.m)
	}

	var r *big.Int
	if z.m.Bit(1) == 1 {
		// p = 3 mod 4
		e := big.NewInt(0).Add(z.m, bigOne)
		e.Rsh(e, 2)
		r = z.exp(a, e)
	} else {
		r = z.tonelliShanks(a)
	}

	s := z.Neg(r)
	if s.Cmp(r) < 0 {
		r, s = s, r
	}
	return []*big.Int{r, s}, nil
}

// tonelliShanks assumes a is a nonzero quadratic residue modulo an odd prime.
func (z *Zn) tonelliShanks(a *big.Int) *big.Int {
	pMinusOne := big.NewInt(0).Sub(z.m, bigOne)
	s := pMinusOne.TrailingZeroBits()
	q := big.NewInt(0).Rsh(pMinusOne, s)

	nonResidue := big.NewInt(2)
	for z.legendre(nonResidue) != -1 {
		nonResidue.Add(nonResidue, bigOne)
	}

	m := s
	c := z.exp(nonResidue, q)
	t := z.exp(a, q)
	e := big.NewInt(0).Add(q, bigOne)
	r := z.exp(a, e.Rsh(e, 1))

	t2 := big.NewInt(0)
	b := big.NewInt(0)
	for t.Cmp(bigOne) != 0 {
		i := uint(0)
		t2.Set(t)
		for t2.Cmp(bigOne) != 0 {
			z.MulAssign(t2, t2, t2)
			i++
		}

		b.Set(c)
		for j := uint(0); j < m-i-1; j++ {
			z.MulAssign(b, b, b)
		}

		m = i
		z.MulAssign(b, b, c)
		z.MulAssign(t, c, t)
		z.MulAssign(r, b, r)
	}
	return r
}
