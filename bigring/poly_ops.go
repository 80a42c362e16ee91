package bigring

import (
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
)

var bigOne = big.NewInt(1)

// The dense operations below take and return trimmed polynomials
// with coefficients in [0, m). Inputs are never modified.

func (r *Ring) addDense(p0, p1 BigPoly) BigPoly {
	pOut := NewBigPoly(max(len(p0.Coeffs), len(p1.Coeffs)))
	for i := range pOut.Coeffs {
		if i < len(p0.Coeffs) {
			pOut.Coeffs[i].Add(pOut.Coeffs[i], p0.Coeffs[i])
		}
		if i < len(p1.Coeffs) {
			pOut.Coeffs[i].Add(pOut.Coeffs[i], p1.Coeffs[i])
		}
		if pOut.Coeffs[i].Cmp(r.modulus) >= 0 {
			pOut.Coeffs[i].Sub(pOut.Coeffs[i], r.modulus)
		}
	}
	pOut.trim()
	return pOut
}

func (r *Ring) subDense(p0, p1 BigPoly) BigPoly {
	pOut := NewBigPoly(max(len(p0.Coeffs), len(p1.Coeffs)))
	for i := range pOut.Coeffs {
		if i < len(p0.Coeffs) {
			pOut.Coeffs[i].Add(pOut.Coeffs[i], p0.Coeffs[i])
		}
		if i < len(p1.Coeffs) {
			pOut.Coeffs[i].Sub(pOut.Coeffs[i], p1.Coeffs[i])
		}
		if pOut.Coeffs[i].Sign() < 0 {
			pOut.Coeffs[i].Add(pOut.Coeffs[i], r.modulus)
		}
	}
	pOut.trim()
	return pOut
}

func (r *Ring) scalarMulDense(p BigPoly, c *big.Int) BigPoly {
	pOut := NewBigPoly(len(p.Coeffs))
	for i := range p.Coeffs {
		r.reducer.MulAssign(p.Coeffs[i], c, pOut.Coeffs[i])
	}
	pOut.trim()
	return pOut
}

// mulDense is the schoolbook product.
// Partial sums are accumulated unreduced and reduced once per coefficient.
func (r *Ring) mulDense(p0, p1 BigPoly) BigPoly {
	if len(p0.Coeffs) == 0 || len(p1.Coeffs) == 0 {
		return BigPoly{}
	}

	pOut := NewBigPoly(len(p0.Coeffs) + len(p1.Coeffs) - 1)
	prod := big.NewInt(0)
	for i, a := range p0.Coeffs {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range p1.Coeffs {
			pOut.Coeffs[i+j].Add(pOut.Coeffs[i+j], prod.Mul(a, b))
		}
	}
	for _, c := range pOut.Coeffs {
		r.reducer.ReduceAny(c)
	}
	pOut.trim()
	return pOut
}

// leadInverse returns the inverse of the leading coefficient of a divisor.
func (r *Ring) leadInverse(p BigPoly) (*big.Int, error) {
	if len(p.Coeffs) == 0 {
		return nil, errs.New(errs.DivisionByZero, "division by the zero polynomial")
	}

	inv, err := r.zn.Inverse(p.Coeffs[len(p.Coeffs)-1])
	if err != nil {
		return nil, errs.Note(err, "leading coefficient of %v is not a unit", r.FromBigPoly(p))
	}
	return inv, nil
}

func (r *Ring) divModDense(p0, p1 BigPoly) (quo, rem BigPoly, err error) {
	leadInv, err := r.leadInverse(p1)
	if err != nil {
		return BigPoly{}, BigPoly{}, err
	}
	quo, rem = r.divModDenseWith(p0, p1, leadInv)
	return quo, rem, nil
}

// divModDenseWith is schoolbook long division by p1 whose leading coefficient inverts to leadInv.
func (r *Ring) divModDenseWith(p0, p1 BigPoly, leadInv *big.Int) (quo, rem BigPoly) {
	d1 := len(p1.Coeffs) - 1
	rem = p0.Copy()
	if len(p0.Coeffs) <= d1 {
		return BigPoly{}, rem
	}

	quo = NewBigPoly(len(p0.Coeffs) - d1)
	c := big.NewInt(0)
	t := big.NewInt(0)
	for i := len(p0.Coeffs) - 1; i >= d1; i-- {
		if rem.Coeffs[i].Sign() == 0 {
			continue
		}
		r.reducer.MulAssign(rem.Coeffs[i], leadInv, c)
		quo.Coeffs[i-d1].Set(c)
		for j := 0; j <= d1; j++ {
			r.reducer.MulAssign(c, p1.Coeffs[j], t)
			k := i - d1 + j
			rem.Coeffs[k].Sub(rem.Coeffs[k], t)
			if rem.Coeffs[k].Sign() < 0 {
				rem.Coeffs[k].Add(rem.Coeffs[k], r.modulus)
			}
		}
	}

	rem.trim()
	quo.trim()
	return quo, rem
}

func (r *Ring) remDense(p0, p1 BigPoly, leadInv *big.Int) BigPoly {
	_, rem := r.divModDenseWith(p0, p1, leadInv)
	return rem
}

func (r *Ring) monicDense(p BigPoly) (BigPoly, error) {
	if len(p.Coeffs) == 0 {
		return p, nil
	}
	inv, err := r.leadInverse(p)
	if err != nil {
		return BigPoly{}, err
	}
	return r.scalarMulDense(p, inv), nil
}

func (r *Ring) gcdDense(p0, p1 BigPoly) (BigPoly, error) {
	a, b := p0, p1
	for len(b.Coeffs) > 0 {
		_, rem, err := r.divModDense(a, b)
		if err != nil {
			return BigPoly{}, errs.Note(err, "euclidean step failed")
		}
		a, b = b, rem
	}

	if len(a.Coeffs) == 0 || !r.zn.IsUnit(a.Coeffs[len(a.Coeffs)-1]) {
		return a, nil
	}
	return r.monicDense(a)
}

// mulModDense assumes p0 and p1 are already reduced modulo f.
func (r *Ring) mulModDense(p0, p1, f BigPoly, fLeadInv *big.Int) BigPoly {
	if rg := r.nttRingFor(f); rg != nil {
		pOut := NewBigPoly(len(f.Coeffs) - 1)
		rg.MulAssign(p0, p1, pOut)
		pOut.trim()
		return pOut
	}
	return r.remDense(r.mulDense(p0, p1), f, fLeadInv)
}

func (r *Ring) powModDense(p BigPoly, e *big.Int, f BigPoly, fLeadInv *big.Int) BigPoly {
	base := r.remDense(p, f, fLeadInv)

	one := NewBigPoly(1)
	one.Coeffs[0].SetInt64(1)
	pOut := r.remDense(one, f, fLeadInv)

	for i := e.BitLen() - 1; i >= 0; i-- {
		pOut = r.mulModDense(pOut, pOut, f, fLeadInv)
		if e.Bit(i) == 1 {
			pOut = r.mulModDense(pOut, base, f, fLeadInv)
		}
	}
	return pOut
}

// mulXdMinusOne returns p * (x^d - 1).
func (r *Ring) mulXdMinusOne(p BigPoly, d int) BigPoly {
	pOut := NewBigPoly(len(p.Coeffs) + d)
	for i, c := range p.Coeffs {
		pOut.Coeffs[i+d].Add(pOut.Coeffs[i+d], c)
		pOut.Coeffs[i].Sub(pOut.Coeffs[i], c)
	}
	for _, c := range pOut.Coeffs {
		r.reducer.ReduceAny(c)
	}
	return pOut
}

// quoXdMinusOne returns p / (x^d - 1), assuming the division is exact.
func (r *Ring) quoXdMinusOne(p BigPoly, d int) BigPoly {
	n := len(p.Coeffs) - d
	if n <= 0 {
		return BigPoly{}
	}

	// p_{i+d} = q_i - q_{i+d}, so q_i = p_{i+d} + q_{i+d} from the top.
	pOut := NewBigPoly(n)
	for i := n - 1; i >= 0; i-- {
		pOut.Coeffs[i].Set(p.Coeffs[i+d])
		if i+d < n {
			pOut.Coeffs[i].Add(pOut.Coeffs[i], pOut.Coeffs[i+d])
		}
		if pOut.Coeffs[i].Cmp(r.modulus) >= 0 {
			pOut.Coeffs[i].Sub(pOut.Coeffs[i], r.modulus)
		}
	}
	return pOut
}
