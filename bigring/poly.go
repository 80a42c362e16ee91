package bigring

import "math/big"

// BigPoly is a dense polynomial with coefficients in ascending degree.
// Trailing zero coefficients are allowed; the dense operations trim them.
type BigPoly struct {
	Coeffs []*big.Int
}

func newCoeffs(N int) []*big.Int {
	coeffs := make([]*big.Int, N)
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
	}
	return coeffs
}

// NewBigPoly creates a new BigPoly with N zero coefficients.
func NewBigPoly(N int) BigPoly {
	return BigPoly{Coeffs: newCoeffs(N)}
}

// Degree returns the index of the highest nonzero coefficient, or -1 for zero.
func (p BigPoly) Degree() int {
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		if p.Coeffs[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

// Copy returns a deep copy of p.
func (p BigPoly) Copy() BigPoly {
	pOut := NewBigPoly(len(p.Coeffs))
	for i, c := range p.Coeffs {
		pOut.Coeffs[i].Set(c)
	}
	return pOut
}

func (p *BigPoly) trim() {
	p.Coeffs = p.Coeffs[:p.Degree()+1]
}

// BigNTTPoly holds the evaluations of a BigPoly at the powers of a root of unity.
type BigNTTPoly struct {
	Coeffs []*big.Int
}

// NewBigNTTPoly creates a new BigNTTPoly with N zero slots.
func NewBigNTTPoly(N int) BigNTTPoly {
	return BigNTTPoly{Coeffs: newCoeffs(N)}
}
