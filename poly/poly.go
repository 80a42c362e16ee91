// Package poly implements sparse polynomials with integer coefficients,
// their text parser and their canonical text form.
package poly

import (
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/MouseCreator/Long-arithmetic-system/bigint"
)

// MaxDegree is the largest degree accepted by the parser and the engines.
const MaxDegree = 1 << 20

// Term is a single monomial Coeff * x^Degree.
type Term struct {
	Degree int
	Coeff  bigint.Int
}

// Poly is an immutable polynomial with integer coefficients.
// Terms are kept in strictly decreasing degree with zero coefficients elided.
// The zero value is the zero polynomial.
type Poly struct {
	terms []Term
}

// New combines like degrees of terms, sorts them by decreasing degree and drops zeros.
func New(terms ...Term) Poly {
	sorted := make([]Term, len(terms))
	copy(sorted, terms)
	slices.SortStableFunc(sorted, func(a, b Term) int { return b.Degree - a.Degree })

	out := make([]Term, 0, len(sorted))
	for _, t := range sorted {
		if n := len(out); n > 0 && out[n-1].Degree == t.Degree {
			out[n-1].Coeff = out[n-1].Coeff.Add(t.Coeff)
			continue
		}
		out = append(out, t)
	}

	return Poly{terms: slices.DeleteFunc(out, func(t Term) bool { return t.Coeff.IsZero() })}
}

// FromCoeffs creates a polynomial from dense coefficients in ascending degree.
func FromCoeffs(coeffs []*big.Int) Poly {
	terms := make([]Term, 0, len(coeffs))
	for i := len(coeffs) - 1; i >= 0; i-- {
		if coeffs[i].Sign() != 0 {
			terms = append(terms, Term{Degree: i, Coeff: bigint.FromBig(coeffs[i])})
		}
	}
	return Poly{terms: terms}
}

// Monomial returns c * x^d.
func Monomial(c int64, d int) Poly {
	return New(Term{Degree: d, Coeff: bigint.FromInt64(c)})
}

// Terms returns the terms of p in decreasing degree.
// The zero polynomial is the single term (0, 0).
func (p Poly) Terms() []Term {
	if len(p.terms) == 0 {
		return []Term{{Degree: 0}}
	}
	out := make([]Term, len(p.terms))
	copy(out, p.terms)
	return out
}

// Coeffs returns the dense coefficients of p in ascending degree.
// The zero polynomial has a single zero coefficient.
func (p Poly) Coeffs() []*big.Int {
	coeffs := make([]*big.Int, p.Degree()+1)
	for i := range coeffs {
		coeffs[i] = big.NewInt(0)
	}
	for _, t := range p.terms {
		coeffs[t.Degree] = t.Coeff.Big()
	}
	return coeffs
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.terms) == 0
}

// Degree returns the degree of p.
// The zero polynomial has degree 0.
func (p Poly) Degree() int {
	if p.IsZero() {
		return 0
	}
	return p.terms[0].Degree
}

// Lead returns the leading coefficient of p.
func (p Poly) Lead() bigint.Int {
	if p.IsZero() {
		return bigint.Int{}
	}
	return p.terms[0].Coeff
}

// Coeff returns the coefficient of x^d in p.
func (p Poly) Coeff(d int) bigint.Int {
	for _, t := range p.terms {
		if t.Degree == d {
			return t.Coeff
		}
	}
	return bigint.Int{}
}

// Equal reports whether p and q are the same polynomial.
func (p Poly) Equal(q Poly) bool {
	return slices.EqualFunc(p.terms, q.terms, func(a, b Term) bool {
		return a.Degree == b.Degree && a.Coeff.Equal(b.Coeff)
	})
}

// String returns the canonical form of p, such as "3x^2-x+1".
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}

	var sb strings.Builder
	for i, t := range p.terms {
		c := t.Coeff
		switch {
		case c.Sign() < 0:
			sb.WriteByte('-')
			c = c.Abs()
		case i > 0:
			sb.WriteByte('+')
		}

		if t.Degree == 0 {
			sb.WriteString(c.String())
			continue
		}

		if !c.Equal(bigint.FromInt64(1)) {
			sb.WriteString(c.String())
		}
		sb.WriteByte('x')
		if t.Degree > 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(t.Degree))
		}
	}
	return sb.String()
}
