// Package bigint implements an immutable arbitrary-precision signed integer.
package bigint

import (
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
)

// Int is an immutable arbitrary-precision signed integer.
// The zero value is 0.
type Int struct {
	v *big.Int
}

var zero = big.NewInt(0)

// Parse parses a base-10 integer with an optional leading sign.
// Any other character, or an empty digit string, is a ParseError.
func Parse(s string) (Int, error) {
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return Int{}, errs.New(errs.Parse, "invalid integer %q: no digits", s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Int{}, errs.New(errs.Parse, "invalid integer %q: unexpected symbol %q at %d", s, digits[i], i+len(s)-len(digits))
		}
	}

	v, ok := big.NewInt(0).SetString(s, 10)
	if !ok {
		return Int{}, errs.New(errs.Parse, "invalid integer %q", s)
	}
	return Int{v: v}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// FromBig creates an Int holding a copy of x.
func FromBig(x *big.Int) Int {
	return Int{v: big.NewInt(0).Set(x)}
}

// FromInt64 creates an Int from x.
func FromInt64(x int64) Int {
	return Int{v: big.NewInt(x)}
}

func (x Int) big() *big.Int {
	if x.v == nil {
		return zero
	}
	return x.v
}

// Big returns a copy of x as a *big.Int.
func (x Int) Big() *big.Int {
	return big.NewInt(0).Set(x.big())
}

// String returns the canonical decimal form of x.
func (x Int) String() string {
	return x.big().String()
}

// Sign returns -1, 0 or 1.
func (x Int) Sign() int {
	return x.big().Sign()
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	return x.Sign() == 0
}

// Cmp compares x and y.
func (x Int) Cmp(y Int) int {
	return x.big().Cmp(y.big())
}

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool {
	return x.Cmp(y) == 0
}

// Neg returns -x.
func (x Int) Neg() Int {
	return Int{v: big.NewInt(0).Neg(x.big())}
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{v: big.NewInt(0).Abs(x.big())}
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	return Int{v: big.NewInt(0).Add(x.big(), y.big())}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return Int{v: big.NewInt(0).Sub(x.big(), y.big())}
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return Int{v: big.NewInt(0).Mul(x.big(), y.big())}
}

// QuoRem returns the quotient truncated towards zero and the remainder,
// which has the sign of x.
func (x Int) QuoRem(y Int) (Int, Int, error) {
	if y.IsZero() {
		return Int{}, Int{}, errs.New(errs.DivisionByZero, "division of %v by zero", x)
	}
	q, r := big.NewInt(0).QuoRem(x.big(), y.big(), big.NewInt(0))
	return Int{v: q}, Int{v: r}, nil
}

// Quo returns x / y truncated towards zero.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the remainder of the truncated division x / y.
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// Mod returns x mod |m|, always in [0, |m|).
func (x Int) Mod(m Int) (Int, error) {
	if m.IsZero() {
		return Int{}, errs.New(errs.DivisionByZero, "reduction of %v modulo zero", x)
	}
	// big.Int.Mod is Euclidean, so the result is non-negative for any sign of m.
	return Int{v: big.NewInt(0).Mod(x.big(), m.big())}, nil
}
