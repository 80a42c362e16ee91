package calc

import (
	"context"

	"github.com/MouseCreator/Long-arithmetic-system/bigring"
	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/field"
	"github.com/MouseCreator/Long-arithmetic-system/poly"
)

// PolyParse splits a polynomial expression into its terms, in input order.
func (c *Calculator) PolyParse(ctx context.Context, s string) ([]poly.Term, error) {
	return Run(ctx, c.opts.Timeout, func(ctx context.Context) ([]poly.Term, error) {
		return poly.Parse(s)
	})
}

func (c *Calculator) polyBinary(ctx context.Context, a, b, m string, op func(r *bigring.Ring, p0, p1 poly.Poly) (poly.Poly, error)) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		p0, err := parsePoly("polynomial a", a)
		if err != nil {
			return "", err
		}
		p1, err := parsePoly("polynomial b", b)
		if err != nil {
			return "", err
		}
		r, err := c.newRing(m)
		if err != nil {
			return "", err
		}
		p, err := op(r, p0, p1)
		if err != nil {
			return "", err
		}
		return p.String(), nil
	})
}

// PolyAdd returns a + b over ℤ/mℤ.
func (c *Calculator) PolyAdd(ctx context.Context, a, b, m string) (string, error) {
	return c.polyBinary(ctx, a, b, m, func(r *bigring.Ring, p0, p1 poly.Poly) (poly.Poly, error) {
		return r.Add(p0, p1), nil
	})
}

// PolySub returns a - b over ℤ/mℤ.
func (c *Calculator) PolySub(ctx context.Context, a, b, m string) (string, error) {
	return c.polyBinary(ctx, a, b, m, func(r *bigring.Ring, p0, p1 poly.Poly) (poly.Poly, error) {
		return r.Sub(p0, p1), nil
	})
}

// PolyMul returns a * b over ℤ/mℤ.
func (c *Calculator) PolyMul(ctx context.Context, a, b, m string) (string, error) {
	return c.polyBinary(ctx, a, b, m, func(r *bigring.Ring, p0, p1 poly.Poly) (poly.Poly, error) {
		return r.Mul(p0, p1), nil
	})
}

// PolyDiv returns the quotient of a / b over ℤ/mℤ.
func (c *Calculator) PolyDiv(ctx context.Context, a, b, m string) (string, error) {
	return c.polyBinary(ctx, a, b, m, (*bigring.Ring).Quo)
}

// PolyRest returns the remainder of a / b over ℤ/mℤ.
func (c *Calculator) PolyRest(ctx context.Context, a, b, m string) (string, error) {
	return c.polyBinary(ctx, a, b, m, (*bigring.Ring).Rem)
}

// PolyGCD returns gcd(a, b) over ℤ/mℤ.
func (c *Calculator) PolyGCD(ctx context.Context, a, b, m string) (string, error) {
	return c.polyBinary(ctx, a, b, m, (*bigring.Ring).GCD)
}

// PolyDerivative returns the formal derivative of a over ℤ/mℤ.
func (c *Calculator) PolyDerivative(ctx context.Context, a, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		p, err := parsePoly("polynomial a", a)
		if err != nil {
			return "", err
		}
		r, err := c.newRing(m)
		if err != nil {
			return "", err
		}
		return r.Derivative(p).String(), nil
	})
}

// PolyEvaluate returns a(x) mod m.
func (c *Calculator) PolyEvaluate(ctx context.Context, a, m, x string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		p, err := parsePoly("polynomial a", a)
		if err != nil {
			return "", err
		}
		xb, err := parseInt("point x", x)
		if err != nil {
			return "", err
		}
		r, err := c.newRing(m)
		if err != nil {
			return "", err
		}
		return r.Evaluate(p, xb).String(), nil
	})
}

// Cyclotomic returns the cyclotomic polynomial of the given order modulo m.
func (c *Calculator) Cyclotomic(ctx context.Context, order, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		n, err := parseInt("order", order)
		if err != nil {
			return "", err
		}
		if !n.IsInt64() || n.Int64() < 1 || n.Int64() > poly.MaxDegree {
			return "", errs.New(errs.InvalidArgument, "cyclotomic order must be in [1, %d], got %v", poly.MaxDegree, n)
		}
		r, err := c.newRing(m)
		if err != nil {
			return "", err
		}
		p, err := r.Cyclotomic(int(n.Int64()))
		if err != nil {
			return "", err
		}
		return p.String(), nil
	})
}

func (c *Calculator) fieldBinary(ctx context.Context, a, b, f, m string, op func(F *field.Field, p0, p1 poly.Poly) (poly.Poly, error)) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		p0, err := parsePoly("polynomial a", a)
		if err != nil {
			return "", err
		}
		p1, err := parsePoly("polynomial b", b)
		if err != nil {
			return "", err
		}
		F, err := c.newField(f, m)
		if err != nil {
			return "", err
		}
		p, err := op(F, p0, p1)
		if err != nil {
			return "", err
		}
		return p.String(), nil
	})
}

// FieldAdd returns a + b in GF(m)[x]/(f).
func (c *Calculator) FieldAdd(ctx context.Context, a, b, f, m string) (string, error) {
	return c.fieldBinary(ctx, a, b, f, m, func(F *field.Field, p0, p1 poly.Poly) (poly.Poly, error) {
		return F.Add(p0, p1), nil
	})
}

// FieldSub returns a - b in GF(m)[x]/(f).
func (c *Calculator) FieldSub(ctx context.Context, a, b, f, m string) (string, error) {
	return c.fieldBinary(ctx, a, b, f, m, func(F *field.Field, p0, p1 poly.Poly) (poly.Poly, error) {
		return F.Sub(p0, p1), nil
	})
}

// FieldMul returns a * b in GF(m)[x]/(f).
func (c *Calculator) FieldMul(ctx context.Context, a, b, f, m string) (string, error) {
	return c.fieldBinary(ctx, a, b, f, m, func(F *field.Field, p0, p1 poly.Poly) (poly.Poly, error) {
		return F.Mul(p0, p1), nil
	})
}

// FieldDiv returns a * b^-1 in GF(m)[x]/(f).
func (c *Calculator) FieldDiv(ctx context.Context, a, b, f, m string) (string, error) {
	return c.fieldBinary(ctx, a, b, f, m, (*field.Field).Div)
}

// FieldInverse returns a^-1 in GF(m)[x]/(f).
func (c *Calculator) FieldInverse(ctx context.Context, a, f, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		p, err := parsePoly("polynomial a", a)
		if err != nil {
			return "", err
		}
		F, err := c.newField(f, m)
		if err != nil {
			return "", err
		}
		inv, err := F.Inverse(p)
		if err != nil {
			return "", err
		}
		return inv.String(), nil
	})
}

// FieldPow returns a^e in GF(m)[x]/(f).
func (c *Calculator) FieldPow(ctx context.Context, a, e, f, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		p, err := parsePoly("polynomial a", a)
		if err != nil {
			return "", err
		}
		eb, err := parseInt("exponent", e)
		if err != nil {
			return "", err
		}
		F, err := c.newField(f, m)
		if err != nil {
			return "", err
		}
		pOut, err := F.Pow(p, eb)
		if err != nil {
			return "", err
		}
		return pOut.String(), nil
	})
}

// FieldIsIrreducible reports whether f is irreducible over GF(m).
func (c *Calculator) FieldIsIrreducible(ctx context.Context, f, m string) (bool, error) {
	return Run(ctx, c.opts.Timeout, func(ctx context.Context) (bool, error) {
		F, err := c.newField(f, m)
		if err != nil {
			return false, err
		}
		return F.IsIrreducible(ctx)
	})
}
