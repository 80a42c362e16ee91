package calc

import (
	"context"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/expr"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
)

func (c *Calculator) binary(ctx context.Context, a, b, m string, op func(z *modular.Zn, x, y *big.Int) (*big.Int, error)) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		x, err := parseInt("operand a", a)
		if err != nil {
			return "", err
		}
		y, err := parseInt("operand b", b)
		if err != nil {
			return "", err
		}
		z, err := c.newZn(m)
		if err != nil {
			return "", err
		}
		v, err := op(z, x, y)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	})
}

// Add returns a + b mod m.
func (c *Calculator) Add(ctx context.Context, a, b, m string) (string, error) {
	return c.binary(ctx, a, b, m, func(z *modular.Zn, x, y *big.Int) (*big.Int, error) {
		return z.Add(x, y), nil
	})
}

// Sub returns a - b mod m.
func (c *Calculator) Sub(ctx context.Context, a, b, m string) (string, error) {
	return c.binary(ctx, a, b, m, func(z *modular.Zn, x, y *big.Int) (*big.Int, error) {
		return z.Sub(x, y), nil
	})
}

// Mul returns a * b mod m.
func (c *Calculator) Mul(ctx context.Context, a, b, m string) (string, error) {
	return c.binary(ctx, a, b, m, func(z *modular.Zn, x, y *big.Int) (*big.Int, error) {
		return z.Mul(x, y), nil
	})
}

// Div returns a * b^-1 mod m.
func (c *Calculator) Div(ctx context.Context, a, b, m string) (string, error) {
	return c.binary(ctx, a, b, m, (*modular.Zn).Div)
}

// FastPow returns a^e mod m.
func (c *Calculator) FastPow(ctx context.Context, a, e, m string) (string, error) {
	return c.binary(ctx, a, e, m, (*modular.Zn).Exp)
}

// Inverse returns a^-1 mod m.
func (c *Calculator) Inverse(ctx context.Context, a, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		x, err := parseInt("operand a", a)
		if err != nil {
			return "", err
		}
		z, err := c.newZn(m)
		if err != nil {
			return "", err
		}
		v, err := z.Inverse(x)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	})
}

func (c *Calculator) factorize(ctx context.Context, n, m string, pollard bool) ([]string, error) {
	return Run(ctx, c.opts.Timeout, func(ctx context.Context) ([]string, error) {
		x, err := parseInt("operand n", n)
		if err != nil {
			return nil, err
		}
		if err := parsePlaceholder("modulus", m); err != nil {
			return nil, err
		}

		var f modular.Factorizer = modular.NewNaiveFactorizer()
		if pollard {
			f = modular.NewPollardFactorizer(c.newToolkit())
		}
		factors, err := f.Factorize(ctx, x)
		if err != nil {
			return nil, err
		}
		return strs(factors), nil
	})
}

// FactorizePollard returns the prime factors of n in ascending order, found by Pollard's rho.
// m is accepted for compatibility and ignored once validated.
func (c *Calculator) FactorizePollard(ctx context.Context, n, m string) ([]string, error) {
	return c.factorize(ctx, n, m, true)
}

// FactorizeSimple returns the prime factors of n in ascending order, found by trial division.
// m is accepted for compatibility and ignored once validated.
func (c *Calculator) FactorizeSimple(ctx context.Context, n, m string) ([]string, error) {
	return c.factorize(ctx, n, m, false)
}

// DiscreteSqrt returns the square roots of n modulo a prime m in ascending order.
func (c *Calculator) DiscreteSqrt(ctx context.Context, n, m string) ([]string, error) {
	return Run(ctx, c.opts.Timeout, func(ctx context.Context) ([]string, error) {
		x, err := parseInt("operand n", n)
		if err != nil {
			return nil, err
		}
		z, err := c.newZn(m)
		if err != nil {
			return nil, err
		}
		roots, err := z.Sqrt(x)
		if err != nil {
			return nil, err
		}
		return strs(roots), nil
	})
}

// DiscreteLog returns the smallest x with base^x = n mod m.
func (c *Calculator) DiscreteLog(ctx context.Context, n, base, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		x, err := parseInt("operand n", n)
		if err != nil {
			return "", err
		}
		b, err := parseInt("base", base)
		if err != nil {
			return "", err
		}
		z, err := c.newZn(m)
		if err != nil {
			return "", err
		}
		v, err := z.Log(ctx, x, b)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	})
}

// Order returns the multiplicative order of n modulo m.
func (c *Calculator) Order(ctx context.Context, n, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		x, err := parseInt("operand n", n)
		if err != nil {
			return "", err
		}
		z, err := c.newZn(m)
		if err != nil {
			return "", err
		}
		v, err := z.Order(ctx, x)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	})
}

// IsGenerator reports whether n generates the multiplicative group modulo a prime m.
func (c *Calculator) IsGenerator(ctx context.Context, n, m string) (bool, error) {
	return Run(ctx, c.opts.Timeout, func(ctx context.Context) (bool, error) {
		x, err := parseInt("operand n", n)
		if err != nil {
			return false, err
		}
		z, err := c.newZn(m)
		if err != nil {
			return false, err
		}
		return z.IsGenerator(ctx, x)
	})
}

func (c *Calculator) totient(ctx context.Context, n, m string, carmichael bool) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		x, err := parseInt("operand n", n)
		if err != nil {
			return "", err
		}
		if err := parsePlaceholder("modulus", m); err != nil {
			return "", err
		}

		t := c.newToolkit()
		var v *big.Int
		if carmichael {
			v, err = t.Carmichael(ctx, x)
		} else {
			v, err = t.Euler(ctx, x)
		}
		if err != nil {
			return "", err
		}
		return v.String(), nil
	})
}

// EulerFunction returns φ(n). m is accepted for compatibility and ignored once validated.
func (c *Calculator) EulerFunction(ctx context.Context, n, m string) (string, error) {
	return c.totient(ctx, n, m, false)
}

// CarmichaelFunction returns λ(n). m is accepted for compatibility and ignored once validated.
func (c *Calculator) CarmichaelFunction(ctx context.Context, n, m string) (string, error) {
	return c.totient(ctx, n, m, true)
}

// IsPrime runs the Miller-Rabin test on n with the given number of iterations.
// m is accepted for compatibility and ignored once validated.
func (c *Calculator) IsPrime(ctx context.Context, n, m, iterations string) (bool, error) {
	return Run(ctx, c.opts.Timeout, func(ctx context.Context) (bool, error) {
		x, err := parseInt("operand n", n)
		if err != nil {
			return false, err
		}
		if err := parsePlaceholder("modulus", m); err != nil {
			return false, err
		}
		k, err := parseInt("iterations", iterations)
		if err != nil {
			return false, err
		}
		if !k.IsInt64() || k.Int64() > 1<<16 {
			return false, errs.New(errs.InvalidArgument, "iterations must be at most %d, got %v", 1<<16, k)
		}
		return c.newToolkit().IsPrime(x, int(k.Int64()))
	})
}

// RandomPrime returns a prime in [lo, hi], scanning upwards from a uniform starting point.
func (c *Calculator) RandomPrime(ctx context.Context, lo, hi string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		l, err := parseInt("lower bound", lo)
		if err != nil {
			return "", err
		}
		h, err := parseInt("upper bound", hi)
		if err != nil {
			return "", err
		}
		p, err := c.newToolkit().RandomPrime(ctx, l, h)
		if err != nil {
			return "", err
		}
		return p.String(), nil
	})
}

// Evaluate computes an arithmetic expression modulo m, or over the integers when m is 0.
func (c *Calculator) Evaluate(ctx context.Context, expression, m string) (string, error) {
	return c.run(ctx, func(ctx context.Context) (string, error) {
		n, err := parseInt("modulus", m)
		if err != nil {
			return "", err
		}
		v, err := expr.Eval(ctx, expression, n, c.opts.Parameters)
		if err != nil {
			return "", err
		}
		return v.String(), nil
	})
}
