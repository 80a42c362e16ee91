// Package expr evaluates arithmetic expressions over ℤ or ℤ/nℤ.
package expr

import (
	"context"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/bigint"
	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
	log "github.com/sirupsen/logrus"
)

// MaxResultBits bounds the size of integer powers evaluated over ℤ.
const MaxResultBits = 1 << 24

// Evaluator computes the value of parsed expressions.
// With a modulus n > 1 it works in ℤ/nℤ and returns values in [0, n),
// with n = 0 it works in ℤ.
//
// Evaluator is not safe for concurrent use.
type Evaluator struct {
	toolkit *modular.Toolkit
	zn      *modular.Zn
}

// NewEvaluator creates a new Evaluator for modulus n.
// Returns InvalidModulusError if n is negative or 1.
func NewEvaluator(n *big.Int, params modular.Parameters) (*Evaluator, error) {
	t := modular.NewToolkit(params)
	if n.Sign() == 0 {
		return &Evaluator{toolkit: t}, nil
	}
	if n.Sign() < 0 {
		return nil, errs.New(errs.InvalidModulus, "modulus must be non-negative, got %v", n)
	}

	z, err := t.NewZn(n)
	if err != nil {
		return nil, err
	}
	return &Evaluator{toolkit: t, zn: z}, nil
}

// Eval parses src and evaluates it modulo n.
func Eval(ctx context.Context, src string, n *big.Int, params modular.Parameters) (*big.Int, error) {
	node, err := Parse(src)
	if err != nil {
		return nil, err
	}
	e, err := NewEvaluator(n, params)
	if err != nil {
		return nil, err
	}
	return e.Eval(ctx, node)
}

// Eval evaluates node.
func (e *Evaluator) Eval(ctx context.Context, node Node) (*big.Int, error) {
	if err := errs.Check(ctx); err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case *Number:
		return e.reduce(n.Value), nil

	case *Unary:
		x, err := e.Eval(ctx, n.X)
		if err != nil {
			return nil, err
		}
		if n.Op == SUB {
			return e.reduce(big.NewInt(0).Neg(x)), nil
		}
		return x, nil

	case *Binary:
		x, err := e.Eval(ctx, n.X)
		if err != nil {
			return nil, err
		}
		y, err := e.Eval(ctx, n.Y)
		if err != nil {
			return nil, err
		}
		v, err := e.binary(n.Op, x, y)
		if err != nil {
			return nil, errs.Note(err, "cannot evaluate %v at position %d", n, n.At)
		}
		return v, nil

	case *Call:
		args := make([]*big.Int, len(n.Args))
		for i, a := range n.Args {
			v, err := e.Eval(ctx, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		v, err := e.call(ctx, n.Name, args)
		if err != nil {
			return nil, errs.Note(err, "cannot evaluate %v at position %d", n, n.At)
		}
		return v, nil
	}

	panic("unknown node type")
}

func (e *Evaluator) reduce(x *big.Int) *big.Int {
	if e.zn == nil {
		return big.NewInt(0).Set(x)
	}
	return e.zn.Reduce(x)
}

func (e *Evaluator) binary(op uint, x, y *big.Int) (*big.Int, error) {
	switch op {
	case ADD:
		return e.reduce(big.NewInt(0).Add(x, y)), nil
	case SUB:
		return e.reduce(big.NewInt(0).Sub(x, y)), nil
	case MUL:
		return e.reduce(big.NewInt(0).Mul(x, y)), nil
	case DIV:
		if e.zn != nil {
			return e.zn.Div(x, y)
		}
		q, err := bigint.FromBig(x).Quo(bigint.FromBig(y))
		return q.Big(), err
	case REM:
		r, err := bigint.FromBig(x).Rem(bigint.FromBig(y))
		if err != nil {
			return nil, err
		}
		return e.reduce(r.Big()), nil
	case POW:
		return e.pow(x, y)
	}
	panic("unknown operator")
}

func (e *Evaluator) pow(x, y *big.Int) (*big.Int, error) {
	if e.zn != nil {
		return e.zn.Exp(x, y)
	}

	if y.Sign() < 0 {
		return nil, errs.New(errs.InvalidArgument, "negative exponent %v needs a modulus", y)
	}
	if x.CmpAbs(big.NewInt(1)) <= 0 {
		// 0, 1 and -1 cycle, so the exponent's size does not matter.
		if x.Sign() < 0 && y.Bit(0) == 0 {
			return big.NewInt(1), nil
		}
		if x.Sign() == 0 && y.Sign() == 0 {
			return big.NewInt(1), nil
		}
		return big.NewInt(0).Set(x), nil
	}
	if !y.IsInt64() || y.Int64() > MaxResultBits || y.Int64()*int64(x.BitLen()-1) > MaxResultBits {
		return nil, errs.New(errs.InvalidArgument, "%v^%v exceeds %d bits", x, y, MaxResultBits)
	}
	return big.NewInt(0).Exp(x, y, nil), nil
}

func (e *Evaluator) requireModulus(name string) error {
	if e.zn == nil {
		return errs.New(errs.InvalidArgument, "%s needs a modulus", name)
	}
	return nil
}

func (e *Evaluator) call(ctx context.Context, name string, args []*big.Int) (*big.Int, error) {
	switch name {
	case "inv":
		if err := e.requireModulus(name); err != nil {
			return nil, err
		}
		return e.zn.Inverse(args[0])

	case "pow":
		return e.pow(args[0], args[1])

	case "gcd":
		g := big.NewInt(0).GCD(nil, nil, big.NewInt(0).Abs(args[0]), big.NewInt(0).Abs(args[1]))
		return e.reduce(g), nil

	case "lcm":
		a, b := big.NewInt(0).Abs(args[0]), big.NewInt(0).Abs(args[1])
		if a.Sign() == 0 || b.Sign() == 0 {
			return big.NewInt(0), nil
		}
		g := big.NewInt(0).GCD(nil, nil, a, b)
		l := big.NewInt(0).Quo(a, g)
		return e.reduce(l.Mul(l, b)), nil

	case "phi":
		v, err := e.toolkit.Euler(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return e.reduce(v), nil

	case "lambda":
		v, err := e.toolkit.Carmichael(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return e.reduce(v), nil

	case "ord":
		if err := e.requireModulus(name); err != nil {
			return nil, err
		}
		return e.zn.Order(ctx, args[0])

	case "sqrt":
		if e.zn != nil {
			roots, err := e.zn.Sqrt(args[0])
			if err != nil {
				return nil, err
			}
			return roots[0], nil
		}
		x := args[0]
		if x.Sign() < 0 {
			return nil, errs.New(errs.NoSolution, "%v has no integer square root", x)
		}
		r := big.NewInt(0).Sqrt(x)
		if big.NewInt(0).Mul(r, r).Cmp(x) != 0 {
			return nil, errs.New(errs.NoSolution, "%v is not a perfect square", x)
		}
		return r, nil
	}

	log.Debugf("call to unregistered function %q", name)
	return nil, errs.New(errs.Parse, "unknown function %q", name)
}
