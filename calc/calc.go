// Package calc exposes the arithmetic engines through a string-in, string-out interface.
//
// Every operand is a base-10 integer or a polynomial expression, every result
// is returned in canonical text form. Each call runs under the deadline of
// [Options.Timeout] and builds its own engines, so a Calculator may be used
// from several goroutines at once.
package calc

import (
	"context"
	"math/big"
	"time"

	"github.com/MouseCreator/Long-arithmetic-system/bigint"
	"github.com/MouseCreator/Long-arithmetic-system/bigring"
	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/field"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
	"github.com/MouseCreator/Long-arithmetic-system/poly"
)

// DefaultTimeout is the deadline applied to a single call.
const DefaultTimeout = 10 * time.Second

// Options configures a Calculator.
type Options struct {
	Parameters modular.Parameters
	// Timeout bounds each call. Zero or negative disables the deadline.
	Timeout time.Duration
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Parameters: modular.DefaultParameters(),
		Timeout:    DefaultTimeout,
	}
}

// Calculator is the request façade.
type Calculator struct {
	opts Options
}

// New creates a new Calculator.
func New(opts Options) *Calculator {
	return &Calculator{opts: opts}
}

// Options returns the options of c.
func (c *Calculator) Options() Options {
	return c.opts
}

func (c *Calculator) run(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	return Run(ctx, c.opts.Timeout, fn)
}

func parseInt(name, s string) (*big.Int, error) {
	x, err := bigint.Parse(s)
	if err != nil {
		return nil, errs.Note(err, "invalid %s", name)
	}
	return x.Big(), nil
}

// parsePlaceholder validates an operand that is accepted for compatibility but not used.
func parsePlaceholder(name, s string) error {
	if s == "" {
		return nil
	}
	_, err := parseInt(name, s)
	return err
}

func parsePoly(name, s string) (poly.Poly, error) {
	p, err := poly.ParsePoly(s)
	if err != nil {
		return poly.Poly{}, errs.Note(err, "invalid %s", name)
	}
	return p, nil
}

func (c *Calculator) newToolkit() *modular.Toolkit {
	return modular.NewToolkit(c.opts.Parameters)
}

func (c *Calculator) newZn(m string) (*modular.Zn, error) {
	mb, err := parseInt("modulus", m)
	if err != nil {
		return nil, err
	}
	return c.newToolkit().NewZn(mb)
}

func (c *Calculator) newRing(m string) (*bigring.Ring, error) {
	z, err := c.newZn(m)
	if err != nil {
		return nil, err
	}
	return bigring.NewRingFromZn(z), nil
}

func (c *Calculator) newField(f, m string) (*field.Field, error) {
	mb, err := parseInt("modulus", m)
	if err != nil {
		return nil, err
	}
	fp, err := parsePoly("polynomial modulus", f)
	if err != nil {
		return nil, err
	}
	return field.NewField(mb, fp, c.opts.Parameters)
}

func strs(xs []*big.Int) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.String()
	}
	return out
}
