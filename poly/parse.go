package poly

import (
	"strconv"

	"github.com/MouseCreator/Long-arithmetic-system/bigint"
	"github.com/MouseCreator/Long-arithmetic-system/errs"
)

// Parse splits a polynomial expression into its terms, in input order.
//
// Terms are separated by '+' or '-', and each has the shape
// [coefficient][x[^exponent]]. The coefficient defaults to 1 before x and
// the exponent defaults to 1; a lone integer has exponent 0. Spaces are
// ignored between tokens but may not split a number.
func Parse(s string) ([]Term, error) {
	p := parser{src: s}
	return p.parse()
}

// ParsePoly parses s and normalizes the terms with [New].
func ParsePoly(s string) (Poly, error) {
	terms, err := Parse(s)
	if err != nil {
		return Poly{}, err
	}
	return New(terms...), nil
}

// MustParse is like ParsePoly but panics on error.
func MustParse(s string) Poly {
	p, err := ParsePoly(s)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

// peek skips spaces and returns the next byte, or false at the end of input.
func (p *parser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos == len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

// is reports whether the next byte is c.
func (p *parser) is(c byte) bool {
	next, ok := p.peek()
	return ok && next == c
}

// digits reads a run of decimal digits. Spaces before the run are skipped,
// a space inside it ends the number.
func (p *parser) digits() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) errorf(format string, args ...any) error {
	return errs.New(errs.Parse, "invalid polynomial %q at offset %d: "+format, append([]any{p.src, p.pos}, args...)...)
}

func (p *parser) parse() ([]Term, error) {
	if _, ok := p.peek(); !ok {
		return nil, p.errorf("empty expression")
	}

	var terms []Term
	for first := true; ; first = false {
		neg := false
		switch c, ok := p.peek(); {
		case ok && (c == '+' || c == '-'):
			neg = c == '-'
			p.pos++
		case !first && ok:
			return nil, p.errorf("expected '+' or '-', found %q", c)
		}

		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if neg {
			t.Coeff = t.Coeff.Neg()
		}
		terms = append(terms, t)

		if _, ok := p.peek(); !ok {
			return terms, nil
		}
	}
}

func (p *parser) term() (Term, error) {
	coeff := p.digits()

	if !p.is('x') {
		if coeff != "" {
			return Term{Degree: 0, Coeff: bigint.MustParse(coeff)}, nil
		}
		if c, ok := p.peek(); ok {
			return Term{}, p.errorf("unexpected symbol %q", c)
		}
		return Term{}, p.errorf("missing term")
	}
	p.pos++

	c := bigint.FromInt64(1)
	if coeff != "" {
		c = bigint.MustParse(coeff)
	}

	if !p.is('^') {
		return Term{Degree: 1, Coeff: c}, nil
	}
	p.pos++

	exp := p.digits()
	if exp == "" {
		return Term{}, p.errorf("missing exponent")
	}
	d, err := strconv.Atoi(exp)
	if err != nil || d > MaxDegree {
		return Term{}, p.errorf("exponent %s exceeds %d", exp, MaxDegree)
	}
	return Term{Degree: d, Coeff: c}, nil
}
