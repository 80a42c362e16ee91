package expr

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
)

// arity lists the supported functions and their argument counts.
var arity = map[string]int{
	"inv":    1,
	"pow":    2,
	"gcd":    2,
	"lcm":    2,
	"phi":    1,
	"lambda": 1,
	"sqrt":   1,
	"ord":    1,
}

// Parse parses an arithmetic expression.
//
// Grammar, loosest binding first:
//
//	expr  = term {("+" | "-") term}
//	term  = unary {("*" | "/" | "%") unary}
//	unary = ("+" | "-") unary | power
//	power = atom ["^" unary]
//	atom  = number | name "(" [expr {"," expr}] ")" | "(" expr ")"
//
// "**" is a synonym of "^". All syntax errors found are reported together
// as a single ParseError, separated by ";".
func Parse(src string) (Node, error) {
	tokens, lexErrs := Lex(src)
	if len(lexErrs) > 0 {
		return nil, joinErrors(lexErrs)
	}

	p := &parser{tokens: tokens}
	node := p.parseExpr()
	if len(p.errors) == 0 && !p.follows(EOF) {
		p.errorf(p.lookahead(), "unexpected %s", describe(p.lookahead()))
	}
	if len(p.errors) > 0 {
		return nil, joinErrors(p.errors)
	}
	return node, nil
}

func joinErrors(list []SyntaxError) error {
	msgs := make([]string, len(list))
	for i, e := range list {
		msgs[i] = e.Error()
	}
	return errs.New(errs.Parse, "%s", strings.Join(msgs, ";"))
}

func describe(t Token) string {
	if t.Kind == NUMBER || t.Kind == IDENTIFIER {
		return fmt.Sprintf("%s %q", kindNames[t.Kind], t.Text)
	}
	return kindNames[t.Kind]
}

type parser struct {
	tokens []Token
	index  int
	errors []SyntaxError

	// fatal is set once the token stream cannot be followed any further.
	fatal bool
}

func (p *parser) lookahead() Token {
	return p.tokens[p.index]
}

func (p *parser) follows(kinds ...uint) bool {
	return slices.Contains(kinds, p.lookahead().Kind)
}

func (p *parser) next() Token {
	t := p.tokens[p.index]
	if t.Kind != EOF {
		p.index++
	}
	return t
}

func (p *parser) match(kind uint) bool {
	if p.follows(kind) {
		p.next()
		return true
	}
	return false
}

func (p *parser) errorf(t Token, format string, args ...any) {
	p.errors = append(p.errors, SyntaxError{Pos: t.Start, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) fail(t Token, format string, args ...any) Node {
	p.errorf(t, format, args...)
	p.fatal = true
	return &Number{At: t.Start, Value: big.NewInt(0)}
}

func (p *parser) parseExpr() Node {
	x := p.parseTerm()
	for !p.fatal && p.follows(ADD, SUB) {
		op := p.next()
		y := p.parseTerm()
		x = &Binary{At: op.Start, Op: op.Kind, X: x, Y: y}
	}
	return x
}

func (p *parser) parseTerm() Node {
	x := p.parseUnary()
	for !p.fatal && p.follows(MUL, DIV, REM) {
		op := p.next()
		y := p.parseUnary()
		x = &Binary{At: op.Start, Op: op.Kind, X: x, Y: y}
	}
	return x
}

func (p *parser) parseUnary() Node {
	if p.follows(ADD, SUB) {
		op := p.next()
		return &Unary{At: op.Start, Op: op.Kind, X: p.parseUnary()}
	}
	return p.parsePower()
}

func (p *parser) parsePower() Node {
	x := p.parseAtom()
	if !p.fatal && p.follows(POW) {
		op := p.next()
		y := p.parseUnary()
		x = &Binary{At: op.Start, Op: POW, X: x, Y: y}
	}
	return x
}

func (p *parser) parseAtom() Node {
	t := p.lookahead()
	switch t.Kind {
	case NUMBER:
		p.next()
		v, _ := big.NewInt(0).SetString(t.Text, 10)
		return &Number{At: t.Start, Value: v}
	case IDENTIFIER:
		return p.parseCall()
	case LBRACE:
		p.next()
		x := p.parseExpr()
		if !p.fatal && !p.match(RBRACE) {
			return p.fail(p.lookahead(), "expected ')' closing '(' at position %d, found %s", t.Start, describe(p.lookahead()))
		}
		return x
	}
	return p.fail(t, "expected an operand, found %s", describe(t))
}

func (p *parser) parseCall() Node {
	name := p.next()
	if !p.match(LBRACE) {
		return p.fail(p.lookahead(), "expected '(' after %q", name.Text)
	}

	call := &Call{At: name.Start, Name: name.Text}
	if !p.follows(RBRACE) {
		call.Args = append(call.Args, p.parseExpr())
		for !p.fatal && p.match(COMMA) {
			call.Args = append(call.Args, p.parseExpr())
		}
	}
	if p.fatal {
		return call
	}
	if !p.match(RBRACE) {
		return p.fail(p.lookahead(), "expected ')' after arguments of %q, found %s", name.Text, describe(p.lookahead()))
	}

	// Unknown names and wrong arities do not stop parsing.
	n, ok := arity[name.Text]
	switch {
	case !ok:
		p.errorf(name, "unknown function %q", name.Text)
	case n != len(call.Args):
		p.errorf(name, "function %q takes %d argument(s), got %d", name.Text, n, len(call.Args))
	}
	return call
}
