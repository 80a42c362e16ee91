package expr

import (
	"fmt"
)

// Token kinds.
const (
	EOF uint = iota
	WHITESPACE
	NUMBER
	IDENTIFIER
	LBRACE
	RBRACE
	COMMA
	ADD
	SUB
	MUL
	DIV
	REM
	POW
)

var kindNames = map[uint]string{
	EOF:        "end of input",
	WHITESPACE: "whitespace",
	NUMBER:     "number",
	IDENTIFIER: "identifier",
	LBRACE:     "'('",
	RBRACE:     "')'",
	COMMA:      "','",
	ADD:        "'+'",
	SUB:        "'-'",
	MUL:        "'*'",
	DIV:        "'/'",
	REM:        "'%'",
	POW:        "'^'",
}

// Token is a lexeme of an expression, spanning runes [Start, End) of the input.
type Token struct {
	Kind  uint
	Start int
	End   int
	Text  string
}

// SyntaxError is a problem found at a rune offset of the input.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos)
}

// scanner reports how many leading runes it accepts, 0 meaning no match.
type scanner func(items []rune) int

func unit(chars ...rune) scanner {
	return func(items []rune) int {
		if len(items) < len(chars) {
			return 0
		}
		for i, c := range chars {
			if items[i] != c {
				return 0
			}
		}
		return len(chars)
	}
}

func within(lo, hi rune) scanner {
	return func(items []rune) int {
		if len(items) != 0 && lo <= items[0] && items[0] <= hi {
			return 1
		}
		return 0
	}
}

func or(scanners ...scanner) scanner {
	return func(items []rune) int {
		for _, s := range scanners {
			if n := s(items); n > 0 {
				return n
			}
		}
		return 0
	}
}

func many(s scanner) scanner {
	return func(items []rune) int {
		i := 0
		for i < len(items) {
			n := s(items[i:])
			if n == 0 {
				break
			}
			i += n
		}
		return i
	}
}

func then(first, rest scanner) scanner {
	return func(items []rune) int {
		n := first(items)
		if n == 0 {
			return 0
		}
		return n + rest(items[n:])
	}
}

type rule struct {
	scanner scanner
	kind    uint
}

var letter = or(within('a', 'z'), within('A', 'Z'), unit('_'))

// Rules are tried in order, so "**" must precede "*".
var rules = []rule{
	{many(or(unit(' '), unit('\t'), unit('\r'), unit('\n'))), WHITESPACE},
	{many(within('0', '9')), NUMBER},
	{then(letter, many(or(letter, within('0', '9')))), IDENTIFIER},
	{unit('('), LBRACE},
	{unit(')'), RBRACE},
	{unit(','), COMMA},
	{unit('+'), ADD},
	{unit('-'), SUB},
	{unit('*', '*'), POW},
	{unit('*'), MUL},
	{unit('/'), DIV},
	{unit('%'), REM},
	{unit('^'), POW},
}

// Lex splits src into tokens, dropping whitespace and appending an EOF token.
// Every unknown symbol is reported and skipped.
func Lex(src string) ([]Token, []SyntaxError) {
	items := []rune(src)

	var tokens []Token
	var errors []SyntaxError
	for i := 0; i < len(items); {
		matched := false
		for _, r := range rules {
			n := r.scanner(items[i:])
			if n == 0 {
				continue
			}
			if r.kind != WHITESPACE {
				tokens = append(tokens, Token{Kind: r.kind, Start: i, End: i + n, Text: string(items[i : i+n])})
			}
			i += n
			matched = true
			break
		}
		if !matched {
			errors = append(errors, SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected symbol %q", items[i])})
			i++
		}
	}

	tokens = append(tokens, Token{Kind: EOF, Start: len(items), End: len(items)})
	return tokens, errors
}
