package expr

import (
	"fmt"
	"math/big"
	"strings"
)

// Node is an expression tree node.
// String renders the node fully parenthesized.
type Node interface {
	Pos() int
	String() string
}

// Number is a non-negative integer literal.
type Number struct {
	At    int
	Value *big.Int
}

// Unary is a sign applied to an operand.
type Unary struct {
	At int
	Op uint
	X  Node
}

// Binary is an infix operation.
type Binary struct {
	At   int
	Op   uint
	X, Y Node
}

// Call is a function application.
type Call struct {
	At   int
	Name string
	Args []Node
}

var opSymbols = map[uint]string{
	ADD: "+",
	SUB: "-",
	MUL: "*",
	DIV: "/",
	REM: "%",
	POW: "^",
}

func (n *Number) Pos() int { return n.At }
func (n *Unary) Pos() int  { return n.At }
func (n *Binary) Pos() int { return n.At }
func (n *Call) Pos() int   { return n.At }

func (n *Number) String() string {
	return n.Value.String()
}

func (n *Unary) String() string {
	return fmt.Sprintf("(%s%v)", opSymbols[n.Op], n.X)
}

func (n *Binary) String() string {
	return fmt.Sprintf("(%v %s %v)", n.X, opSymbols[n.Op], n.Y)
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}
