package sputter

import (
	"bytes"
	"fmt"
	"math/big"
)

type ValueType int

const (
	ValueExpr ValueType = iota
	ValueInt
	ValueIdent
)

func (t ValueType) String() string {
	switch t {
	case ValueExpr:
		return "expression"
	case ValueInt:
		return "integer"
	case ValueIdent:
		return "identifier"
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// Value is a node of the expression tree. Integers and identifiers are
// leaves; an expression holds an ordered list of children. Values are never
// modified after construction.
type Value struct {
	t ValueType
	v interface{}
}

// NewInt returns an Integer holding a copy of n.
func NewInt(n *big.Int) *Value {
	return &Value{
		t: ValueInt,
		v: new(big.Int).Set(n),
	}
}

// NewIdent returns an Identifier holding s verbatim.
func NewIdent(s string) *Value {
	return &Value{
		t: ValueIdent,
		v: s,
	}
}

// NewExpr returns an Expression of the given children.
func NewExpr(children ...*Value) *Value {
	return newExpr(append([]*Value{}, children...))
}

// newExpr takes ownership of children.
func newExpr(children []*Value) *Value {
	if children == nil {
		children = []*Value{}
	}
	return &Value{
		t: ValueExpr,
		v: children,
	}
}

func (n *Value) Type() ValueType {
	return n.t
}

// Int returns a copy of the integer, or nil if n is not an Integer.
func (n *Value) Int() *big.Int {
	if n.t != ValueInt {
		return nil
	}
	return new(big.Int).Set(n.bigInt())
}

// Ident returns the identifier text, or "" if n is not an Identifier.
func (n *Value) Ident() string {
	if n.t != ValueIdent {
		return ""
	}
	return n.ident()
}

// Children returns a copy of the children of an Expression, or nil for leaves.
func (n *Value) Children() []*Value {
	if n.t != ValueExpr {
		return nil
	}
	return append([]*Value{}, n.list()...)
}

func (n *Value) Len() int {
	if n.t != ValueExpr {
		return 0
	}
	return len(n.list())
}

// The payload accessors tolerate a zero Value, which is an empty expression.
func (n *Value) list() []*Value {
	l, _ := n.v.([]*Value)
	return l
}

func (n *Value) bigInt() *big.Int {
	i, ok := n.v.(*big.Int)
	if !ok {
		return new(big.Int)
	}
	return i
}

func (n *Value) ident() string {
	s, _ := n.v.(string)
	return s
}

// Equal reports whether n and o are structurally equal.
func (n *Value) Equal(o *Value) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.t != o.t {
		return false
	}
	switch n.t {
	case ValueInt:
		return n.bigInt().Cmp(o.bigInt()) == 0
	case ValueIdent:
		return n.ident() == o.ident()
	}
	a, b := n.list(), o.list()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (n *Value) String() string {
	if n == nil {
		return "nil"
	}
	var buf bytes.Buffer
	switch n.t {
	case ValueExpr:
		fmt.Fprint(&buf, "(")
		for i, child := range n.list() {
			if i > 0 {
				fmt.Fprint(&buf, " ")
			}
			fmt.Fprint(&buf, child)
		}
		fmt.Fprint(&buf, ")")
	case ValueInt:
		fmt.Fprint(&buf, n.bigInt().String())
	case ValueIdent:
		fmt.Fprint(&buf, n.ident())
	}
	return buf.String()
}

// GoString renders the tree with its variant names, e.g.
// Expression([Identifier("+"), Integer(1)]).
func (n *Value) GoString() string {
	if n == nil {
		return "nil"
	}
	var buf bytes.Buffer
	switch n.t {
	case ValueExpr:
		fmt.Fprint(&buf, "Expression([")
		for i, child := range n.list() {
			if i > 0 {
				fmt.Fprint(&buf, ", ")
			}
			fmt.Fprint(&buf, child.GoString())
		}
		fmt.Fprint(&buf, "])")
	case ValueInt:
		fmt.Fprintf(&buf, "Integer(%s)", n.bigInt().String())
	case ValueIdent:
		fmt.Fprintf(&buf, "Identifier(%q)", n.ident())
	}
	return buf.String()
}
