package sputter

import (
	"math/big"
	"sort"
)

// Fn applies an operator to already evaluated arguments. args always holds
// at least one element.
type Fn func(args []*Value) (*Value, error)

var ops map[string]Fn

func init() {
	ops = make(map[string]Fn)
	ops["+"] = doPlus
	ops["-"] = doMinus
	ops["*"] = doMul
	ops["/"] = doDiv
}

// Operators returns the recognized operator symbols in sorted order.
func Operators() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsOperator reports whether name is a recognized operator symbol.
func IsOperator(name string) bool {
	_, ok := ops[name]
	return ok
}

func isInt(v *Value) bool {
	return v != nil && v.t == ValueInt
}

// fold combines args left to right, starting from the first one. The first
// failing argument in that order is the one reported.
func fold(op string, args []*Value, f func(acc, x *big.Int, i int) error) (*Value, error) {
	if !isInt(args[0]) {
		return nil, &EvalError{Op: op, Index: 0, Err: ErrBadArgument}
	}
	acc := new(big.Int).Set(args[0].bigInt())
	for i := 1; i < len(args); i++ {
		if !isInt(args[i]) {
			return nil, &EvalError{Op: op, Index: i, Err: ErrBadArgument}
		}
		if err := f(acc, args[i].bigInt(), i); err != nil {
			return nil, err
		}
	}
	return &Value{
		t: ValueInt,
		v: acc,
	}, nil
}

func doPlus(args []*Value) (*Value, error) {
	return fold("+", args, func(acc, x *big.Int, _ int) error {
		acc.Add(acc, x)
		return nil
	})
}

func doMinus(args []*Value) (*Value, error) {
	return fold("-", args, func(acc, x *big.Int, _ int) error {
		acc.Sub(acc, x)
		return nil
	})
}

func doMul(args []*Value) (*Value, error) {
	return fold("*", args, func(acc, x *big.Int, _ int) error {
		acc.Mul(acc, x)
		return nil
	})
}

func doDiv(args []*Value) (*Value, error) {
	return fold("/", args, func(acc, x *big.Int, i int) error {
		if x.Sign() == 0 {
			return &EvalError{Op: "/", Index: i, Err: ErrDivisionByZero}
		}
		// Quo truncates toward zero.
		acc.Quo(acc, x)
		return nil
	})
}

// Eval reduces node. Integers and identifiers evaluate to themselves. An
// expression has its children evaluated in order; one child collapses to
// that child, and a leading operator identifier is applied to the rest.
// Anything else is returned as an expression of the evaluated children.
func Eval(node *Value) (*Value, error) {
	if node == nil || node.t != ValueExpr {
		return node, nil
	}

	children := node.list()
	terms := make([]*Value, 0, len(children))
	for _, child := range children {
		v, err := Eval(child)
		if err != nil {
			return nil, err
		}
		terms = append(terms, v)
	}

	switch len(terms) {
	case 0:
		return newExpr(terms), nil
	case 1:
		return terms[0], nil
	}

	head := terms[0]
	if head == nil || head.t != ValueIdent {
		return newExpr(terms), nil
	}
	fn, ok := ops[head.ident()]
	if !ok {
		return newExpr(terms), nil
	}
	return fn(terms[1:])
}
