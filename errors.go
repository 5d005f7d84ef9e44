package sputter

import (
	"errors"
	"fmt"
)

var (
	// ErrExpectedOpenParen means the input does not start with "(".
	ErrExpectedOpenParen = errors.New("expected open paren")

	// ErrUnclosedParen means the input ended inside an expression.
	ErrUnclosedParen = errors.New("unclosed paren")

	// ErrExpectedEOF means content follows the top-level expression.
	ErrExpectedEOF = errors.New("expected end of input")

	// ErrBadArgument means an operator got a non-integer argument.
	ErrBadArgument = errors.New("bad argument")

	// ErrDivisionByZero means "/" got a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// ParseError is returned by the parser. Pos is a 0-based rune offset into
// the input.
type ParseError struct {
	Err error
	Pos int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at position %d", e.Err, e.Pos)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EvalError is returned when an operator can't be applied. Index is the
// 0-based position of the offending argument, not counting the operator.
type EvalError struct {
	Op    string
	Index int
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%v for %s: argument %d", e.Err, e.Op, e.Index)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}
