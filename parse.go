package sputter

import (
	"bufio"
	"bytes"
	"io"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	openParen  = '('
	closeParen = ')'
)

func NewParser(r io.Reader) *Parser {
	return &Parser{
		buf: bufio.NewReader(r),
		raw: -1,
	}
}

// Parser reads a single top-level expression from its input.
type Parser struct {
	buf *bufio.Reader
	pos int
	err error

	// raw holds the last byte read when it was not valid UTF-8, or -1.
	raw int
}

// Parse parses s. See (*Parser).Parse.
func Parse(s string) (*Value, error) {
	return NewParser(strings.NewReader(s)).Parse()
}

// Pos returns how many runes have been consumed so far.
func (p *Parser) Pos() int {
	return p.pos
}

func (p *Parser) newError(err error, pos int) error {
	return &ParseError{
		Err: err,
		Pos: pos,
	}
}

// readRune returns the next rune. A read error is kept and returned by every
// later call. A byte that is not valid UTF-8 comes back as utf8.RuneError with
// the byte itself in p.raw.
func (p *Parser) readRune() (rune, error) {
	if p.err != nil {
		return 0, p.err
	}
	r, size, err := p.buf.ReadRune()
	if err != nil {
		p.err = err
		return 0, err
	}
	p.raw = -1
	if r == utf8.RuneError && size == 1 {
		p.buf.UnreadRune()
		b, _ := p.buf.ReadByte()
		p.raw = int(b)
	}
	p.pos++
	return r, nil
}

func (p *Parser) unreadRune() error {
	var err error
	if p.raw >= 0 {
		err = p.buf.UnreadByte()
	} else {
		err = p.buf.UnreadRune()
	}
	p.pos--
	return err
}

// SkipWhite consumes whitespace and reports whether there was any.
func (p *Parser) SkipWhite() bool {
	skipped := false
	for {
		r, err := p.readRune()
		if err != nil {
			return skipped
		}
		if !unicode.IsSpace(r) {
			p.unreadRune()
			return skipped
		}
		skipped = true
	}
}

// next returns the next non-whitespace rune and whether it ends the pending
// atom: preceded by whitespace, or a paren itself.
func (p *Parser) next() (rune, bool, error) {
	skipped := p.SkipWhite()
	r, err := p.readRune()
	if err != nil {
		return 0, false, err
	}
	return r, skipped || r == openParen || r == closeParen, nil
}

// ParseParen parses the rest of an expression whose "(" has already been
// consumed, up to and including the matching ")".
func (p *Parser) ParseParen() (*Value, error) {
	children := []*Value{}
	var token bytes.Buffer
	for {
		r, delim, err := p.next()
		if err == io.EOF {
			return nil, p.newError(ErrUnclosedParen, p.pos)
		}
		if err != nil {
			return nil, err
		}

		if delim && token.Len() > 0 {
			children = append(children, ParseAtom(token.String()))
			token.Reset()
		}

		switch r {
		case openParen:
			child, err := p.ParseParen()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		case closeParen:
			return newExpr(children), nil
		default:
			if p.raw >= 0 {
				token.WriteByte(byte(p.raw))
			} else {
				token.WriteRune(r)
			}
		}
	}
}

// Parse reads one expression. Empty or all-whitespace input yields an empty
// expression.
func (p *Parser) Parse() (*Value, error) {
	r, _, err := p.next()
	if err == io.EOF {
		return NewExpr(), nil
	}
	if err != nil {
		return nil, err
	}
	if r != openParen {
		return nil, p.newError(ErrExpectedOpenParen, p.pos-1)
	}

	node, err := p.ParseParen()
	if err != nil {
		return nil, err
	}

	p.SkipWhite()
	_, err = p.readRune()
	if err == io.EOF {
		return node, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, p.newError(ErrExpectedEOF, p.pos-1)
}

// ParseAtom converts atom text to an Integer when it is a decimal literal
// with an optional leading "-", and to an Identifier otherwise. Identifier
// text is kept byte for byte, including invalid UTF-8.
func ParseAtom(s string) *Value {
	if isIntLiteral(s) {
		if n, ok := new(big.Int).SetString(s, 10); ok {
			return &Value{
				t: ValueInt,
				v: n,
			}
		}
	}
	return NewIdent(s)
}

func isIntLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
