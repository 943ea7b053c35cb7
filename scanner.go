// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcore

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an input stream.  Each call to Next
// advances the scanner to the next token, or reports an error.
type Scanner struct {
	r   *bufio.Reader
	buf bytes.Buffer // current token
	tok Token
	err error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Next advances s to the next token of the input and reports whether a token
// is available. Once the input is exhausted or an error occurs, Next returns
// false; use Err to distinguish the two cases.
func (s *Scanner) Next() bool {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return false
		} else if err != nil {
			return s.setErr(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return true
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString(ch)
		}

		// Handle constants: true, false, null
		var want mem.RO
		switch ch {
		case 't':
			s.tok = True
			want = mem.S("true")
		case 'f':
			s.tok = False
			want = mem.S("false")
		case 'n':
			s.tok = Null
			want = mem.S("null")
		default:
			return s.fail(s.start(), "unexpected %q", ch)
		}
		if !s.scanName(ch) {
			return false
		} else if got := mem.B(s.buf.Bytes()); !got.Equal(want) {
			return s.fail(s.start(), "unknown constant %q", got.StringCopy())
		}
		return true // OK, token is already set
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error from the most recent call of Next, or nil if Next
// stopped at the end of the input without error.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents of
// the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.buf.Bytes()...) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token. After Next has
// returned false without error, the location marks the end of the input.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol + 1},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol + 1},
	}
}

func (s *Scanner) scanString(open rune) bool {
	s.buf.WriteRune(open)
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.fail(s.start(), "unterminated string")
		} else if err != nil {
			return s.setErr(err)
		}
		switch {
		case ch == open:
			s.buf.WriteRune(ch)
			s.tok = String
			return true
		case ch == '\\':
			esc := s.here()
			s.buf.WriteRune(ch)
			if !s.scanEscape(esc) {
				return false
			}
		case ch < ' ':
			return s.fail(s.here(), "unescaped control %q", ch)
		default:
			s.buf.WriteRune(ch)
		}
	}
}

// scanEscape consumes the remainder of a string escape sequence whose leading
// backslash, at position esc, has already been consumed.
func (s *Scanner) scanEscape(esc LineCol) bool {
	ch, err := s.rune()
	if err == io.EOF {
		return s.fail(s.start(), "unterminated string")
	} else if err != nil {
		return s.setErr(err)
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.buf.WriteByte(byte(ch))
	case 'u':
		s.buf.WriteByte(byte(ch))
		for i := 0; i < 4; i++ {
			ch, err := s.rune()
			if err == io.EOF {
				return s.fail(s.start(), "unterminated string")
			} else if err != nil {
				return s.setErr(err)
			} else if !isHexDigit(ch) {
				return s.fail(esc, "invalid Unicode escape")
			}
			s.buf.WriteRune(ch)
		}
	default:
		return s.fail(esc, "invalid escape character %q", ch)
	}
	return true
}

func (s *Scanner) scanNumber(start rune) bool {
	s.buf.WriteRune(start)

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, ok := s.require(isDigit, "digit")
		if !ok {
			return false
		}
		s.buf.WriteRune(ch)
	}

	// Consume the remainder of an integer.
	_, ch, err := s.readWhile(isDigit)

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.fail(s.start(), "extra leading zeroes")
	}
	if err == io.EOF {
		s.tok = Integer
		return true
	} else if err != nil {
		return s.setErr(err)
	}

	// If a decimal point follows, consume a fractional part.
	var isFloat bool
	if ch == '.' {
		s.buf.WriteRune(ch)
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if nr == 0 {
			return s.fail(s.start(), "no digits after decimal point")
		} else if err == io.EOF {
			s.tok = Number
			return true
		} else if err != nil {
			return s.setErr(err)
		}
		isFloat = true
	}

	// If an exponent follows, consume it.
	if ch != 'E' && ch != 'e' {
		s.unrune()
		if isFloat {
			s.tok = Number
		} else {
			s.tok = Integer
		}
		return true
	}

	s.buf.WriteRune(ch)
	ch, ok := s.require(isExpStart, "sign or digit")
	if !ok {
		return false
	}
	s.buf.WriteRune(ch)
	nr, _, err := s.readWhile(isDigit)
	if nr == 0 && (ch == '-' || ch == '+') {
		// It's OK to have no digits if the previous rune was not a sign,
		// otherwise we have to have at least one.
		return s.fail(s.start(), "missing exponent digits")
	} else if err == io.EOF {
		s.tok = Number
		return true
	} else if err != nil {
		return s.setErr(err)
	}
	s.unrune()
	s.tok = Number
	return true
}

func (s *Scanner) scanName(first rune) bool {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return true
	} else if err != nil {
		return s.setErr(err)
	}
	s.unrune()
	return true
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	if nb > 0 {
		s.ecol++
	}
	return ch, err
}

func (s *Scanner) unrune() {
	if s.last > 0 {
		s.end -= s.last
		s.ecol--
		s.last = 0
		s.r.UnreadRune()
	}
}

// require reads a single rune matching f from the input, or fails with an
// error mentioning the desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, bool) {
	ch, err := s.rune()
	if err == io.EOF {
		return 0, s.fail(s.start(), "unexpected end of input")
	} else if err != nil {
		return 0, s.setErr(err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.fail(s.start(), "got %q, want %s", ch, label)
	}
	return ch, true
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

// start returns the position of the first character of the current token.
func (s *Scanner) start() LineCol { return LineCol{Line: s.pline + 1, Column: s.pcol + 1} }

// here returns the position of the most recently consumed character.
func (s *Scanner) here() LineCol { return LineCol{Line: s.eline + 1, Column: s.ecol} }

func (s *Scanner) setErr(err error) bool {
	s.tok = Invalid
	s.err = err
	return false
}

func (s *Scanner) fail(loc LineCol, msg string, args ...any) bool {
	return s.setErr(&SyntaxError{Location: loc, Message: fmt.Sprintf(msg, args...)})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the JSON grammar.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
