// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jcore"
)

// Parse parses a single JSON document from r. The document must span the
// entire input: anything other than whitespace after the first value is
// reported as an error positioned at the first extraneous character. In case
// of a syntax error, the returned error has type [*jcore.SyntaxError].
func Parse(r io.Reader) (Value, error) {
	st := jcore.NewStream(r)
	h := new(parseHandler)
	if err := st.ParseOne(h); err == io.EOF {
		return nil, &jcore.SyntaxError{Location: h.end, Message: "unexpected end of input"}
	} else if err != nil {
		return nil, err
	}
	if len(h.stk) != 1 {
		return nil, errors.New("incomplete value")
	}
	root, ok := h.stk[0].(Value)
	if !ok {
		return nil, errors.New("incomplete value")
	}

	// The document must be the whole input.
	var t trailingHandler
	switch err := st.ParseOne(&t); {
	case err == io.EOF:
		return root, nil
	case t.seen:
		return nil, &jcore.SyntaxError{Location: t.loc, Message: "unexpected trailing data"}
	default:
		var serr *jcore.SyntaxError
		if errors.As(err, &serr) {
			return nil, &jcore.SyntaxError{Location: serr.Location, Message: "unexpected trailing data"}
		} else if err != nil {
			return nil, err
		}
		return nil, errors.New("incomplete value")
	}
}

// ParseString parses a single JSON document from s, as [Parse].
func ParseString(s string) (Value, error) { return Parse(strings.NewReader(s)) }

// A parseHandler implements the jcore.Handler interface to construct syntax
// trees for JSON values. The stack holds completed values and the builders of
// containers and members still under construction.
type parseHandler struct {
	stk []any
	end jcore.LineCol
}

type objBuilder struct{ ms Object }

type arrBuilder struct{ vs Array }

type memBuilder struct {
	key string
	val Value
}

func (h *parseHandler) push(v any) { h.stk = append(h.stk, v) }

func (h *parseHandler) pop() any {
	last := h.stk[len(h.stk)-1]
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

// resolve delivers a completed value to the enclosing construct, or records
// it as the root when no construct is open.
func (h *parseHandler) resolve(v Value) {
	if len(h.stk) == 0 {
		h.push(v)
		return
	}
	switch t := h.stk[len(h.stk)-1].(type) {
	case *memBuilder:
		t.val = v
	case *arrBuilder:
		t.vs = append(t.vs, v)
	default:
		// A completed value cannot directly follow anything else; the stream
		// parser enforces this.
		panic("misplaced value")
	}
}

func (h *parseHandler) BeginObject(loc jcore.Anchor) error {
	h.push(new(objBuilder))
	return nil
}

func (h *parseHandler) EndObject(loc jcore.Anchor) error {
	obj := h.pop().(*objBuilder)
	h.resolve(obj.ms)
	return nil
}

func (h *parseHandler) BeginArray(loc jcore.Anchor) error {
	h.push(new(arrBuilder))
	return nil
}

func (h *parseHandler) EndArray(loc jcore.Anchor) error {
	arr := h.pop().(*arrBuilder)
	h.resolve(arr.vs)
	return nil
}

func (h *parseHandler) BeginMember(loc jcore.Anchor) error {
	key, err := decodeString(loc)
	if err != nil {
		return err
	}
	h.push(&memBuilder{key: key})
	return nil
}

func (h *parseHandler) EndMember(loc jcore.Anchor) error {
	m := h.pop().(*memBuilder)
	obj := h.stk[len(h.stk)-1].(*objBuilder)
	obj.ms = append(obj.ms, &Member{Key: m.key, Value: m.val})
	return nil
}

func (h *parseHandler) Value(loc jcore.Anchor) error {
	switch loc.Token() {
	case jcore.String:
		s, err := decodeString(loc)
		if err != nil {
			return err
		}
		h.resolve(String(s))
	case jcore.Integer:
		text := string(loc.Text())
		z, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			h.resolve(Int(z))
			break
		}
		// Out of range for int64; fall back to a float.
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return numberRangeError(loc)
		}
		h.resolve(Float(f))
	case jcore.Number:
		f, err := strconv.ParseFloat(string(loc.Text()), 64)
		if err != nil {
			return numberRangeError(loc)
		}
		h.resolve(Float(f))
	case jcore.True:
		h.resolve(Bool(true))
	case jcore.False:
		h.resolve(Bool(false))
	case jcore.Null:
		h.resolve(Null{})
	default:
		return &jcore.SyntaxError{
			Location: loc.Location().First,
			Message:  "unknown value " + loc.Token().String(),
		}
	}
	return nil
}

func (h *parseHandler) EndOfInput(loc jcore.Anchor) { h.end = loc.Location().First }

// decodeString unescapes the quoted string token at loc. A decoding failure
// is reported as a SyntaxError positioned at the offending escape.
func decodeString(loc jcore.Anchor) (string, error) {
	text := loc.Text()
	dec, err := jcore.Unquote(text)
	if err == nil {
		return string(dec), nil
	}
	pos := loc.Location().First
	var derr *jcore.DecodeError
	if errors.As(err, &derr) {
		// A string token spans a single line, so only the column moves.
		pos.Column += utf8.RuneCount(text[:derr.Offset])
		return "", &jcore.SyntaxError{Location: pos, Message: derr.Msg}
	}
	return "", &jcore.SyntaxError{Location: pos, Message: err.Error()}
}

func numberRangeError(loc jcore.Anchor) error {
	return &jcore.SyntaxError{Location: loc.Location().First, Message: "number out of range"}
}

// A trailingHandler records the location of the first parse event it sees.
// It is used to detect and locate input remaining after a complete document.
type trailingHandler struct {
	seen bool
	loc  jcore.LineCol
}

func (t *trailingHandler) mark(loc jcore.Anchor) error {
	if !t.seen {
		t.seen = true
		t.loc = loc.Location().First
	}
	return nil
}

func (t *trailingHandler) BeginObject(loc jcore.Anchor) error { return t.mark(loc) }
func (t *trailingHandler) EndObject(loc jcore.Anchor) error   { return t.mark(loc) }
func (t *trailingHandler) BeginArray(loc jcore.Anchor) error  { return t.mark(loc) }
func (t *trailingHandler) EndArray(loc jcore.Anchor) error    { return t.mark(loc) }
func (t *trailingHandler) BeginMember(loc jcore.Anchor) error { return t.mark(loc) }
func (t *trailingHandler) EndMember(loc jcore.Anchor) error   { return t.mark(loc) }
func (t *trailingHandler) Value(loc jcore.Anchor) error       { return t.mark(loc) }
func (t *trailingHandler) EndOfInput(loc jcore.Anchor)        {}
