// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a syntax tree for JSON values, and a parser that
// constructs syntax trees from JSON source.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jcore"
)

// A Value is an arbitrary JSON value. The concrete type is one of Null, Bool,
// String, Int, Float, Array, or Object.
//
// A value tree returned by the parser is treated as immutable: no operation
// in this package modifies a tree in place, and callers sharing a tree across
// goroutines must follow the same rule.
type Value interface {
	// JSON renders the value as compact JSON text with no insignificant
	// whitespace.
	JSON() string
}

// Null represents the JSON null constant.
type Null struct{}

func (Null) JSON() string   { return "null" }
func (Null) String() string { return "null" }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string {
	if b {
		return "true"
	}
	return "false"
}

// Value reports the truth value of b.
func (b Bool) Value() bool { return bool(b) }

// A String is a string value. Its contents are unescaped; rendering the value
// as JSON re-escapes them.
type String string

func (s String) JSON() string { return jcore.Quote(string(s)) }

// An Int is an integer value, parsed from a number literal with no fraction
// or exponent.
type Int int64

func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// Int64 reports the value of z as an int64.
func (z Int) Int64() int64 { return int64(z) }

// A Float is a floating-point value, parsed from a number literal having a
// fraction and/or an exponent.
type Float float64

// JSON renders f with the shortest representation that parses back to the
// same value. The result always carries a decimal point or an exponent, so a
// round trip preserves the distinction between Float and Int.
func (f Float) JSON() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Float64 reports the value of f as a float64.
func (f Float) Float64() float64 { return float64(f) }

// An Array is a sequence of values. Element order is significant and is
// preserved through parsing and rendering.
type Array []Value

func (a Array) JSON() string {
	if len(a) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(a[0].JSON())
	for _, elt := range a[1:] {
		sb.WriteByte(',')
		sb.WriteString(elt.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a)) }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (m *Member) JSON() string {
	k := jcore.Quote(m.Key)
	v := m.Value.JSON()
	buf := make([]byte, len(k)+len(v)+1)
	n := copy(buf, k)
	buf[n] = ':'
	copy(buf[n+1:], v)
	return string(buf)
}

func (m *Member) String() string { return fmt.Sprintf("Member(key=%q)", m.Key) }

// An Object is a collection of key-value members. Member order is significant
// and is preserved through parsing and rendering. Duplicate keys are
// permitted and all occurrences are retained; lookup finds the first.
type Object []*Member

func (o Object) JSON() string {
	if len(o) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	sb.WriteString(o[0].JSON())
	for _, elt := range o[1:] {
		sb.WriteByte(',')
		sb.WriteString(elt.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) String() string { return fmt.Sprintf("Object(len=%d)", len(o)) }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	if i := o.Index(key); i >= 0 {
		return o[i]
	}
	return nil
}

// Index returns the index of the first member of o with the given key, or -1.
func (o Object) Index(key string) int {
	for i, m := range o {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// ToValue converts a string, int, float, bool, or nil into a Value. A Value
// is returned unchanged. It panics if v does not have one of those types.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int64:
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	default:
		panic(fmt.Sprintf("invalid value type %T", v))
	}
}
