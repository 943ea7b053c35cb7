// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// A DecodeError describes an invalid or incomplete escape sequence.
// Offset is the byte offset of the leading backslash within the input.
type DecodeError struct {
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string { return e.Msg }

func decodeErr(off int, msg string) error { return &DecodeError{Offset: off, Msg: msg} }

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. An invalid
// or incomplete escape sequence, or a \uXXXX surrogate escape without its
// mate, is reported as a [*DecodeError] positioned at the offending escape.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	base := 0 // offset of the start of src within the original input
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i)
		base += i
		esc := base // position of the backslash

		if src.Len() < 2 {
			return nil, decodeErr(esc, "incomplete escape sequence")
		}
		switch ch := src.At(1); ch {
		case '"', '\\', '/':
			dec = append(dec, ch)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			r, n, err := decodeRuneEscape(src, esc)
			if err != nil {
				return nil, err
			}
			var rb [utf8.UTFMax]byte
			nb := utf8.EncodeRune(rb[:], r)
			dec = append(dec, rb[:nb]...)
			src = src.SliceFrom(n)
			base += n
			continue
		default:
			return nil, decodeErr(esc, fmt.Sprintf("invalid escape character %q", ch))
		}
		src = src.SliceFrom(2)
		base += 2
	}
}

// decodeRuneEscape decodes a \uXXXX escape at the front of src, consuming a
// second \uXXXX escape when the first names a high surrogate. It returns the
// decoded rune and the number of input bytes consumed. esc is the position of
// the escape within the original input, used for error reporting.
func decodeRuneEscape(src mem.RO, esc int) (rune, int, error) {
	if src.Len() < 6 {
		return 0, 0, decodeErr(esc, "incomplete Unicode escape")
	}
	v, err := parseHex(src.SliceFrom(2).SliceTo(4))
	if err != nil {
		return 0, 0, decodeErr(esc, "invalid Unicode escape")
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 6, nil
	}
	if r >= 0xdc00 {
		// A low surrogate with no preceding high surrogate.
		return 0, 0, decodeErr(esc, "unpaired surrogate escape")
	}
	if src.Len() < 12 || src.At(6) != '\\' || src.At(7) != 'u' {
		return 0, 0, decodeErr(esc, "unpaired surrogate escape")
	}
	v2, err := parseHex(src.SliceFrom(8).SliceTo(4))
	if err != nil {
		return 0, 0, decodeErr(esc+6, "invalid Unicode escape")
	}
	lo := rune(v2)
	if lo < 0xdc00 || lo > 0xdfff {
		return 0, 0, decodeErr(esc, "unpaired surrogate escape")
	}
	return utf16.DecodeRune(r, lo), 12, nil
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
