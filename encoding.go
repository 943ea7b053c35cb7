// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcore

import (
	"errors"

	"github.com/creachadair/jcore/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	enc := escape.Quote(mem.S(src))
	buf := make([]byte, 0, len(enc)+2)
	buf = append(buf, '"')
	buf = append(buf, enc...)
	buf = append(buf, '"')
	return string(buf)
}

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// An invalid or incomplete escape sequence, including a \uXXXX surrogate
// escape without its mate, is reported as a [*DecodeError] whose offset marks
// the offending escape within src.
func Unquote(src []byte) ([]byte, error) {
	if len(src) < 2 || src[0] != '"' || src[len(src)-1] != '"' {
		return nil, errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.B(src[1 : len(src)-1]))
	if err != nil {
		var derr *escape.DecodeError
		if errors.As(err, &derr) {
			// Account for the opening quotation mark.
			return nil, &DecodeError{Offset: derr.Offset + 1, Msg: derr.Msg}
		}
		return nil, err
	}
	return dec, nil
}

// A DecodeError describes an invalid or incomplete escape sequence in a JSON
// string value. Offset is the byte offset of the escape within src.
type DecodeError struct {
	Offset int
	Msg    string
}

func (e *DecodeError) Error() string { return e.Msg }
