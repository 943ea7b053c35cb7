// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package ops provides the text-level operations of the JSON engine: pretty
// printing, minification, validation, structural statistics, and conversion
// between raw strings and JSON string literals.
//
// Every operation is a pure function of its input text; the package holds no
// state and is safe for concurrent use.
package ops

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jcore"
	"github.com/creachadair/jcore/ast"
)

// A ParseError describes a JSON syntax failure at a specific position of the
// input. Line and Column are 1-based; Description carries no position of its
// own, so the caller may present either field without duplication.
type ParseError struct {
	Line        int
	Column      int
	Description string
}

// Error returns the composite message "Line L, Column C: description".
func (e *ParseError) Error() string {
	return fmt.Sprintf("Line %d, Column %d: %s", e.Line, e.Column, e.Description)
}

// parseError converts an error from the parser into a *ParseError.
func parseError(err error) *ParseError {
	var serr *jcore.SyntaxError
	if errors.As(err, &serr) {
		return &ParseError{
			Line:        serr.Location.Line,
			Column:      serr.Location.Column,
			Description: serr.Message,
		}
	}
	return &ParseError{Line: 1, Column: 1, Description: err.Error()}
}

// Format parses text as a single JSON document and renders it with the given
// indentation width. An indent <= 0 renders compact output, as [Minify].
func Format(text string, indent int) (string, error) {
	v, err := ast.ParseString(text)
	if err != nil {
		return "", parseError(err)
	}
	return ast.Formatter{Indent: indent}.FormatString(v), nil
}

// Minify parses text as a single JSON document and renders it with all
// insignificant whitespace removed.
func Minify(text string) (string, error) {
	v, err := ast.ParseString(text)
	if err != nil {
		return "", parseError(err)
	}
	return v.JSON(), nil
}

// A Result reports the outcome of validating a document.
type Result struct {
	Valid bool
	Err   *ParseError // nil when Valid
}

// Validate parses text as a single JSON document and reports whether it is
// valid, with the failure position when it is not.
func Validate(text string) Result {
	if _, err := ast.ParseString(text); err != nil {
		return Result{Err: parseError(err)}
	}
	return Result{Valid: true}
}

// A Report summarizes the structure of a document.
type Report struct {
	Valid    bool
	KeyCount int         // object member occurrences over the whole tree
	Depth    int         // maximum container nesting depth
	ByteSize int         // size of the input in bytes, valid or not
	Err      *ParseError // nil when Valid
}

// Stats parses text as a single JSON document and reports its structural
// statistics. ByteSize is filled in regardless of validity; the remaining
// counts are zero for invalid input.
func Stats(text string) Report {
	v, err := ast.ParseString(text)
	if err != nil {
		return Report{ByteSize: len(text), Err: parseError(err)}
	}
	return Report{
		Valid:    true,
		KeyCount: ast.KeyCount(v),
		Depth:    ast.Depth(v),
		ByteSize: len(text),
	}
}

// Escape encodes text as a JSON string literal: quotation marks are added
// and characters are escaped as needed. It never fails.
func Escape(text string) string { return jcore.Quote(text) }

// Unescape parses text as exactly one JSON string literal and returns its
// decoded contents. The literal may be surrounded by whitespace but by
// nothing else; any other input is an error.
func Unescape(text string) (string, error) {
	s := jcore.NewScanner(strings.NewReader(text))
	if !s.Next() {
		if err := s.Err(); err != nil {
			return "", parseError(err)
		}
		loc := s.Location().First
		return "", &ParseError{Line: loc.Line, Column: loc.Column, Description: "unexpected end of input"}
	}
	start := s.Location().First
	if s.Token() != jcore.String {
		return "", &ParseError{
			Line:        start.Line,
			Column:      start.Column,
			Description: fmt.Sprintf("expected string, got %v", s.Token()),
		}
	}
	lit := s.Copy()

	// The literal must be the whole input.
	if s.Next() {
		loc := s.Location().First
		return "", &ParseError{Line: loc.Line, Column: loc.Column, Description: "unexpected trailing data"}
	} else if err := s.Err(); err != nil {
		var serr *jcore.SyntaxError
		if errors.As(err, &serr) {
			return "", &ParseError{
				Line:        serr.Location.Line,
				Column:      serr.Location.Column,
				Description: "unexpected trailing data",
			}
		}
		return "", parseError(err)
	}

	dec, err := jcore.Unquote(lit)
	if err != nil {
		var derr *jcore.DecodeError
		if errors.As(err, &derr) {
			// A string literal spans a single line, so only the column moves.
			return "", &ParseError{
				Line:        start.Line,
				Column:      start.Column + utf8.RuneCount(lit[:derr.Offset]),
				Description: derr.Msg,
			}
		}
		return "", parseError(err)
	}
	return string(dec), nil
}
