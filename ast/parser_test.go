// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jcore"
	"github.com/creachadair/jcore/ast"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		{`null`, ast.Null{}},
		{`true`, ast.Bool(true)},
		{`-15`, ast.Int(-15)},
		{`3.25e-5`, ast.Float(3.25e-5)},
		{`"a \"b\" c"`, ast.String(`a "b" c`)},
		{` [] `, ast.Array{}},
		{`{}`, ast.Object{}},

		{`[1, "two", [true], {}]`, ast.Array{
			ast.Int(1), ast.String("two"), ast.Array{ast.Bool(true)}, ast.Object{},
		}},

		{`{"a": [1, 2.5], "b": null, "a": false}`, ast.Object{
			{Key: "a", Value: ast.Array{ast.Int(1), ast.Float(2.5)}},
			{Key: "b", Value: ast.Null{}},
			{Key: "a", Value: ast.Bool(false)},
		}},

		// Escaped keys are decoded.
		{`{"a\tb": 0}`, ast.Object{{Key: "a\tb", Value: ast.Int(0)}}},

		// The extremes of int64 still parse as integers.
		{`-9223372036854775808`, ast.Int(-9223372036854775808)},
		{`9223372036854775807`, ast.Int(9223372036854775807)},

		// An integer too big for int64 falls back to floating point.
		{`123456789012345678901234567890`, ast.Float(1.2345678901234568e29)},
	}
	for _, test := range tests {
		got, err := ast.ParseString(test.input)
		if err != nil {
			t.Errorf("Parse %#q failed: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse %#q: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   string // position of the reported error, "line:col"
		etext string // substring of the error description
	}{
		{``, "1:1", "unexpected end of input"},
		{`   `, "1:4", "unexpected end of input"},
		{`{`, "1:2", "unexpected end of input"},
		{`{"a": }`, "1:7", `unexpected "}"`},
		{`{"a":1,}`, "1:8", `expected string, got "}"`},
		{`[1, 2`, "1:6", "unexpected end of input"},
		{`1e999`, "1:1", "number out of range"},
		{`-1e999`, "1:1", "number out of range"},

		// A document must span the whole input.
		{`{} extra`, "1:4", "unexpected trailing data"},
		{`{} {}`, "1:4", "unexpected trailing data"},
		{`[1,2] 3`, "1:7", "unexpected trailing data"},
		{`null,`, "1:5", "unexpected trailing data"},

		// Escape errors are positioned at the offending escape.
		{`{"k": "\ud800"}`, "1:8", "unpaired surrogate escape"},
		{`{"\ud800": 1}`, "1:3", "unpaired surrogate escape"},
		{`["ab\qcd"]`, "1:5", "invalid escape character 'q'"},
	}
	for _, test := range tests {
		_, err := ast.ParseString(test.input)
		if err == nil {
			t.Errorf("Parse %#q: unexpectedly succeeded", test.input)
			continue
		}
		var serr *jcore.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got error %v, want *SyntaxError", test.input, err)
			continue
		}
		if got := serr.Location.String(); got != test.pos {
			t.Errorf("Parse %#q: got position %s, want %s", test.input, got, test.pos)
		}
		if !strings.Contains(serr.Message, test.etext) {
			t.Errorf("Parse %#q: got message %q, want %q", test.input, serr.Message, test.etext)
		}
	}
}

func TestParseDepth(t *testing.T) {
	const depth = 600
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	if _, err := ast.ParseString(input); !errors.Is(err, jcore.ErrDeepNesting) {
		t.Errorf("Parse: got %v, want %v", err, jcore.ErrDeepNesting)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		`null`,
		`false`,
		`-15`,
		`2.0`,
		`"ok go"`,
		`[]`,
		`{}`,
		`[1,[2,[3,[]]],null]`,
		`{"a":1,"b":{"c":[true,0.5]},"a":"dup"}`,
	}
	for _, input := range tests {
		v, err := ast.ParseString(input)
		if err != nil {
			t.Errorf("Parse %#q failed: %v", input, err)
			continue
		}
		if got := v.JSON(); got != input {
			t.Errorf("Round trip %#q: got %#q", input, got)
		}
	}
}
