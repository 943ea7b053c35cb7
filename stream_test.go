// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcore_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jcore"
	"github.com/google/go-cmp/cmp"
)

// A testHandler records a transcript of the parse events it receives, one
// line per event, with "." marking the end of input.
type testHandler struct {
	output []string
}

func (t *testHandler) emit(s string) error { t.output = append(t.output, s); return nil }

func (t *testHandler) emitf(msg string, args ...any) error {
	return t.emit(fmt.Sprintf(msg, args...))
}

func (t *testHandler) BeginObject(loc jcore.Anchor) error { return t.emit("BeginObject") }
func (t *testHandler) EndObject(loc jcore.Anchor) error   { return t.emit("EndObject") }
func (t *testHandler) BeginArray(loc jcore.Anchor) error  { return t.emit("BeginArray") }
func (t *testHandler) EndArray(loc jcore.Anchor) error    { return t.emit("EndArray") }

func (t *testHandler) BeginMember(loc jcore.Anchor) error {
	return t.emitf("BeginMember <%s>", string(loc.Text()))
}

func (t *testHandler) EndMember(loc jcore.Anchor) error {
	return t.emitf("EndMember %v", loc.Token())
}

func (t *testHandler) Value(loc jcore.Anchor) error {
	return t.emitf("Value %v <%s>", loc.Token(), string(loc.Text()))
}

func (t *testHandler) EndOfInput(loc jcore.Anchor) { t.emit(".") }

func TestStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "."},
		{"   ", "."},

		{"true false null", `
Value true <true>
Value false <false>
Value null <null>
.`},

		{`0 5 -6.32 0.1e-2`, `
Value integer <0>
Value integer <5>
Value number <-6.32>
Value number <0.1e-2>
.`},

		{`"" "a b c" "a\tb" "a b"`, `
Value string <"">
Value string <"a b c">
Value string <"a\tb">
Value string <"a b">
.`},

		{`{}`, "BeginObject\nEndObject\n."},

		{`{"a":15}`, `
BeginObject
BeginMember <"a">
Value integer <15>
EndMember "}"
EndObject
.`},

		{`{"x":null, "y":[true]}`, `
BeginObject
BeginMember <"x">
Value null <null>
EndMember ","
BeginMember <"y">
BeginArray
Value true <true>
EndArray
EndMember "}"
EndObject
.`},

		{`[]`, "BeginArray\nEndArray\n."},

		{`[17, "foo", [], {"":0}]`, `
BeginArray
Value integer <17>
Value string <"foo">
BeginArray
EndArray
BeginObject
BeginMember <"">
Value integer <0>
EndMember "}"
EndObject
EndArray
.`},
	}

	for _, test := range tests {
		h := new(testHandler)
		s := jcore.NewStream(strings.NewReader(test.input))
		if err := s.Parse(h); err != nil {
			t.Errorf("Input: %#q\nParse failed: %v", test.input, err)
			continue
		}
		got := strings.Join(h.output, "\n")
		want := strings.TrimPrefix(test.want, "\n")
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Input: %#q\nEvents: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestStreamErrors(t *testing.T) {
	tests := []struct {
		input string
		pos   string // position of the reported error, "line:col"
		etext string // substring of the error description
	}{
		{`{`, "1:2", "unexpected end of input"},
		{`[`, "1:2", "unexpected end of input"},
		{`[1,`, "1:4", "unexpected end of input"},
		{`{"a": }`, "1:7", `unexpected "}"`},
		{`{"a" 1}`, "1:6", `expected ":", got integer`},
		{`{17: true}`, "1:2", `expected "}" or string, got integer`},
		{`{"a":1,}`, "1:8", `expected string, got "}"`},
		{`[1, ]`, "1:5", `unexpected "]"`},
		{`[1 2]`, "1:4", `expected "]" or ",", got integer`},
		{`[}`, "1:2", `unexpected "}"`},
		{`}`, "1:1", `unexpected "}"`},
		{`:`, "1:1", `unexpected ":"`},
		{"{\n \"a\": tru\n}", "2:7", `unknown constant "tru"`},
	}
	for _, test := range tests {
		h := new(testHandler)
		s := jcore.NewStream(strings.NewReader(test.input))
		err := s.Parse(h)
		if err == nil {
			t.Errorf("Input: %#q: parse unexpectedly succeeded", test.input)
			continue
		}
		var serr *jcore.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input: %#q: got error %v, want *SyntaxError", test.input, err)
			continue
		}
		if got := serr.Location.String(); got != test.pos {
			t.Errorf("Input: %#q: got position %s, want %s", test.input, got, test.pos)
		}
		if !strings.Contains(serr.Message, test.etext) {
			t.Errorf("Input: %#q: got message %q, want %q", test.input, serr.Message, test.etext)
		}
	}
}

func TestStreamDepthLimit(t *testing.T) {
	t.Run("Exceeded", func(t *testing.T) {
		const depth = 600
		input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
		s := jcore.NewStream(strings.NewReader(input))
		err := s.Parse(new(testHandler))
		if !errors.Is(err, jcore.ErrDeepNesting) {
			t.Fatalf("Parse: got %v, want %v", err, jcore.ErrDeepNesting)
		}
		var serr *jcore.SyntaxError
		if !errors.As(err, &serr) {
			t.Fatalf("Parse: got error %v, want *SyntaxError", err)
		}
		if got, want := serr.Location.String(), "1:501"; got != want {
			t.Errorf("Parse: got position %s, want %s", got, want)
		}
	})

	t.Run("Custom", func(t *testing.T) {
		s := jcore.NewStream(strings.NewReader(`[[[]]]`))
		s.SetMaxDepth(2)
		if err := s.Parse(new(testHandler)); !errors.Is(err, jcore.ErrDeepNesting) {
			t.Errorf("Parse: got %v, want %v", err, jcore.ErrDeepNesting)
		}
	})

	t.Run("WithinLimit", func(t *testing.T) {
		s := jcore.NewStream(strings.NewReader(`[[[]]]`))
		s.SetMaxDepth(3)
		if err := s.Parse(new(testHandler)); err != nil {
			t.Errorf("Parse failed: %v", err)
		}
	})
}

func TestStreamHandlerError(t *testing.T) {
	bad := errors.New("handler refused")
	h := &errHandler{testHandler: new(testHandler), bad: bad}
	s := jcore.NewStream(strings.NewReader(`{"a": [1, 2]}`))
	if err := s.Parse(h); !errors.Is(err, bad) {
		t.Errorf("Parse: got %v, want %v", err, bad)
	}
}

// errHandler fails on the first array it encounters.
type errHandler struct {
	*testHandler
	bad error
}

func (e *errHandler) BeginArray(loc jcore.Anchor) error { return e.bad }

func TestParseOne(t *testing.T) {
	s := jcore.NewStream(strings.NewReader(`{"a": 1} [2] true`))
	var got []string
	for {
		h := new(testHandler)
		err := s.ParseOne(h)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("ParseOne failed: %v", err)
		}
		got = append(got, strings.Join(h.output, "\n"))
	}
	want := []string{
		"BeginObject\nBeginMember <\"a\">\nValue integer <1>\nEndMember \"}\"\nEndObject",
		"BeginArray\nValue integer <2>\nEndArray",
		"Value true <true>",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseOne events: (-want, +got)\n%s", diff)
	}
}
