// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jcore_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/creachadair/jcore"
	"github.com/creachadair/jcore/ast"
)

// benchInput is a synthetic document of nested objects and arrays, large
// enough that per-token costs dominate setup costs.
var benchInput = makeBenchInput(2000)

func makeBenchInput(n int) string {
	rng := rand.New(rand.NewSource(20250829))
	var sb strings.Builder
	sb.WriteString(`{"records":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"id":%d,"name":"record %04x","score":%g,"tags":["a","b \"c\"",null],"ok":%v}`,
			i, rng.Intn(1<<16), rng.Float64()*100, i%3 == 0)
	}
	sb.WriteString(`]}`)
	return sb.String()
}

func BenchmarkScanner(b *testing.B) {
	b.SetBytes(int64(len(benchInput)))
	for i := 0; i < b.N; i++ {
		s := jcore.NewScanner(strings.NewReader(benchInput))
		for s.Next() {
		}
		if s.Err() != nil {
			b.Fatalf("Next failed: %v", s.Err())
		}
	}
}

type nullHandler struct{}

func (nullHandler) BeginObject(jcore.Anchor) error { return nil }
func (nullHandler) EndObject(jcore.Anchor) error   { return nil }
func (nullHandler) BeginArray(jcore.Anchor) error  { return nil }
func (nullHandler) EndArray(jcore.Anchor) error    { return nil }
func (nullHandler) BeginMember(jcore.Anchor) error { return nil }
func (nullHandler) EndMember(jcore.Anchor) error   { return nil }
func (nullHandler) Value(jcore.Anchor) error       { return nil }
func (nullHandler) EndOfInput(jcore.Anchor)        {}

func BenchmarkStream(b *testing.B) {
	b.SetBytes(int64(len(benchInput)))
	for i := 0; i < b.N; i++ {
		s := jcore.NewStream(strings.NewReader(benchInput))
		if err := s.Parse(nullHandler{}); err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	b.SetBytes(int64(len(benchInput)))
	for i := 0; i < b.N; i++ {
		if _, err := ast.ParseString(benchInput); err != nil {
			b.Fatalf("Parse failed: %v", err)
		}
	}
}

// Baseline: the standard library decoder over the same input.
func BenchmarkStdDecoder(b *testing.B) {
	b.SetBytes(int64(len(benchInput)))
	for i := 0; i < b.N; i++ {
		dec := json.NewDecoder(strings.NewReader(benchInput))
		var v any
		if err := dec.Decode(&v); err != nil {
			b.Fatalf("Decode failed: %v", err)
		}
	}
}
