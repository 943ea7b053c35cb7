// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jcore implements a JSON scanner and parser.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and reports whether one is available:
//
//	s := jcore.NewScanner(input)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns false when the input has been fully consumed or an error
// occurred. Err reports the error, if any; lexical errors have concrete type
// [*SyntaxError] and carry the line and column of the failure:
//
//	if s.Err() != nil {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON.  The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of error, parsing is terminated and an error of
// concrete type [*SyntaxError] is returned.
//
// Construct a Stream from an io.Reader, and call its Parse method. Parse
// returns nil if the input was fully processed without error. If a Handler
// method reports an error, parsing stops and that error is returned.
//
//	s := jcore.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available:
//
//	if err := s.ParseOne(handler); err == io.EOF {
//	   log.Print("No more input")
//	} else if err != nil {
//	   log.Printf("ParseOne failed: %v", err)
//	}
//
// The parser rejects input whose container nesting exceeds a depth limit,
// reporting a [*SyntaxError] that wraps [ErrDeepNesting]. Use SetMaxDepth to
// adjust the limit.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. See the comments on the Handler type for the meaning
// of each method's anchor value. The Anchor passed to a handler method is only
// valid for the duration of that method call; the handler must copy any data
// it needs to retain beyond the lifetime of the call.
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that a SyntaxError is reported.
package jcore
