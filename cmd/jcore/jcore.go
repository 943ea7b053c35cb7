// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jcore is a command-line interface to the jcore JSON engine.
// It reads a document from a file or stdin and formats, minifies,
// validates, or summarizes it, or converts raw text to and from JSON
// string literals. All the processing is done by the ops package; this
// program only moves text in and out.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jcore/ops"
	"github.com/fatih/color"
)

var (
	app = kingpin.New("jcore", "Format, validate, and inspect JSON text.")

	formatCmd    = app.Command("format", "Pretty-print a JSON document.")
	formatIndent = formatCmd.Flag("indent", "Indentation width in spaces.").Short('i').Default("2").Int()
	formatFile   = formatCmd.Arg("file", "Input file (default stdin).").String()

	minifyCmd  = app.Command("minify", "Remove insignificant whitespace from a JSON document.")
	minifyFile = minifyCmd.Arg("file", "Input file (default stdin).").String()

	checkCmd  = app.Command("check", "Validate a JSON document.")
	checkFile = checkCmd.Arg("file", "Input file (default stdin).").String()

	statsCmd  = app.Command("stats", "Report structural statistics for a JSON document.")
	statsFile = statsCmd.Arg("file", "Input file (default stdin).").String()

	escapeCmd  = app.Command("escape", "Encode raw text as a JSON string literal.")
	escapeFile = escapeCmd.Arg("file", "Input file (default stdin).").String()

	unescapeCmd  = app.Command("unescape", "Decode a JSON string literal to raw text.")
	unescapeFile = unescapeCmd.Arg("file", "Input file (default stdin).").String()
)

func main() {
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case formatCmd.FullCommand():
		out, err := ops.Format(readInput(*formatFile), *formatIndent)
		if err != nil {
			fail(err)
		}
		fmt.Println(out)

	case minifyCmd.FullCommand():
		out, err := ops.Minify(readInput(*minifyFile))
		if err != nil {
			fail(err)
		}
		fmt.Println(out)

	case checkCmd.FullCommand():
		res := ops.Validate(readInput(*checkFile))
		if !res.Valid {
			color.Red("invalid: %v", res.Err)
			os.Exit(1)
		}
		color.Green("valid")

	case statsCmd.FullCommand():
		rep := ops.Stats(readInput(*statsFile))
		fmt.Printf("bytes:\t%d\n", rep.ByteSize)
		if !rep.Valid {
			color.Red("invalid: %v", rep.Err)
			os.Exit(1)
		}
		fmt.Printf("keys:\t%d\ndepth:\t%d\n", rep.KeyCount, rep.Depth)

	case escapeCmd.FullCommand():
		fmt.Println(ops.Escape(readInput(*escapeFile)))

	case unescapeCmd.FullCommand():
		out, err := ops.Unescape(readInput(*unescapeFile))
		if err != nil {
			fail(err)
		}
		fmt.Println(out)
	}
}

// readInput returns the contents of the named file, or of stdin if path is
// empty or "-".
func readInput(path string) string {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fail(err)
	}
	return string(data)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "jcore:", err)
	os.Exit(1)
}
