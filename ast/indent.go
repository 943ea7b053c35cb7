// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"strings"

	"github.com/creachadair/jcore"
)

// A Formatter carries the settings for pretty-printing values.
// A zero value renders compact output; set Indent to choose a nesting width.
type Formatter struct {
	// Indent is the number of spaces of indentation per nesting level.
	// Values <= 0 render compact output instead.
	Indent int
}

// Format renders a pretty-printed representation of v to w with default
// settings (two spaces of indentation per level).
func Format(w io.Writer, v Value) error {
	return Formatter{Indent: 2}.Format(w, v)
}

// FormatString formats v to a string with default settings.
func FormatString(v Value) string {
	return Formatter{Indent: 2}.FormatString(v)
}

// Format renders a pretty-printed representation of v to w using the
// settings from f. Rendering a well-formed value cannot fail; the error is
// that of writing to w, if any.
func (f Formatter) Format(w io.Writer, v Value) error {
	_, err := io.WriteString(w, f.FormatString(v))
	return err
}

// FormatString formats v to a string using the settings from f.
func (f Formatter) FormatString(v Value) string {
	if f.Indent <= 0 {
		return v.JSON()
	}
	var sb strings.Builder
	f.formatValue(&sb, v, "")
	return sb.String()
}

// formatValue writes a representation of v to sb. Children of v are indented
// one level past indent; the closing bracket lines up with indent.
func (f Formatter) formatValue(sb *strings.Builder, v Value, indent string) {
	switch t := v.(type) {
	case Object:
		if len(t) == 0 {
			sb.WriteString("{}")
			return
		}
		mdent := indent + strings.Repeat(" ", f.Indent)
		sb.WriteString("{\n")
		for i, m := range t {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(mdent)
			sb.WriteString(jcore.Quote(m.Key))
			sb.WriteString(": ")
			f.formatValue(sb, m.Value, mdent)
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteByte('}')
	case Array:
		if len(t) == 0 {
			sb.WriteString("[]")
			return
		}
		adent := indent + strings.Repeat(" ", f.Indent)
		sb.WriteString("[\n")
		for i, elt := range t {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(adent)
			f.formatValue(sb, elt, adent)
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteByte(']')
	default:
		sb.WriteString(v.JSON())
	}
}
