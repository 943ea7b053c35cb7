// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

// KeyCount reports the total number of object member occurrences in v,
// summed over the whole tree. Duplicate keys are counted separately; scalars
// contribute nothing.
func KeyCount(v Value) int {
	switch t := v.(type) {
	case Object:
		n := len(t)
		for _, m := range t {
			n += KeyCount(m.Value)
		}
		return n
	case Array:
		var n int
		for _, elt := range t {
			n += KeyCount(elt)
		}
		return n
	default:
		return 0
	}
}

// Depth reports the maximum container nesting depth of v. A scalar has depth
// 0; an object or array has depth one greater than the deepest of its
// children, so an empty container has depth 1.
func Depth(v Value) int {
	var max int
	switch t := v.(type) {
	case Object:
		for _, m := range t {
			if d := Depth(m.Value); d > max {
				max = d
			}
		}
	case Array:
		for _, elt := range t {
			if d := Depth(elt); d > max {
				max = d
			}
		}
	default:
		return 0
	}
	return max + 1
}
