// Package lispp implements the front-end preprocessor for a Lisp-family
// language: a bracket- and string-aware tokenizer, a canonicalizer that
// rewrites surface syntax into a restricted S-expression dialect, a macro
// expander, and a file/standard-library include resolver.
package lispp

import "fmt"

// Token is a single top-level lexical element produced by Tokenize. Offset
// is a byte offset relative to the string that was tokenized, not
// necessarily the original top-level source — callers that need absolute
// source positions add their own base offset (see canon.go).
type Token struct {
	Offset int
	Text   string
}

// String returns a human-readable representation of the token for debug
// logging.
func (t Token) String() string {
	val := t.Text
	if len(val) > 80 {
		val = val[:40] + "..." + val[len(val)-20:]
	}
	return fmt.Sprintf("<Token Offset=%d Text=%q>", t.Offset, val)
}

// Range is a half-open byte interval [Start, End) over a source buffer,
// used by the traceback subsystem to describe the extent of a
// sub-expression for diagnostics.
type Range struct {
	Start int
	End   int
}

// Mid returns the midpoint of the range (the same rounding Render uses,
// on line-relative columns, to place the "┬" marker of an underline).
func (r Range) Mid() int {
	return (r.Start + r.End) / 2
}

// Contains reports whether the given absolute source offset falls inside
// the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}
