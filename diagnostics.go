package lispp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// ErrorCode identifies the kind of fatal condition a Diagnostic describes,
// per spec §7.
type ErrorCode string

const (
	ErrNumericOutOfRange    ErrorCode = "E001"
	ErrBadMacroArity        ErrorCode = "E002"
	ErrLispImportWithoutFile ErrorCode = "E003"
	ErrImportPathMalformed  ErrorCode = "E004"
	ErrIoFailure            ErrorCode = "E005"
)

// Diagnostic is the error type the preprocessor's fatal conditions (the
// ErrorCode kinds above) are reported as. It carries enough context — the
// code's full source text, the offending byte range, and an optional
// underline/help message — to render the boxed, source-highlighted
// messages described in spec §4.7. Malformed for!/where! heads and switch
// clauses are reported as plain errors, not as Diagnostics.
//
// A Diagnostic may wrap an underlying error (OrigError), exposed through
// Unwrap so the usual errors.Is/errors.As machinery works; when set, it is
// a github.com/juju/errors annotated chain (as for IoFailure). Diagnostics
// raised without a cause leave OrigError nil.
type Diagnostic struct {
	Code     ErrorCode
	Desc     string
	Sender   string
	Source   string
	Range    Range
	UnderMsg string
	HelpMsg  string
	ANSI     bool

	OrigError error
}

func (d *Diagnostic) Error() string {
	if d.OrigError != nil {
		return fmt.Sprintf("[%s] %s: %s", d.Code, d.Desc, d.OrigError.Error())
	}
	return fmt.Sprintf("[%s] %s", d.Code, d.Desc)
}

// Unwrap exposes the wrapped cause so callers can use errors.Is/errors.As.
func (d *Diagnostic) Unwrap() error {
	return d.OrigError
}

// newDiagnostic builds a Diagnostic and annotates any wrapped cause with
// juju/errors so the original call chain survives in %+v-style debugging
// even though the user-facing message only ever shows Desc.
func newDiagnostic(code ErrorCode, sender, source string, rng Range, desc string, cause error) *Diagnostic {
	if cause != nil {
		cause = errors.Annotate(cause, string(code))
	}
	return &Diagnostic{
		Code:      code,
		Desc:      desc,
		Sender:    sender,
		Source:    source,
		Range:     rng,
		ANSI:      true,
		OrigError: cause,
	}
}

const contextLines = 2

// ansi wraps s in the given SGR color code when enabled is true.
func ansi(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

// Render produces the full, source-highlighted diagnostic message: a
// colored header, ±2 lines of context around the error with right-aligned
// line numbers, an underline with a "┬" at its midpoint, and optional
// under-message and help lines.
func (d *Diagnostic) Render() string {
	lines := strings.Split(d.Source, "\n")

	lineStarts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		lineStarts[i] = offset
		offset += len(line) + 1
	}

	errLine := 0
	for i, start := range lineStarts {
		if d.Range.Start >= start {
			errLine = i
		}
	}

	start := errLine - contextLines
	if start < 0 {
		start = 0
	}
	end := errLine + contextLines
	if end >= len(lines) {
		end = len(lines) - 1
	}

	width := len(strconv.Itoa(end + 1))

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", ansi(d.ANSI, "31", fmt.Sprintf("🗙 error[%s]: %s", d.Code, d.Desc)))

	for i := start; i <= end; i++ {
		fmt.Fprintf(&b, "%s │ %s\n", padLeft(strconv.Itoa(i+1), width), lines[i])

		if i == errLine {
			relStart := clamp(d.Range.Start-lineStarts[i], 0, len(lines[i]))
			relEnd := clamp(d.Range.End-lineStarts[i], relStart, len(lines[i]))

			left := strings.Repeat(" ", width) + " · "
			fmt.Fprintf(&b, "%s%s\n", left, ansi(d.ANSI, "32", underline(lines[i], relStart, relEnd)))

			if d.UnderMsg != "" {
				mid := (relStart + relEnd) / 2
				callout := strings.Repeat(" ", mid) + "╰──── " + d.UnderMsg
				fmt.Fprintf(&b, "%s%s\n", left, ansi(d.ANSI, "32", callout))
			}
		}
	}

	out := strings.TrimSuffix(b.String(), "\n")

	if d.HelpMsg != "" {
		out += ansi(d.ANSI, "35", "\nhelp:") + " " + d.HelpMsg
	}

	return out
}

// underline draws the "────┬────" bar below a line, with the "┬" centered
// on [relStart, relEnd).
func underline(line string, relStart, relEnd int) string {
	mid := (relStart + relEnd) / 2
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case i == mid:
			b.WriteRune('┬')
		case i >= relStart && i < relEnd:
			b.WriteRune('─')
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func padLeft(s string, width int) string {
	for len(s) < width {
		s = " " + s
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
