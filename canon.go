package lispp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/juju/loggo"
)

var canonLogger = loggo.GetLogger("lispp.canon")

// Preprocessor is the single mutable, single-threaded state a
// canonicalization run carries: the stack of file contexts `include!`
// resolves against, the set of std imports already spliced in, the
// traceback stack of source ranges for the sub-expressions currently being
// canonicalized, and the source text of each file context.
// A Preprocessor is not safe for concurrent use; independent Preprocessor
// instances share nothing and may run concurrently at the host level.
type Preprocessor struct {
	contexts  []string // "" is the sentinel for "no origin file" (source from -c)
	sources   []string // parallel to contexts: the full text each context's diagnostics render against
	included  map[string]bool
	traceback []Range

	stdRoot string
}

// NewPreprocessor constructs a Preprocessor over source, with origin as the
// initial file context ("" if the source came from a literal -c string)
// and stdRoot as the resolved root directory `use!` imports are read from.
func NewPreprocessor(source, origin, stdRoot string) *Preprocessor {
	return &Preprocessor{
		contexts: []string{origin},
		sources:  []string{source},
		included: map[string]bool{},
		stdRoot:  stdRoot,
	}
}

func (pp *Preprocessor) pushContext(path, text string) {
	pp.contexts = append(pp.contexts, path)
	pp.sources = append(pp.sources, text)
}

func (pp *Preprocessor) popContext() {
	pp.contexts = pp.contexts[:len(pp.contexts)-1]
	pp.sources = pp.sources[:len(pp.sources)-1]
}

// currentContext returns the file the text currently being processed came
// from, and false if the stack's top is the "no origin" sentinel.
func (pp *Preprocessor) currentContext() (string, bool) {
	top := pp.contexts[len(pp.contexts)-1]
	return top, top != ""
}

// currentSource returns the full text of the context currently being
// processed, which diagnostic ranges are offsets into.
func (pp *Preprocessor) currentSource() string {
	return pp.sources[len(pp.sources)-1]
}

func (pp *Preprocessor) pushRange(r Range) {
	pp.traceback = append(pp.traceback, r)
}

func (pp *Preprocessor) popRange() {
	pp.traceback = pp.traceback[:len(pp.traceback)-1]
}

// fail builds a Diagnostic anchored at rng against the Preprocessor's full
// source text, ready to be returned up the call stack and rendered by the
// driver.
func (pp *Preprocessor) fail(code ErrorCode, rng Range, desc string, cause error) *Diagnostic {
	canonLogger.Debugf("preprocessing error %s at %v: %s", code, rng, desc)
	return newDiagnostic(code, "canon", pp.currentSource(), rng, desc, cause)
}

// Run canonicalizes the full program: it wraps code in "(do …)" per the
// driver's top-level wrapping convention and canonicalizes the result.
func (pp *Preprocessor) Run(code string) (string, error) {
	// The "(do " wrapper is not part of the source, so it starts before
	// offset 0 and code keeps its own byte offsets.
	return pp.canon(wrapParens("do "+code), -len("(do "))
}

// canon is the central recursive canonicalization function. expr is
// assumed to start at byte offset `offset` within the current context's
// source text, pp.currentSource() (best-effort:
// synthesized macro expansions anchor to the call site that produced
// them, since the string-in/string-out pipeline does not carry a
// structured position map through macro expansion).
func (pp *Preprocessor) canon(expr string, offset int) (string, error) {
	lead := strings.IndexFunc(expr, func(r rune) bool { return !unicode.IsSpace(r) })
	var trimmed string
	if lead >= 0 {
		trimmed = strings.TrimRightFunc(expr[lead:], unicode.IsSpace)
		offset += lead
	}

	rng := Range{Start: offset, End: offset + len(trimmed)}
	pp.pushRange(rng)
	defer pp.popRange()

	if repl, ok := lookupShorthand(trimmed); ok {
		return repl, nil
	}

	if len(trimmed) >= 2 {
		switch {
		case strings.HasPrefix(trimmed, "#[") && strings.HasSuffix(trimmed, "]"):
			return pp.canon("(-> ("+trimmed[2:len(trimmed)-1]+"))", offset)
		case strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"):
			return pp.canon("(expression "+trimmed[1:len(trimmed)-1]+")", offset)
		case strings.HasPrefix(trimmed, "l[") && strings.HasSuffix(trimmed, "]"):
			return pp.canon("(list "+trimmed[2:len(trimmed)-1]+")", offset)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			return pp.canon("(vector "+trimmed[1:len(trimmed)-1]+")", offset)
		case strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")"):
			return pp.canonFunction(trimmed, offset)
		}
	}

	body := stripTrailingComment(trimmed)

	if isRangeShorthand(body) {
		return pp.canonRange(body, offset)
	}

	if num := RecognizeNumber(body); num.Kind != NotNumeric {
		if num.Kind == IntegerKind && num.OutOfRange {
			return "", pp.fail(ErrNumericOutOfRange, rng,
				fmt.Sprintf("Number '%s' not in [%d, %d]", body, MinInt32, MaxInt32), nil)
		}
		return num.CanonicalText(), nil
	}

	if alias, ok := boolAliases[body]; ok {
		return alias, nil
	}

	return body, nil
}

// canonFunction implements make_function_canon: tokenize the interior,
// canonicalize each child independently, apply a macro if the head
// matches one, and rewrap — promoting a computed head to a `(call …)`
// form if the result would otherwise start with "((".
func (pp *Preprocessor) canonFunction(expr string, offset int) (string, error) {
	inner, _ := stripOuterParens(expr)
	toks := Tokenize(inner)
	if len(toks) == 0 {
		return "()", nil
	}

	children := make([]string, len(toks))
	for i, t := range toks {
		c, err := pp.canon(t.Text, offset+1+t.Offset)
		if err != nil {
			return "", err
		}
		children[i] = c
	}

	if m, ok := lookupMacro(children[0]); ok {
		nargs := len(children) - 1
		if !m.Arity.Contains(nargs) {
			return "", pp.fail(ErrBadMacroArity, Range{Start: offset, End: offset + len(expr)},
				(&BadMacroArity{Macro: m, Received: nargs}).Error(), nil)
		}

		callTok := &Token{Offset: offset, Text: children[0]}
		raw, err := m.Expand(pp, callTok, children[1:])
		if err != nil {
			return "", err
		}

		expanded, err := pp.canon(wrapParens(raw), offset)
		if err != nil {
			return "", err
		}
		expandedInner, _ := stripOuterParens(expanded)
		newToks := Tokenize(expandedInner)
		children = make([]string, len(newToks))
		for i, t := range newToks {
			children[i] = t.Text
		}
	}

	joined := joinChildren(children)
	if strings.HasPrefix(joined, "(") {
		return "(call " + joined + ")", nil
	}
	return "(" + joined + ")", nil
}

// canonRange expands an a:b:c range shorthand into `(range a b c)` per the
// default rules in §4.5: missing a defaults to 0, missing c defaults to 1,
// missing b defaults to -1 when canon(a) is a positive integer, else 0.
func (pp *Preprocessor) canonRange(body string, offset int) (string, error) {
	parts := strings.SplitN(body, ":", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	a, b, c := parts[0], parts[1], parts[2]

	if a == "" {
		a = "0"
	}
	if c == "" {
		c = "1"
	}
	if b == "" {
		b = "0"
		if canonA, err := pp.canon(a, offset); err == nil {
			if n, convErr := strconv.Atoi(canonA); convErr == nil && n > 0 {
				b = "-1"
			}
		}
	}

	return pp.canon(fmt.Sprintf("(range %s %s %s)", a, b, c), offset)
}

// stripTrailingComment removes a `;`-initiated line comment from the end
// of a single token, honoring string literals (a `;` inside a string is
// literal, per §4.2).
func stripTrailingComment(s string) string {
	inString := false
	escape := false
	for i, r := range s {
		switch {
		case escape:
			escape = false
		case inString && r == '\\':
			escape = true
		case r == '"':
			inString = !inString
		case !inString && r == ';':
			return strings.TrimRight(s[:i], " \t")
		}
	}
	return s
}

// isRangeShorthand reports whether body should be treated as an a:b:c
// range shorthand: it is not a quoted string literal and contains between
// one and three `:` characters.
func isRangeShorthand(body string) bool {
	if len(body) >= 2 && body[0] == '"' && body[len(body)-1] == '"' {
		return false
	}
	n := strings.Count(body, ":")
	return n >= 1 && n <= 3
}
