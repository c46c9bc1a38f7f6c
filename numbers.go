package lispp

import (
	"regexp"
	"strconv"
	"strings"
)

// NumKind classifies the result of RecognizeNumber.
type NumKind int

const (
	// NotNumeric means the token is not recognized as any numeric literal
	// and should be passed through as a symbol.
	NotNumeric NumKind = iota
	// IntegerKind means the token parsed as an integer literal.
	IntegerKind
	// FloatKind means the token parsed as a floating-point literal.
	FloatKind
)

// MinInt32, MaxInt32 bound the signed-32 range integer leaves must fit in
// (invariant I4): [-2^31, 2^31).
const (
	MinInt32 int64 = -1 << 31
	MaxInt32 int64 = 1<<31 - 1
)

// NumericResult is the outcome of classifying a raw token with
// RecognizeNumber.
type NumericResult struct {
	Kind       NumKind
	Int        int64
	Float      float64
	OutOfRange bool // true when Kind == IntegerKind and Int falls outside [MinInt32, MaxInt32]
}

var (
	floatPattern = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+)$`)
	basePattern  = regexp.MustCompile(`^(-?)0(b|t|x)([0-9a-fA-F]+)$`)
	sciPattern   = regexp.MustCompile(`(?i)^([+-]?\d+)e([+-]?\d+)$`)
	intPattern   = regexp.MustCompile(`^[+-]?\d(_?\d)*$`)
)

var baseOf = map[string]int{"b": 2, "t": 3, "x": 16}

// RecognizeNumber classifies a raw token with no surrounding whitespace
// per the precedence in §4.1:
//
//  1. float literal (`a.b`, `.b`, with optional sign)
//  2. base-prefixed integer (`0b`, `0t`, `0x`, with optional leading `-`)
//  3. scientific-notation integer (`mantissa e exponent`, case-insensitive)
//  4. decimal integer, optionally grouped with `_`
//  5. otherwise, NotNumeric
//
// It never exits the process; callers that need the fatal
// NumericOutOfRange behavior check NumericResult.OutOfRange themselves
// (see canon.go).
func RecognizeNumber(tok string) NumericResult {
	if floatPattern.MatchString(tok) {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return NumericResult{Kind: NotNumeric}
		}
		return NumericResult{Kind: FloatKind, Float: f}
	}

	if m := basePattern.FindStringSubmatch(tok); m != nil {
		sign, base, digits := m[1], baseOf[m[2]], m[3]
		n, err := strconv.ParseInt(digits, base, 64)
		if err != nil {
			return NumericResult{Kind: NotNumeric}
		}
		if sign == "-" {
			n = -n
		}
		return newIntegerResult(n)
	}

	if m := sciPattern.FindStringSubmatch(tok); m != nil {
		mantissa, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return NumericResult{Kind: NotNumeric}
		}
		exponent, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || exponent < 0 {
			return NumericResult{Kind: NotNumeric}
		}
		n := mantissa
		for i := int64(0); i < exponent; i++ {
			n *= 10
		}
		return newIntegerResult(n)
	}

	if intPattern.MatchString(tok) {
		n, err := strconv.ParseInt(strings.ReplaceAll(tok, "_", ""), 10, 64)
		if err != nil {
			return NumericResult{Kind: NotNumeric}
		}
		return newIntegerResult(n)
	}

	return NumericResult{Kind: NotNumeric}
}

func newIntegerResult(n int64) NumericResult {
	return NumericResult{
		Kind:       IntegerKind,
		Int:        n,
		OutOfRange: n < MinInt32 || n > MaxInt32,
	}
}

// CanonicalText renders a NumericResult the way canonical output must print
// it: integers in plain decimal with no underscores, floats with an
// explicit decimal point (never in scientific notation).
func (n NumericResult) CanonicalText() string {
	switch n.Kind {
	case IntegerKind:
		return strconv.FormatInt(n.Int, 10)
	case FloatKind:
		s := strconv.FormatFloat(n.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return ""
	}
}
