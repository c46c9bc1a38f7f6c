package lispp

import (
	"strings"
	"testing"
)

func runCanon(t *testing.T, code string) string {
	t.Helper()
	pp := NewPreprocessor(code, "", "")
	out, err := pp.Run(code)
	if err != nil {
		t.Fatalf("Run(%q) returned error: %v", code, err)
	}
	return out
}

func TestCanonScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain application", "(noop 10)", "(do (noop 10))"},
		{"vector sugar", "[1 2 3]", "(do (vector 1 2 3))"},
		{"range a:b", "0:5", "(do (range 0 5 1))"},
		{"range :b:c", ":10:2", "(do (range 0 10 2))"},
		{"range a:", "5:", "(do (range 5 -1 1))"},
		{"increment macro", "(++ x)", "(do (let x (+ x 1)))"},
		{"decrement macro", "(-- x)", "(do (let x (- x 1)))"},
		{"if! macro", "(if! Yes 1 2)", "(do (eval_expr (? Yes (expression 1) (expression 2))))"},
		{"hex literal", "0xff", "(do 255)"},
		{"binary literal", "0b1010", "(do 10)"},
		{"scientific literal", "1e3", "(do 1000)"},
		{"negative hex literal", "-0x10", "(do -16)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runCanon(t, tt.in)
			if got != tt.want {
				t.Errorf("canon(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonNamedLambdaExpandsDefaultArglist(t *testing.T) {
	got := runCanon(t, "(=> inc (+ _ 1))")
	want := "(do (let inc (closure (expression (expression _) (+ _ 1)))))"
	if got != want {
		t.Errorf("canon = %q, want %q", got, want)
	}
}

func TestCanonIsIdempotent(t *testing.T) {
	for _, in := range []string{"(noop 10)", "(vector 1 2 3)", "(let x (+ x 1))", "(eval_expr (? Yes (expression 1) (expression 2)))"} {
		pp := NewPreprocessor(in, "", "")
		once, err := pp.canon(in, 0)
		if err != nil {
			t.Fatalf("canon(%q) returned error: %v", in, err)
		}
		pp2 := NewPreprocessor(once, "", "")
		twice, err := pp2.canon(once, 0)
		if err != nil {
			t.Fatalf("canon(%q) returned error: %v", once, err)
		}
		if once != twice {
			t.Errorf("canon not idempotent for %q: canon once = %q, canon twice = %q", in, once, twice)
		}
	}
}

func TestCanonBalancedParens(t *testing.T) {
	for _, in := range []string{"(noop 10)", "[1 2 3]", "(switch n (case 1 \"a\") (otherwise \"z\"))", "(=> inc (x) (+ x 1))"} {
		got := runCanon(t, in)
		if strings.Count(got, "(") != strings.Count(got, ")") {
			t.Errorf("unbalanced parens in canon(%q) = %q", in, got)
		}
	}
}

func TestCanonNoShorthandSurvives(t *testing.T) {
	got := runCanon(t, "{_}")
	for _, bad := range []string{"{", "}", "[", "]"} {
		if strings.Contains(got, bad) {
			t.Errorf("canon output %q still contains shorthand character %q", got, bad)
		}
	}
}

func TestCanonSwitchBuildsNestedConditional(t *testing.T) {
	got := runCanon(t, `(switch n (case 1 "a") (case 2 "b") (otherwise "z"))`)
	if !strings.Contains(got, `(== 1 n)`) || !strings.Contains(got, `(== 2 n)`) {
		t.Errorf("switch expansion missing case comparisons: %q", got)
	}
	if !strings.Contains(got, `"z"`) {
		t.Errorf("switch expansion missing fallback: %q", got)
	}
}

func TestCanonNumericOutOfRangeFails(t *testing.T) {
	pp := NewPreprocessor("2147483648", "", "")
	_, err := pp.Run("2147483648")
	if err == nil {
		t.Fatal("expected NumericOutOfRange error")
	}
	diag, ok := err.(*Diagnostic)
	if !ok {
		t.Fatalf("expected *Diagnostic, got %T", err)
	}
	if diag.Code != ErrNumericOutOfRange {
		t.Errorf("diag.Code = %v, want %v", diag.Code, ErrNumericOutOfRange)
	}
}

func TestCanonBadMacroArityFails(t *testing.T) {
	pp := NewPreprocessor("(if! Yes)", "", "")
	_, err := pp.Run("(if! Yes)")
	if err == nil {
		t.Fatal("expected BadMacroArity error")
	}
	diag, ok := err.(*Diagnostic)
	if !ok {
		t.Fatalf("expected *Diagnostic, got %T", err)
	}
	if diag.Code != ErrBadMacroArity {
		t.Errorf("diag.Code = %v, want %v", diag.Code, ErrBadMacroArity)
	}
	if !strings.Contains(diag.Desc, "between 2 and 3") {
		t.Errorf("diag.Desc = %q, want it to mention the expected arity", diag.Desc)
	}
}
