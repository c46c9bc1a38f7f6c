package lispp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func TestTokenizeSplitsOnWhitespace(t *testing.T) {
	got := texts(Tokenize("a b   c"))
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeKeepsBracketGroupsWhole(t *testing.T) {
	got := texts(Tokenize(`(vector 1 2) [a b]`))
	want := []string{"(vector 1 2)", "[a b]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeStringLiteralsAreOpaque(t *testing.T) {
	got := texts(Tokenize(`"hello world" "a\"b"`))
	want := []string{`"hello world"`, `"a\"b"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeLineComments(t *testing.T) {
	got := texts(Tokenize("a ; this is a comment\nb"))
	want := []string{"a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeSemicolonInsideStringIsLiteral(t *testing.T) {
	got := texts(Tokenize(`"a;b" c`))
	want := []string{`"a;b"`, "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeOffsetsAreByteOffsets(t *testing.T) {
	toks := Tokenize("ab cd")
	if toks[0].Offset != 0 || toks[1].Offset != 3 {
		t.Fatalf("unexpected offsets: %+v", toks)
	}
}
