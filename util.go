package lispp

import "strings"

// stripOuterParens removes one layer of surrounding parentheses from s, if
// s is trimmed whitespace-free and actually wrapped in them.
func stripOuterParens(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1], true
	}
	return s, false
}

func wrapParens(s string) string {
	return "(" + s + ")"
}

func joinChildren(children []string) string {
	return strings.Join(children, " ")
}

// headAndRest tokenizes a parenthesized form like "(vector v i l)" and
// returns the head token text plus the remaining tokens' text, or ok=false
// if s isn't a parenthesized form.
func headAndRest(s string) (head string, rest []string, ok bool) {
	inner, wasParen := stripOuterParens(strings.TrimSpace(s))
	if !wasParen {
		return "", nil, false
	}
	toks := Tokenize(inner)
	if len(toks) == 0 {
		return "", nil, false
	}
	rest = make([]string, 0, len(toks)-1)
	for _, t := range toks[1:] {
		rest = append(rest, t.Text)
	}
	return toks[0].Text, rest, true
}
