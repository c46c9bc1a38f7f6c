package lispp

import "github.com/lispforge/lispp/internal/data"

// lookupShorthand reports whether tok is a registered shorthand surface
// token and, if so, its canonical replacement. Applied by canon as the
// first rule after trimming whitespace, ahead of bracket sugar, ranges,
// numeric recognition, and boolean aliases.
func lookupShorthand(tok string) (string, bool) {
	v, ok := data.Shorthands[tok]
	return v, ok
}

// boolAliases are the fixed boolean/nil spellings canon recognizes after
// shorthands, bracket sugar, and ranges have all failed to match — these
// are part of the canonicalizer's own algorithm, not the data-driven
// shorthand table.
var boolAliases = map[string]string{
	"True":    "Yes",
	"False":   "No",
	"On":      "Yes",
	"Off":     "No",
	"Nothing": "Nil",
}
