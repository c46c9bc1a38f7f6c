// Package data embeds the preprocessor's static lookup tables — the
// shorthand table, the in-place-operator table, and the builtin/type name
// lists consumed only by the external code generator — and decodes them
// once at package init.
package data

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed shorthands.yaml
var shorthandsYAML []byte

//go:embed prefix_equals.yaml
var prefixEqualsYAML []byte

//go:embed builtins.yaml
var builtinsYAML []byte

//go:embed types.yaml
var typesYAML []byte

// InPlaceEntry is a single row of the prefix_equals table: operator name to
// the operator it expands into, plus whether the existing value is
// appended first or last.
type InPlaceEntry struct {
	Name string
	Op   string
	Rev  bool
}

var (
	// Shorthands maps a surface token to its canonical replacement.
	Shorthands map[string]string
	// InPlaceOperators is the decoded prefix_equals table, order-stable for
	// deterministic macro registration.
	InPlaceOperators []InPlaceEntry
	// Builtins and Types are consumed only by the external code generator;
	// the preprocessor itself never reads them.
	Builtins []string
	Types    []string
)

func init() {
	if err := yaml.Unmarshal(shorthandsYAML, &Shorthands); err != nil {
		panic(fmt.Sprintf("data: decoding shorthands.yaml: %v", err))
	}

	var raw map[string]struct {
		Op  string `yaml:"op"`
		Rev bool   `yaml:"rev"`
	}
	if err := yaml.Unmarshal(prefixEqualsYAML, &raw); err != nil {
		panic(fmt.Sprintf("data: decoding prefix_equals.yaml: %v", err))
	}
	for name, v := range raw {
		InPlaceOperators = append(InPlaceOperators, InPlaceEntry{Name: name, Op: v.Op, Rev: v.Rev})
	}
	sortInPlaceOperators(InPlaceOperators)

	if err := yaml.Unmarshal(builtinsYAML, &Builtins); err != nil {
		panic(fmt.Sprintf("data: decoding builtins.yaml: %v", err))
	}
	if err := yaml.Unmarshal(typesYAML, &Types); err != nil {
		panic(fmt.Sprintf("data: decoding types.yaml: %v", err))
	}
}

// sortInPlaceOperators gives macro registration a deterministic order even
// though yaml.v2 decodes maps in random key order; it sorts by name so
// repeated runs register the operators in the same order.
func sortInPlaceOperators(entries []InPlaceEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Name < entries[j-1].Name; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}
