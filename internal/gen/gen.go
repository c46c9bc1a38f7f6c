// Package gen models the interface boundary to the external
// code-generation step that renders the builtins/types data files into
// evaluator source. It reads the same static tables the preprocessor
// embeds (see internal/data) but the template rendering itself is an
// external, out-of-scope concern; this package only gives that step a
// concrete Go signature to be invoked through.
package gen

import "github.com/lispforge/lispp/internal/data"

// TableRenderer renders the builtins/types name tables into a target
// representation (e.g. generated evaluator source). Implementations live
// outside this module.
type TableRenderer interface {
	RenderTables(builtins, types []string) ([]byte, error)
}

// RenderTables renders the currently embedded builtins/types tables using
// r. It exists so the CLI has something concrete to call; by default no
// TableRenderer is wired in and this is never invoked from the
// preprocessing path itself.
func RenderTables(r TableRenderer) ([]byte, error) {
	return r.RenderTables(data.Builtins, data.Types)
}
