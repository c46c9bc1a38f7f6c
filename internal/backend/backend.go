// Package backend models the interface boundary to the external
// compile/hash/cache driver that decides when to rebuild a native
// evaluator backend. The driver's actual build logic (invoking a native
// toolchain, caching by content hash) is an external collaborator and out
// of scope; this package only gives the CLI's --recompile flag a real Go
// type to talk to.
package backend

// RecompilePolicy mirrors the CLI's --recompile values.
type RecompilePolicy string

const (
	RecompileNever  RecompilePolicy = "never"
	RecompileChange RecompilePolicy = "change"
	RecompileAlways RecompilePolicy = "always"
)

// Recompiler decides whether a canonicalized program needs the evaluator
// backend rebuilt before it is invoked, and does so. Implementations
// live outside this module; Noop satisfies callers that only need the
// preprocessing pipeline exercised.
type Recompiler interface {
	Recompile(canonical string, policy RecompilePolicy) error
}

// Noop never rebuilds. It is the Recompiler used when no external backend
// driver is configured.
type Noop struct{}

func (Noop) Recompile(string, RecompilePolicy) error { return nil }
