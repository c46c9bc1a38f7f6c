package lispp

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var includeLogger = loggo.GetLogger("lispp.include")

// unquoteFilename requires arg to be exactly an ASCII double-quoted string
// and returns its contents, per §4.6's "filename arguments must be
// surrounded by ASCII double quotes" rule.
func unquoteFilename(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '"' || arg[len(arg)-1] != '"' {
		return "", false
	}
	return arg[1 : len(arg)-1], true
}

// readSource reads path and wraps any OS-level failure as an IoFailure
// diagnostic naming the resolved absolute path.
func (pp *Preprocessor) readSource(path string, callRange Range) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", pp.fail(ErrIoFailure, callRange, "could not resolve path "+path, errors.Trace(err))
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", pp.fail(ErrIoFailure, callRange, "could not read "+abs, errors.Annotate(err, "reading include"))
	}
	return string(data), nil
}

// splice canonicalizes text as a fresh top-level program under the given
// file context and returns its canonical body stripped of the outer
// parentheses, so the caller can inline it in place of the macro call.
func (pp *Preprocessor) splice(path, text string) (string, error) {
	pp.pushContext(path, text)
	defer pp.popContext()

	// The "(do " wrapper is not part of text, so it starts before offset 0.
	canonical, err := pp.canon(wrapParens("do "+text), -len("(do "))
	if err != nil {
		return "", err
	}
	body, _ := stripOuterParens(canonical)
	return body, nil
}

// expandInclude implements `include!`: resolve name against the directory
// of the current file context and splice in its canonicalized body. Fails
// with LispImportWithoutFile if there is no current file (source came
// from a literal -c string).
func expandInclude(pp *Preprocessor, call *Token, args []string) (string, error) {
	callRange := Range{Start: call.Offset, End: call.Offset + len(call.Text)}

	name, ok := unquoteFilename(args[0])
	if !ok {
		return "", pp.fail(ErrImportPathMalformed, callRange, "include! argument must be a quoted string, got "+args[0], nil)
	}

	ctxFile, hasFile := pp.currentContext()
	if !hasFile {
		return "", pp.fail(ErrLispImportWithoutFile, callRange, "include! used with no origin file set", nil)
	}

	path := filepath.Join(filepath.Dir(ctxFile), name)
	includeLogger.Debugf("include! %q -> %s", name, path)

	text, err := pp.readSource(path, callRange)
	if err != nil {
		return "", err
	}
	return pp.splice(path, text)
}

// expandUse implements `use!`: resolve name against the preprocessor's
// bundled standard-library root and splice its canonicalized body exactly
// once per canonicalization run (invariant I5) — subsequent uses of the
// same std file expand to a no-op `do`.
func expandUse(pp *Preprocessor, call *Token, args []string) (string, error) {
	callRange := Range{Start: call.Offset, End: call.Offset + len(call.Text)}

	name, ok := unquoteFilename(args[0])
	if !ok {
		return "", pp.fail(ErrImportPathMalformed, callRange, "use! argument must be a quoted string, got "+args[0], nil)
	}

	path := filepath.Join(pp.stdRoot, name)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", pp.fail(ErrIoFailure, callRange, "could not resolve std path "+path, errors.Trace(err))
	}

	if pp.included[abs] {
		includeLogger.Debugf("use! %q already spliced, no-op", name)
		return "do", nil
	}
	pp.included[abs] = true

	includeLogger.Debugf("use! %q -> %s", name, abs)

	text, err := pp.readSource(abs, callRange)
	if err != nil {
		return "", err
	}
	return pp.splice(abs, text)
}
