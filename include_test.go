package lispp

import (
	"os"
	"path/filepath"
	"testing"

	jujutesting "github.com/juju/testing"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

type includeSuite struct {
	jujutesting.CleanupSuite
	dir string
}

var _ = gc.Suite(&includeSuite{})

func (s *includeSuite) SetUpTest(c *gc.C) {
	s.CleanupSuite.SetUpTest(c)
	s.dir = c.MkDir()
}

func (s *includeSuite) writeFile(c *gc.C, name, contents string) string {
	path := filepath.Join(s.dir, name)
	err := os.WriteFile(path, []byte(contents), 0o644)
	c.Assert(err, gc.IsNil)
	return path
}

func (s *includeSuite) TestIncludeSplicesFileRelativeToOrigin(c *gc.C) {
	helper := s.writeFile(c, "helper.lisp", "(def-helper 1)")
	origin := s.writeFile(c, "main.lisp", `(include! "helper.lisp")`)

	pp := NewPreprocessor("", origin, s.dir)
	out, err := pp.Run(`(include! "helper.lisp")`)
	c.Assert(err, gc.IsNil)
	c.Check(out, gc.Equals, "(do (do (def-helper 1)))")
	_ = helper
}

func (s *includeSuite) TestIncludeWithoutOriginFails(c *gc.C) {
	pp := NewPreprocessor("", "", s.dir)
	_, err := pp.Run(`(include! "helper.lisp")`)
	c.Assert(err, gc.NotNil)
	diag, ok := err.(*Diagnostic)
	c.Assert(ok, gc.Equals, true)
	c.Check(diag.Code, gc.Equals, ErrLispImportWithoutFile)
}

func (s *includeSuite) TestIncludeMissingFileFails(c *gc.C) {
	origin := s.writeFile(c, "main.lisp", "")
	pp := NewPreprocessor("", origin, s.dir)
	_, err := pp.Run(`(include! "missing.lisp")`)
	c.Assert(err, gc.NotNil)
	diag, ok := err.(*Diagnostic)
	c.Assert(ok, gc.Equals, true)
	c.Check(diag.Code, gc.Equals, ErrIoFailure)
}

func (s *includeSuite) TestImportPathMustBeQuoted(c *gc.C) {
	origin := s.writeFile(c, "main.lisp", "")
	pp := NewPreprocessor("", origin, s.dir)
	_, err := pp.Run(`(include! helper.lisp)`)
	c.Assert(err, gc.NotNil)
	diag, ok := err.(*Diagnostic)
	c.Assert(ok, gc.Equals, true)
	c.Check(diag.Code, gc.Equals, ErrImportPathMalformed)
}

func (s *includeSuite) TestUseDeduplicatesAcrossOneCanonicalization(c *gc.C) {
	stdDir := c.MkDir()
	err := os.WriteFile(filepath.Join(stdDir, "prelude.lisp"), []byte("(def-prelude 1)"), 0o644)
	c.Assert(err, gc.IsNil)

	origin := s.writeFile(c, "main.lisp", "")
	pp := NewPreprocessor("", origin, stdDir)

	out, err := pp.Run(`(do (use! "prelude.lisp") (use! "prelude.lisp"))`)
	c.Assert(err, gc.IsNil)
	c.Check(out, gc.Equals, `(do (do (do (def-prelude 1)) (do)))`)
}
