// Package stdlib bundles the preprocessor's standard library and
// materializes it to a real directory on first use, so that `use!`'s
// contract of producing an absolute path for diagnostics and
// deduplication holds exactly as it would against a conventional
// filesystem install.
package stdlib

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/juju/errors"
)

//go:embed std
var bundled embed.FS

// Materialize writes the embedded standard library under dir (creating it
// if necessary) and returns the resulting std/ root. It is idempotent:
// files are rewritten unconditionally so a binary upgrade always produces
// a consistent tree, but the operation is cheap (a handful of small
// files) and safe to call once per process.
func Materialize(dir string) (string, error) {
	root := filepath.Join(dir, "std")

	err := fs.WalkDir(bundled, "std", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("std", path)
		if err != nil {
			return err
		}
		target := filepath.Join(root, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		contents, err := bundled.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, contents, 0o644)
	})
	if err != nil {
		return "", errors.Annotate(err, "materializing embedded stdlib")
	}
	return root, nil
}

// DefaultDir returns the cache directory the stdlib is materialized into
// when the CLI/config do not override it.
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Annotate(err, "resolving default cache dir")
	}
	return filepath.Join(cache, "lispp"), nil
}
