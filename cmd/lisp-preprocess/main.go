// Command lisp-preprocess reads Lisp source (a file or a literal string),
// canonicalizes it, and either prints the canonical form (--dump) or writes
// it to a content-addressed temporary file. It does not start an
// evaluator: the temporary path and the --unsafe and -a values are only
// logged at DEBUG level.
package main

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"

	"github.com/juju/loggo"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/lispforge/lispp"
	"github.com/lispforge/lispp/internal/backend"
	"github.com/lispforge/lispp/internal/config"
	"github.com/lispforge/lispp/internal/stdlib"
)

var driverLogger = loggo.GetLogger("lispp.driver")

func main() {
	os.Exit(run())
}

func run() int {
	var (
		code      string
		dump      bool
		recompile string
		unsafe    bool
		logLevel  string
		evalArgs  []string
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	root := &cobra.Command{
		Use:           "lisp-preprocess [ORIGIN]",
		Short:         "Canonicalize Lisp source for the evaluator",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var origin string
			if len(args) == 1 {
				origin = args[0]
			}
			if (origin == "") == (code == "") {
				return fmt.Errorf("exactly one of ORIGIN or -c CODE is required")
			}

			level := logLevel
			if level == "" {
				level = cfg.Logging.Level
			}
			if err := loggo.ConfigureLoggers(fmt.Sprintf("lispp=%s", level)); err != nil {
				return err
			}

			return runPreprocess(origin, code, dump, backend.RecompilePolicy(recompile), unsafe, evalArgs, cfg)
		},
	}

	root.Flags().StringVarP(&code, "code", "c", "", "a literal source string")
	root.Flags().BoolVar(&dump, "dump", false, "print the canonical form to stdout and exit")
	root.Flags().StringVar(&recompile, "recompile", string(backend.RecompileNever), "never|change|always: forwarded to the backend build driver")
	root.Flags().BoolVar(&unsafe, "unsafe", false, "evaluator boolean flag (only logged; no evaluator is started)")
	root.Flags().StringVar(&logLevel, "log", "", "log level: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	root.Flags().StringArrayVarP(&evalArgs, "args", "a", nil, "evaluator arguments (only logged; no evaluator is started)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

// exitCode lets runPreprocess report a non-zero status without calling
// os.Exit itself, which would skip cobra's own cleanup.
var exitCode int

func runPreprocess(origin, literal string, dump bool, policy backend.RecompilePolicy, unsafe bool, evalArgs []string, cfg *config.Config) error {
	var source string
	var err error

	if origin != "" {
		data, readErr := os.ReadFile(origin)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "%s\n", readErr)
			exitCode = 1
			return nil
		}
		source = string(data)
	} else {
		source = literal
	}

	stdRoot := cfg.Stdlib.Root
	if stdRoot == "" {
		cacheDir, dirErr := stdlib.DefaultDir()
		if dirErr != nil {
			return dirErr
		}
		stdRoot, err = stdlib.Materialize(cacheDir)
		if err != nil {
			return err
		}
	}

	pp := lispp.NewPreprocessor(source, origin, stdRoot)
	canonical, err := pp.Run(source)
	if err != nil {
		if diag, ok := err.(*lispp.Diagnostic); ok {
			diag.ANSI = cfg.Output.Color
			fmt.Fprintln(os.Stderr, diag.Render())
			driverLogger.Debugf("%# v", pretty.Formatter(diag))
			exitCode = 1
			return nil
		}
		return err
	}

	if dump {
		fmt.Println(canonical)
		return nil
	}

	tmpPath, err := writeTempFile(canonical)
	if err != nil {
		return err
	}
	driverLogger.Infof("wrote canonical form to %s", tmpPath)

	if err := (backend.Noop{}).Recompile(canonical, policy); err != nil {
		return err
	}

	driverLogger.Debugf("evaluator invocation: path=%s unsafe=%v args=%v", tmpPath, unsafe, evalArgs)
	return nil
}

// writeTempFile writes canonical to a content-addressed path under the
// lisp/ subdirectory of os.TempDir() (/tmp/lisp unless $TMPDIR is set).
func writeTempFile(canonical string) (string, error) {
	sum := md5.Sum([]byte(canonical))
	dir := filepath.Join(os.TempDir(), "lisp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%x.lisp", sum))
	if err := os.WriteFile(path, []byte(canonical), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

