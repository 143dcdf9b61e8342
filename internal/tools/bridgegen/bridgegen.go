// Package bridgegen writes realm bridge stubs for Go packages that declare
// bridged interfaces.
package bridgegen

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"

	"github.com/louisbranch/realmbridge/internal/platform/cmd"
)

// DefaultOutput is the file name written next to each package's sources.
const DefaultOutput = "zz_generated_bridge.go"

// Config holds bridgegen settings.
type Config struct {
	Dir      string        `env:"BRIDGEGEN_DIR"`
	Patterns []string      `env:"BRIDGEGEN_PATTERNS" envSeparator:","`
	Output   string        `env:"BRIDGEGEN_OUTPUT" envDefault:"zz_generated_bridge.go"`
	Timeout  time.Duration `env:"BRIDGEGEN_TIMEOUT" envDefault:"2m"`
	DryRun   bool          `env:"BRIDGEGEN_DRY_RUN"`
}

// ParseConfig reads env defaults and then flags. Remaining arguments are
// package patterns.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	var pattern string
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory to resolve package patterns from")
	fs.StringVar(&pattern, "pattern", "", "package pattern; more patterns may follow the flags")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "file name written in each package directory")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "print generated files instead of writing them")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if pattern != "" {
		cfg.Patterns = append(cfg.Patterns, pattern)
	}
	cfg.Patterns = append(cfg.Patterns, fs.Args()...)
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"."}
	}
	return cfg, nil
}

// Run loads the configured packages and writes one bridge file per package.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	output := strings.TrimSpace(cfg.Output)
	if output == "" {
		output = DefaultOutput
	}
	if filepath.Base(output) != output {
		return fmt.Errorf("output %q must be a file name", cfg.Output)
	}

	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Dir:     cfg.Dir,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedTypes,
	}, cfg.Patterns...)
	if err != nil {
		return fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return errors.New("no packages matched")
	}

	var loadErrs []error
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			loadErrs = append(loadErrs, fmt.Errorf("%s: %s", pkg.PkgPath, pkgErr.Msg))
		}
	}
	if len(loadErrs) > 0 {
		return errors.Join(loadErrs...)
	}

	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		file, err := Generate(pkg.Types)
		if err != nil {
			return err
		}
		for _, skipped := range file.Skipped {
			fmt.Fprintf(errOut, "%s: skip %s\n", pkg.PkgPath, skipped)
		}
		if cfg.DryRun {
			if _, err := out.Write(file.Source); err != nil {
				return err
			}
			continue
		}
		dir, err := packageDir(pkg, output)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, output)
		if err := os.WriteFile(path, file.Source, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "wrote %s (%d interfaces, %d enums)\n", path, len(file.Interfaces), len(file.Enums))
	}
	return nil
}

// packageDir returns the directory holding pkg's sources, ignoring a stale
// generated file.
func packageDir(pkg *packages.Package, output string) (string, error) {
	for _, name := range pkg.GoFiles {
		if filepath.Base(name) != output {
			return filepath.Dir(name), nil
		}
	}
	return "", fmt.Errorf("%s has no Go files", pkg.PkgPath)
}
