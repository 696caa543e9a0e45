// Package discover loads the Go packages enumkit scans for enum declarations.
//
// Patterns follow go command semantics:
//   - "." for the current directory
//   - "./..." for the current directory and subdirectories
//   - Import path like "github.com/foo/bar"
//   - Absolute or relative directory path
package discover

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode is the information loaded for every package.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

// Config selects the packages to load.
type Config struct {
	// Dir is the working directory of the go command. Empty means the
	// current directory.
	Dir string

	// Patterns are package patterns. Empty means ".".
	Patterns []string

	// BuildTags are passed to the go command as -tags.
	BuildTags []string
}

// Result contains the loaded packages and module info.
type Result struct {
	// Packages sorted by import path.
	Packages   []*packages.Package
	ModulePath string
	ModuleDir  string // directory containing go.mod
}

// Load loads the packages matching cfg.Patterns.
//
// Packages with type errors are returned as loaded; callers decide how to
// report pkg.Errors. An error is returned only if loading itself failed or
// nothing matched.
func Load(ctx context.Context, cfg Config) (*Result, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	pcfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     cfg.Dir,
	}
	if len(cfg.BuildTags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.BuildTags, ",")}
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", patterns)
	}

	// packages.Load returns packages in dependency order, not input order.
	slices.SortFunc(pkgs, func(a, b *packages.Package) int {
		return strings.Compare(a.PkgPath, b.PkgPath)
	})

	result := &Result{Packages: pkgs}
	for _, pkg := range pkgs {
		if pkg.Module != nil {
			result.ModulePath = pkg.Module.Path
			result.ModuleDir = pkg.Module.Dir
			break
		}
	}
	return result, nil
}

// PackageDir returns the directory containing pkg's source files, or "" if
// it has none.
func PackageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	if len(pkg.CompiledGoFiles) > 0 {
		return filepath.Dir(pkg.CompiledGoFiles[0])
	}
	return ""
}
