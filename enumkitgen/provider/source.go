// Package provider implements front ends that find enum declarations in Go
// source and describe them for extraction.
package provider

import (
	"context"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"log/slog"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/broady/enumkit/enumkitgen/diag"
	"github.com/broady/enumkit/enumkitgen/extract"
	"github.com/broady/enumkit/internal/directive"
	"github.com/broady/enumkit/internal/discover"
)

// DefaultGeneratedSuffix names files written by enumkit. They are type
// checked with their package but never scanned for directives.
const DefaultGeneratedSuffix = "_enumkit.go"

// SourceProvider finds types marked with //enumkit:generate in Go packages.
type SourceProvider struct {
	// Dir is the working directory for package loading.
	Dir string

	// Patterns are the package patterns to load. Empty means ".".
	Patterns []string

	// BuildTags are passed to the go command.
	BuildTags []string

	// GeneratedSuffix overrides DefaultGeneratedSuffix.
	GeneratedSuffix string

	// Logger receives package load problems. Nil discards them.
	Logger *slog.Logger

	moduleDir string
}

var _ extract.Frontend = (*SourceProvider)(nil)

// RootDir returns the module directory found by the last call to
// Declarations.
func (p *SourceProvider) RootDir() string { return p.moduleDir }

// Declarations loads the packages and returns their marked enum
// declarations, ordered by package path and then source position.
func (p *SourceProvider) Declarations(ctx context.Context) ([]extract.Decl, diag.List, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result, err := discover.Load(ctx, discover.Config{
		Dir:       p.Dir,
		Patterns:  p.Patterns,
		BuildTags: p.BuildTags,
	})
	if err != nil {
		return nil, nil, err
	}
	p.moduleDir = result.ModuleDir

	suffix := p.GeneratedSuffix
	if suffix == "" {
		suffix = DefaultGeneratedSuffix
	}

	var (
		decls []extract.Decl
		diags diag.List
	)
	for _, pkg := range result.Packages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		// Type errors are common while editing, often in a stale generated
		// file. Constants that still check are extracted.
		for _, e := range pkg.Errors {
			logger.Warn("package error", "package", pkg.PkgPath, "error", e.Msg, "pos", e.Pos)
		}
		if pkg.TypesInfo == nil {
			logger.Warn("skipping package without type information", "package", pkg.PkgPath)
			continue
		}
		d, ds := scanPackage(pkg, suffix)
		decls = append(decls, d...)
		diags.Extend(ds)
	}
	return decls, diags, nil
}

// scanPackage collects the marked types of pkg and then their members.
// Members may be declared in any file of the package; they are taken in
// file order, then source order.
func scanPackage(pkg *packages.Package, generatedSuffix string) ([]extract.Decl, diag.List) {
	var (
		diags diag.List
		files []*ast.File
		names = make(map[*ast.ValueSpec]string)
		order []*types.TypeName
		decls = make(map[*types.TypeName]*extract.Decl)
	)
	dir := discover.PackageDir(pkg)

	for _, f := range pkg.Syntax {
		filename := pkg.Fset.Position(f.Package).Filename
		if strings.HasSuffix(filename, generatedSuffix) {
			continue
		}
		files = append(files, f)

		df, ds := directive.ParseFile(pkg.Fset, f)
		diags.Extend(ds)
		for spec, name := range df.Names {
			names[spec] = name
		}

		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				opts, marked := df.Types[ts]
				if !marked {
					continue
				}
				tn, d, problem := typeDecl(pkg, ts, opts, dir)
				if problem != nil {
					diags.Add(*problem)
					continue
				}
				order = append(order, tn)
				decls[tn] = d
			}
		}
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			for _, spec := range gd.Specs {
				vs := spec.(*ast.ValueSpec)
				for _, ident := range vs.Names {
					if ident.Name == "_" {
						continue
					}
					c, ok := pkg.TypesInfo.Defs[ident].(*types.Const)
					if !ok {
						continue
					}
					named, ok := c.Type().(*types.Named)
					if !ok {
						continue
					}
					d := decls[named.Obj()]
					if d == nil {
						continue
					}
					m := extract.MemberDecl{
						Identifier: ident.Name,
						Pos:        pkg.Fset.Position(ident.Pos()),
					}
					if v := c.Val(); v.Kind() == constant.Int {
						m.Value = v
					}
					if name, ok := names[vs]; ok {
						m.CustomName, m.HasCustomName = name, true
					}
					d.Members = append(d.Members, m)
				}
			}
		}
	}

	out := make([]extract.Decl, 0, len(order))
	for _, tn := range order {
		out = append(out, *decls[tn])
	}
	return out, diags
}

// typeDecl resolves a marked type spec into a declaration without members.
func typeDecl(pkg *packages.Package, ts *ast.TypeSpec, opts directive.TypeOptions, dir string) (*types.TypeName, *extract.Decl, *diag.Diagnostic) {
	pos := pkg.Fset.Position(ts.Name.Pos())
	tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		d := diag.UnresolvableSymbolAt(pos, ts.Name.Name)
		return nil, nil, &d
	}
	if ts.Assign.IsValid() {
		d := diag.InvalidUnderlyingTypeAt(pos, ts.Name.Name, "alias "+types.TypeString(tn.Type(), nil))
		return nil, nil, &d
	}
	if ts.TypeParams != nil {
		d := diag.InvalidUnderlyingTypeAt(pos, ts.Name.Name, "generic type")
		return nil, nil, &d
	}

	underlying := tn.Type().Underlying()
	name := types.TypeString(underlying, nil)
	if b, ok := underlying.(*types.Basic); ok {
		name = b.Name()
	}
	return tn, &extract.Decl{
		Name:        ts.Name.Name,
		Namespace:   pkg.PkgPath,
		PackageName: pkg.Name,
		Dir:         dir,
		Underlying:  name,
		Flags:       opts.Flags,
		Comparison:  opts.Comparison,
		Pos:         pos,
	}, nil
}
