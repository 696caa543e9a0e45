// Package enumkitgen generates Go support code for integer enums.
//
// A pass loads packages, finds types marked with //enumkit:generate,
// extracts a snapshot of each, and writes one file per enum next to its
// declaration. A Session keeps a cache of snapshots so repeated passes only
// re-emit what changed.
//
// Example:
//
//	res, err := enumkitgen.FromPackages("./...").
//	    Delimiter(", ").
//	    Generate(ctx)
package enumkitgen

import (
	"context"
	"log/slog"

	"github.com/broady/enumkit/enumkitgen/extract"
	"github.com/broady/enumkit/enumkitgen/sink"
)

// Generator provides a fluent API for code generation.
// Create with FromPackages() or FromDecls() and configure with method chaining.
type Generator struct {
	cfg      Config
	frontend extract.Frontend
	logger   *slog.Logger
}

// FromPackages creates a Generator that scans the packages matching patterns.
func FromPackages(patterns ...string) *Generator {
	return &Generator{cfg: Config{Patterns: patterns}}
}

// FromDecls creates a Generator over fixed declarations instead of source.
func FromDecls(decls ...extract.Decl) *Generator {
	return &Generator{frontend: extract.StaticFrontend(decls)}
}

// Config replaces the whole configuration. Patterns given to FromPackages
// are kept unless cfg sets its own.
func (g *Generator) Config(cfg Config) *Generator {
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = g.cfg.Patterns
	}
	g.cfg = cfg
	return g
}

// Dir sets the working directory for package loading.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// Tags adds build tags.
func (g *Generator) Tags(tags ...string) *Generator {
	g.cfg.BuildTags = append(g.cfg.BuildTags, tags...)
	return g
}

// Delimiter sets the separator used in the string form of flags enums.
func (g *Generator) Delimiter(d string) *Generator {
	g.cfg.Delimiter = d
	return g
}

// FileSuffix sets the generated file name suffix.
func (g *Generator) FileSuffix(suffix string) *Generator {
	g.cfg.FileSuffix = suffix
	return g
}

// RuntimeImport sets the import path of the runtime package.
func (g *Generator) RuntimeImport(path string) *Generator {
	g.cfg.RuntimeImport = path
	return g
}

// Concurrency limits parallel work within a pass.
func (g *Generator) Concurrency(n int) *Generator {
	g.cfg.Concurrency = n
	return g
}

// Prune removes generated files of declarations that disappear between
// passes.
func (g *Generator) Prune() *Generator {
	g.cfg.Prune = true
	return g
}

// Logger sets the logger. Nil discards log output.
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

// Session returns a session writing to out. A nil out writes files next to
// their packages.
func (g *Generator) Session(out sink.OutputSink) (*Session, error) {
	fe := g.frontend
	if fe == nil {
		p := applyConfigDefaults(g.cfg).sourceProvider()
		p.Logger = g.logger
		fe = p
	}
	return NewSession(g.cfg, fe, out, g.logger)
}

// Generate runs one pass and writes files next to their packages.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	return g.ToSink(ctx, nil)
}

// ToDir runs one pass and writes the generated tree below dir, keeping
// each file's path relative to the module root.
func (g *Generator) ToDir(ctx context.Context, dir string) (*Result, error) {
	return g.ToSink(ctx, sink.NewFilesystemSink(dir))
}

// ToSink runs one pass writing to out.
func (g *Generator) ToSink(ctx context.Context, out sink.OutputSink) (*Result, error) {
	s, err := g.Session(out)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

// Check runs a pass without writing anything.
func (g *Generator) Check(ctx context.Context) (*Result, error) {
	g.cfg.DryRun = true
	return g.ToSink(ctx, sink.NewMemorySink())
}
