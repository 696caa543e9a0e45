package enumkitgen

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/broady/enumkit/enumkitgen/cache"
	"github.com/broady/enumkit/enumkitgen/diag"
	"github.com/broady/enumkit/enumkitgen/extract"
	"github.com/broady/enumkit/enumkitgen/golang"
	"github.com/broady/enumkit/enumkitgen/model"
	"github.com/broady/enumkit/enumkitgen/sink"
)

// Unit is one generated file.
type Unit struct {
	Key      cache.Key
	Path     string // slash-separated, relative to the output root
	Snapshot model.Snapshot
	Output   []byte

	// Cached is set when the output was reused from an earlier pass and
	// therefore not written again.
	Cached bool
}

// Result reports one pass.
type Result struct {
	// Units in declaration order.
	Units []Unit

	// Diagnostics from the front end and from every declaration, in order.
	Diagnostics diag.List

	// Hits and Misses count cache outcomes of this pass.
	Hits, Misses int

	// Removed lists output paths pruned in this pass.
	Removed []string
}

// Err returns the error-severity diagnostics combined into one error.
func (r *Result) Err() error {
	return r.Diagnostics.Err()
}

// Session runs passes over the same declarations, reusing output for
// declarations that did not change. Run must not be called concurrently.
type Session struct {
	cfg      Config
	frontend extract.Frontend
	out      sink.OutputSink
	emitter  *golang.Emitter
	cache    *cache.Cache
	logger   *slog.Logger

	// Output path of every key written by an earlier pass.
	paths map[cache.Key]string
}

// NewSession validates cfg and returns a session reading declarations from
// fe. If out is nil each pass writes through a FilesystemSink rooted at the
// output root. A nil logger discards log output.
func NewSession(cfg Config, fe extract.Frontend, out sink.OutputSink, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fe == nil {
		return nil, fmt.Errorf("front end is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg = applyConfigDefaults(cfg)
	return &Session{
		cfg:      cfg,
		frontend: fe,
		out:      out,
		emitter:  golang.NewEmitter(cfg.emitterOptions()),
		cache:    cache.New(),
		logger:   logger,
		paths:    make(map[cache.Key]string),
	}, nil
}

// Config returns the session configuration with defaults applied.
func (s *Session) Config() Config { return s.cfg }

// Cache exposes the session cache, mainly for statistics.
func (s *Session) Cache() *cache.Cache { return s.cache }

// Snapshots runs the front end and extraction only.
func (s *Session) Snapshots(ctx context.Context) ([]model.Snapshot, diag.List, error) {
	decls, diags, err := s.frontend.Declarations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read declarations: %w", err)
	}
	var snaps []model.Snapshot
	for _, d := range decls {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		snap, ds, ok := extract.Snapshot(d)
		diags.Extend(ds)
		if ok {
			snaps = append(snaps, snap)
		}
	}
	return snaps, diags, nil
}

// outcome is the result of processing one declaration.
type outcome struct {
	unit  *Unit
	diags diag.List
	err   error
}

// Run performs one pass. Declaration problems are reported in the result's
// diagnostics; the returned error is reserved for cancellation, front end
// failures and sink failures. On a sink failure the result is still
// returned.
//
// Every unit is handed to the sink, cache hits included, so a generated file
// deleted between passes is restored. Sinks skip content that is unchanged.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	decls, diags, err := s.frontend.Declarations(ctx)
	if err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}

	root := s.outRoot()
	out := s.out
	if out == nil {
		out = sink.NewFilesystemSink(root)
	}

	outcomes := make([]outcome, len(decls))
	err = s.each(ctx, len(decls), func(ctx context.Context, i int) {
		outcomes[i] = s.resolve(root, decls[i])
	})
	if err != nil {
		return nil, err
	}
	claimPaths(decls, outcomes)
	if !s.cfg.DryRun {
		err = s.each(ctx, len(outcomes), func(ctx context.Context, i int) {
			s.write(ctx, out, &outcomes[i])
		})
		if err != nil {
			return nil, err
		}
	}

	result := &Result{Diagnostics: diags}
	var (
		errs    error
		written int
	)
	for _, o := range outcomes {
		result.Diagnostics.Extend(o.diags)
		errs = multierr.Append(errs, o.err)
		if o.unit == nil {
			continue
		}
		result.Units = append(result.Units, *o.unit)
		if o.unit.Cached {
			result.Hits++
		} else {
			result.Misses++
			written += len(o.unit.Output)
		}
		if !s.cfg.DryRun {
			s.paths[o.unit.Key] = o.unit.Path
		}
	}

	removed, err := s.prune(ctx, out, decls)
	result.Removed = removed
	errs = multierr.Append(errs, err)

	s.logger.Info("pass complete",
		"declarations", len(decls),
		"units", len(result.Units),
		"hits", result.Hits,
		"misses", result.Misses,
		"written", humanize.Bytes(uint64(written)),
		"diagnostics", len(result.Diagnostics),
	)
	return result, errs
}

// each calls fn for 0..n-1 with at most Concurrency calls in flight.
func (s *Session) each(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(gctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// resolve extracts d and looks up or emits its output.
func (s *Session) resolve(root string, d extract.Decl) outcome {
	var o outcome
	snap, ds, ok := extract.Snapshot(d)
	o.diags = ds
	if !ok {
		return o
	}

	key := cache.KeyOf(snap)
	entry, hit, err := s.cache.Resolve(key, snap, s.emit)
	if err != nil {
		o.diags.Add(diag.Errorf(diag.EmissionFailed, d.Pos, "%v", err))
		return o
	}
	p, err := unitPath(root, d.Dir, entry.FileName)
	if err != nil {
		o.diags.Add(diag.Errorf(diag.EmissionFailed, d.Pos, "%s: %v", key, err))
		return o
	}
	o.unit = &Unit{Key: key, Path: p, Snapshot: entry.Snapshot, Output: entry.Output, Cached: hit}
	return o
}

// claimPaths gives each output path to the first declaration that maps to
// it. Later declarations get EmissionFailed and no unit. Paths are compared
// case-insensitively since Color and color share a file name, and on some
// filesystems so do paths differing only in case.
func claimPaths(decls []extract.Decl, outcomes []outcome) {
	claimed := make(map[string]cache.Key)
	for i := range outcomes {
		u := outcomes[i].unit
		if u == nil {
			continue
		}
		fold := strings.ToLower(u.Path)
		if owner, ok := claimed[fold]; ok {
			outcomes[i].diags.Add(diag.Errorf(diag.EmissionFailed, decls[i].Pos,
				"%s: output file %s is already generated for %s", u.Key, u.Path, owner))
			outcomes[i].unit = nil
			continue
		}
		claimed[fold] = u.Key
	}
}

// write hands the unit of o to out.
func (s *Session) write(ctx context.Context, out sink.OutputSink, o *outcome) {
	u := o.unit
	if u == nil {
		return
	}
	if err := out.WriteFile(ctx, u.Path, u.Output); err != nil {
		// Forget the entry so the next pass emits again.
		s.cache.Forget(u.Key)
		o.err = fmt.Errorf("write %s: %w", u.Path, err)
		o.unit = nil
		return
	}
	if u.Cached {
		s.logger.Debug("unchanged", "enum", u.Key, "path", u.Path)
		return
	}
	s.logger.Debug("generated", "enum", u.Key, "path", u.Path, "size", humanize.Bytes(uint64(len(u.Output))))
}

func (s *Session) emit(snap model.Snapshot) (string, []byte, error) {
	out, err := s.emitter.Emit(snap)
	if err != nil {
		return "", nil, err
	}
	return s.emitter.FileName(snap), out, nil
}

// prune forgets declarations that are gone and, if configured, removes their
// generated files.
func (s *Session) prune(ctx context.Context, out sink.OutputSink, decls []extract.Decl) ([]string, error) {
	keep := make([]cache.Key, 0, len(decls))
	for _, d := range decls {
		keep = append(keep, cache.Key{Package: d.Namespace, Name: d.Name})
	}
	dropped := s.cache.Retain(keep)

	var (
		removed []string
		errs    error
	)
	for _, k := range dropped {
		p, ok := s.paths[k]
		delete(s.paths, k)
		if !ok || !s.cfg.Prune || s.cfg.DryRun {
			continue
		}
		if err := out.Remove(ctx, p); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("prune %s: %w", k, err))
			continue
		}
		s.logger.Info("removed", "enum", k, "path", p)
		removed = append(removed, p)
	}
	return removed, errs
}

// outRoot picks the directory output paths are relative to.
func (s *Session) outRoot() string {
	if s.cfg.OutRoot != "" {
		return s.cfg.OutRoot
	}
	if r, ok := s.frontend.(interface{ RootDir() string }); ok && r.RootDir() != "" {
		return r.RootDir()
	}
	if s.cfg.Dir != "" {
		return s.cfg.Dir
	}
	return "."
}

// unitPath returns the slash-separated path of a generated file for a
// package in dir, relative to root.
func unitPath(root, dir, name string) (string, error) {
	if dir == "" {
		return name, nil
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("package directory %s is outside the output root %s", dir, root)
	}
	return path.Join(rel, name), nil
}
