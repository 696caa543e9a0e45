// Package gen implements the gen command.
package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/enumkit/cmd/enumkit/internal/options"
	"github.com/broady/enumkit/cmd/enumkit/internal/report"
	"github.com/broady/enumkit/enumkitgen"
	"github.com/broady/enumkit/enumkitgen/diag"
	"github.com/broady/enumkit/enumkitgen/sink"
)

type Cmd struct {
	options.Scan  `embed:""`
	options.Watch `embed:""`

	Out    string `help:"Write the generated tree below this directory instead of next to each package." short:"o" type:"path"`
	Prune  bool   `help:"In watch mode, remove files of enums that disappear."`
	DryRun bool   `help:"Report what would be generated without writing." name:"dry-run"`

	stdout io.Writer
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	cfg := c.Scan.Config()
	cfg.Prune = c.Prune
	cfg.DryRun = c.DryRun

	var out sink.OutputSink
	if c.Out != "" {
		out = sink.NewFilesystemSink(c.Out)
	}
	s, err := enumkitgen.FromPackages().Config(cfg).Logger(logger).Session(out)
	if err != nil {
		return err
	}

	base, _ := os.Getwd()
	pass := func(ctx context.Context) error {
		res, err := s.Run(ctx)
		if res != nil {
			report.Diagnostics(stdout, res.Diagnostics, diag.SeverityWarning, base)
			report.Summary(stdout, res)
		}
		if err != nil {
			return err
		}
		if res.Diagnostics.HasErrors() {
			return fmt.Errorf("generation reported errors")
		}
		return nil
	}

	err = pass(ctx)
	if !c.Watch.Watch {
		return err
	}
	if err != nil {
		logger.Error("initial pass failed", "error", err)
	}

	root := cfg.Dir
	if root == "" {
		root = "."
	}
	w := &Watcher{
		Root:     root,
		Suffix:   s.Config().FileSuffix,
		Debounce: c.Watch.Debounce,
		Logger:   logger,
	}
	return w.Run(ctx, pass)
}
