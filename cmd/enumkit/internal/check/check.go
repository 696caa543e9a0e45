// Package check implements the check command.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/enumkit/cmd/enumkit/internal/options"
	"github.com/broady/enumkit/cmd/enumkit/internal/report"
	"github.com/broady/enumkit/enumkitgen"
	"github.com/broady/enumkit/enumkitgen/diag"
)

// ErrFailed is returned when any diagnostic reaches the failure threshold.
var ErrFailed = errors.New("check failed")

type Cmd struct {
	options.Scan `embed:""`

	Strict bool `help:"Fail on warnings too."`
	Quiet  bool `help:"Only print problems." short:"q"`

	stdout io.Writer
}

// Run emits every enum in memory and prints the diagnostics. Nothing is
// written to disk.
func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	res, err := enumkitgen.FromPackages().Config(c.Scan.Config()).Logger(logger).Check(ctx)
	if err != nil {
		return err
	}

	min := diag.SeverityInfo
	if c.Quiet {
		min = diag.SeverityWarning
	}
	base, _ := os.Getwd()
	report.Diagnostics(stdout, res.Diagnostics, min, base)

	threshold := diag.SeverityError
	if c.Strict {
		threshold = diag.SeverityWarning
	}
	if n := len(res.Diagnostics.Filter(threshold)); n > 0 {
		return fmt.Errorf("%w: %d problem(s)", ErrFailed, n)
	}
	if !c.Quiet {
		fmt.Fprintf(stdout, "✓ %d enums ok\n", len(res.Units))
	}
	return nil
}
