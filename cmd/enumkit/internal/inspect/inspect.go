// Package inspect implements the inspect command, which prints the extracted
// snapshots instead of generating code.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/broady/enumkit/cmd/enumkit/internal/options"
	"github.com/broady/enumkit/cmd/enumkit/internal/report"
	"github.com/broady/enumkit/enumkitgen"
	"github.com/broady/enumkit/enumkitgen/diag"
	"github.com/broady/enumkit/enumkitgen/model"
)

type Cmd struct {
	options.Scan `embed:""`

	Format string `help:"Output format." enum:"json,yaml,toml" default:"yaml" short:"f"`

	stdout, stderr io.Writer
}

// Document is the printed form of a set of snapshots.
type Document struct {
	Enums []Enum `json:"enums" yaml:"enums" toml:"enum"`
}

type Enum struct {
	Package    string   `json:"package" yaml:"package" toml:"package"`
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Kind       string   `json:"kind" yaml:"kind" toml:"kind"`
	Flags      bool     `json:"flags" yaml:"flags" toml:"flags"`
	Comparison string   `json:"comparison" yaml:"comparison" toml:"comparison"`
	Hash       string   `json:"hash" yaml:"hash" toml:"hash"`
	Members    []Member `json:"members" yaml:"members" toml:"member"`
}

// Member values are decimal strings; TOML integers cannot hold every uint64.
type Member struct {
	Identifier string `json:"identifier" yaml:"identifier" toml:"identifier"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Value      string `json:"value" yaml:"value" toml:"value"`
}

// NewDocument converts snapshots for printing.
func NewDocument(snaps []model.Snapshot) Document {
	doc := Document{Enums: make([]Enum, 0, len(snaps))}
	for _, s := range snaps {
		e := Enum{
			Package:    s.Namespace,
			Name:       s.Name,
			Kind:       s.Kind.String(),
			Flags:      s.IsFlags,
			Comparison: s.Comparison.String(),
			Hash:       fmt.Sprintf("%016x", s.Hash()),
			Members:    make([]Member, 0, s.Members.Len()),
		}
		for m := range s.Members.Values() {
			mm := Member{Identifier: m.Identifier, Value: m.Value.Literal()}
			if m.HasCustomName {
				mm.Name = m.DisplayName
			}
			e.Members = append(e.Members, mm)
		}
		doc.Enums = append(doc.Enums, e)
	}
	return doc
}

// Encode writes doc in format.
func Encode(w io.Writer, doc Document, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Order(toml.OrderPreserve).Encode(doc)
	default:
		return fmt.Errorf("unsupported format: %s", strconv.Quote(format))
	}
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	stdout, stderr := c.stdout, c.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	s, err := enumkitgen.FromPackages().Config(c.Scan.Config()).Logger(logger).Session(nil)
	if err != nil {
		return err
	}
	snaps, diags, err := s.Snapshots(ctx)
	if err != nil {
		return err
	}
	base, _ := os.Getwd()
	report.Diagnostics(stderr, diags, diag.SeverityWarning, base)
	return Encode(stdout, NewDocument(snaps), c.Format)
}
