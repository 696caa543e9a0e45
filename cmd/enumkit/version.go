package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/broady/enumkit/enumkitgen/golang"
)

//go:embed VERSION
var embeddedVersion string

// VersionCmd prints the version of the binary.
type VersionCmd struct {
	Verbose bool `short:"v" help:"Also print the Go toolchain, VCS state and runtime import."`

	out io.Writer
}

func (c *VersionCmd) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	info, ok := debug.ReadBuildInfo()
	b := readBuild(info, ok)
	if !c.Verbose {
		_, err := fmt.Fprintln(out, b)
		return err
	}
	_, err := fmt.Fprintf(out, "enumkit %s\ngo:       %s\nrevision: %s\nruntime:  %s\n",
		b, b.goVersion, b.revisionOrUnknown(), golang.DefaultRuntimeImport)
	return err
}

// Version returns the version string of the running binary.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	return readBuild(info, ok).String()
}

// build is what the binary knows about how it was built.
type build struct {
	release   string // module version from go install, empty for local builds
	base      string // contents of VERSION
	revision  string
	modified  bool
	goVersion string
}

func readBuild(info *debug.BuildInfo, ok bool) build {
	b := build{base: strings.TrimSpace(embeddedVersion), goVersion: runtime.Version()}
	if !ok || info == nil {
		return b
	}
	if info.GoVersion != "" {
		b.goVersion = info.GoVersion
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		b.release = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.revision = s.Value
		case "vcs.modified":
			b.modified = s.Value == "true"
		}
	}
	return b
}

// String gives the release tag for installed binaries, and otherwise
// "devel-<VERSION>" with the short revision and a dirty mark when known.
func (b build) String() string {
	if b.release != "" {
		return b.release
	}
	var s strings.Builder
	s.WriteString("devel-" + b.base)
	if len(b.revision) >= 7 {
		s.WriteString("+" + b.revision[:7])
		if b.modified {
			s.WriteString(".dirty")
		}
	}
	return s.String()
}

func (b build) revisionOrUnknown() string {
	switch {
	case b.revision == "":
		return "unknown"
	case b.modified:
		return b.revision + " (modified)"
	default:
		return b.revision
	}
}
