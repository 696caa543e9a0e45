// Package report prints pass results for humans.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/broady/enumkit/enumkitgen"
	"github.com/broady/enumkit/enumkitgen/diag"
)

// Diagnostics writes one line per diagnostic at or above min. File names
// are shown relative to base when they are below it.
func Diagnostics(w io.Writer, diags diag.List, min diag.Severity, base string) {
	for _, d := range diags.Filter(min) {
		if base != "" && d.Pos.Filename != "" {
			if rel, err := filepath.Rel(base, d.Pos.Filename); err == nil && filepath.IsLocal(rel) {
				d.Pos.Filename = rel
			}
		}
		fmt.Fprintln(w, d.Error())
	}
}

// Summary writes a one-line summary of res.
func Summary(w io.Writer, res *enumkitgen.Result) {
	var size int
	for _, u := range res.Units {
		if !u.Cached {
			size += len(u.Output)
		}
	}
	fmt.Fprintf(w, "%s, %d unchanged, %s written",
		plural(len(res.Units), "enum"), res.Hits, humanize.Bytes(uint64(size)))
	if n := len(res.Removed); n > 0 {
		fmt.Fprintf(w, ", %s removed", plural(n, "file"))
	}
	if errs := len(res.Diagnostics.Filter(diag.SeverityError)); errs > 0 {
		fmt.Fprintf(w, ", %s", plural(errs, "error"))
	}
	fmt.Fprintln(w)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
