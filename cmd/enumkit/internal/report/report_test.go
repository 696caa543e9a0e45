package report

import (
	"bytes"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broady/enumkit/enumkitgen"
	"github.com/broady/enumkit/enumkitgen/diag"
)

func TestDiagnostics(t *testing.T) {
	base := filepath.FromSlash("/src/m")
	diags := diag.List{
		diag.Infof(diag.DuplicateValue, token.Position{}, "dup"),
		diag.Warnf(diag.InvalidDirective, token.Position{Filename: filepath.FromSlash("/src/m/a/a.go"), Line: 3, Column: 1}, "odd"),
		diag.Errorf(diag.InvalidUnderlyingType, token.Position{Filename: filepath.FromSlash("/elsewhere/b.go"), Line: 7}, "bad"),
	}

	var buf bytes.Buffer
	Diagnostics(&buf, diags, diag.SeverityWarning, base)
	assert.Equal(t,
		filepath.FromSlash("a/a.go")+":3:1: warning EK0004: odd\n"+
			filepath.FromSlash("/elsewhere/b.go")+":7: error EK0002: bad\n",
		buf.String())

	buf.Reset()
	Diagnostics(&buf, diags, diag.SeverityInfo, "")
	assert.Contains(t, buf.String(), "info EK0005: dup\n")
}

func TestSummary(t *testing.T) {
	res := &enumkitgen.Result{
		Units: []enumkitgen.Unit{
			{Output: make([]byte, 2000)},
			{Output: make([]byte, 100), Cached: true},
		},
		Hits:        1,
		Removed:     []string{"x_enumkit.go"},
		Diagnostics: diag.List{diag.Errorf(diag.EmissionFailed, token.Position{}, "no")},
	}
	var buf bytes.Buffer
	Summary(&buf, res)
	assert.Equal(t, "2 enums, 1 unchanged, 2.0 kB written, 1 file removed, 1 error\n", buf.String())

	buf.Reset()
	Summary(&buf, &enumkitgen.Result{})
	assert.Equal(t, "0 enums, 0 unchanged, 0 B written\n", buf.String())
}
