package check

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/enumkit/cmd/enumkit/internal/options"
)

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("GOWORK", "off")

	dir := t.TempDir()
	files["go.mod"] = "module example.com/m\n\ngo 1.23\n"
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, cmd *Cmd) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd.stdout = &stdout
	err := cmd.Run(context.Background(), slog.New(slog.DiscardHandler))
	return stdout.String(), err
}

const statusSrc = `package status

//enumkit:generate
type Status int16

const (
	Active Status = 1
	Enabled Status = 1
	//enumkit:name
	Off Status = 0
)
`

func TestCmd(t *testing.T) {
	dir := writeModule(t, map[string]string{"status/status.go": statusSrc})
	scan := options.Scan{Dir: dir, Patterns: []string{"./..."}}

	out, err := run(t, &Cmd{Scan: scan})
	require.NoError(t, err)
	assert.Contains(t, out, "info EK0005")
	assert.Contains(t, out, "warning EK0004")
	assert.Contains(t, out, "✓ 1 enums ok")

	// Nothing is written.
	_, err = os.Stat(filepath.Join(dir, "status", "status_enumkit.go"))
	assert.True(t, os.IsNotExist(err))

	out, err = run(t, &Cmd{Scan: scan, Quiet: true})
	require.NoError(t, err)
	assert.NotContains(t, out, "EK0005")
	assert.NotContains(t, out, "✓")

	_, err = run(t, &Cmd{Scan: scan, Strict: true})
	assert.ErrorIs(t, err, ErrFailed)
}

func TestCmd_Errors(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"a/a.go": "package a\n\n//enumkit:generate\ntype F float64\n",
	})
	out, err := run(t, &Cmd{Scan: options.Scan{Dir: dir, Patterns: []string{"./..."}}})
	assert.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, out, "error EK0002")
}
