package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/broady/enumkit"
	"github.com/broady/enumkit/cmd/enumkit/internal/options"
	"github.com/broady/enumkit/enumkitgen/model"
)

func snapshots() []model.Snapshot {
	return []model.Snapshot{{
		Namespace:   "example.com/m/fs",
		PackageName: "fs",
		Name:        "Perm",
		IsFlags:     true,
		Kind:        enumkit.Uint64,
		Comparison:  enumkit.OrdinalIgnoreCase,
		Members: model.NewSeq(
			model.NewMember("Read", model.FromUint64(1)),
			model.NewCustomMember("All", "Everything", model.FromUint64(1<<63)),
		),
	}}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(snapshots())
	want := Document{Enums: []Enum{{
		Package:    "example.com/m/fs",
		Name:       "Perm",
		Kind:       "uint64",
		Flags:      true,
		Comparison: "ordinal-ignore-case",
		Hash:       doc.Enums[0].Hash,
		Members: []Member{
			{Identifier: "Read", Value: "1"},
			{Identifier: "All", Name: "Everything", Value: "9223372036854775808"},
		},
	}}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("NewDocument() mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, doc.Enums[0].Hash, 16)
	assert.Empty(t, NewDocument(nil).Enums)
}

func TestEncode(t *testing.T) {
	doc := NewDocument(snapshots())

	decoders := map[string]func([]byte, any) error{
		"json": json.Unmarshal,
		"yaml": yaml.Unmarshal,
		"toml": toml.Unmarshal,
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, doc, format))

			var got Document
			require.NoError(t, decode(buf.Bytes(), &got))
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("%s round trip mismatch (-want +got):\n%s\n%s", format, diff, buf.String())
			}
		})
	}

	assert.Error(t, Encode(&bytes.Buffer{}, doc, "xml"))
}

func TestCmd_Run(t *testing.T) {
	t.Setenv("GOWORK", "off")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/m\n\ngo 1.23\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "color.go"), []byte(`package m

//enumkit:generate
type Color int8

const (
	Red Color = -1
	//enumkit:name "Vert"
	Green Color = 2
)

//enumkit:generate
type Broken float32
`), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := &Cmd{
		Scan:   options.Scan{Dir: dir, Patterns: []string{"."}},
		Format: "json",
		stdout: &stdout,
		stderr: &stderr,
	}
	require.NoError(t, cmd.Run(context.Background(), slog.New(slog.DiscardHandler)))

	var doc Document
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Enums, 1)
	assert.Equal(t, "example.com/m", doc.Enums[0].Package)
	assert.Equal(t, []Member{
		{Identifier: "Red", Value: "-1"},
		{Identifier: "Green", Name: "Vert", Value: "2"},
	}, doc.Enums[0].Members)
	assert.Contains(t, stderr.String(), "error EK0002")
}
