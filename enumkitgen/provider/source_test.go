package provider

import (
	"context"
	"go/constant"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/enumkit"
	"github.com/broady/enumkit/enumkitgen/diag"
	"github.com/broady/enumkit/enumkitgen/extract"
)

const testdataPkg = "github.com/broady/enumkit/enumkitgen/provider/testdata/"

func declarations(t *testing.T, pkg string) ([]extract.Decl, diag.List, *SourceProvider) {
	t.Helper()
	p := &SourceProvider{Patterns: []string{testdataPkg + pkg}}
	decls, diags, err := p.Declarations(context.Background())
	require.NoError(t, err)
	return decls, diags, p
}

func memberNames(d extract.Decl) []string {
	var names []string
	for _, m := range d.Members {
		names = append(names, m.Identifier)
	}
	return names
}

func TestSourceProvider_Colors(t *testing.T) {
	decls, diags, p := declarations(t, "colors")
	assert.Empty(t, diags)

	// ghost_enumkit.go is a generated file and is not scanned.
	require.Len(t, decls, 2)
	color, perm := decls[0], decls[1]

	assert.Equal(t, "Color", color.Name)
	assert.Equal(t, testdataPkg+"colors", color.Namespace)
	assert.Equal(t, "colors", color.PackageName)
	assert.Equal(t, "int32", color.Underlying)
	assert.False(t, color.Flags)
	assert.Empty(t, color.Comparison)
	assert.Equal(t, "colors", filepath.Base(color.Dir))
	assert.Equal(t, 5, color.Pos.Line)

	// Source order within a file, then the next file; blank constants and
	// other types are skipped.
	assert.Equal(t, []string{"Red", "Green", "Blue", "Crimson", "Cyan", "Black"}, memberNames(color))
	green := color.Members[1]
	assert.True(t, green.HasCustomName)
	assert.Equal(t, "Vert", green.CustomName)
	v, ok := constant.Int64Val(color.Members[5].Value)
	assert.True(t, ok)
	assert.Equal(t, int64(-1), v)

	assert.Equal(t, "Perm", perm.Name)
	assert.Equal(t, "uint8", perm.Underlying)
	assert.True(t, perm.Flags)
	assert.Equal(t, "ordinal-ignore-case", perm.Comparison)
	assert.Equal(t, []string{"None", "Read", "Write", "Exec"}, memberNames(perm))
	assert.Equal(t, "Execute", perm.Members[3].CustomName)

	root := p.RootDir()
	require.NotEmpty(t, root)
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	assert.NoError(t, err)
}

func TestSourceProvider_ExtractsCleanly(t *testing.T) {
	decls, _, _ := declarations(t, "colors")

	snap, diags, ok := extract.Snapshot(decls[0])
	require.True(t, ok)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.DuplicateValue, diags[0].Code)
	assert.Equal(t, enumkit.Int32, snap.Kind)
	assert.Equal(t, 6, snap.Members.Len())

	snap, diags, ok = extract.Snapshot(decls[1])
	require.True(t, ok)
	assert.Empty(t, diags)
	assert.True(t, snap.IsFlags)
	assert.Equal(t, enumkit.OrdinalIgnoreCase, snap.Comparison)
}

func TestSourceProvider_Bad(t *testing.T) {
	decls, diags, _ := declarations(t, "bad")

	require.Len(t, diags, 1)
	assert.Equal(t, diag.InvalidUnderlyingType, diags[0].Code)
	assert.Contains(t, diags[0].Message, "Alias")

	require.Len(t, decls, 3)
	want := []struct {
		name       string
		underlying string
		code       diag.Code
	}{
		{"Wide", "int", diag.InvalidUnderlyingType},
		{"Level", "int8", ""},
		{"Label", "string", diag.InvalidUnderlyingType},
	}
	for i, w := range want {
		assert.Equal(t, w.name, decls[i].Name)
		assert.Equal(t, w.underlying, decls[i].Underlying)

		_, ds, ok := extract.Snapshot(decls[i])
		if w.code != "" {
			assert.False(t, ok)
			require.Len(t, ds, 1)
			assert.Equal(t, w.code, ds[0].Code)
		}
	}

	level := decls[1]
	assert.Equal(t, []string{"Low", "High", "Broken"}, memberNames(level))
	assert.Nil(t, level.Members[2].Value)

	snap, ds, ok := extract.Snapshot(level)
	require.True(t, ok)
	assert.Equal(t, 2, snap.Members.Len())
	var codes []diag.Code
	for _, d := range ds {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []diag.Code{diag.InvalidDirective, diag.UnresolvedMemberValue}, codes)
}

func TestSourceProvider_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &SourceProvider{Patterns: []string{testdataPkg + "colors"}}
	_, _, err := p.Declarations(ctx)
	assert.Error(t, err)
}
