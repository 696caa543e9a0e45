package directive

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/enumkit/enumkitgen/diag"
)

func parse(t *testing.T, src string) (*File, diag.List, map[string]ast.Spec) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	require.NoError(t, err)

	specs := make(map[string]ast.Spec)
	ast.Inspect(f, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.TypeSpec:
			specs[s.Name.Name] = s
		case *ast.ValueSpec:
			specs[s.Names[0].Name] = s
		}
		return true
	})

	file, diags := ParseFile(fset, f)
	return file, diags, specs
}

func TestParseFile_Types(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		typ       string
		want      *TypeOptions // nil means not marked
		wantDiags int
	}{
		{
			name: "bare generate",
			src: `package p

//enumkit:generate
type Color int32
`,
			typ:  "Color",
			want: &TypeOptions{},
		},
		{
			name: "options",
			src: `package p

// Perm is a set of permissions.
//
//enumkit:generate comparison=ordinal-ignore-case flags
type Perm uint8
`,
			typ:  "Perm",
			want: &TypeOptions{Comparison: "ordinal-ignore-case", Flags: true},
		},
		{
			name: "separate flags directive",
			src: `package p

//enumkit:generate
//enumkit:flags
type Perm uint8
`,
			typ:  "Perm",
			want: &TypeOptions{Flags: true},
		},
		{
			name: "spec doc in grouped declaration",
			src: `package p

type (
	//enumkit:generate comparison="invariant-culture"
	Color int32

	Other int32
)
`,
			typ:  "Color",
			want: &TypeOptions{Comparison: "invariant-culture"},
		},
		{
			name: "unmarked",
			src: `package p

// Color is plain.
type Color int32
`,
			typ: "Color",
		},
		{
			name: "unknown option is a warning",
			src: `package p

//enumkit:generate comparison=ordinal bogus=1
type Color int32
`,
			typ:       "Color",
			want:      &TypeOptions{Comparison: "ordinal"},
			wantDiags: 1,
		},
		{
			name: "flags without generate",
			src: `package p

//enumkit:flags
type Perm uint8
`,
			typ:       "Perm",
			wantDiags: 1,
		},
		{
			name: "duplicate generate",
			src: `package p

//enumkit:generate flags
//enumkit:generate comparison=ordinal
type Perm uint8
`,
			typ:       "Perm",
			want:      &TypeOptions{Flags: true},
			wantDiags: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, diags, specs := parse(t, tt.src)
			assert.Len(t, diags, tt.wantDiags, "diagnostics: %v", diags)
			for _, d := range diags {
				assert.Equal(t, diag.InvalidDirective, d.Code)
				assert.Equal(t, diag.SeverityWarning, d.Severity)
			}

			got, ok := file.Types[specs[tt.typ].(*ast.TypeSpec)]
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want.Comparison, got.Comparison)
			assert.Equal(t, tt.want.Flags, got.Flags)
			assert.True(t, got.Pos.IsValid())
		})
	}
}

func TestParseFile_Names(t *testing.T) {
	src := `package p

//enumkit:generate
type Color int32

const (
	//enumkit:name "Rouge vif"
	Red Color = iota
	Green //enumkit:name Vert
	Blue
	Cyan, Magenta //enumkit:name "Both"
)

//enumkit:name Solo
const Lone Color = 9
`
	file, diags, specs := parse(t, src)

	name := func(id string) (string, bool) {
		n, ok := file.Names[specs[id].(*ast.ValueSpec)]
		return n, ok
	}

	n, ok := name("Red")
	assert.True(t, ok)
	assert.Equal(t, "Rouge vif", n)

	n, ok = name("Green")
	assert.True(t, ok)
	assert.Equal(t, "Vert", n)

	_, ok = name("Blue")
	assert.False(t, ok)

	_, ok = name("Cyan")
	assert.False(t, ok)

	n, ok = name("Lone")
	assert.True(t, ok)
	assert.Equal(t, "Solo", n)

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "exactly one name")
	assert.Equal(t, 11, diags[0].Pos.Line)
}

func TestParseFile_Misplaced(t *testing.T) {
	src := `package p

//enumkit:generate
func f() {}

//enumkit:name "x"
var v = 1

//enumkit:name "y"
type T int8

//enumkit:bogus
type U int8

//enumkit:name "unterminated
const C = 1
`
	_, diags, _ := parse(t, src)

	var msgs []string
	for _, d := range diags {
		assert.Equal(t, diag.InvalidDirective, d.Code)
		msgs = append(msgs, d.Message)
	}
	require.Len(t, msgs, 5, "diagnostics: %v", diags)
	assert.Contains(t, msgs[0], "must annotate a constant")             // var v
	assert.Contains(t, msgs[1], "must annotate a constant, not type T") // type T
	assert.Contains(t, msgs[2], "unknown directive //enumkit:bogus")
	assert.Contains(t, msgs[3], "malformed directive")
	assert.Contains(t, msgs[4], "not attached") // func f
}

func TestScan(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "x.go", `package p

// Doc text.
// enumkit:generate is not a directive with the space.
//enumkit:generate   comparison='current-culture'   flags
type X int8
`, parser.ParseComments)
	require.NoError(t, err)

	ds, diags := Scan(fset, f.Decls[0].(*ast.GenDecl).Doc)
	assert.Empty(t, diags)
	require.Len(t, ds, 1)
	assert.Equal(t, KindGenerate, ds[0].Kind)
	assert.Equal(t, []string{"comparison=current-culture", "flags"}, ds[0].Args)
	assert.Equal(t, 5, ds[0].Pos.Line)

	ds, diags = Scan(fset, nil)
	assert.Nil(t, ds)
	assert.Nil(t, diags)
}
