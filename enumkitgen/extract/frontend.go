// Package extract turns enum declarations reported by a front end into
// snapshots.
//
// The front end is anything that can enumerate declarations; the go/packages
// implementation lives in enumkitgen/provider. Extraction itself never looks
// at a host compiler API.
package extract

import (
	"context"
	"go/constant"
	"go/token"
	"slices"

	"github.com/broady/enumkit/enumkitgen/diag"
)

// Decl is everything extraction needs to know about one enum declaration.
type Decl struct {
	// Name is the declared type name.
	Name string

	// Namespace is the import path of the declaring package. Empty means the
	// declaration is not in a package.
	Namespace string

	// PackageName is the declaring package's name.
	PackageName string

	// Dir is the directory of the declaring package, where the generated
	// file goes. Empty for declarations without a source directory.
	Dir string

	// Underlying is the Go spelling of the underlying type, e.g. "uint16".
	Underlying string

	// Flags is set when the declaration carries a flags marker.
	Flags bool

	// Comparison is the raw comparison option, empty for the default.
	Comparison string

	// Members in declaration order.
	Members []MemberDecl

	// Pos locates the type declaration.
	Pos token.Position
}

// MemberDecl describes one enum member.
type MemberDecl struct {
	Identifier string

	// Value is the constant's value, or nil if the front end could not
	// evaluate it.
	Value constant.Value

	// CustomName is the display name override when HasCustomName is set.
	CustomName    string
	HasCustomName bool

	Pos token.Position
}

// Frontend enumerates the enum declarations of a build.
type Frontend interface {
	// Declarations returns the declarations in a deterministic order along
	// with any diagnostics about symbols it could not resolve. The error is
	// reserved for failures that prevent loading anything at all.
	Declarations(ctx context.Context) ([]Decl, diag.List, error)
}

// StaticFrontend serves a fixed set of declarations.
type StaticFrontend []Decl

// Declarations returns a copy of the static declarations.
func (f StaticFrontend) Declarations(ctx context.Context) ([]Decl, diag.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return slices.Clone(f), nil, nil
}
