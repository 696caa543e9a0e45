// Package directive parses enumkit directives from Go source files.
//
// Directives are line comments in the form:
//
//	//enumkit:generate [comparison=<mode>] [flags]
//	//enumkit:flags
//	//enumkit:name "Display Name"
//
// The generate directive marks a type spec for code generation. It must be in
// the doc comment of the spec, or of its type declaration when the
// declaration holds a single spec. The flags directive marks the type as a
// flags enum, the same as the flags option of generate.
//
// The name directive sets the display name of a constant. It goes in the doc
// or trailing comment of a const spec that declares exactly one name.
//
// Malformed and misplaced directives are reported as InvalidDirective
// warnings and otherwise ignored.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/google/shlex"
	"github.com/gorilla/schema"

	"github.com/broady/enumkit/enumkitgen/diag"
)

// Prefix starts every directive comment.
const Prefix = "//enumkit:"

// Kind represents the type of directive.
type Kind string

const (
	KindGenerate Kind = "generate"
	KindFlags    Kind = "flags"
	KindName     Kind = "name"
)

// Directive is one parsed directive comment.
type Directive struct {
	Kind Kind
	Args []string       // shell-style tokens after the kind
	Pos  token.Position // source location
}

// TypeOptions are the directives attached to a type spec.
type TypeOptions struct {
	Flags      bool
	Comparison string
	Pos        token.Position // position of the generate directive
}

// File holds the directives of one source file matched to their specs.
type File struct {
	// Types maps each type spec marked with //enumkit:generate to its options.
	Types map[*ast.TypeSpec]TypeOptions

	// Names maps const specs to their custom display names.
	Names map[*ast.ValueSpec]string
}

type generateArgs struct {
	Comparison string `schema:"comparison"`
	Flags      bool   `schema:"flags"`
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(false)
	return d
}()

// Scan returns the directives in cg in source order.
func Scan(fset *token.FileSet, cg *ast.CommentGroup) ([]Directive, diag.List) {
	if cg == nil {
		return nil, nil
	}
	var (
		directives []Directive
		diags      diag.List
	)
	for _, c := range cg.List {
		if !strings.HasPrefix(c.Text, Prefix) {
			continue
		}
		pos := fset.Position(c.Pos())
		parts, err := shlex.Split(strings.TrimPrefix(c.Text, Prefix))
		if err != nil {
			diags.Add(diag.Warnf(diag.InvalidDirective, pos, "malformed directive %s: %v", c.Text, err))
			continue
		}
		if len(parts) == 0 {
			diags.Add(diag.Warnf(diag.InvalidDirective, pos, "empty directive %s", c.Text))
			continue
		}

		d := Directive{Kind: Kind(parts[0]), Args: parts[1:], Pos: pos}
		switch d.Kind {
		case KindGenerate, KindFlags, KindName:
			directives = append(directives, d)
		default:
			diags.Add(diag.Warnf(diag.InvalidDirective, pos, "unknown directive %s%s", Prefix, parts[0]))
		}
	}
	return directives, diags
}

// ParseFile matches the directives in f to the specs they annotate.
func ParseFile(fset *token.FileSet, f *ast.File) (*File, diag.List) {
	result := &File{
		Types: make(map[*ast.TypeSpec]TypeOptions),
		Names: make(map[*ast.ValueSpec]string),
	}
	var diags diag.List

	// Comment groups consumed by a spec; every other group holding a
	// directive is misplaced.
	attached := make(map[*ast.CommentGroup]bool)
	collect := func(groups ...*ast.CommentGroup) []Directive {
		var all []Directive
		for _, cg := range groups {
			if cg == nil || attached[cg] {
				continue
			}
			attached[cg] = true
			ds, d := Scan(fset, cg)
			diags.Extend(d)
			all = append(all, ds...)
		}
		return all
	}

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		// The declaration doc applies only to an unparenthesized spec.
		var declDoc *ast.CommentGroup
		if !gd.Lparen.IsValid() {
			declDoc = gd.Doc
		}

		for _, spec := range gd.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				opts, ok, d := typeOptions(s.Name.Name, collect(declDoc, s.Doc, s.Comment))
				diags.Extend(d)
				if ok {
					result.Types[s] = opts
				}
			case *ast.ValueSpec:
				ds := collect(declDoc, s.Doc, s.Comment)
				if gd.Tok != token.CONST {
					for _, d := range ds {
						diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos,
							"%s%s directive must annotate a constant", Prefix, d.Kind))
					}
					continue
				}
				name, ok, d := displayName(s, ds)
				diags.Extend(d)
				if ok {
					result.Names[s] = name
				}
			}
		}
	}

	for _, cg := range f.Comments {
		if attached[cg] {
			continue
		}
		ds, d := Scan(fset, cg)
		diags.Extend(d)
		for _, dir := range ds {
			diags.Add(diag.Warnf(diag.InvalidDirective, dir.Pos,
				"%s%s directive is not attached to a type or constant declaration", Prefix, dir.Kind))
		}
	}
	return result, diags
}

// typeOptions folds the directives of one type spec. ok is false when the
// spec is not marked for generation.
func typeOptions(typeName string, ds []Directive) (opts TypeOptions, ok bool, diags diag.List) {
	var flags bool
	for _, d := range ds {
		switch d.Kind {
		case KindGenerate:
			if ok {
				diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos, "duplicate %s%s directive on %s", Prefix, d.Kind, typeName))
				continue
			}
			args, err := decodeGenerate(d.Args)
			if err != nil {
				diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos, "%s%s on %s: %v", Prefix, d.Kind, typeName, err))
			}
			ok = true
			opts.Comparison = args.Comparison
			opts.Pos = d.Pos
			flags = flags || args.Flags
		case KindFlags:
			if len(d.Args) > 0 {
				diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos, "%s%s takes no arguments", Prefix, d.Kind))
			}
			flags = true
		case KindName:
			diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos, "%s%s directive must annotate a constant, not type %s", Prefix, d.Kind, typeName))
		}
	}
	if !ok && flags {
		diags.Add(diag.Warnf(diag.InvalidDirective, ds[0].Pos,
			"type %s has %s%s but no %s%s directive", typeName, Prefix, KindFlags, Prefix, KindGenerate))
	}
	opts.Flags = flags
	return opts, ok, diags
}

// decodeGenerate turns "key=value" and bare "key" tokens into generateArgs.
// A bare key means "true".
func decodeGenerate(tokens []string) (generateArgs, error) {
	var args generateArgs
	src := make(map[string][]string, len(tokens))
	for _, tok := range tokens {
		key, value, found := strings.Cut(tok, "=")
		if !found {
			value = "true"
		}
		if _, dup := src[key]; dup {
			return args, fmt.Errorf("option %q given more than once", key)
		}
		src[key] = []string{value}
	}
	// Known keys are decoded even when others are rejected.
	err := decoder.Decode(&args, src)
	return args, err
}

// displayName returns the custom display name set on a const spec.
func displayName(s *ast.ValueSpec, ds []Directive) (name string, ok bool, diags diag.List) {
	for _, d := range ds {
		if d.Kind != KindName {
			diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos, "%s%s directive must annotate a type", Prefix, d.Kind))
			continue
		}
		if len(s.Names) != 1 {
			diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos,
				"%s%s directive must annotate a const spec declaring exactly one name", Prefix, d.Kind))
			continue
		}
		if len(d.Args) != 1 {
			diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos,
				"%s%s takes one argument, got %d; quote names containing spaces", Prefix, d.Kind, len(d.Args)))
			continue
		}
		if ok {
			diags.Add(diag.Warnf(diag.InvalidDirective, d.Pos, "duplicate %s%s directive on %s", Prefix, d.Kind, s.Names[0].Name))
			continue
		}
		name, ok = d.Args[0], true
	}
	return name, ok, diags
}
