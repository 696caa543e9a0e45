// Package golang emits Go source for enum snapshots.
//
// The emitted file depends only on the snapshot and the emitter options, so
// two equal snapshots always produce byte-identical output.
package golang

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/broady/enumkit"
	"github.com/broady/enumkit/enumkitgen/model"
)

const (
	// DefaultRuntimeImport is the package generated files import for
	// name tables and parse errors.
	DefaultRuntimeImport = "github.com/broady/enumkit"

	// DefaultDelimiter joins member names in the string form of flags enums.
	DefaultDelimiter = "|"

	// DefaultFileSuffix is appended to the lowercased enum name.
	DefaultFileSuffix = "_enumkit.go"

	header = "// Code generated by enumkit. DO NOT EDIT.\n"
)

// Options configures an Emitter.
type Options struct {
	// RuntimeImport overrides DefaultRuntimeImport.
	RuntimeImport string

	// Delimiter overrides DefaultDelimiter.
	Delimiter string

	// FileSuffix overrides DefaultFileSuffix.
	FileSuffix string
}

// Emitter renders snapshots to Go source.
type Emitter struct {
	opts Options
	rt   string
}

// NewEmitter returns an Emitter with defaults applied to opts.
func NewEmitter(opts Options) *Emitter {
	if opts.RuntimeImport == "" {
		opts.RuntimeImport = DefaultRuntimeImport
	}
	if opts.Delimiter == "" {
		opts.Delimiter = DefaultDelimiter
	}
	if opts.FileSuffix == "" {
		opts.FileSuffix = DefaultFileSuffix
	}
	return &Emitter{opts: opts, rt: importName(opts.RuntimeImport)}
}

// Emit renders snap with a one-off Emitter.
func Emit(snap model.Snapshot, opts Options) ([]byte, error) {
	return NewEmitter(opts).Emit(snap)
}

// FileName returns the default file name for snap.
func FileName(snap model.Snapshot) string {
	return strings.ToLower(snap.Name) + DefaultFileSuffix
}

// FileName returns the name of the file generated for snap.
func (e *Emitter) FileName(snap model.Snapshot) string {
	return strings.ToLower(snap.Name) + e.opts.FileSuffix
}

// Emit renders snap as a complete, gofmt-formatted Go source file.
func (e *Emitter) Emit(snap model.Snapshot) ([]byte, error) {
	if err := e.validate(snap); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := &writer{buf: &buf, snap: snap, n: newNames(snap.Name), rt: e.rt, delim: e.opts.Delimiter}
	w.header(e.opts.RuntimeImport)
	w.tables()
	w.stringMethod()
	w.isDefined()
	if snap.IsFlags {
		w.flags()
	}
	w.parse()
	w.bulk()

	out, err := imports.Process(e.FileName(snap), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", snap.QualifiedName(), err)
	}
	return out, nil
}

func (e *Emitter) validate(snap model.Snapshot) error {
	if !token.IsIdentifier(snap.Name) {
		return fmt.Errorf("enum name %q is not a Go identifier", snap.Name)
	}
	if !token.IsIdentifier(snap.PackageName) {
		return fmt.Errorf("package name %q is not a Go identifier", snap.PackageName)
	}
	if snap.PackageName == e.rt {
		return fmt.Errorf("package name %q shadows the runtime import %s", snap.PackageName, e.opts.RuntimeImport)
	}
	if !snap.Kind.Valid() {
		return fmt.Errorf("enum %s has invalid kind %d", snap.Name, snap.Kind)
	}
	declared := make(map[string]bool)
	for _, id := range newNames(snap.Name).all() {
		declared[id] = true
	}
	for m := range snap.Members.Values() {
		if !token.IsIdentifier(m.Identifier) {
			return fmt.Errorf("member %q of %s is not a Go identifier", m.Identifier, snap.Name)
		}
		if shadowed[m.Identifier] || m.Identifier == e.rt {
			return fmt.Errorf("member %s of %s shadows a name used by generated code", m.Identifier, snap.Name)
		}
		if declared[m.Identifier] {
			return fmt.Errorf("member %s of %s collides with a generated identifier", m.Identifier, snap.Name)
		}
	}
	return nil
}

type writer struct {
	buf   *bytes.Buffer
	snap  model.Snapshot
	n     names
	rt    string
	delim string
}

func (w *writer) line(format string, args ...any) {
	fmt.Fprintf(w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) header(runtimeImport string) {
	w.buf.WriteString(header)
	w.buf.WriteString("\n")
	w.line("package %s", w.snap.PackageName)
	w.buf.WriteString("\nimport (\n")
	w.buf.WriteString("\t\"iter\"\n")
	w.buf.WriteString("\t\"slices\"\n")
	if w.snap.IsFlags {
		w.buf.WriteString("\t\"strings\"\n")
	}
	w.buf.WriteString("\n")
	if w.rt != path.Base(runtimeImport) {
		w.line("\t%s %s", w.rt, strconv.Quote(runtimeImport))
	} else {
		w.line("\t%s", strconv.Quote(runtimeImport))
	}
	w.buf.WriteString(")\n\n")
}

// distinct returns the members whose value was not declared by an earlier member.
func (w *writer) distinct() []model.Member {
	var out []model.Member
	seen := make(map[uint64]bool)
	for m := range w.snap.Members.Values() {
		if seen[m.Value.Bits()] {
			continue
		}
		seen[m.Value.Bits()] = true
		out = append(out, m)
	}
	return out
}

func (w *writer) underlyingType() string {
	return w.snap.Kind.String()
}

func (w *writer) tables() {
	var ids, lits, display []string
	for m := range w.snap.Members.Values() {
		ids = append(ids, m.Identifier)
		lits = append(lits, m.Value.Literal())
		display = append(display, strconv.Quote(m.DisplayName))
	}
	w.array(w.n.values, w.snap.Name, ids)
	w.array(w.n.underlying, w.underlyingType(), lits)
	w.array(w.n.displayNames, "string", display)

	w.line("var %s = %s.NewNameTable(%s.%s, %s[:], %s[:])",
		w.n.nameTable, w.rt, w.rt, w.snap.Comparison.Ident(), w.n.displayNames, w.n.values)
	w.buf.WriteString("\n")
}

func (w *writer) array(name, typ string, elems []string) {
	if len(elems) == 0 {
		w.line("var %s = [...]%s{}\n", name, typ)
		return
	}
	w.line("var %s = [...]%s{", name, typ)
	for _, e := range elems {
		w.line("\t%s,", e)
	}
	w.buf.WriteString("}\n\n")
}

func (w *writer) stringMethod() {
	name := w.snap.Name
	if w.snap.IsFlags {
		w.line("// String returns the display name of v. Values that are not a single")
		w.line("// member are rendered with FlagsString(%s).", strconv.Quote(w.delim))
	} else {
		w.line("// String returns the display name of v, or \"\" if v is not a member.")
	}
	w.line("func (v %s) String() string {", name)
	w.buf.WriteString("\tswitch v {\n")
	for _, m := range w.distinct() {
		w.line("\tcase %s:", m.Identifier)
		w.line("\t\treturn %s", strconv.Quote(m.DisplayName))
	}
	w.buf.WriteString("\tdefault:\n")
	if w.snap.IsFlags {
		w.line("\t\treturn v.FlagsString(%s)", strconv.Quote(w.delim))
	} else {
		w.buf.WriteString("\t\treturn \"\"\n")
	}
	w.buf.WriteString("\t}\n}\n\n")
}

func (w *writer) isDefined() {
	w.line("// IsDefined reports whether v equals a declared member of %s.", w.snap.Name)
	w.line("func (v %s) IsDefined() bool {", w.snap.Name)
	members := w.distinct()
	if len(members) > 0 {
		ids := make([]string, len(members))
		for i, m := range members {
			ids[i] = m.Identifier
		}
		w.buf.WriteString("\tswitch v {\n")
		w.line("\tcase %s:", strings.Join(ids, ", "))
		w.buf.WriteString("\t\treturn true\n\t}\n")
	}
	w.buf.WriteString("\treturn false\n}\n\n")
}

func (w *writer) flags() {
	name := w.snap.Name
	w.line("// FlagsString joins the display names of the non-zero members set in v")
	w.line("// with delim, in declaration order. It returns \"\" if no member is set.")
	w.line("func (v %s) FlagsString(delim string) string {", name)
	w.buf.WriteString("\tif v == 0 {\n\t\treturn \"\"\n\t}\n")
	w.buf.WriteString("\tvar b strings.Builder\n")
	w.line("\tfor i, f := range %s {", w.n.values)
	w.buf.WriteString("\t\tif f != 0 && v&f == f {\n")
	w.line("\t\t\tb.WriteString(%s[i])", w.n.displayNames)
	w.buf.WriteString("\t\t\tb.WriteString(delim)\n\t\t}\n\t}\n")
	w.buf.WriteString("\treturn strings.TrimSuffix(b.String(), delim)\n}\n\n")

	w.line("// HasFlag reports whether every bit of flag is set in v.")
	w.line("func (v %s) HasFlag(flag %s) bool {", name, name)
	w.buf.WriteString("\treturn v&flag == flag\n}\n\n")
}

func (w *writer) parse() {
	name := w.snap.Name
	w.line("// %s returns the member whose display name matches s", w.n.tryParse)
	w.line("// under %s comparison.", w.snap.Comparison)
	w.line("func %s(s string) (%s, bool) {", w.n.tryParse, name)
	w.line("\treturn %s.Lookup(s)", w.n.nameTable)
	w.buf.WriteString("}\n\n")

	w.line("// %s is like %s but reports a failed match as an error", w.n.parse, w.n.tryParse)
	w.line("// matching %s.ErrParse.", w.rt)
	w.line("func %s(s string) (%s, error) {", w.n.parse, name)
	w.line("\tif v, ok := %s(s); ok {", w.n.tryParse)
	w.buf.WriteString("\t\treturn v, nil\n\t}\n")
	w.line("\treturn 0, &%s.ParseError{Enum: %s, Input: s}", w.rt, strconv.Quote(name))
	w.buf.WriteString("}\n\n")
}

func (w *writer) bulk() {
	name := w.snap.Name
	under := w.underlyingType()

	w.line("// %s returns the display names of all members in declaration order.", w.n.namesFunc)
	w.line("func %s() []string {", w.n.namesFunc)
	w.line("\treturn slices.Clone(%s[:])", w.n.displayNames)
	w.buf.WriteString("}\n\n")

	w.line("// %s returns all members in declaration order.", w.n.valuesFunc)
	w.line("func %s() []%s {", w.n.valuesFunc, name)
	w.line("\treturn slices.Clone(%s[:])", w.n.values)
	w.buf.WriteString("}\n\n")

	w.line("// %s returns the %s value of every member in declaration order.", w.n.underlyingFunc, under)
	w.line("func %s() []%s {", w.n.underlyingFunc, under)
	w.line("\treturn slices.Clone(%s[:])", w.n.underlying)
	w.buf.WriteString("}\n\n")

	w.pairs(w.n.nameValues, name, w.n.values)
	w.pairs(w.n.nameUnderlying, under, w.n.underlying)

	w.line("// %s returns the integer kind backing %s.", w.n.underlyingKind, name)
	w.line("func %s() %s.Kind {", w.n.underlyingKind, w.rt)
	w.line("\treturn %s.%s", w.rt, kindIdent(w.snap.Kind))
	w.buf.WriteString("}\n")
}

func (w *writer) pairs(fn, typ, table string) {
	w.line("// %s yields each display name with its value in declaration order.", fn)
	w.line("func %s() iter.Seq2[string, %s] {", fn, typ)
	w.line("\treturn func(yield func(string, %s) bool) {", typ)
	w.line("\t\tfor i, v := range %s {", table)
	w.line("\t\t\tif !yield(%s[i], v) {", w.n.displayNames)
	w.buf.WriteString("\t\t\t\treturn\n\t\t\t}\n\t\t}\n\t}\n}\n\n")
}

// kindIdent returns the runtime constant name for k, e.g. "Uint16".
func kindIdent(k enumkit.Kind) string {
	return upperFirst(k.String())
}
