package golang

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// names holds every top-level identifier the emitter declares for one enum.
type names struct {
	values         string
	underlying     string
	displayNames   string
	nameTable      string
	tryParse       string
	parse          string
	namesFunc      string
	valuesFunc     string
	underlyingFunc string
	nameValues     string
	nameUnderlying string
	underlyingKind string
}

func newNames(enum string) names {
	return names{
		values:         "_" + enum + "_values",
		underlying:     "_" + enum + "_underlyingValues",
		displayNames:   "_" + enum + "_names",
		nameTable:      "_" + enum + "_nameTable",
		tryParse:       prefixed("TryParse", enum),
		parse:          prefixed("Parse", enum),
		namesFunc:      enum + "Names",
		valuesFunc:     enum + "Values",
		underlyingFunc: enum + "UnderlyingValues",
		nameValues:     enum + "NameValues",
		nameUnderlying: enum + "NameUnderlyingValues",
		underlyingKind: enum + "UnderlyingKind",
	}
}

// all lists the package-level identifiers, for collision checks.
func (n names) all() []string {
	return []string{
		n.values, n.underlying, n.displayNames, n.nameTable,
		n.tryParse, n.parse, n.namesFunc, n.valuesFunc, n.underlyingFunc,
		n.nameValues, n.nameUnderlying, n.underlyingKind,
	}
}

// prefixed joins prefix and name, keeping the result unexported when name is.
// prefixed("Parse", "color") is "parseColor".
func prefixed(prefix, name string) string {
	if token.IsExported(name) {
		return prefix + name
	}
	return lowerFirst(prefix) + upperFirst(name)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// shadowed lists names that generated bodies bind locally or import.
// A member with one of these names would be shadowed inside those bodies.
var shadowed = map[string]bool{
	"v": true, "s": true, "i": true, "f": true, "b": true, "ok": true,
	"flag": true, "delim": true, "yield": true,
	"iter": true, "slices": true, "strings": true,
}

// importName returns the name generated code refers to the runtime package
// by. A major version suffix is skipped, so "example.com/enumkit/v2" gives
// "enumkit", and characters not allowed in identifiers become underscores.
func importName(importPath string) string {
	elems := strings.Split(importPath, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(name) {
		name = elems[len(elems)-2]
	}
	name = strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
	if !token.IsIdentifier(name) {
		return "enumkit"
	}
	return name
}

func isMajorVersion(elem string) bool {
	n, ok := strings.CutPrefix(elem, "v")
	if !ok || n == "" || n[0] == '0' {
		return false
	}
	_, err := strconv.Atoi(n)
	return err == nil
}
