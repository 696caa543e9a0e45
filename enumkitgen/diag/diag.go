// Package diag defines the typed failure reports produced while extracting
// and emitting enums. Diagnostics are values; a failing declaration or member
// is reported and skipped, and the batch continues.
package diag

import (
	"fmt"
	"go/token"
	"strings"

	"go.uber.org/multierr"
)

// Code is a stable diagnostic identifier.
type Code string

const (
	MissingNamespace      Code = "EK0001"
	InvalidUnderlyingType Code = "EK0002"
	UnresolvedMemberValue Code = "EK0003"
	InvalidDirective      Code = "EK0004"
	DuplicateValue        Code = "EK0005"
	EmissionFailed        Code = "EK0006"
	UnresolvableSymbol    Code = "EK9999"
)

var titles = map[Code]string{
	MissingNamespace:      "enum missing package",
	InvalidUnderlyingType: "enum has invalid underlying type",
	UnresolvedMemberValue: "failed to get value",
	InvalidDirective:      "invalid directive",
	DuplicateValue:        "duplicate member value",
	EmissionFailed:        "failed to emit enum",
	UnresolvableSymbol:    "failed to get symbol",
}

// Title returns a short human-readable description of c.
func (c Code) Title() string {
	if t, ok := titles[c]; ok {
		return t
	}
	return "unknown"
}

// Severity grades a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one report about a declaration or member.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Pos      token.Position
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%s %s: %s", d.Severity, d.Code, d.Message)
	return b.String()
}

// Errorf builds an error-severity diagnostic.
func Errorf(code Code, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Warnf builds a warning.
func Warnf(code Code, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Infof builds an informational diagnostic.
func Infof(code Code, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityInfo, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// MissingNamespaceAt reports an enum declared outside any package.
func MissingNamespaceAt(pos token.Position, enum string) Diagnostic {
	return Errorf(MissingNamespace, pos, "enum %s must be declared in a package", enum)
}

// InvalidUnderlyingTypeAt reports an enum backed by an unsupported type.
func InvalidUnderlyingTypeAt(pos token.Position, enum, underlying string) Diagnostic {
	return Errorf(InvalidUnderlyingType, pos,
		"enum %s has an invalid underlying type %s; must be one of int8, uint8, int16, uint16, int32, uint32, int64, uint64",
		enum, underlying)
}

// UnresolvedMemberValueAt reports a member whose constant could not be evaluated.
func UnresolvedMemberValueAt(pos token.Position, member string) Diagnostic {
	return Errorf(UnresolvedMemberValue, pos, "could not get underlying value for enum member %s", member)
}

// UnresolvableSymbolAt reports a declaration or member without a resolvable symbol.
func UnresolvableSymbolAt(pos token.Position, name string) Diagnostic {
	return Errorf(UnresolvableSymbol, pos, "could not get symbol for %s", name)
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends d.
func (l *List) Add(d Diagnostic) { *l = append(*l, d) }

// Extend appends all of o.
func (l *List) Extend(o List) { *l = append(*l, o...) }

// HasErrors reports whether any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics at or above min severity.
func (l List) Filter(min Severity) List {
	var out List
	for _, d := range l {
		if d.Severity >= min {
			out = append(out, d)
		}
	}
	return out
}

// Err combines the error-severity diagnostics into one error, or returns nil.
func (l List) Err() error {
	var err error
	for _, d := range l {
		if d.Severity == SeverityError {
			err = multierr.Append(err, d)
		}
	}
	return err
}
