package enumkit

import "strings"

// Comparison selects how a name table matches input strings to display names.
type Comparison uint8

const (
	// Ordinal matches byte-for-byte. This is the default.
	Ordinal Comparison = iota
	// OrdinalIgnoreCase matches after Unicode case folding.
	OrdinalIgnoreCase
	// CurrentCulture matches with the collation rules of the process locale
	// (LC_ALL, LC_COLLATE or LANG).
	CurrentCulture
	CurrentCultureIgnoreCase
	// InvariantCulture matches with the root collation.
	InvariantCulture
	InvariantCultureIgnoreCase
)

var comparisonNames = [...]string{
	Ordinal:                    "ordinal",
	OrdinalIgnoreCase:          "ordinal-ignore-case",
	CurrentCulture:             "current-culture",
	CurrentCultureIgnoreCase:   "current-culture-ignore-case",
	InvariantCulture:           "invariant-culture",
	InvariantCultureIgnoreCase: "invariant-culture-ignore-case",
}

var comparisonIdents = [...]string{
	Ordinal:                    "Ordinal",
	OrdinalIgnoreCase:          "OrdinalIgnoreCase",
	CurrentCulture:             "CurrentCulture",
	CurrentCultureIgnoreCase:   "CurrentCultureIgnoreCase",
	InvariantCulture:           "InvariantCulture",
	InvariantCultureIgnoreCase: "InvariantCultureIgnoreCase",
}

// String returns the directive spelling of c, e.g. "ordinal-ignore-case".
func (c Comparison) String() string {
	if int(c) >= len(comparisonNames) {
		return "invalid"
	}
	return comparisonNames[c]
}

// Ident returns the exported identifier of c in this package, e.g.
// "OrdinalIgnoreCase". Generated code refers to modes by this name.
func (c Comparison) Ident() string {
	if int(c) >= len(comparisonIdents) {
		return ""
	}
	return comparisonIdents[c]
}

// IgnoreCase reports whether c disregards letter case.
func (c Comparison) IgnoreCase() bool {
	switch c {
	case OrdinalIgnoreCase, CurrentCultureIgnoreCase, InvariantCultureIgnoreCase:
		return true
	}
	return false
}

// Cultural reports whether c uses linguistic collation rather than code points.
func (c Comparison) Cultural() bool {
	return c >= CurrentCulture && c <= InvariantCultureIgnoreCase
}

// ParseComparison accepts either spelling of a mode ("ordinal-ignore-case" or
// "OrdinalIgnoreCase"), ignoring case.
func ParseComparison(s string) (Comparison, bool) {
	for i := range comparisonNames {
		if strings.EqualFold(s, comparisonNames[i]) || strings.EqualFold(s, comparisonIdents[i]) {
			return Comparison(i), true
		}
	}
	return Ordinal, false
}
