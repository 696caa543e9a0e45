package enumkit

// Kind identifies the fixed-width integer type that backs an enum.
// The zero Kind is invalid.
type Kind uint8

const (
	Int8 Kind = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
)

var kindNames = [...]string{
	Int8:   "int8",
	Uint8:  "uint8",
	Int16:  "int16",
	Uint16: "uint16",
	Int32:  "int32",
	Uint32: "uint32",
	Int64:  "int64",
	Uint64: "uint64",
}

// String returns the Go type name of the kind, e.g. "uint16".
func (k Kind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the eight supported kinds.
func (k Kind) Valid() bool {
	return k >= Int8 && k <= Uint64
}

// Signed reports whether k is a signed integer kind.
func (k Kind) Signed() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// BitSize returns the width of k in bits, or 0 for an invalid kind.
func (k Kind) BitSize() int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32:
		return 32
	case Int64, Uint64:
		return 64
	}
	return 0
}

// ParseKind maps a Go basic type name to its Kind. The aliases byte and rune
// are accepted. Platform-sized types (int, uint, uintptr) are not.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "byte":
		return Uint8, true
	case "rune":
		return Int32, true
	}
	for k := Int8; k <= Uint64; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}
