package model

import (
	"go/constant"
	"math"
	"strconv"

	"github.com/broady/enumkit"
)

// Value is one member's numeric value: the raw bit pattern of the source
// integer, zero-extended from its width to 64 bits, tagged with the kind it
// was built from.
//
// Equal and Hash look only at the 64-bit pattern. Two values of different
// kinds that share a pattern (int8(-1) and uint8(255)) are equal. All members
// of one snapshot share a kind, so this never matters inside a snapshot.
type Value struct {
	bits uint64
	kind enumkit.Kind
}

func FromInt8(v int8) Value     { return Value{bits: uint64(uint8(v)), kind: enumkit.Int8} }
func FromUint8(v uint8) Value   { return Value{bits: uint64(v), kind: enumkit.Uint8} }
func FromInt16(v int16) Value   { return Value{bits: uint64(uint16(v)), kind: enumkit.Int16} }
func FromUint16(v uint16) Value { return Value{bits: uint64(v), kind: enumkit.Uint16} }
func FromInt32(v int32) Value   { return Value{bits: uint64(uint32(v)), kind: enumkit.Int32} }
func FromUint32(v uint32) Value { return Value{bits: uint64(v), kind: enumkit.Uint32} }
func FromInt64(v int64) Value   { return Value{bits: uint64(v), kind: enumkit.Int64} }
func FromUint64(v uint64) Value { return Value{bits: v, kind: enumkit.Uint64} }

// FromConstant converts a typed Go constant to a Value of the given kind.
// It reports false if c is not an integer or does not fit in kind.
func FromConstant(kind enumkit.Kind, c constant.Value) (Value, bool) {
	if c == nil || !kind.Valid() {
		return Value{}, false
	}
	c = constant.ToInt(c)
	if c.Kind() != constant.Int {
		return Value{}, false
	}
	if kind.Signed() {
		i, exact := constant.Int64Val(c)
		if !exact {
			return Value{}, false
		}
		switch kind {
		case enumkit.Int8:
			if i < math.MinInt8 || i > math.MaxInt8 {
				return Value{}, false
			}
			return FromInt8(int8(i)), true
		case enumkit.Int16:
			if i < math.MinInt16 || i > math.MaxInt16 {
				return Value{}, false
			}
			return FromInt16(int16(i)), true
		case enumkit.Int32:
			if i < math.MinInt32 || i > math.MaxInt32 {
				return Value{}, false
			}
			return FromInt32(int32(i)), true
		default:
			return FromInt64(i), true
		}
	}
	u, exact := constant.Uint64Val(c)
	if !exact {
		return Value{}, false
	}
	switch kind {
	case enumkit.Uint8:
		if u > math.MaxUint8 {
			return Value{}, false
		}
		return FromUint8(uint8(u)), true
	case enumkit.Uint16:
		if u > math.MaxUint16 {
			return Value{}, false
		}
		return FromUint16(uint16(u)), true
	case enumkit.Uint32:
		if u > math.MaxUint32 {
			return Value{}, false
		}
		return FromUint32(uint32(u)), true
	default:
		return FromUint64(u), true
	}
}

// Kind returns the kind the value was built from.
func (v Value) Kind() enumkit.Kind { return v.kind }

// Bits returns the canonical 64-bit pattern.
func (v Value) Bits() uint64 { return v.bits }

// IsZero reports whether no bits are set.
func (v Value) IsZero() bool { return v.bits == 0 }

// The accessors below reinterpret the stored pattern as the requested kind.
// Reading a value as a kind other than the one it was built from yields the
// truncated or zero-extended pattern, not a numeric conversion.

func (v Value) Int8() int8     { return int8(v.bits) }
func (v Value) Uint8() uint8   { return uint8(v.bits) }
func (v Value) Int16() int16   { return int16(v.bits) }
func (v Value) Uint16() uint16 { return uint16(v.bits) }
func (v Value) Int32() int32   { return int32(v.bits) }
func (v Value) Uint32() uint32 { return uint32(v.bits) }
func (v Value) Int64() int64   { return int64(v.bits) }
func (v Value) Uint64() uint64 { return v.bits }

// Equal compares the 64-bit patterns of v and o.
func (v Value) Equal(o Value) bool { return v.bits == o.bits }

// Hash is consistent with Equal.
func (v Value) Hash() uint64 { return mix(hashOffset, v.bits) }

// Literal returns the Go literal of v in its own kind, e.g. "-1" for an int8
// built from -1 and "255" for a uint8 built from 255.
func (v Value) Literal() string {
	switch v.kind {
	case enumkit.Int8:
		return strconv.FormatInt(int64(v.Int8()), 10)
	case enumkit.Int16:
		return strconv.FormatInt(int64(v.Int16()), 10)
	case enumkit.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case enumkit.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	default:
		return strconv.FormatUint(v.bits, 10)
	}
}

func (v Value) String() string { return v.Literal() }
