package model

import (
	"go/constant"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/enumkit"
)

func TestValue_ZeroExtendsFromWidth(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		bits    uint64
		kind    enumkit.Kind
		literal string
	}{
		{"int8 -1", FromInt8(-1), 0xFF, enumkit.Int8, "-1"},
		{"uint8 255", FromUint8(255), 0xFF, enumkit.Uint8, "255"},
		{"int16 -2", FromInt16(-2), 0xFFFE, enumkit.Int16, "-2"},
		{"uint16 max", FromUint16(math.MaxUint16), 0xFFFF, enumkit.Uint16, "65535"},
		{"int32 -1", FromInt32(-1), 0xFFFFFFFF, enumkit.Int32, "-1"},
		{"uint32 7", FromUint32(7), 7, enumkit.Uint32, "7"},
		{"int64 min", FromInt64(math.MinInt64), 1 << 63, enumkit.Int64, "-9223372036854775808"},
		{"uint64 max", FromUint64(math.MaxUint64), math.MaxUint64, enumkit.Uint64, "18446744073709551615"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bits, tt.v.Bits())
			assert.Equal(t, tt.kind, tt.v.Kind())
			assert.Equal(t, tt.literal, tt.v.Literal())
			assert.Equal(t, tt.literal, tt.v.String())
		})
	}
}

func TestValue_ReadBackAsEachKind(t *testing.T) {
	assert.Equal(t, int8(-5), FromInt8(-5).Int8())
	assert.Equal(t, uint8(200), FromUint8(200).Uint8())
	assert.Equal(t, int16(-300), FromInt16(-300).Int16())
	assert.Equal(t, uint16(60000), FromUint16(60000).Uint16())
	assert.Equal(t, int32(-70000), FromInt32(-70000).Int32())
	assert.Equal(t, uint32(4000000000), FromUint32(4000000000).Uint32())
	assert.Equal(t, int64(-1<<40), FromInt64(-1<<40).Int64())
	assert.Equal(t, uint64(1<<63), FromUint64(1<<63).Uint64())

	// Reading with the wrong kind reinterprets the pattern.
	assert.Equal(t, uint8(0xFF), FromInt8(-1).Uint8())
	assert.Equal(t, int64(0xFF), FromInt8(-1).Int64())
}

func TestValue_EqualityIgnoresKind(t *testing.T) {
	a := FromInt8(-1)
	b := FromUint8(255)
	require.NotEqual(t, a.Kind(), b.Kind())
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	// Same numeric meaning, different widths: patterns differ.
	assert.False(t, FromInt8(-1).Equal(FromInt16(-1)))
	assert.True(t, FromInt32(3).Equal(FromUint64(3)))
	assert.False(t, FromInt32(3).Equal(FromInt32(4)))
}

func TestFromConstant(t *testing.T) {
	tests := []struct {
		name string
		kind enumkit.Kind
		c    constant.Value
		want Value
		ok   bool
	}{
		{"int8 in range", enumkit.Int8, constant.MakeInt64(-128), FromInt8(-128), true},
		{"int8 overflow", enumkit.Int8, constant.MakeInt64(128), Value{}, false},
		{"uint8 negative", enumkit.Uint8, constant.MakeInt64(-1), Value{}, false},
		{"uint16", enumkit.Uint16, constant.MakeUint64(65535), FromUint16(65535), true},
		{"int32 overflow", enumkit.Int32, constant.MakeInt64(math.MaxInt32 + 1), Value{}, false},
		{"uint32", enumkit.Uint32, constant.MakeUint64(math.MaxUint32), FromUint32(math.MaxUint32), true},
		{"int64", enumkit.Int64, constant.MakeInt64(math.MinInt64), FromInt64(math.MinInt64), true},
		{"uint64 max", enumkit.Uint64, constant.MakeUint64(math.MaxUint64), FromUint64(math.MaxUint64), true},
		{"integral float", enumkit.Int32, constant.MakeFloat64(4), FromInt32(4), true},
		{"fractional float", enumkit.Int32, constant.MakeFloat64(4.5), Value{}, false},
		{"string", enumkit.Int32, constant.MakeString("x"), Value{}, false},
		{"unknown", enumkit.Int32, constant.MakeUnknown(), Value{}, false},
		{"nil", enumkit.Int32, nil, Value{}, false},
		{"invalid kind", 0, constant.MakeInt64(1), Value{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromConstant(tt.kind, tt.c)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want.Bits(), got.Bits())
				assert.Equal(t, tt.want.Kind(), got.Kind())
			}
		})
	}
}
