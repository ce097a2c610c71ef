package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fitskit/pkg/types"
)

func TestInferBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		quoted bool
		want   types.KeyType
	}{
		{name: "zero", token: "0", want: types.TypeUByte},
		{name: "ubyte max", token: "255", want: types.TypeUByte},
		{name: "short above ubyte", token: "256", want: types.TypeShort},
		{name: "negative short", token: "-1", want: types.TypeShort},
		{name: "short max", token: "65535", want: types.TypeShort},
		{name: "int above short", token: "65536", want: types.TypeInt},
		{name: "int below short", token: "-65536", want: types.TypeInt},
		{name: "int32 max", token: "2147483647", want: types.TypeInt},
		{name: "long", token: "2147483648", want: types.TypeLong},
		{name: "negative long", token: "-2147483649", want: types.TypeLong},
		{name: "overflow at limit", token: "1e15", want: types.TypeReal},
		{name: "large integer overflow", token: "1000000000000000", want: types.TypeReal},
		{name: "below limit", token: "1e14", want: types.TypeFloat},
		{name: "tiny", token: "1e-15", want: types.TypeFloat},
		{name: "too tiny", token: "9e-16", want: types.TypeReal},
		{name: "huge", token: "1e400", want: types.TypeReal},
		{name: "zero float", token: "0.0", want: types.TypeFloat},
		{name: "float 15 digits", token: "1.123456789012345", want: types.TypeFloat},
		{name: "double 16 digits", token: "1.1234567890123456", want: types.TypeDouble},
		{name: "double with exponent", token: "1.1234567890123456E-3", want: types.TypeDouble},
		{name: "exponent only", token: "3E5", want: types.TypeFloat},
		{name: "true", token: "T", want: types.TypeBool},
		{name: "false", token: "F", want: types.TypeBool},
		{name: "reserved inf", token: "INF", want: types.TypeChar},
		{name: "reserved nan", token: "nan", want: types.TypeChar},
		{name: "reserved infinity", token: "Infinity", want: types.TypeChar},
		{name: "hex literal", token: "0x10", want: types.TypeChar},
		{name: "quoted number", token: "42", quoted: true, want: types.TypeChar},
		{name: "quoted T", token: "T", quoted: true, want: types.TypeChar},
		{name: "text", token: "IMAGE", want: types.TypeChar},
		{name: "date", token: "2004-07-12", quoted: true, want: types.TypeDateTime},
		{name: "datetime", token: "2004-07-12T03:14:15.926", quoted: true, want: types.TypeDateTime},
		{name: "unquoted date", token: "1999-12-31", want: types.TypeDateTime},
		{name: "old date", token: "1899-12-31", quoted: true, want: types.TypeChar},
		{name: "bad month", token: "2004-13-01", quoted: true, want: types.TypeChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Type(tt.token, tt.quoted))
		})
	}
}

func TestInferNumericForms(t *testing.T) {
	v := Infer("-300", false)
	require.Equal(t, types.TypeShort, v.Type)
	require.Equal(t, int64(-300), v.Int)
	require.Equal(t, "-300", v.Text)

	v = Infer("12345678901234", false)
	require.Equal(t, types.TypeLong, v.Type)
	require.NotNil(t, v.Big)
	require.Equal(t, "12345678901234", v.Big.String())

	v = Infer("2.5E-3", false)
	require.Equal(t, types.TypeFloat, v.Type)
	require.InDelta(t, 0.0025, v.Float, 1e-12)

	v = Infer("T", false)
	require.True(t, v.Bool)

	v = Infer("1e300", false)
	require.Equal(t, types.TypeReal, v.Type)
	require.Zero(t, v.Float)
	require.Equal(t, "1e300", v.Text)
}

func TestIsDateTime(t *testing.T) {
	require.True(t, IsDateTime("2020-02-29T23:59:59"))
	require.True(t, IsDateTime(" 2020-02-29 "))
	require.False(t, IsDateTime("2020-02-29X"))
	require.False(t, IsDateTime("20-02-29"))
}
