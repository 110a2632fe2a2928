package validators_test

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goserializer/validators"
)

type label string

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{in: "3", want: 3, ok: true},
		{in: " -7 ", want: -7, ok: true},
		{in: 4, want: 4, ok: true},
		{in: int64(9), want: 9, ok: true},
		{in: uint8(2), want: 2, ok: true},
		{in: 5.0, want: 5, ok: true},
		{in: json.Number("12"), want: 12, ok: true},
		{in: label("8"), want: 8, ok: true},
		{in: 5.5},
		{in: "3.0"},
		{in: "x"},
		{in: true},
		{in: nil},
		{in: uint64(math.MaxUint64)},
		{in: math.Inf(1)},
		{in: json.Number("9223372036854775808")},
	}
	for _, tt := range tests {
		got, ok := validators.ToInt(tt.in)
		assert.Equal(t, tt.ok, ok, "%#v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%#v", tt.in)
		}
	}
}

func TestToInt_Int64Range(t *testing.T) {
	wide := []any{int64(math.MaxInt64), json.Number("-9223372036854775808")}
	for _, in := range wide {
		got, ok := validators.ToInt(in)
		if strconv.IntSize == 32 {
			assert.False(t, ok, "%#v", in)
			continue
		}
		require.True(t, ok, "%#v", in)
		assert.NotZero(t, got)
	}

	got, ok := validators.ToInt(int64(math.MinInt))
	require.True(t, ok)
	assert.Equal(t, math.MinInt, got)
	got, ok = validators.ToInt(json.Number(strconv.Itoa(math.MaxInt)))
	require.True(t, ok)
	assert.Equal(t, math.MaxInt, got)
}

func TestToBool(t *testing.T) {
	for _, in := range []any{true, "true", "True", "1", 1, json.Number("1")} {
		got, ok := validators.ToBool(in)
		assert.True(t, ok, "%#v", in)
		assert.True(t, got, "%#v", in)
	}
	for _, in := range []any{false, "false", "False", "0", 0, json.Number("0")} {
		got, ok := validators.ToBool(in)
		assert.True(t, ok, "%#v", in)
		assert.False(t, got, "%#v", in)
	}
	for _, in := range []any{"yes", 2, nil, 1.0} {
		_, ok := validators.ToBool(in)
		assert.False(t, ok, "%#v", in)
	}
}

func TestLength(t *testing.T) {
	n, ok := validators.Length("héllo")
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = validators.Length(map[string]any{"a": 1})
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = validators.Length(3)
	assert.False(t, ok)
}
