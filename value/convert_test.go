package value

import (
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/errs"
)

func TestConvert_NumericTargets(t *testing.T) {
	t.Run("numeric strings", func(t *testing.T) {
		v, err := Convert("42", Int)
		require.NoError(t, err)
		require.Equal(t, 42, v)

		v, err = Convert("3.25", Float64)
		require.NoError(t, err)
		require.Equal(t, 3.25, v)

		v, err = Convert("1.5e3", Float64)
		require.NoError(t, err)
		require.Equal(t, 1500.0, v)
	})

	t.Run("booleans become 0 and 1", func(t *testing.T) {
		v, err := Convert(true, Int)
		require.NoError(t, err)
		require.Equal(t, 1, v)

		v, err = Convert(false, Float64)
		require.NoError(t, err)
		require.Equal(t, 0.0, v)
	})

	t.Run("locale-aware separators", func(t *testing.T) {
		v, err := Convert("1.234.567,89", Decimal, WithSeparators('.', ','))
		require.NoError(t, err)
		require.True(t, v.(decimal.Decimal).Equal(decimal.RequireFromString("1234567.89")))
	})

	t.Run("width checks", func(t *testing.T) {
		_, err := Convert(100000, Int16)
		require.ErrorIs(t, err, errs.ErrConversion)
	})

	t.Run("big integers", func(t *testing.T) {
		v, err := Convert("123456789012345678901234567890", BigInt)
		require.NoError(t, err)
		expected, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
		require.Zero(t, v.(*big.Int).Cmp(expected))
	})
}

func TestConvert_BoolTargets(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"yes", true},
		{"ON", true},
		{"True", true},
		{"no", false},
		{"Off", false},
		{"FALSE", false},
		{3, true},
		{0, false},
		{-2, false},
		{0.5, true},
	}
	for _, tc := range cases {
		v, err := Convert(tc.in, Bool)
		require.NoError(t, err, "input %v", tc.in)
		require.Equal(t, tc.want, v, "input %v", tc.in)
	}

	_, err := Convert("maybe", Bool)
	require.ErrorIs(t, err, errs.ErrConversion)
}

func TestConvert_TimeTargets(t *testing.T) {
	t.Run("iso strings", func(t *testing.T) {
		v, err := Convert("2014-11-15", Time)
		require.NoError(t, err)
		require.Equal(t, time.Date(2014, 11, 15, 0, 0, 0, 0, time.UTC), v)
	})

	t.Run("explicit layout", func(t *testing.T) {
		v, err := Convert("15/11/2014", Time, WithLayout("02/01/2006"))
		require.NoError(t, err)
		require.Equal(t, time.Date(2014, 11, 15, 0, 0, 0, 0, time.UTC), v)
	})

	t.Run("epoch seconds and millis", func(t *testing.T) {
		v, err := Convert(int64(1_700_000_000), Time)
		require.NoError(t, err)
		require.Equal(t, time.Unix(1_700_000_000, 0).UTC(), v)

		v, err = Convert(int64(1_700_000_000_000), Time)
		require.NoError(t, err)
		require.Equal(t, time.UnixMilli(1_700_000_000_000).UTC(), v)
	})
}

func TestConvert_NullHandling(t *testing.T) {
	t.Run("null stays null", func(t *testing.T) {
		v, err := Convert(nil, Int)
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("fallback replaces null", func(t *testing.T) {
		v, err := Convert(nil, Int, WithFallback(7))
		require.NoError(t, err)
		require.Equal(t, 7, v)
	})

	t.Run("null on error", func(t *testing.T) {
		v, err := Convert("not a number", Int, WithNullOnError())
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("failure without recovery propagates", func(t *testing.T) {
		_, err := Convert("not a number", Int)
		require.ErrorIs(t, err, errs.ErrConversion)
	})
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]Type{
		"int":        Int,
		"Integer":    Int,
		"short":      Int16,
		"long":       Int64,
		"double":     Float64,
		"BigDecimal": Decimal,
		"string":     String,
		"timestamp":  Time,
		"untyped":    Any,
	} {
		got, err := ParseType(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseType("quux")
	require.ErrorIs(t, err, errs.ErrUnknownType)
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(1, int64(1)))
	require.True(t, Equal(decimal.RequireFromString("1.0"), 1.0))
	require.True(t, Equal(nil, nil))
	require.False(t, Equal(nil, 0))
	require.False(t, Equal("1", 1))
	require.True(t, Equal("a", "a"))

	t.Run("uncomparable cells do not panic", func(t *testing.T) {
		require.True(t, Equal([]string{"a", "b"}, []string{"a", "b"}))
		require.False(t, Equal([]string{"a"}, []string{"b"}))
		require.True(t, Equal(map[string]int{"a": 1}, map[string]int{"a": 1}))
		require.False(t, Equal([]int{1}, "not a slice"))
		require.False(t, Equal([]int{1}, nil))
	})
}
