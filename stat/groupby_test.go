package stat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

func salesData(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewBuilder().
		Name("sales").
		Types(value.String, value.String, value.Float64).
		ColumnMap(matrix.NamedColumns{}.
			Add("region", "north", "south", "north", "south", "north").
			Add("product", "a", "a", "b", "b", "a").
			Add("amount", 10.0, 20.0, 30.0, 40.0, 50.0)).
		Build()
	require.NoError(t, err)

	return m
}

func TestGroupBy(t *testing.T) {
	m := salesData(t)

	t.Run("single column", func(t *testing.T) {
		g, err := GroupBy(m, []string{"region"})
		require.NoError(t, err)

		require.Equal(t, []string{"north", "south"}, g.Keys, "first-occurrence order")
		require.Equal(t, []int{0, 2, 4}, g.Indices["north"])
		require.Equal(t, []int{1, 3}, g.Indices["south"])
	})

	t.Run("composite key", func(t *testing.T) {
		g, err := GroupBy(m, []string{"region", "product"})
		require.NoError(t, err)

		require.Equal(t, []string{"north-a", "south-a", "north-b", "south-b"}, g.Keys)
		require.Equal(t, []int{0, 4}, g.Indices["north-a"])
	})

	t.Run("rows accessor", func(t *testing.T) {
		g, err := GroupBy(m, []string{"region"})
		require.NoError(t, err)

		rows := g.Rows(m, "south")
		require.Len(t, rows, 2)
		v, err := rows[0].GetNamed("amount")
		require.NoError(t, err)
		require.Equal(t, 20.0, v)
	})

	t.Run("null key cells group under the marker", func(t *testing.T) {
		nm, err := matrix.NewBuilder().
			ColumnMap(matrix.NamedColumns{}.
				Add("k", "x", nil, nil).
				Add("v", 1, 2, 3)).
			Build()
		require.NoError(t, err)

		g, err := GroupBy(nm, []string{"k"})
		require.NoError(t, err)
		require.Equal(t, []string{"x", "null"}, g.Keys)
		require.Equal(t, []int{1, 2}, g.Indices["null"])
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := GroupBy(m, []string{"missing"})
		require.ErrorIs(t, err, errs.ErrColumnNotFound)
	})
}

func TestSumBy(t *testing.T) {
	m := salesData(t)

	agg, err := SumBy(m, "amount", "region")
	require.NoError(t, err)

	require.Equal(t, []string{"region", "amount"}, agg.ColumnNames())
	require.Equal(t, []value.Type{value.String, value.Decimal}, agg.Types())
	require.Equal(t, 2, agg.RowCount())

	v, err := agg.CellNamed(0, "amount")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(90).Equal(v.(decimal.Decimal)), "north sums to 90")

	v, err = agg.CellNamed(1, "amount")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(60).Equal(v.(decimal.Decimal)))
}

func TestMeanBy(t *testing.T) {
	m := salesData(t)

	agg, err := MeanBy(m, "amount", "region", 2)
	require.NoError(t, err)

	v, err := agg.CellNamed(0, "amount")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(30).Equal(v.(decimal.Decimal)))
}

func TestMedianBy(t *testing.T) {
	m := salesData(t)

	agg, err := MedianBy(m, "amount", "region")
	require.NoError(t, err)

	v, err := agg.CellNamed(0, "amount")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(30).Equal(v.(decimal.Decimal)), "odd-sized group takes the middle value")

	v, err = agg.CellNamed(1, "amount")
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(30).Equal(v.(decimal.Decimal)), "even-sized group averages the middle pair")
}

func TestAggregateBy_ExactDecimals(t *testing.T) {
	m, err := matrix.NewBuilder().
		Types(value.String, value.Decimal).
		ColumnMap(matrix.NamedColumns{}.
			Add("k", "a", "a", "a").
			Add("v",
				decimal.RequireFromString("0.1"),
				decimal.RequireFromString("0.2"),
				decimal.RequireFromString("0.3"))).
		Build()
	require.NoError(t, err)

	agg, err := SumBy(m, "v", "k")
	require.NoError(t, err)

	v, err := agg.CellNamed(0, "v")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("0.6").Equal(v.(decimal.Decimal)),
		"decimal accumulation has no float drift")
}
