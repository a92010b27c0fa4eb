package matrix

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/value"
)

// requireCells asserts that the column's cells equal expected under the
// module's value equality (numeric widths do not matter).
func requireCells(t *testing.T, expected []any, col *Column) {
	t.Helper()
	require.Equal(t, len(expected), col.Len())
	for i, want := range expected {
		got := col.Get(i)
		require.True(t, value.Equal(want, got), "position %d: want %v, got %v", i, want, got)
	}
}

func TestColumn_BroadcastArithmetic(t *testing.T) {
	t.Run("shorter counterpart yields null beyond its end", func(t *testing.T) {
		col := NewColumn(value.Int, 1, 2, 3, 4)
		requireCells(t, []any{2, 4, nil, nil}, col.Add([]any{1, 2}))
	})

	t.Run("longer counterpart extras are ignored", func(t *testing.T) {
		col := NewColumn(value.Int, 1, 2, 3, 4)
		requireCells(t, []any{2, 4, 6, 8}, col.Add([]any{1, 2, 3, 4, 5, 6}))
	})

	t.Run("scalar broadcast", func(t *testing.T) {
		col := NewColumn(value.Int, 1, 2, 3)
		requireCells(t, []any{10, 20, 30}, col.Multiply(10))
		requireCells(t, []any{0.5, 1.0, 1.5}, col.Divide(2))
		requireCells(t, []any{1, 4, 9}, col.Power(2))
	})

	t.Run("column counterpart", func(t *testing.T) {
		col := NewColumn(value.Int, 10, 20, 30)
		other := NewColumn(value.Int, 1, 2, 3)
		requireCells(t, []any{9, 18, 27}, col.Subtract(other))
	})

	t.Run("null absorbs", func(t *testing.T) {
		col := NewColumn(value.Int, 1, nil, 3)
		requireCells(t, []any{2, nil, 4}, col.Add(1))
	})

	t.Run("division by zero yields null", func(t *testing.T) {
		col := NewColumn(value.Int, 1, 2)
		requireCells(t, []any{nil, nil}, col.Divide(0))
	})

	t.Run("decimal division stays exact", func(t *testing.T) {
		col := NewColumn(value.Decimal,
			decimal.RequireFromString("1"),
			decimal.RequireFromString("2.5"))
		requireCells(t, []any{decimal.RequireFromString("0.5"), decimal.RequireFromString("1.25")},
			col.Divide(2))
		requireCells(t, []any{nil, nil}, col.Divide(decimal.Zero))
	})

	t.Run("receiver is never mutated", func(t *testing.T) {
		col := NewColumn(value.Int, 1, 2, 3)
		_ = col.Add(100)
		requireCells(t, []any{1, 2, 3}, col)
	})
}

func TestColumn_StringArithmetic(t *testing.T) {
	t.Run("add concatenates", func(t *testing.T) {
		col := NewColumn(value.String, "foo", "bar")
		requireCells(t, []any{"foo!", "bar!"}, col.Add("!"))
	})

	t.Run("subtract removes first occurrence", func(t *testing.T) {
		col := NewColumn(value.String, "banana", "cherry")
		requireCells(t, []any{"bnana", "cherry"}, col.Subtract("a"))
	})
}

func TestColumn_UniqueAndRemoveNulls(t *testing.T) {
	col := NewColumn(value.Any, "a", nil, "b", "a", nil, 1)

	requireCells(t, []any{"a", nil, "b", 1}, col.Unique())
	requireCells(t, []any{"a", "b", "a", 1}, col.RemoveNulls())
	// Neither call mutates the receiver.
	require.Equal(t, 6, col.Len())

	t.Run("slice cells", func(t *testing.T) {
		col := NewColumn(value.Any, []int{1}, []int{2}, []int{1})
		requireCells(t, []any{[]int{1}, []int{2}}, col.Unique())
	})
}

func TestColumn_SubList(t *testing.T) {
	col := NewColumn(value.Int, 1, 2, 3, 4, 5)

	sub, err := col.SubList(1, 4)
	require.NoError(t, err)
	requireCells(t, []any{2, 3, 4}, sub)

	sub.Set(0, 99)
	require.Equal(t, 2, col.Get(1), "sublist must be independent")

	_, err = col.SubList(3, 1)
	require.Error(t, err)
}

func TestColumn_Statistics(t *testing.T) {
	col := NewColumn(value.Any, 1, 2, nil, "3", "skipme", 4)

	mean, ok := col.Mean()
	require.True(t, ok)
	require.InDelta(t, 2.5, mean, 1e-9)

	median, ok := col.Median()
	require.True(t, ok)
	require.InDelta(t, 2.5, median, 1e-9)

	maxVal, ok := col.Max()
	require.True(t, ok)
	require.InDelta(t, 4.0, maxVal, 1e-9)

	minVal, ok := col.Min()
	require.True(t, ok)
	require.InDelta(t, 1.0, minVal, 1e-9)

	variance, ok := col.Variance()
	require.True(t, ok)
	require.InDelta(t, 5.0/3.0, variance, 1e-9)

	_, ok = NewColumn(value.String, "a", "b").Mean()
	require.False(t, ok, "non-numeric column has no mean")
}
