package stat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

func TestFrequency(t *testing.T) {
	f, err := Frequency([]any{"b", "a", "b", nil, "b", "a"})
	require.NoError(t, err)

	require.Equal(t, []string{"Value", "Frequency", "Percent"}, f.ColumnNames())
	require.Equal(t, []value.Type{value.Any, value.Int, value.Float64}, f.Types())
	require.Equal(t, 3, f.RowCount())

	v, _ := f.Cell(0, 0)
	require.Equal(t, "b", v, "first-occurrence order")
	c, _ := f.Cell(0, 1)
	require.Equal(t, 3, c)
	p, _ := f.Cell(0, 2)
	require.Equal(t, 50.0, p)

	v, _ = f.Cell(2, 0)
	require.Equal(t, NullMarker, v, "nulls are counted under the marker")
	c, _ = f.Cell(2, 1)
	require.Equal(t, 1, c)
	p, _ = f.Cell(2, 2)
	require.Equal(t, 16.67, p, "percent rounds to two decimals")
}

func TestFrequency_NumericWidths(t *testing.T) {
	f, err := Frequency([]any{1, int64(1), 1.0, 2})
	require.NoError(t, err)

	require.Equal(t, 2, f.RowCount(), "value-equal numbers of different widths count as one")
	c, _ := f.Cell(0, 1)
	require.Equal(t, 3, c)
}

func TestFrequencyOf(t *testing.T) {
	m, err := matrix.NewBuilder().
		ColumnMap(matrix.NamedColumns{}.Add("color", "red", "blue", "red")).
		Build()
	require.NoError(t, err)

	col, err := m.ColumnByName("color")
	require.NoError(t, err)

	f, err := FrequencyOf(col)
	require.NoError(t, err)
	require.Equal(t, 2, f.RowCount())
}

func TestSummary(t *testing.T) {
	m := airquality(t)

	summaries := Summary(m)
	require.Len(t, summaries, 4)

	ozone := summaries[0]
	require.Equal(t, "ozone", ozone.Column)
	require.Equal(t, value.Int, ozone.Type)
	keys := make([]string, len(ozone.Entries))
	for i, e := range ozone.Entries {
		keys[i] = e.Key
	}
	require.Equal(t, []string{"Min", "1st Qu.", "Median", "Mean", "3rd Qu.", "Max"}, keys)
	require.Equal(t, 27.0, entryValue(t, ozone, "Mean"))
	require.Equal(t, 12.0, entryValue(t, ozone, "Min"))
	require.Equal(t, 41.0, entryValue(t, ozone, "Max"))
}

func TestSummary_NonNumeric(t *testing.T) {
	m, err := matrix.NewBuilder().
		Types(value.String).
		ColumnMap(matrix.NamedColumns{}.Add("color", "red", "blue", "red")).
		Build()
	require.NoError(t, err)

	s := Summary(m)[0]
	require.Equal(t, "String", entryValue(t, s, "Type"))
	require.Equal(t, 2, entryValue(t, s, "Unique values"))

	rendered := s.String()
	require.Contains(t, rendered, "color (String)")
	require.Contains(t, rendered, "Unique values")
}

func entryValue(t *testing.T, s ColumnSummary, key string) any {
	t.Helper()
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value
		}
	}
	t.Fatalf("summary for %s has no entry %q", s.Column, key)

	return nil
}
