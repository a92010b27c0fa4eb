package matrix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/value"
)

func TestOrderBy(t *testing.T) {
	t.Run("single key ascending", func(t *testing.T) {
		m := empData(t)
		_, err := m.OrderBy(Asc("salary"))
		require.NoError(t, err)

		v, _ := m.CellNamed(0, "emp_name")
		require.Equal(t, "Dan", v)
		v, _ = m.CellNamed(4, "emp_name")
		require.Equal(t, "Gary", v)
	})

	t.Run("descending", func(t *testing.T) {
		m := empData(t)
		_, err := m.OrderBy(Desc("salary"))
		require.NoError(t, err)

		v, _ := m.CellNamed(0, "emp_name")
		require.Equal(t, "Gary", v)
	})

	t.Run("multi key with tie break", func(t *testing.T) {
		m, err := NewBuilder().
			Types(value.String, value.Time, value.Float64).
			ColumnMap(NamedColumns{}.
				Add("name", "a", "b", "c", "d").
				Add("start_date", date("2014-01-01"), date("2012-01-01"),
					date("2014-01-01"), date("2012-01-01")).
				Add("salary", 500.0, 700.0, 400.0, 600.0)).
			Build()
		require.NoError(t, err)

		_, err = m.OrderBy(Asc("start_date"), Desc("salary"))
		require.NoError(t, err)

		var order []any
		for r := 0; r < m.RowCount(); r++ {
			v, _ := m.CellNamed(r, "name")
			order = append(order, v)
		}
		require.Equal(t, []any{"b", "d", "a", "c"}, order)
	})

	t.Run("rows travel together", func(t *testing.T) {
		m := empData(t)
		_, err := m.OrderBy(Asc("emp_name"))
		require.NoError(t, err)

		v, _ := m.CellNamed(0, "emp_name")
		require.Equal(t, "Dan", v)
		id, _ := m.CellNamed(0, "emp_id")
		require.Equal(t, 2, id, "the whole row moves with its sort key")
	})

	t.Run("nulls sort first", func(t *testing.T) {
		m, err := NewBuilder().
			ColumnMap(NamedColumns{}.Add("v", 3, nil, 1)).
			Build()
		require.NoError(t, err)

		_, err = m.OrderBy(Asc("v"))
		require.NoError(t, err)

		first, _ := m.Cell(0, 0)
		require.Nil(t, first)
		second, _ := m.Cell(1, 0)
		require.Equal(t, 1, second)
	})

	t.Run("mixed numeric widths", func(t *testing.T) {
		m, err := NewBuilder().
			ColumnMap(NamedColumns{}.Add("v", 2.5, int64(1), int16(2))).
			Build()
		require.NoError(t, err)

		_, err = m.OrderBy(Asc("v"))
		require.NoError(t, err)

		v, _ := m.Cell(0, 0)
		require.Equal(t, int64(1), v)
		v, _ = m.Cell(2, 0)
		require.Equal(t, 2.5, v)
	})

	t.Run("unknown column", func(t *testing.T) {
		m := empData(t)
		_, err := m.OrderBy(Asc("missing"))
		require.ErrorIs(t, err, errs.ErrColumnNotFound)
	})
}

func TestOrderBy_TimeColumn(t *testing.T) {
	m := empData(t)
	_, err := m.OrderBy(Desc("start_date"))
	require.NoError(t, err)

	v, _ := m.CellNamed(0, "start_date")
	require.Equal(t, date("2015-03-27"), v.(time.Time))
	v, _ = m.CellNamed(4, "start_date")
	require.Equal(t, date("2012-01-01"), v.(time.Time))
}
