package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/value"
)

func joinFixtures(t *testing.T) (*Matrix, *Matrix) {
	t.Helper()
	people, err := NewBuilder().
		Name("people").
		Types(value.Int, value.String).
		ColumnMap(NamedColumns{}.
			Add("id", 1, 2, 3, 4, 5).
			Add("firstName", "Lorena", "Marianne", "Lotte", "Chris", "Maria")).
		Build()
	require.NoError(t, err)

	employees, err := NewBuilder().
		Name("employees").
		Types(value.Int, value.String).
		ColumnMap(NamedColumns{}.
			Add("id", 2, 3, 4, 5, 6).
			Add("lastName", "Carpenter", "Hedlund", "Kirk", "Humphrey", "Doe")).
		Build()
	require.NoError(t, err)

	return people, employees
}

func TestMerge_Inner(t *testing.T) {
	people, employees := joinFixtures(t)

	m, err := Merge(people, employees, JoinSpec{On: "id"})
	require.NoError(t, err)

	require.Equal(t, []string{"id", "firstName", "lastName"}, m.ColumnNames())
	require.Equal(t, 4, m.RowCount(), "ids 2..5 match")

	v, err := m.CellNamed(0, "lastName")
	require.NoError(t, err)
	require.Equal(t, "Carpenter", v)

	v, err = m.CellNamed(3, "firstName")
	require.NoError(t, err)
	require.Equal(t, "Maria", v)
}

func TestMerge_LeftOuter(t *testing.T) {
	people, employees := joinFixtures(t)

	m, err := Merge(people, employees, JoinSpec{On: "id"}, true)
	require.NoError(t, err)
	require.Equal(t, 5, m.RowCount(), "every left row appears once")

	v, err := m.CellNamed(0, "lastName")
	require.NoError(t, err)
	require.Nil(t, v, "unmatched id 1 gets a null lastName")

	v, err = m.CellNamed(1, "lastName")
	require.NoError(t, err)
	require.Equal(t, "Carpenter", v)
}

func TestMerge_DistinctKeyNames(t *testing.T) {
	people, _ := joinFixtures(t)
	orders, err := NewBuilder().
		Types(value.Int, value.Float64).
		ColumnMap(NamedColumns{}.
			Add("personId", 3, 1, 3).
			Add("amount", 12.5, 9.0, 4.5)).
		Build()
	require.NoError(t, err)

	m, err := Merge(people, orders, JoinSpec{Left: "id", Right: "personId"})
	require.NoError(t, err)

	require.Equal(t, []string{"id", "firstName", "amount"}, m.ColumnNames(),
		"the right key column is dropped from the output")
	require.Equal(t, 3, m.RowCount(), "each match emits a row")
}

func TestMerge_NumericKeyWidths(t *testing.T) {
	left, err := NewBuilder().
		Types(value.Int64, value.String).
		ColumnMap(NamedColumns{}.
			Add("id", int64(1), int64(2)).
			Add("a", "x", "y")).
		Build()
	require.NoError(t, err)

	right, err := NewBuilder().
		Types(value.Float64, value.String).
		ColumnMap(NamedColumns{}.
			Add("id", 2.0, 3.0).
			Add("b", "p", "q")).
		Build()
	require.NoError(t, err)

	m, err := Merge(left, right, JoinSpec{On: "id"})
	require.NoError(t, err)
	require.Equal(t, 1, m.RowCount(), "int64 2 and float64 2.0 are the same key")

	v, _ := m.CellNamed(0, "b")
	require.Equal(t, "p", v)
}

func TestMerge_Errors(t *testing.T) {
	people, employees := joinFixtures(t)

	t.Run("both On and Left/Right", func(t *testing.T) {
		_, err := Merge(people, employees, JoinSpec{On: "id", Left: "id"})
		require.ErrorIs(t, err, errs.ErrJoinKey)
	})

	t.Run("no key at all", func(t *testing.T) {
		_, err := Merge(people, employees, JoinSpec{})
		require.ErrorIs(t, err, errs.ErrJoinKey)
	})

	t.Run("unknown key column", func(t *testing.T) {
		_, err := Merge(people, employees, JoinSpec{On: "missing"})
		require.ErrorIs(t, err, errs.ErrJoinKey)
	})

	t.Run("ambiguous non-key column", func(t *testing.T) {
		dup, err := NewBuilder().
			ColumnMap(NamedColumns{}.
				Add("id", 1).
				Add("firstName", "Other")).
			Build()
		require.NoError(t, err)

		_, err = Merge(people, dup, JoinSpec{On: "id"})
		require.ErrorIs(t, err, errs.ErrJoinKey)
	})
}

func TestMerge_InputsUntouched(t *testing.T) {
	people, employees := joinFixtures(t)
	peopleBefore := people.Clone()
	employeesBefore := employees.Clone()

	m, err := Merge(people, employees, JoinSpec{On: "id"}, true)
	require.NoError(t, err)

	require.True(t, people.Equals(peopleBefore))
	require.True(t, employees.Equals(employeesBefore))

	require.NoError(t, m.SetCell(0, 1, "Changed"))
	require.True(t, people.Equals(peopleBefore), "result storage is independent of the inputs")
}
