package sqlio

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

func accounts(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewBuilder().
		Name("accounts").
		Types(value.Int, value.String, value.Decimal, value.Bool, value.Time).
		ColumnMap(matrix.NamedColumns{}.
			Add("id", 1, 2, 3).
			Add("owner", "Rick", "Dan O'Neill", "Michelle").
			Add("balance",
				decimal.RequireFromString("1234.56"),
				decimal.RequireFromString("-7.5"),
				decimal.RequireFromString("100")).
			Add("active", true, false, true).
			Add("opened",
				time.Date(2020, 1, 15, 10, 30, 0, 0, time.UTC),
				time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 12, 31, 23, 59, 59, 0, time.UTC))).
		Build()
	require.NoError(t, err)

	return m
}

func TestCreateTableDDL(t *testing.T) {
	m := accounts(t)

	ddl, err := CreateTableDDL(m, 0)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(ddl, "CREATE TABLE accounts ("))
	require.Contains(t, ddl, "id INTEGER")
	require.Contains(t, ddl, "owner VARCHAR(11)", "sized to the longest scanned value")
	require.Contains(t, ddl, "balance DECIMAL(6,2)")
	require.Contains(t, ddl, "active BIT")
	require.Contains(t, ddl, "opened TIMESTAMP")
}

func TestCreateTableDDL_TypeMapping(t *testing.T) {
	m, err := matrix.NewBuilder().
		Name("widths").
		Types(value.Int16, value.Int64, value.BigInt, value.Float32, value.Float64, value.Any).
		ColumnMap(matrix.NamedColumns{}.
			Add("a", int16(1)).
			Add("b", int64(1)).
			Add("c", nil).
			Add("d", float32(1)).
			Add("e", 1.0).
			Add("f", "x")).
		Build()
	require.NoError(t, err)

	ddl, err := CreateTableDDL(m, 0)
	require.NoError(t, err)

	require.Contains(t, ddl, "a SMALLINT")
	require.Contains(t, ddl, "b BIGINT")
	require.Contains(t, ddl, "c BIGINT")
	require.Contains(t, ddl, "d FLOAT")
	require.Contains(t, ddl, "e DOUBLE")
	require.Contains(t, ddl, "f VARCHAR(8000)", "untyped columns fall back to the default size")
}

func TestCreateTableDDL_Clob(t *testing.T) {
	m, err := matrix.NewBuilder().
		Name("docs").
		Types(value.String).
		ColumnMap(matrix.NamedColumns{}.Add("body", strings.Repeat("x", 9000))).
		Build()
	require.NoError(t, err)

	ddl, err := CreateTableDDL(m, 0)
	require.NoError(t, err)
	require.Contains(t, ddl, "body CLOB")
}

func TestInsertStatements(t *testing.T) {
	m := accounts(t)

	t.Run("single statement", func(t *testing.T) {
		stmts, err := InsertStatements(m, 0)
		require.NoError(t, err)
		require.Len(t, stmts, 1)

		s := stmts[0]
		require.True(t, strings.HasPrefix(s, "INSERT INTO accounts (id, owner, balance, active, opened) VALUES"))
		require.Contains(t, s, "(1, 'Rick', 1234.56, 1, TIMESTAMP '2020-01-15 10:30:00')")
		require.Contains(t, s, "'Dan O''Neill'", "single quotes double up")
	})

	t.Run("batched", func(t *testing.T) {
		stmts, err := InsertStatements(m, 2)
		require.NoError(t, err)
		require.Len(t, stmts, 2, "three rows in batches of two")
		require.Equal(t, 2, strings.Count(stmts[0], "\n  ("))
		require.Equal(t, 1, strings.Count(stmts[1], "\n  ("))
	})
}

func TestUpdateStatements(t *testing.T) {
	m := accounts(t)

	stmts, err := UpdateStatements(m, "id")
	require.NoError(t, err)
	require.Len(t, stmts, 3)

	require.Contains(t, stmts[0], "UPDATE accounts SET owner = 'Rick'")
	require.Contains(t, stmts[0], "WHERE id = 1")
	require.NotContains(t, strings.SplitN(stmts[0], "WHERE", 2)[0], "id =",
		"key columns stay out of SET")

	_, err = UpdateStatements(m, "missing")
	require.ErrorIs(t, err, errs.ErrColumnNotFound)
}

func TestLiteral(t *testing.T) {
	require.Equal(t, "NULL", Literal(nil))
	require.Equal(t, "'it''s'", Literal("it's"))
	require.Equal(t, "1", Literal(true))
	require.Equal(t, "0", Literal(false))
	require.Equal(t, "3.14", Literal(3.14))
	require.Equal(t, "TIMESTAMP '2020-01-15 10:30:00'",
		Literal(time.Date(2020, 1, 15, 10, 30, 0, 0, time.UTC)))
}

func TestResultAdapter(t *testing.T) {
	src := accounts(t)

	back, err := matrix.NewBuilder().Name("copy").Result(Result(src)).Build()
	require.NoError(t, err)

	require.Equal(t, src.ColumnNames(), back.ColumnNames())
	require.Equal(t, src.Types(), back.Types())
	require.True(t, src.Equals(back, matrix.IgnoreTypes()))

	require.NoError(t, back.SetCell(0, 1, "Other"))
	v, _ := src.Cell(0, 1)
	require.Equal(t, "Rick", v, "the rebuilt matrix owns independent storage")
}
