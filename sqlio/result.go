package sqlio

import (
	"database/sql"
	"reflect"
	"strings"
	"time"

	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// matrixResult exposes a Matrix as a matrix.TabularResult, so a matrix can
// stand in wherever a query result is expected.
type matrixResult struct {
	m   *matrix.Matrix
	pos int
}

// Result exposes the matrix as a generic tabular result.
func Result(m *matrix.Matrix) matrix.TabularResult {
	return &matrixResult{m: m, pos: -1}
}

func (r *matrixResult) ColumnNames() []string {
	return r.m.ColumnNames()
}

func (r *matrixResult) ColumnTypes() []value.Type {
	return r.m.Types()
}

func (r *matrixResult) Next() bool {
	r.pos++
	return r.pos < r.m.RowCount()
}

func (r *matrixResult) Scan() ([]any, error) {
	return r.m.RowValues(r.pos)
}

func (r *matrixResult) Err() error {
	return nil
}

// FromRows builds a Matrix from a relational query result, taking column
// names and declared types from the result metadata. The rows are fully
// materialized; Close is left to the caller.
func FromRows(rows *sql.Rows, name string) (*matrix.Matrix, error) {
	adapter, err := newRowsResult(rows)
	if err != nil {
		return nil, err
	}

	return matrix.NewBuilder().Name(name).Result(adapter).Build()
}

// rowsResult adapts *sql.Rows to matrix.TabularResult.
type rowsResult struct {
	rows  *sql.Rows
	names []string
	types []value.Type
	err   error
}

func newRowsResult(rows *sql.Rows) (*rowsResult, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	types := make([]value.Type, len(colTypes))
	for i, ct := range colTypes {
		types[i] = columnType(ct)
	}

	return &rowsResult{rows: rows, names: names, types: types}, nil
}

func (r *rowsResult) ColumnNames() []string { return r.names }

func (r *rowsResult) ColumnTypes() []value.Type { return r.types }

func (r *rowsResult) Next() bool { return r.rows.Next() }
func (r *rowsResult) Err() error {
	if r.err != nil {
		return r.err
	}

	return r.rows.Err()
}

func (r *rowsResult) Scan() ([]any, error) {
	ptrs := make([]any, len(r.names))
	vals := make([]any, len(r.names))
	for i := range ptrs {
		ptrs[i] = &vals[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		r.err = err
		return nil, err
	}
	for i, v := range vals {
		// Drivers hand back []byte for text; keep cells as strings.
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}

	return vals, nil
}

// columnType maps driver metadata onto a declared type, preferring the
// scan type and falling back on the database type name.
func columnType(ct *sql.ColumnType) value.Type {
	if st := ct.ScanType(); st != nil {
		switch st.Kind() {
		case reflect.Bool:
			return value.Bool
		case reflect.Int8, reflect.Int16:
			return value.Int16
		case reflect.Int32:
			return value.Int
		case reflect.Int, reflect.Int64:
			return value.Int64
		case reflect.Float32:
			return value.Float32
		case reflect.Float64:
			return value.Float64
		case reflect.String:
			return value.String
		default:
			if st == reflect.TypeOf(time.Time{}) {
				return value.Time
			}
		}
	}

	switch strings.ToUpper(ct.DatabaseTypeName()) {
	case "BIT", "BOOL", "BOOLEAN":
		return value.Bool
	case "TINYINT", "SMALLINT":
		return value.Int16
	case "INT", "INTEGER", "MEDIUMINT":
		return value.Int
	case "BIGINT":
		return value.Int64
	case "FLOAT", "REAL":
		return value.Float32
	case "DOUBLE":
		return value.Float64
	case "DECIMAL", "NUMERIC":
		return value.Decimal
	case "DATE", "TIME", "DATETIME", "TIMESTAMP":
		return value.Time
	case "CHAR", "VARCHAR", "TEXT", "CLOB", "NVARCHAR":
		return value.String
	default:
		return value.Any
	}
}
