// Package sqlio bridges matrices and relational databases: CREATE TABLE
// DDL generation with scanned VARCHAR and DECIMAL sizing, batched INSERT
// and keyed UPDATE statement generation, and result adapters in both
// directions (*sql.Rows → Matrix, Matrix → matrix.TabularResult).
package sqlio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// defaultVarcharSize is used when no row scan sizes a string column.
const defaultVarcharSize = 8000

// clobThreshold is the VARCHAR length beyond which CLOB is used.
const clobThreshold = 8000

// CreateTableDDL generates a CREATE TABLE statement for the matrix,
// inferring one SQL type per column from its declared type. Up to scanRows
// rows are scanned to size VARCHAR lengths and DECIMAL precision/scale;
// pass 0 to scan every row. String columns longer than 8000 become CLOB.
func CreateTableDDL(m *matrix.Matrix, scanRows int) (string, error) {
	tableName := m.Name()
	if tableName == "" {
		tableName = "data"
	}
	if scanRows <= 0 || scanRows > m.RowCount() {
		scanRows = m.RowCount()
	}

	names := m.ColumnNames()
	types := m.Types()
	defs := make([]string, len(names))
	for i, name := range names {
		col, err := m.Column(i)
		if err != nil {
			return "", err
		}
		defs[i] = fmt.Sprintf("%s %s", name, sqlType(types[i], col, scanRows))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", tableName, strings.Join(defs, ",\n  ")), nil
}

func sqlType(t value.Type, col *matrix.Column, scanRows int) string {
	switch t {
	case value.Bool:
		return "BIT"
	case value.Int16:
		return "SMALLINT"
	case value.Int:
		return "INTEGER"
	case value.Int64, value.BigInt:
		return "BIGINT"
	case value.Float32:
		return "FLOAT"
	case value.Float64:
		return "DOUBLE"
	case value.Decimal:
		p, s := scanDecimal(col, scanRows)

		return fmt.Sprintf("DECIMAL(%d,%d)", p, s)
	case value.Time:
		return "TIMESTAMP"
	case value.String:
		size := scanVarchar(col, scanRows)
		if size > clobThreshold {
			return "CLOB"
		}

		return fmt.Sprintf("VARCHAR(%d)", size)
	default:
		return fmt.Sprintf("VARCHAR(%d)", defaultVarcharSize)
	}
}

// scanVarchar returns the longest string length among the scanned rows,
// falling back to the default size when nothing sizable is found.
func scanVarchar(col *matrix.Column, scanRows int) int {
	size := 0
	for r := 0; r < scanRows && r < col.Len(); r++ {
		if s, ok := col.Get(r).(string); ok && len(s) > size {
			size = len(s)
		}
	}
	if size == 0 {
		return defaultVarcharSize
	}

	return size
}

// scanDecimal returns the widest precision and scale among the scanned rows.
func scanDecimal(col *matrix.Column, scanRows int) (int32, int32) {
	var precision, scale int32 = 1, 0
	for r := 0; r < scanRows && r < col.Len(); r++ {
		d, ok := col.Get(r).(decimal.Decimal)
		if !ok {
			continue
		}
		s := -d.Exponent()
		if s < 0 {
			s = 0
		}
		digits := int32(len(strings.TrimPrefix(d.Coefficient().String(), "-")))
		if digits < s {
			digits = s
		}
		if digits > precision {
			precision = digits
		}
		if s > scale {
			scale = s
		}
	}

	return precision, scale
}
