package sqlio

import (
	"fmt"
	"strings"
	"time"

	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// InsertStatements generates multi-row INSERT statements for the matrix,
// batchSize rows per statement. Pass 0 for a single statement covering
// every row.
func InsertStatements(m *matrix.Matrix, batchSize int) ([]string, error) {
	tableName := m.Name()
	if tableName == "" {
		tableName = "data"
	}
	if batchSize <= 0 {
		batchSize = m.RowCount()
	}

	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES",
		tableName, strings.Join(m.ColumnNames(), ", "))

	var stmts []string
	var tuples []string
	flush := func() {
		if len(tuples) == 0 {
			return
		}
		stmts = append(stmts, fmt.Sprintf("%s\n  %s", prefix, strings.Join(tuples, ",\n  ")))
		tuples = nil
	}

	for r := 0; r < m.RowCount(); r++ {
		row, err := m.RowValues(r)
		if err != nil {
			return nil, err
		}
		lits := make([]string, len(row))
		for i, v := range row {
			lits[i] = Literal(v)
		}
		tuples = append(tuples, "("+strings.Join(lits, ", ")+")")
		if len(tuples) == batchSize {
			flush()
		}
	}
	flush()

	return stmts, nil
}

// UpdateStatements generates one UPDATE statement per row, keyed on the
// given columns: the non-key columns land in SET, the key columns in WHERE.
func UpdateStatements(m *matrix.Matrix, keyColumns ...string) ([]string, error) {
	tableName := m.Name()
	if tableName == "" {
		tableName = "data"
	}

	keyIdx := make(map[int]bool, len(keyColumns))
	for _, name := range keyColumns {
		i, err := m.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		keyIdx[i] = true
	}

	names := m.ColumnNames()
	stmts := make([]string, 0, m.RowCount())
	for r := 0; r < m.RowCount(); r++ {
		row, err := m.RowValues(r)
		if err != nil {
			return nil, err
		}
		var sets, wheres []string
		for i, v := range row {
			clause := fmt.Sprintf("%s = %s", names[i], Literal(v))
			if keyIdx[i] {
				wheres = append(wheres, clause)
			} else {
				sets = append(sets, clause)
			}
		}
		stmts = append(stmts, fmt.Sprintf("UPDATE %s SET %s WHERE %s",
			tableName, strings.Join(sets, ", "), strings.Join(wheres, " AND ")))
	}

	return stmts, nil
}

// Literal renders a cell as a SQL literal: NULL for null, quoted and
// escaped text for strings, TIMESTAMP syntax for times, 1/0 for booleans
// and the plain textual form for numbers.
func Literal(v any) string {
	if value.IsNull(v) {
		return "NULL"
	}
	switch t := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(t, "'", "''") + "'"
	case time.Time:
		return fmt.Sprintf("TIMESTAMP '%s'", t.Format("2006-01-02 15:04:05"))
	case bool:
		if t {
			return "1"
		}

		return "0"
	default:
		return fmt.Sprintf("%v", t)
	}
}
