package matrix

import (
	"fmt"
	"strings"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/grid"
	"github.com/arloliu/tabular/value"
)

// Matrix is a column-oriented table: an optional name, ordered column
// names, ordered declared types and ordered columns of equal length.
// Rows are synthesized views, not stored.
//
// Structural mutators change the receiver in place and return it for
// chaining. Operations documented as producing a new Matrix (Clone, Subset,
// Pivot, UnPivot, Transpose, Merge, Grid) never alias the receiver's
// column storage.
type Matrix struct {
	name     string
	colNames []string
	types    []value.Type
	columns  []*Column
}

// newMatrix validates the structural invariant and wraps the parts.
func newMatrix(name string, colNames []string, types []value.Type, columns []*Column) (*Matrix, error) {
	if len(colNames) != len(columns) || len(colNames) != len(types) {
		return nil, fmt.Errorf("%w: %d names, %d types, %d columns",
			errs.ErrDimensionMismatch, len(colNames), len(types), len(columns))
	}
	for i, col := range columns {
		if col.Len() != columns[0].Len() {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				errs.ErrDimensionMismatch, colNames[i], col.Len(), columns[0].Len())
		}
	}

	return &Matrix{name: name, colNames: colNames, types: types, columns: columns}, nil
}

// Name returns the matrix name, which may be empty.
func (m *Matrix) Name() string {
	return m.name
}

// SetName renames the matrix and returns it.
func (m *Matrix) SetName(name string) *Matrix {
	m.name = name
	return m
}

// ColumnCount returns the number of columns.
func (m *Matrix) ColumnCount() int {
	return len(m.columns)
}

// RowCount returns the number of rows.
func (m *Matrix) RowCount() int {
	if len(m.columns) == 0 {
		return 0
	}

	return m.columns[0].Len()
}

// Dimensions returns (observations, variables): row count and column count.
func (m *Matrix) Dimensions() (int, int) {
	return m.RowCount(), m.ColumnCount()
}

// ColumnNames returns a copy of the ordered column names.
func (m *Matrix) ColumnNames() []string {
	out := make([]string, len(m.colNames))
	copy(out, m.colNames)

	return out
}

// Types returns a copy of the ordered declared column types.
func (m *Matrix) Types() []value.Type {
	out := make([]value.Type, len(m.types))
	copy(out, m.types)

	return out
}

// ColumnIndex returns the position of the named column.
func (m *Matrix) ColumnIndex(name string) (int, error) {
	for i, n := range m.colNames {
		if n == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
}

// Column returns the column at position i as a live alias: appending to or
// mutating the returned column is visible in the matrix.
func (m *Matrix) Column(i int) (*Column, error) {
	if i < 0 || i >= len(m.columns) {
		return nil, fmt.Errorf("%w: position %d of %d", errs.ErrColumnNotFound, i, len(m.columns))
	}

	return m.columns[i], nil
}

// ColumnByName returns the named column as a live alias.
func (m *Matrix) ColumnByName(name string) (*Column, error) {
	i, err := m.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	return m.columns[i], nil
}

// Cell returns the raw value at row r, column c.
func (m *Matrix) Cell(r, c int) (any, error) {
	if err := m.checkCell(r, c); err != nil {
		return nil, err
	}

	return m.columns[c].Get(r), nil
}

// CellAs returns the value at row r, column c coerced to the target type.
// The column's declared type is unchanged.
func (m *Matrix) CellAs(r, c int, target value.Type, opts ...value.ConvertOption) (any, error) {
	v, err := m.Cell(r, c)
	if err != nil {
		return nil, err
	}

	return value.Convert(v, target, opts...)
}

// CellNamed returns the raw value at row r in the named column.
func (m *Matrix) CellNamed(r int, name string) (any, error) {
	c, err := m.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	return m.Cell(r, c)
}

// SetCell replaces one value. Null is permitted; the declared column type
// is unchanged.
func (m *Matrix) SetCell(r, c int, v any) error {
	if err := m.checkCell(r, c); err != nil {
		return err
	}
	m.columns[c].Set(r, v)

	return nil
}

// SetColumn replaces the contents of the column at position c in place.
// When the replacement is longer than the matrix, every other column grows
// with null padding to keep the row counts aligned; a shorter replacement
// is null-padded itself.
func (m *Matrix) SetColumn(c int, values []any) error {
	if c < 0 || c >= len(m.columns) {
		return fmt.Errorf("%w: position %d of %d", errs.ErrColumnNotFound, c, len(m.columns))
	}
	vals := make([]any, len(values))
	copy(vals, values)
	m.columns[c].values = vals
	m.padColumns()

	return nil
}

// SetColumnByName is SetColumn addressed by name.
func (m *Matrix) SetColumnByName(name string, values []any) error {
	i, err := m.ColumnIndex(name)
	if err != nil {
		return err
	}

	return m.SetColumn(i, values)
}

// Row returns a live view of row r. Writes through the view land in the
// matrix; use Detach on the result for an independent copy.
func (m *Matrix) Row(r int) (*Row, error) {
	if r < 0 || r >= m.RowCount() {
		return nil, fmt.Errorf("%w: %d of %d", errs.ErrRowIndex, r, m.RowCount())
	}

	return &Row{owner: m, index: r}, nil
}

// RowValues returns row r's cells as an independent slice.
func (m *Matrix) RowValues(r int) ([]any, error) {
	row, err := m.Row(r)
	if err != nil {
		return nil, err
	}

	return row.Values(), nil
}

// RowSlice returns rows [from, to) as a new, independent Matrix.
func (m *Matrix) RowSlice(from, to int) (*Matrix, error) {
	if from < 0 || to > m.RowCount() || from > to {
		return nil, fmt.Errorf("%w: slice [%d, %d) of %d rows", errs.ErrRowIndex, from, to, m.RowCount())
	}
	cols := make([]*Column, len(m.columns))
	for i, col := range m.columns {
		sub, err := col.SubList(from, to)
		if err != nil {
			return nil, err
		}
		cols[i] = sub
	}

	return newMatrix(m.name, m.ColumnNames(), m.Types(), cols)
}

// ColumnSlice returns columns [from, to) as a new, independent Matrix.
func (m *Matrix) ColumnSlice(from, to int) (*Matrix, error) {
	if from < 0 || to > len(m.columns) || from > to {
		return nil, fmt.Errorf("%w: slice [%d, %d) of %d columns",
			errs.ErrColumnNotFound, from, to, len(m.columns))
	}
	names := make([]string, to-from)
	types := make([]value.Type, to-from)
	cols := make([]*Column, to-from)
	for i := from; i < to; i++ {
		names[i-from] = m.colNames[i]
		types[i-from] = m.types[i]
		cols[i-from] = m.columns[i].Clone()
	}

	return newMatrix(m.name, names, types, cols)
}

// AddColumn appends a new column, or inserts it when a position is given.
// The values must match the row count unless the matrix is empty.
func (m *Matrix) AddColumn(name string, typ value.Type, values []any, at ...int) error {
	if len(m.columns) > 0 && len(values) != m.RowCount() {
		return fmt.Errorf("%w: column %q has %d values, matrix has %d rows",
			errs.ErrDimensionMismatch, name, len(values), m.RowCount())
	}
	pos := len(m.columns)
	if len(at) > 0 {
		pos = at[0]
		if pos < 0 || pos > len(m.columns) {
			return fmt.Errorf("%w: insert position %d of %d", errs.ErrColumnNotFound, pos, len(m.columns))
		}
	}
	vals := make([]any, len(values))
	copy(vals, values)

	m.colNames = append(m.colNames[:pos], append([]string{name}, m.colNames[pos:]...)...)
	m.types = append(m.types[:pos], append([]value.Type{typ}, m.types[pos:]...)...)
	m.columns = append(m.columns[:pos], append([]*Column{NewColumn(typ, vals...)}, m.columns[pos:]...)...)

	return nil
}

// AddColumns appends every column of the other matrix. The other matrix's
// column names must not collide with existing ones.
func (m *Matrix) AddColumns(other *Matrix) error {
	for i, name := range other.colNames {
		if _, err := m.ColumnIndex(name); err == nil {
			return fmt.Errorf("%w: column %q already exists", errs.ErrDimensionMismatch, name)
		}
		if err := m.AddColumn(name, other.types[i], other.columns[i].Values()); err != nil {
			return err
		}
	}

	return nil
}

// DropColumns removes the named columns and returns the receiver.
func (m *Matrix) DropColumns(names ...string) (*Matrix, error) {
	for _, name := range names {
		i, err := m.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		m.colNames = append(m.colNames[:i], m.colNames[i+1:]...)
		m.types = append(m.types[:i], m.types[i+1:]...)
		m.columns = append(m.columns[:i], m.columns[i+1:]...)
	}

	return m, nil
}

// DropColumnsExcept removes every column not named and returns the receiver.
func (m *Matrix) DropColumnsExcept(names ...string) (*Matrix, error) {
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := m.ColumnIndex(name); err != nil {
			return nil, err
		}
		keep[name] = true
	}
	drop := make([]string, 0, len(m.colNames))
	for _, name := range m.colNames {
		if !keep[name] {
			drop = append(drop, name)
		}
	}

	return m.DropColumns(drop...)
}

// MoveColumn moves the named column to position to and returns the receiver.
func (m *Matrix) MoveColumn(name string, to int) (*Matrix, error) {
	from, err := m.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	if to < 0 || to >= len(m.columns) {
		return nil, fmt.Errorf("%w: target position %d of %d", errs.ErrColumnNotFound, to, len(m.columns))
	}

	colName, typ, col := m.colNames[from], m.types[from], m.columns[from]
	m.colNames = append(m.colNames[:from], m.colNames[from+1:]...)
	m.types = append(m.types[:from], m.types[from+1:]...)
	m.columns = append(m.columns[:from], m.columns[from+1:]...)

	m.colNames = append(m.colNames[:to], append([]string{colName}, m.colNames[to:]...)...)
	m.types = append(m.types[:to], append([]value.Type{typ}, m.types[to:]...)...)
	m.columns = append(m.columns[:to], append([]*Column{col}, m.columns[to:]...)...)

	return m, nil
}

// RenameColumn renames a column and returns the receiver.
func (m *Matrix) RenameColumn(from, to string) (*Matrix, error) {
	i, err := m.ColumnIndex(from)
	if err != nil {
		return nil, err
	}
	m.colNames[i] = to

	return m, nil
}

// AddRow appends a row and returns the receiver. The row length must match
// the column count.
func (m *Matrix) AddRow(values []any) (*Matrix, error) {
	return m.InsertRow(m.RowCount(), values)
}

// InsertRow inserts a row at the given index and returns the receiver.
func (m *Matrix) InsertRow(at int, values []any) (*Matrix, error) {
	if len(values) != len(m.columns) {
		return nil, fmt.Errorf("%w: row has %d values, matrix has %d columns",
			errs.ErrDimensionMismatch, len(values), len(m.columns))
	}
	if at < 0 || at > m.RowCount() {
		return nil, fmt.Errorf("%w: insert position %d of %d", errs.ErrRowIndex, at, m.RowCount())
	}
	for i, col := range m.columns {
		col.values = append(col.values[:at], append([]any{values[i]}, col.values[at:]...)...)
	}

	return m, nil
}

// RemoveRows removes the given row indices and returns the receiver.
// Indices may be given in any order.
func (m *Matrix) RemoveRows(indices ...int) (*Matrix, error) {
	drop := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= m.RowCount() {
			return nil, fmt.Errorf("%w: %d of %d", errs.ErrRowIndex, idx, m.RowCount())
		}
		drop[idx] = true
	}
	for _, col := range m.columns {
		kept := col.values[:0]
		for i, v := range col.values {
			if !drop[i] {
				kept = append(kept, v)
			}
		}
		col.values = kept
	}

	return m, nil
}

// MoveRow moves a row from one index to another and returns the receiver.
func (m *Matrix) MoveRow(from, to int) (*Matrix, error) {
	n := m.RowCount()
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: move %d to %d of %d", errs.ErrRowIndex, from, to, n)
	}
	for _, col := range m.columns {
		v := col.values[from]
		col.values = append(col.values[:from], col.values[from+1:]...)
		col.values = append(col.values[:to], append([]any{v}, col.values[to:]...)...)
	}

	return m, nil
}

// RemoveEmptyRows removes every row whose cells are all empty (null, or
// blank strings after trimming) and returns the receiver.
func (m *Matrix) RemoveEmptyRows() *Matrix {
	empty := make([]int, 0)
	for r := 0; r < m.RowCount(); r++ {
		allEmpty := true
		for _, col := range m.columns {
			if !value.IsEmpty(col.Get(r)) {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			empty = append(empty, r)
		}
	}
	if len(empty) > 0 {
		_, _ = m.RemoveRows(empty...)
	}

	return m
}

// RemoveEmptyColumns removes every column whose cells are all empty and
// returns the receiver.
func (m *Matrix) RemoveEmptyColumns() *Matrix {
	drop := make([]string, 0)
	for i, col := range m.columns {
		allEmpty := true
		for _, v := range col.values {
			if !value.IsEmpty(v) {
				allEmpty = false
				break
			}
		}
		if allEmpty && col.Len() > 0 {
			drop = append(drop, m.colNames[i])
		}
	}
	if len(drop) > 0 {
		_, _ = m.DropColumns(drop...)
	}

	return m
}

// Clone returns an independent Matrix with independently owned column
// storage.
func (m *Matrix) Clone() *Matrix {
	cols := make([]*Column, len(m.columns))
	for i, col := range m.columns {
		cols[i] = col.Clone()
	}
	out, _ := newMatrix(m.name, m.ColumnNames(), m.Types(), cols)

	return out
}

// Grid snapshots the matrix as an independent untyped Grid.
func (m *Matrix) Grid() *grid.Grid {
	rows := make([][]any, m.RowCount())
	for r := range rows {
		row := make([]any, len(m.columns))
		for c, col := range m.columns {
			row[c] = col.Get(r)
		}
		rows[r] = row
	}

	return grid.FromRows(rows)
}

// GridAs snapshots the matrix as a Grid with every cell converted to the
// target type. Without forceConvert, cells that fail to convert are carried
// over unchanged, so mixed-typed cells may result; with forceConvert a
// failed cell conversion aborts with an error.
func (m *Matrix) GridAs(target value.Type, forceConvert bool, opts ...value.ConvertOption) (*grid.Grid, error) {
	g := m.Grid()
	for r, row := range g.Rows() {
		for c, v := range row {
			converted, err := value.Convert(v, target, opts...)
			if err != nil {
				if forceConvert {
					return nil, fmt.Errorf("row %d, column %d: %w", r, c, err)
				}
				continue
			}
			row[c] = converted
		}
	}

	return g, nil
}

// String renders the matrix as an aligned text table.
func (m *Matrix) String() string {
	var b strings.Builder
	if m.name != "" {
		b.WriteString(m.name)
		b.WriteString(": ")
	}
	rows, cols := m.Dimensions()
	fmt.Fprintf(&b, "%d obs. of %d variables\n", rows, cols)

	widths := make([]int, cols)
	cells := make([][]string, rows+1)
	cells[0] = m.ColumnNames()
	for c, name := range cells[0] {
		widths[c] = len(name)
	}
	for r := 0; r < rows; r++ {
		line := make([]string, cols)
		for c, col := range m.columns {
			line[c] = cellText(col.Get(r))
			if len(line[c]) > widths[c] {
				widths[c] = len(line[c])
			}
		}
		cells[r+1] = line
	}
	for _, line := range cells {
		for c, s := range line {
			if c > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[c], s)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func cellText(v any) string {
	if value.IsNull(v) {
		return "null"
	}

	return fmt.Sprintf("%v", v)
}

func (m *Matrix) checkCell(r, c int) error {
	if c < 0 || c >= len(m.columns) {
		return fmt.Errorf("%w: position %d of %d", errs.ErrColumnNotFound, c, len(m.columns))
	}
	if r < 0 || r >= m.RowCount() {
		return fmt.Errorf("%w: %d of %d", errs.ErrRowIndex, r, m.RowCount())
	}

	return nil
}

// padColumns grows every column to the longest column's length with null
// padding, keeping the equal-length invariant after in-place growth.
func (m *Matrix) padColumns() {
	maxLen := 0
	for _, col := range m.columns {
		if col.Len() > maxLen {
			maxLen = col.Len()
		}
	}
	for _, col := range m.columns {
		for col.Len() < maxLen {
			col.Append(nil)
		}
	}
}
