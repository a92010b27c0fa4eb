// Package grid provides an untyped rectangular 2-D container: rows of cells
// with no column names and no declared types. It is the lower-level sibling
// of the matrix package, used for snapshots and raw tabular interchange.
package grid

import (
	"fmt"
	"reflect"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/value"
)

// Grid is an ordered sequence of equal-length rows of untyped cells.
// The zero value is an empty grid.
type Grid struct {
	rows [][]any
}

// New creates a Grid from the given rows. The rows are validated for
// rectangularity and copied, so later changes to the input do not show
// through.
func New(rows [][]any) (*Grid, error) {
	if err := Validate(rows); err != nil {
		return nil, err
	}

	return &Grid{rows: copyRows(rows)}, nil
}

// FromRows wraps rows without validation or copying. Callers own the
// rectangularity invariant.
func FromRows(rows [][]any) *Grid {
	return &Grid{rows: rows}
}

// At returns the cell at row r, column c.
func (g *Grid) At(r, c int) any {
	return g.rows[r][c]
}

// Set replaces the cell at row r, column c.
func (g *Grid) Set(r, c int, v any) {
	g.rows[r][c] = v
}

// SetRow replaces row r. The replacement must match the grid's width.
func (g *Grid) SetRow(r int, row []any) error {
	if len(g.rows) > 0 && len(row) != len(g.rows[0]) {
		return fmt.Errorf("%w: row has %d cells, grid has %d columns",
			errs.ErrDimensionMismatch, len(row), len(g.rows[0]))
	}
	g.rows[r] = row

	return nil
}

// Row returns row r as a live slice.
func (g *Grid) Row(r int) []any {
	return g.rows[r]
}

// Rows returns the underlying rows as a live slice.
func (g *Grid) Rows() [][]any {
	return g.rows
}

// Column returns column c as an independent slice, one cell per row.
func (g *Grid) Column(c int) ([]any, error) {
	if c < 0 || c >= g.Variables() {
		return nil, fmt.Errorf("%w: column %d of %d", errs.ErrColumnNotFound, c, g.Variables())
	}
	out := make([]any, len(g.rows))
	for r, row := range g.rows {
		out[r] = row[c]
	}

	return out, nil
}

// Observations returns the number of rows.
func (g *Grid) Observations() int {
	return len(g.rows)
}

// Variables returns the number of columns.
func (g *Grid) Variables() int {
	if len(g.rows) == 0 {
		return 0
	}

	return len(g.rows[0])
}

// Dimensions returns (observations, variables): row count and column count.
func (g *Grid) Dimensions() (int, int) {
	return g.Observations(), g.Variables()
}

// Clone returns an independent deep copy of the grid's row structure.
// Cell values themselves are shared, matching cell semantics everywhere
// else in the module.
func (g *Grid) Clone() *Grid {
	return &Grid{rows: copyRows(g.rows)}
}

// Validate reports whether input is a valid grid shape: a non-empty 2-D
// collection of equal-length, non-empty rows. It accepts [][]any, a *Grid,
// or any slice/array of slices/arrays via reflection. A single row is
// valid; ragged, empty, nil or non-2-D input is not.
func Validate(input any) error {
	if input == nil {
		return fmt.Errorf("%w: nil input", errs.ErrNotGrid)
	}
	if g, ok := input.(*Grid); ok {
		if g == nil {
			return fmt.Errorf("%w: nil grid", errs.ErrNotGrid)
		}

		return Validate(g.rows)
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("%w: %T", errs.ErrNotGrid, input)
	}
	if rv.Len() == 0 {
		return errs.ErrEmptyGrid
	}

	width := -1
	for i := 0; i < rv.Len(); i++ {
		row := rv.Index(i)
		for row.Kind() == reflect.Interface {
			row = row.Elem()
		}
		if !row.IsValid() || (row.Kind() != reflect.Slice && row.Kind() != reflect.Array) {
			return fmt.Errorf("%w: row %d is not a sequence", errs.ErrNotGrid, i)
		}
		if row.Len() == 0 {
			return errs.ErrEmptyGrid
		}
		if width == -1 {
			width = row.Len()
		} else if row.Len() != width {
			return fmt.Errorf("%w: row %d has %d cells, expected %d",
				errs.ErrRaggedGrid, i, row.Len(), width)
		}
	}

	return nil
}

// Convert returns a new Grid with the selected columns coerced to the
// target type; the input grid is never mutated. Columns are selected by
// position. Conversion options are forwarded to value.Convert, so
// per-cell failure handling follows the same rules.
func Convert(g *Grid, columns []int, target value.Type, opts ...value.ConvertOption) (*Grid, error) {
	out := g.Clone()
	selected := make(map[int]bool, len(columns))
	for _, c := range columns {
		if c < 0 || c >= g.Variables() {
			return nil, fmt.Errorf("%w: column index %d", errs.ErrColumnNotFound, c)
		}
		selected[c] = true
	}

	for r, row := range out.rows {
		for c := range row {
			if !selected[c] {
				continue
			}
			converted, err := value.Convert(row[c], target, opts...)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %d: %w", r, c, err)
			}
			row[c] = converted
		}
	}

	return out, nil
}

func copyRows(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = make([]any, len(row))
		copy(out[i], row)
	}

	return out
}
