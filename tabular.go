// Package tabular provides an in-memory, column-oriented tabular data
// engine: a typed table abstraction (Matrix) with cell-level coercion,
// structural transforms (join, pivot/unpivot, transpose, sort, filter), a
// statistics layer, and a lower-level untyped 2-D container (Grid).
//
// # Core Concepts
//
//   - Matrix: a named table of ordered, typed columns (package matrix)
//   - Column: one typed, mutable cell sequence; fetched by live alias
//   - Row: a positional view over one matrix row; Detach copies it out
//   - Grid: an untyped rectangular 2-D container (package grid)
//
// # Basic Usage
//
// Building and transforming a matrix:
//
//	m, _ := tabular.FromColumns(tabular.Cols().
//	    Add("id", 1, 2, 3).
//	    Add("name", "Rick", "Dan", "Michelle").
//	    Add("salary", 623.3, 515.2, 611.0))
//
//	_ = m.ConvertColumn("salary", value.Decimal)
//	m, _ = m.OrderBy(matrix.Asc("salary"))
//
// Joining two matrices:
//
//	joined, _ := tabular.LeftJoin(a, b, matrix.JoinSpec{Left: "id", Right: "employeeId"})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the matrix
// package, simplifying the most common use cases. For fine-grained control
// (builders, converter descriptors, reshaping options) use the matrix,
// value, grid, stat, csvio and sqlio packages directly.
package tabular

import (
	"github.com/arloliu/tabular/matrix"
)

// Cols returns an empty ordered name→values collection for FromColumns.
func Cols() matrix.NamedColumns {
	return matrix.NamedColumns{}
}

// FromColumns builds an untyped matrix from an ordered name→values
// collection.
func FromColumns(cols matrix.NamedColumns) (*matrix.Matrix, error) {
	return matrix.NewBuilder().ColumnMap(cols).Build()
}

// FromRows builds an untyped matrix from row-major data with the given
// column names.
func FromRows(names []string, rows [][]any) (*matrix.Matrix, error) {
	return matrix.NewBuilder().ColumnNames(names...).Rows(rows).Build()
}

// FromRecords builds a matrix from a slice of uniform structs; exported
// fields become columns.
func FromRecords(records any) (*matrix.Matrix, error) {
	return matrix.NewBuilder().Records(records).Build()
}

// Join inner-joins two matrices on the given key specification.
func Join(left, right *matrix.Matrix, spec matrix.JoinSpec) (*matrix.Matrix, error) {
	return matrix.Merge(left, right, spec)
}

// LeftJoin left-outer-joins two matrices: unmatched left rows are kept
// once with the right-side columns null.
func LeftJoin(left, right *matrix.Matrix, spec matrix.JoinSpec) (*matrix.Matrix, error) {
	return matrix.Merge(left, right, spec, true)
}
