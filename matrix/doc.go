// Package matrix implements the column-oriented table at the center of the
// module: a named Matrix of ordered, typed columns with structural
// mutation, coercion, sorting, filtering, reshaping and joining.
//
// # Data Model
//
// A Matrix owns its column storage. Column accessors return live aliases:
// appending to a fetched *Column is visible in the matrix. Row returns a
// lightweight view routing reads and writes to the owner; Detach
// materializes it into an independent copy. Operations that produce a new
// Matrix (Clone, Subset, RowSlice, ColumnSlice, Transpose, Pivot, UnPivot,
// Merge) never alias the source's storage.
//
// # Construction
//
// Matrices are built through Builder from exactly one data source: an
// ordered name→values collection, row-major or column-major 2-D arrays, a
// slice of uniform structs, a JSON record array, or any TabularResult.
//
// # Mutation and Chaining
//
// Structural mutators (AddColumn, DropColumns, AddRow, RemoveRows,
// MoveColumn, RemoveEmptyRows, OrderBy, ...) change the receiver in place
// and return it for chaining.
//
// # Coercion
//
// The Convert family coerces selected columns through the value package and
// updates their declared types. Every call is all-or-nothing: a failing
// cell leaves the matrix exactly as it was.
package matrix
