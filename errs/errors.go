// Package errs defines the sentinel errors shared across the tabular module.
//
// Errors raised by the library either are one of these sentinels or wrap one
// via fmt.Errorf("%w: ...") so callers can classify failures with errors.Is
// without parsing message text.
package errs

import "errors"

var (
	// ErrConversion indicates a value could not be coerced to the requested type.
	ErrConversion = errors.New("value conversion failed")

	// ErrUnknownType indicates a type name or code that the value package does not define.
	ErrUnknownType = errors.New("unknown type")

	// ErrInvalidBuilder indicates a Builder was configured with zero or multiple data sources,
	// or with names/types/data of mismatched lengths.
	ErrInvalidBuilder = errors.New("invalid builder configuration")

	// ErrColumnNotFound indicates a column name or position that does not exist in the matrix.
	ErrColumnNotFound = errors.New("column not found")

	// ErrRowIndex indicates a row index outside the matrix bounds.
	ErrRowIndex = errors.New("row index out of range")

	// ErrDimensionMismatch indicates structurally incompatible shapes,
	// such as a row whose length differs from the column count.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid must have at least one row and one column")

	// ErrRaggedGrid indicates rows of differing lengths.
	ErrRaggedGrid = errors.New("grid rows must all have the same length")

	// ErrNotGrid indicates an input that is not a 2-D collection at all.
	ErrNotGrid = errors.New("input is not a two-dimensional collection")

	// ErrJoinKey indicates a join key column that is missing or ambiguous.
	ErrJoinKey = errors.New("invalid join key")

	// ErrCSVFormat indicates malformed CSV input.
	ErrCSVFormat = errors.New("malformed csv input")

	// ErrDuplicateHeader indicates a repeated header name when the reader is
	// configured to reject duplicates.
	ErrDuplicateHeader = errors.New("duplicate header name")
)
