// Package value implements the type coercion substrate the rest of the
// module is built on: a small closed set of cell types, conversion of
// arbitrary values into them, and the widening lattice used for type
// inference.
//
// # Types
//
// A cell is an untyped Go value (any); nil represents null. The nominal
// types a column can declare are enumerated by Type: Any, Bool, Int16, Int,
// Int64, Float32, Float64, BigInt (*big.Int), Decimal (shopspring
// decimal.Decimal), String and Time (time.Time).
//
// # Conversion
//
// Convert coerces a single value to a target Type, with options for time
// layouts, locale-aware numeric separators, null fallbacks and
// failure-to-null mapping. Failures wrap errs.ErrConversion.
//
// # Widening
//
// CommonSuper returns the narrowest type two types can both be widened to
// without information loss, e.g. CommonSuper(Float64, BigInt) == Decimal and
// CommonSuper(Int, Int16) == Int. Differing non-numeric types resolve to
// Any, the universal top type.
package value
