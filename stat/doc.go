// Package stat provides pure descriptive statistics and aggregation over
// matrices, columns and plain value lists.
//
// Scalar functions (Mean, Median, Min, Max, Sum, Sdev, Variance,
// Quartiles) skip null and non-numeric entries and coerce numeric-looking
// strings. Batch variants (Means, Medians, ...) apply across a named
// subset of a matrix's columns, preserving order.
//
// GroupBy buckets rows under separator-joined composite keys in
// first-occurrence order. SumBy, MeanBy and MedianBy aggregate one column
// per distinct value of another, accumulating through arbitrary-precision
// decimals. Frequency tabulates distinct values with counts and percents,
// and Summary picks descriptive keys per column type.
package stat
