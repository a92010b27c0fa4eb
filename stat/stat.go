package stat

import (
	"math"
	"sort"

	"github.com/arloliu/tabular/grid"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// numeric extracts the float64 view of a value list, skipping null and
// non-numeric entries. Numeric-looking strings are coerced.
func numeric(values []any) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if value.IsNull(v) {
			continue
		}
		if f, ok := value.AsFloat(v); ok {
			out = append(out, f)
		}
	}

	return out
}

// Sum returns the sum of the numeric entries. An all-null or non-numeric
// list sums to zero.
func Sum(values []any) float64 {
	total := 0.0
	for _, f := range numeric(values) {
		total += f
	}

	return total
}

// Mean returns the arithmetic mean of the numeric entries; NaN when none
// exist.
func Mean(values []any) float64 {
	nums := numeric(values)
	if len(nums) == 0 {
		return math.NaN()
	}
	total := 0.0
	for _, f := range nums {
		total += f
	}

	return total / float64(len(nums))
}

// Median returns the median of the numeric entries; NaN when none exist.
func Median(values []any) float64 {
	nums := numeric(values)
	if len(nums) == 0 {
		return math.NaN()
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid]
	}

	return (nums[mid-1] + nums[mid]) / 2
}

// Min returns the smallest numeric entry; NaN when none exist.
func Min(values []any) float64 {
	nums := numeric(values)
	if len(nums) == 0 {
		return math.NaN()
	}
	m := nums[0]
	for _, f := range nums[1:] {
		if f < m {
			m = f
		}
	}

	return m
}

// Max returns the largest numeric entry; NaN when none exist.
func Max(values []any) float64 {
	nums := numeric(values)
	if len(nums) == 0 {
		return math.NaN()
	}
	m := nums[0]
	for _, f := range nums[1:] {
		if f > m {
			m = f
		}
	}

	return m
}

// Variance returns the variance of the numeric entries. biasCorrected
// selects the sample (n-1) form, defaulting to true; pass false for the
// population form. NaN when too few numeric entries exist.
func Variance(values []any, biasCorrected ...bool) float64 {
	sample := true
	if len(biasCorrected) > 0 {
		sample = biasCorrected[0]
	}
	nums := numeric(values)
	if len(nums) == 0 || (sample && len(nums) < 2) {
		return math.NaN()
	}
	mean := 0.0
	for _, f := range nums {
		mean += f
	}
	mean /= float64(len(nums))
	ss := 0.0
	for _, f := range nums {
		d := f - mean
		ss += d * d
	}
	n := float64(len(nums))
	if sample {
		n--
	}

	return ss / n
}

// Sdev returns the standard deviation, sample by default (see Variance).
func Sdev(values []any, biasCorrected ...bool) float64 {
	return math.Sqrt(Variance(values, biasCorrected...))
}

// Quartiles returns the first and third quartile of the numeric entries,
// using linear interpolation on h = p*(n-1) (the R type-7 rule).
func Quartiles(values []any) (q1, q3 float64) {
	nums := numeric(values)
	if len(nums) == 0 {
		return math.NaN(), math.NaN()
	}
	sort.Float64s(nums)

	return quantileSorted(nums, 0.25), quantileSorted(nums, 0.75)
}

func quantileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// columnValues resolves the named column of m.
func columnValues(m *matrix.Matrix, name string) ([]any, error) {
	col, err := m.ColumnByName(name)
	if err != nil {
		return nil, err
	}

	return col.Values(), nil
}

// Means applies Mean across the named columns, preserving their order.
func Means(m *matrix.Matrix, columns []string) ([]float64, error) {
	return batch(m, columns, Mean)
}

// Medians applies Median across the named columns, preserving their order.
func Medians(m *matrix.Matrix, columns []string) ([]float64, error) {
	return batch(m, columns, Median)
}

// Sums applies Sum across the named columns, preserving their order.
func Sums(m *matrix.Matrix, columns []string) ([]float64, error) {
	return batch(m, columns, Sum)
}

// Mins applies Min across the named columns, preserving their order.
func Mins(m *matrix.Matrix, columns []string) ([]float64, error) {
	return batch(m, columns, Min)
}

// Maxes applies Max across the named columns, preserving their order.
func Maxes(m *matrix.Matrix, columns []string) ([]float64, error) {
	return batch(m, columns, Max)
}

// Sdevs applies Sdev across the named columns, preserving their order.
func Sdevs(m *matrix.Matrix, columns []string) ([]float64, error) {
	return batch(m, columns, func(vals []any) float64 { return Sdev(vals) })
}

func batch(m *matrix.Matrix, columns []string, fn func([]any) float64) ([]float64, error) {
	out := make([]float64, len(columns))
	for i, name := range columns {
		vals, err := columnValues(m, name)
		if err != nil {
			return nil, err
		}
		out[i] = fn(vals)
	}

	return out, nil
}

// MeansAt applies Mean across the columns at the given positions,
// preserving their order.
func MeansAt(m *matrix.Matrix, columns []int) ([]float64, error) {
	return batchAt(matrixColumn(m), columns, Mean)
}

// MediansAt applies Median across the columns at the given positions.
func MediansAt(m *matrix.Matrix, columns []int) ([]float64, error) {
	return batchAt(matrixColumn(m), columns, Median)
}

// SumsAt applies Sum across the columns at the given positions.
func SumsAt(m *matrix.Matrix, columns []int) ([]float64, error) {
	return batchAt(matrixColumn(m), columns, Sum)
}

// MinsAt applies Min across the columns at the given positions.
func MinsAt(m *matrix.Matrix, columns []int) ([]float64, error) {
	return batchAt(matrixColumn(m), columns, Min)
}

// MaxesAt applies Max across the columns at the given positions.
func MaxesAt(m *matrix.Matrix, columns []int) ([]float64, error) {
	return batchAt(matrixColumn(m), columns, Max)
}

// SdevsAt applies Sdev across the columns at the given positions.
func SdevsAt(m *matrix.Matrix, columns []int) ([]float64, error) {
	return batchAt(matrixColumn(m), columns, func(vals []any) float64 { return Sdev(vals) })
}

// GridMeans applies Mean across the grid columns at the given positions.
func GridMeans(g *grid.Grid, columns []int) ([]float64, error) {
	return batchAt(g.Column, columns, Mean)
}

// GridMedians applies Median across the grid columns at the given positions.
func GridMedians(g *grid.Grid, columns []int) ([]float64, error) {
	return batchAt(g.Column, columns, Median)
}

// GridSums applies Sum across the grid columns at the given positions.
func GridSums(g *grid.Grid, columns []int) ([]float64, error) {
	return batchAt(g.Column, columns, Sum)
}

// GridMins applies Min across the grid columns at the given positions.
func GridMins(g *grid.Grid, columns []int) ([]float64, error) {
	return batchAt(g.Column, columns, Min)
}

// GridMaxes applies Max across the grid columns at the given positions.
func GridMaxes(g *grid.Grid, columns []int) ([]float64, error) {
	return batchAt(g.Column, columns, Max)
}

// GridSdevs applies Sdev across the grid columns at the given positions.
func GridSdevs(g *grid.Grid, columns []int) ([]float64, error) {
	return batchAt(g.Column, columns, func(vals []any) float64 { return Sdev(vals) })
}

func matrixColumn(m *matrix.Matrix) func(int) ([]any, error) {
	return func(i int) ([]any, error) {
		col, err := m.Column(i)
		if err != nil {
			return nil, err
		}

		return col.Values(), nil
	}
}

// batchAt runs one statistic over position-addressed columns, regardless
// of the container the column getter reads from.
func batchAt(column func(int) ([]any, error), columns []int, fn func([]any) float64) ([]float64, error) {
	out := make([]float64, len(columns))
	for i, c := range columns {
		vals, err := column(c)
		if err != nil {
			return nil, err
		}
		out[i] = fn(vals)
	}

	return out, nil
}
