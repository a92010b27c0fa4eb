package stat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tabular/errs"
	"github.com/arloliu/tabular/grid"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

func airquality(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewBuilder().
		Name("airquality").
		Types(value.Int, value.Int, value.Float64, value.Int).
		ColumnMap(matrix.NamedColumns{}.
			Add("ozone", 41, 36, 12, 18, nil, 28).
			Add("solar", 190, 118, 149, 313, nil, nil).
			Add("wind", 7.4, 8.0, 12.6, 11.5, 14.3, 14.9).
			Add("temp", 67, 72, 74, 62, 56, 66)).
		Build()
	require.NoError(t, err)

	return m
}

func TestScalarStats(t *testing.T) {
	values := []any{41, 36, 12, 18, nil, 28, "not numeric"}

	require.InDelta(t, 135.0, Sum(values), 1e-9)
	require.InDelta(t, 27.0, Mean(values), 1e-9)
	require.InDelta(t, 28.0, Median(values), 1e-9)
	require.InDelta(t, 12.0, Min(values), 1e-9)
	require.InDelta(t, 41.0, Max(values), 1e-9)

	t.Run("numeric strings count", func(t *testing.T) {
		require.InDelta(t, 6.0, Sum([]any{1, "2", 3.0}), 1e-9)
	})

	t.Run("even count takes the midpoint average", func(t *testing.T) {
		require.InDelta(t, 2.5, Median([]any{4, 1, 3, 2}), 1e-9)
	})

	t.Run("empty input yields NaN", func(t *testing.T) {
		require.True(t, math.IsNaN(Mean(nil)))
		require.True(t, math.IsNaN(Median([]any{nil, "abc"})))
	})
}

func TestVariance(t *testing.T) {
	values := []any{1, 2, 3, 4}

	require.InDelta(t, 5.0/3.0, Variance(values), 1e-9, "sample variance by default")
	require.InDelta(t, 1.25, Variance(values, false), 1e-9, "population variance on request")
	require.InDelta(t, math.Sqrt(5.0/3.0), Sdev(values), 1e-9)
}

func TestQuartiles(t *testing.T) {
	q1, q3 := Quartiles([]any{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.InDelta(t, 3.0, q1, 1e-9)
	require.InDelta(t, 7.0, q3, 1e-9)

	t.Run("interpolated positions", func(t *testing.T) {
		q1, q3 := Quartiles([]any{1, 2, 3, 4})
		require.InDelta(t, 1.75, q1, 1e-9)
		require.InDelta(t, 3.25, q3, 1e-9)
	})
}

func TestBatchStats(t *testing.T) {
	m := airquality(t)

	means, err := Means(m, []string{"ozone", "temp"})
	require.NoError(t, err)
	require.Len(t, means, 2)
	require.InDelta(t, 27.0, means[0], 1e-9, "nulls are skipped, not counted")
	require.InDelta(t, 66.166666, means[1], 1e-4)

	sums, err := Sums(m, []string{"solar"})
	require.NoError(t, err)
	require.InDelta(t, 770.0, sums[0], 1e-9)

	mins, err := Mins(m, []string{"wind"})
	require.NoError(t, err)
	require.InDelta(t, 7.4, mins[0], 1e-9)

	maxes, err := Maxes(m, []string{"wind"})
	require.NoError(t, err)
	require.InDelta(t, 14.9, maxes[0], 1e-9)

	medians, err := Medians(m, []string{"temp"})
	require.NoError(t, err)
	require.InDelta(t, 66.5, medians[0], 1e-9)

	_, err = Means(m, []string{"missing"})
	require.ErrorIs(t, err, errs.ErrColumnNotFound)
}

func TestBatchStatsAt(t *testing.T) {
	m := airquality(t)

	means, err := MeansAt(m, []int{0, 3})
	require.NoError(t, err)
	require.InDelta(t, 27.0, means[0], 1e-9)
	require.InDelta(t, 66.166666, means[1], 1e-4)

	sums, err := SumsAt(m, []int{1})
	require.NoError(t, err)
	require.InDelta(t, 770.0, sums[0], 1e-9)

	mins, err := MinsAt(m, []int{2})
	require.NoError(t, err)
	require.InDelta(t, 7.4, mins[0], 1e-9)

	medians, err := MediansAt(m, []int{3})
	require.NoError(t, err)
	require.InDelta(t, 66.5, medians[0], 1e-9)

	_, err = MaxesAt(m, []int{9})
	require.ErrorIs(t, err, errs.ErrColumnNotFound)
}

func TestGridStats(t *testing.T) {
	g, err := grid.New([][]any{
		{1, 10.0},
		{2, 20.0},
		{nil, 30.0},
		{3, 40.0},
	})
	require.NoError(t, err)

	means, err := GridMeans(g, []int{0, 1})
	require.NoError(t, err)
	require.InDelta(t, 2.0, means[0], 1e-9, "nulls are skipped")
	require.InDelta(t, 25.0, means[1], 1e-9)

	sums, err := GridSums(g, []int{1})
	require.NoError(t, err)
	require.InDelta(t, 100.0, sums[0], 1e-9)

	medians, err := GridMedians(g, []int{1})
	require.NoError(t, err)
	require.InDelta(t, 25.0, medians[0], 1e-9)

	mins, err := GridMins(g, []int{0})
	require.NoError(t, err)
	require.InDelta(t, 1.0, mins[0], 1e-9)

	maxes, err := GridMaxes(g, []int{1})
	require.NoError(t, err)
	require.InDelta(t, 40.0, maxes[0], 1e-9)

	sdevs, err := GridSdevs(g, []int{1})
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(500.0/3.0), sdevs[0], 1e-9)

	_, err = GridMeans(g, []int{2})
	require.ErrorIs(t, err, errs.ErrColumnNotFound)
}
