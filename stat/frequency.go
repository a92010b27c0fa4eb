package stat

import (
	"math"

	"github.com/arloliu/tabular/internal/hash"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// NullMarker is the explicit marker representing null in Frequency output.
const NullMarker = "null"

// Frequency returns a matrix of (Value, Frequency, Percent) with one row
// per distinct value in first-occurrence order. Null values are counted
// under the NullMarker row. Percent is rounded to two decimals.
func Frequency(values []any) (*matrix.Matrix, error) {
	type entry struct {
		val   any
		count int
	}
	order := make([]*entry, 0)
	byHash := make(map[uint64][]*entry)
	for _, v := range values {
		if value.IsNull(v) {
			v = NullMarker
		}
		h := hash.Key(v)
		var target *entry
		for _, e := range byHash[h] {
			if value.Equal(e.val, v) {
				target = e
				break
			}
		}
		if target == nil {
			target = &entry{val: v}
			byHash[h] = append(byHash[h], target)
			order = append(order, target)
		}
		target.count++
	}

	vals := make([]any, len(order))
	counts := make([]any, len(order))
	percents := make([]any, len(order))
	total := float64(len(values))
	for i, e := range order {
		vals[i] = e.val
		counts[i] = e.count
		percents[i] = math.Round(float64(e.count)/total*10000) / 100
	}

	return matrix.NewBuilder().
		ColumnNames("Value", "Frequency", "Percent").
		Types(value.Any, value.Int, value.Float64).
		ColumnMap(matrix.NamedColumns{}.
			Add("Value", vals...).
			Add("Frequency", counts...).
			Add("Percent", percents...)).
		Build()
}

// FrequencyOf is Frequency over a column's cells.
func FrequencyOf(col *matrix.Column) (*matrix.Matrix, error) {
	return Frequency(col.Values())
}
