package stat

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/arloliu/tabular/internal/hash"
	"github.com/arloliu/tabular/matrix"
	"github.com/arloliu/tabular/value"
)

// KeySeparator joins the column values of a composite group key.
const KeySeparator = "-"

// Groups is the result of GroupBy: composite keys in first-occurrence
// order, each mapped to the positional indices of its member rows.
type Groups struct {
	Keys    []string
	Indices map[string][]int
}

// Rows returns the member rows of one group as live row views.
func (g *Groups) Rows(m *matrix.Matrix, key string) []*matrix.Row {
	rows := make([]*matrix.Row, 0, len(g.Indices[key]))
	for _, idx := range g.Indices[key] {
		row, err := m.Row(idx)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// GroupBy groups the matrix rows by the given columns. The composite key is
// the separator-joined textual form of the key cells; keys appear in
// first-occurrence order.
func GroupBy(m *matrix.Matrix, columns []string) (*Groups, error) {
	cols := make([]*matrix.Column, len(columns))
	for i, name := range columns {
		col, err := m.ColumnByName(name)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}

	g := &Groups{Indices: make(map[string][]int)}
	for r := 0; r < m.RowCount(); r++ {
		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = keyText(col.Get(r))
		}
		key := strings.Join(parts, KeySeparator)
		if _, seen := g.Indices[key]; !seen {
			g.Keys = append(g.Keys, key)
		}
		g.Indices[key] = append(g.Indices[key], r)
	}

	return g, nil
}

func keyText(v any) string {
	if value.IsNull(v) {
		return "null"
	}

	return fmt.Sprintf("%v", v)
}

// SumBy returns a two-column matrix of (group value, sum of valueCol per
// group), one row per distinct groupCol value in first-occurrence order.
// An optional scale rounds the aggregate to that many decimal places.
func SumBy(m *matrix.Matrix, valueCol, groupCol string, scale ...int32) (*matrix.Matrix, error) {
	return aggregateBy(m, valueCol, groupCol, "sum", sumDecimals, scale...)
}

// MeanBy returns a two-column matrix of per-group means of valueCol.
func MeanBy(m *matrix.Matrix, valueCol, groupCol string, scale ...int32) (*matrix.Matrix, error) {
	return aggregateBy(m, valueCol, groupCol, "mean", func(vals []decimal.Decimal) decimal.Decimal {
		if len(vals) == 0 {
			return decimal.Zero
		}

		return sumDecimals(vals).DivRound(decimal.NewFromInt(int64(len(vals))), int32(decimal.DivisionPrecision))
	}, scale...)
}

// MedianBy returns a two-column matrix of per-group medians of valueCol.
func MedianBy(m *matrix.Matrix, valueCol, groupCol string, scale ...int32) (*matrix.Matrix, error) {
	return aggregateBy(m, valueCol, groupCol, "median", medianDecimals, scale...)
}

func sumDecimals(vals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range vals {
		total = total.Add(d)
	}

	return total
}

func medianDecimals(vals []decimal.Decimal) decimal.Decimal {
	if len(vals) == 0 {
		return decimal.Zero
	}
	sorted := make([]decimal.Decimal, len(vals))
	copy(sorted, vals)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Cmp(sorted[j-1]) < 0; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return sorted[mid-1].Add(sorted[mid]).DivRound(decimal.NewFromInt(2), int32(decimal.DivisionPrecision))
}

// aggregateBy accumulates valueCol through decimals so Decimal and BigInt
// columns aggregate without float drift.
func aggregateBy(m *matrix.Matrix, valueCol, groupCol, fnName string,
	fn func([]decimal.Decimal) decimal.Decimal, scale ...int32,
) (*matrix.Matrix, error) {
	values, err := m.ColumnByName(valueCol)
	if err != nil {
		return nil, err
	}
	groups, err := m.ColumnByName(groupCol)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		key  any
		vals []decimal.Decimal
	}
	order := make([]*bucket, 0)
	byHash := make(map[uint64][]*bucket)
	for r := 0; r < m.RowCount(); r++ {
		gv := groups.Get(r)
		h := hash.Key(gv)
		var target *bucket
		for _, b := range byHash[h] {
			if value.Equal(b.key, gv) {
				target = b
				break
			}
		}
		if target == nil {
			target = &bucket{key: gv}
			byHash[h] = append(byHash[h], target)
			order = append(order, target)
		}
		if d, ok := value.AsDecimal(values.Get(r)); ok {
			target.vals = append(target.vals, d)
		}
	}

	keyVals := make([]any, len(order))
	aggVals := make([]any, len(order))
	for i, b := range order {
		keyVals[i] = b.key
		agg := fn(b.vals)
		if len(scale) > 0 {
			agg = agg.Round(scale[0])
		}
		aggVals[i] = agg
	}

	groupType := value.Any
	if idx, err := m.ColumnIndex(groupCol); err == nil {
		groupType = m.Types()[idx]
	}

	return matrix.NewBuilder().
		Name(fmt.Sprintf("%s of %s by %s", fnName, valueCol, groupCol)).
		ColumnNames(groupCol, valueCol).
		Types(groupType, value.Decimal).
		ColumnMap(matrix.NamedColumns{}.
			Add(groupCol, keyVals...).
			Add(valueCol, aggVals...)).
		Build()
}
